package models

// SavedResult is a persisted recommendation kept for later advice delivery.
// The feature vector and alternatives are stored as JSON columns.
type SavedResult struct {
	ID               string            `json:"id" db:"id"`
	Timestamp        string            `json:"timestamp" db:"timestamp"`
	LocationName     string            `json:"locationName" db:"location_name"`
	Latitude         float64           `json:"latitude" db:"latitude"`
	Longitude        float64           `json:"longitude" db:"longitude"`
	RecommendedCrop  string            `json:"recommendedCrop" db:"recommended_crop"`
	ConfidenceScore  float64           `json:"confidenceScore" db:"confidence_score"`
	Features         FeatureVector     `json:"features" db:"features"`
	Alternatives     []AlternativeCrop `json:"alternatives" db:"alternatives"`
	DataSource       string            `json:"dataSource" db:"data_source"`
	AdviceEnglish    string            `json:"adviceEnglish,omitempty" db:"advice_english"`
	AdviceAmharic    string            `json:"adviceAmharic,omitempty" db:"advice_amharic"`
	AdviceAfaanOromo string            `json:"adviceAfaanOromo,omitempty" db:"advice_afaan_oromo"`
	ProcessingTimeMs float64           `json:"processingTimeMs" db:"processing_time_ms"`
}

// ResultsSummary aggregates the saved results for the admin panel
type ResultsSummary struct {
	TotalResults int `json:"totalResults"`
	UniqueCrops  int `json:"uniqueCrops"`
}
