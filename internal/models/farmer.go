package models

// FarmerContact represents a registered farmer reachable by SMS
type FarmerContact struct {
	ID                int64   `json:"id" db:"id"`
	Name              string  `json:"name" db:"name"`
	PhoneNumber       string  `json:"phoneNumber" db:"phone_number"`
	Location          string  `json:"location" db:"location"`
	Latitude          float64 `json:"latitude" db:"latitude"`
	Longitude         float64 `json:"longitude" db:"longitude"`
	PreferredLanguage string  `json:"preferredLanguage" db:"preferred_language"` // "english", "amharic", "afaan_oromo"
	CreatedAt         string  `json:"createdAt,omitempty" db:"created_at"`
}

// FarmerFilter represents filter parameters for querying farmers
type FarmerFilter struct {
	Location string `form:"location"`
	Language string `form:"language"`
	Limit    int    `form:"limit"`
}
