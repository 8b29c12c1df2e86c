package models

import (
	"fmt"
	"math"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinate against WGS84 bounds.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return &InputError{Field: "latitude", Reason: fmt.Sprintf("must be in [-90, 90], got %v", c.Latitude)}
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return &InputError{Field: "longitude", Reason: fmt.Sprintf("must be in [-180, 180], got %v", c.Longitude)}
	}
	return nil
}

// RecommendationRequest is one unit of work for the orchestrator. Never
// mutated after construction; defaults are applied at the HTTP boundary.
type RecommendationRequest struct {
	Coordinate          Coordinate
	Year                int
	BufferMeters        int
	UseCache            bool
	ConfidenceThreshold float64
}

// FingerprintPrecision is the number of coordinate decimals kept when
// deriving a cache key. Two points closer than the rounding step share a
// fingerprint and therefore a cache slot; this collapsing of nearby points
// is deliberate, it matches the 3-decimal rounding of the synthetic feature
// hash so cached results stay consistent with fresh ones.
const FingerprintPrecision = 3

// Fingerprint identifies one cacheable unit of work.
type Fingerprint struct {
	Latitude     float64
	Longitude    float64
	Year         int
	BufferMeters int
}

// FingerprintOf derives the cache key for a request.
func FingerprintOf(req RecommendationRequest) Fingerprint {
	return Fingerprint{
		Latitude:     roundTo(req.Coordinate.Latitude, FingerprintPrecision),
		Longitude:    roundTo(req.Coordinate.Longitude, FingerprintPrecision),
		Year:         req.Year,
		BufferMeters: req.BufferMeters,
	}
}

// Key renders the fingerprint as a stable string for map indexing.
func (f Fingerprint) Key() string {
	return fmt.Sprintf("%.3f_%.3f_%d_%d", f.Latitude, f.Longitude, f.Year, f.BufferMeters)
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

// AlternativeCrop is one non-top-pick classifier class with its
// percentage-like score (probability × 100, one decimal).
type AlternativeCrop struct {
	Crop  string  `json:"crop"`
	Score float64 `json:"score"`
}

// ClassificationResult is the classifier output for one feature vector.
type ClassificationResult struct {
	Crop         string            `json:"crop"`
	ClassID      int               `json:"classId"`
	Confidence   float64           `json:"confidence"` // max class probability, 0-1
	Alternatives []AlternativeCrop `json:"alternatives"`
}

// ResolverMetadata describes how the feature vector was produced.
type ResolverMetadata struct {
	DataSource   string  `json:"dataSource"` // "real" or "synthetic"
	Zone         string  `json:"zone,omitempty"`
	Geohash      string  `json:"geohash,omitempty"`
	RegionAreaM2 float64 `json:"regionAreaM2,omitempty"`
}

// RecommendationResponse is the orchestrator's result for one request.
// Owned by the caller once returned.
type RecommendationResponse struct {
	Coordinate       Coordinate           `json:"coordinate"`
	Features         FeatureVector        `json:"features"`
	Classification   ClassificationResult `json:"classification"`
	ProcessingTimeMs float64              `json:"processingTimeMs"`
	CacheHit         bool                 `json:"cacheHit"`
	Resolver         ResolverMetadata     `json:"resolver"`
}

// BatchItemResult is one index-aligned slot of a batch response. Exactly one
// of Response/Error is set.
type BatchItemResult struct {
	Index    int                     `json:"index"`
	Response *RecommendationResponse `json:"response,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

// BatchMetadata aggregates a finished batch.
type BatchMetadata struct {
	TotalLocations int     `json:"totalLocations"`
	Successful     int     `json:"successful"`
	TotalTimeMs    float64 `json:"totalTimeMs"`
	AverageTimeMs  float64 `json:"averageTimeMs"`
	CacheHits      int     `json:"cacheHits"`
}

// ServiceStats is the orchestrator's observability surface. Counters are
// updated atomically and may be momentarily inconsistent with each other
// under load; they never block the request path.
type ServiceStats struct {
	TotalRequests    int64   `json:"totalRequests"`
	CacheHits        int64   `json:"cacheHits"`
	AverageLatencyMs float64 `json:"averageLatencyMs"`
	P95LatencyMs     float64 `json:"p95LatencyMs"`
	CacheSize        int     `json:"cacheSize"`
	CacheCapacity    int     `json:"cacheCapacity"`
	FeatureSource    string  `json:"featureSource"` // "real" or "synthetic"
}
