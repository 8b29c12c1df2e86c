package models

import (
	"fmt"
	"math"
)

// FeatureNames lists the 7 agronomic quantities in classifier input order.
var FeatureNames = []string{
	"nitrogen", "phosphorus", "potassium",
	"temperature", "humidity", "ph", "rainfall",
}

// FeatureVector holds the 7 agronomic quantities consumed by the classifier.
// Values always fall inside the documented physical ranges regardless of
// whether they came from satellite embeddings or zone synthesis.
type FeatureVector struct {
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
	Temperature float64 `json:"temperature"` // °C
	Humidity    float64 `json:"humidity"`    // %
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"` // mm
}

// FeatureRange is the physical bound for one agronomic quantity.
type FeatureRange struct {
	Min float64
	Max float64
}

// FeatureRanges maps each quantity to its documented bound. The classifier
// was trained on data inside these ranges, so every resolver output is
// clamped to them.
var FeatureRanges = map[string]FeatureRange{
	"nitrogen":    {0, 140},
	"phosphorus":  {5, 145},
	"potassium":   {5, 205},
	"temperature": {8.8, 43.7},
	"humidity":    {14.3, 99.9},
	"ph":          {3.5, 9.9},
	"rainfall":    {20.2, 298.6},
}

// Values returns the vector in classifier input order.
func (f FeatureVector) Values() []float64 {
	return []float64{
		f.Nitrogen, f.Phosphorus, f.Potassium,
		f.Temperature, f.Humidity, f.PH, f.Rainfall,
	}
}

// Validate checks dimensional sanity and finiteness. Range bounds are not
// re-validated here; the resolver enforces them at generation time.
func (f FeatureVector) Validate() error {
	for i, v := range f.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InputError{Field: FeatureNames[i], Reason: fmt.Sprintf("non-finite value %v", v)}
		}
	}
	return nil
}

// FeatureVectorFromValues builds a vector from a value slice in classifier
// input order.
func FeatureVectorFromValues(values []float64) (FeatureVector, error) {
	if len(values) != len(FeatureNames) {
		return FeatureVector{}, &InputError{
			Field:  "features",
			Reason: fmt.Sprintf("expected %d values, got %d", len(FeatureNames), len(values)),
		}
	}
	return FeatureVector{
		Nitrogen:    values[0],
		Phosphorus:  values[1],
		Potassium:   values[2],
		Temperature: values[3],
		Humidity:    values[4],
		PH:          values[5],
		Rainfall:    values[6],
	}, nil
}
