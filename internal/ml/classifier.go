package ml

import (
	"fmt"
	"math"
	"sort"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

// CentroidClass is one trained class of the classifier artifact. Centroids
// are stored in raw feature space and projected through both scalers once at
// load time.
type CentroidClass struct {
	ID       int       `json:"id"`
	Crop     string    `json:"crop"`
	Centroid []float64 `json:"centroid"`
}

// Classifier is a pre-trained nearest-centroid probabilistic classifier.
// Class probabilities are a softmax over negative centroid distances with a
// fitted temperature. Read-only after loading.
type Classifier struct {
	Temperature float64         `json:"temperature"`
	Classes     []CentroidClass `json:"classes"`
}

// Engine applies the fitted two-stage scaling then classification. Safe for
// concurrent use; all state is immutable after New.
type Engine struct {
	minmax   *MinMaxScaler
	standard *StandardScaler

	// centroids projected into the doubly-scaled space
	scaled  [][]float64
	classes []CentroidClass
	tau     float64
}

// NewEngine builds an engine from loaded artifacts, projecting each class
// centroid through both scalers.
func NewEngine(a *Artifacts) (*Engine, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		minmax:   a.MinMax,
		standard: a.Standard,
		classes:  a.Classifier.Classes,
		scaled:   make([][]float64, len(a.Classifier.Classes)),
		tau:      a.Classifier.Temperature,
	}
	if e.tau <= 0 {
		e.tau = 1
	}

	for i, class := range a.Classifier.Classes {
		scaled, err := e.scale(class.Centroid)
		if err != nil {
			return nil, fmt.Errorf("failed to project centroid for class %d: %w", class.ID, err)
		}
		e.scaled[i] = scaled
	}

	return e, nil
}

func (e *Engine) scale(values []float64) ([]float64, error) {
	scaled, err := e.minmax.Transform(values)
	if err != nil {
		return nil, err
	}
	return e.standard.Transform(scaled)
}

// Classify runs the two-stage transform and classification for one feature
// vector. Malformed input fails with models.InputError.
func (e *Engine) Classify(features models.FeatureVector) (models.ClassificationResult, error) {
	if err := features.Validate(); err != nil {
		return models.ClassificationResult{}, err
	}
	return e.ClassifyValues(features.Values())
}

// ClassifyValues classifies a raw value slice in classifier input order.
// Used by the manual-input path where no FeatureVector was resolved.
func (e *Engine) ClassifyValues(values []float64) (models.ClassificationResult, error) {
	if len(values) != len(models.FeatureNames) {
		return models.ClassificationResult{}, &models.InputError{
			Field:  "features",
			Reason: fmt.Sprintf("expected %d values, got %d", len(models.FeatureNames), len(values)),
		}
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.ClassificationResult{}, &models.InputError{
				Field:  models.FeatureNames[i],
				Reason: fmt.Sprintf("non-finite value %v", v),
			}
		}
	}

	scaled, err := e.scale(values)
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("scaling failed: %w", err)
	}

	probs := e.probabilities(scaled)

	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}

	result := models.ClassificationResult{
		Crop:       CropName(e.classes[best].ID),
		ClassID:    e.classes[best].ID,
		Confidence: probs[best],
	}

	// Remaining classes ranked by probability descending, scores as
	// probability x 100 (the percentage-like convention of the original
	// model surface).
	for i := range e.classes {
		if i == best {
			continue
		}
		result.Alternatives = append(result.Alternatives, models.AlternativeCrop{
			Crop:  CropName(e.classes[i].ID),
			Score: math.Round(probs[i]*1000) / 10,
		})
	}
	sort.SliceStable(result.Alternatives, func(i, j int) bool {
		return result.Alternatives[i].Score > result.Alternatives[j].Score
	})

	return result, nil
}

// probabilities computes the softmax over negative centroid distances.
func (e *Engine) probabilities(scaled []float64) []float64 {
	distances := make([]float64, len(e.scaled))
	minDist := math.MaxFloat64
	for i, centroid := range e.scaled {
		var sum float64
		for j := range centroid {
			d := scaled[j] - centroid[j]
			sum += d * d
		}
		distances[i] = math.Sqrt(sum)
		if distances[i] < minDist {
			minDist = distances[i]
		}
	}

	// Shift by the minimum distance before exponentiating for numeric
	// stability with far-away centroids.
	probs := make([]float64, len(distances))
	var total float64
	for i, d := range distances {
		probs[i] = math.Exp(-(d - minDist) / e.tau)
		total += probs[i]
	}
	for i := range probs {
		probs[i] /= total
	}
	return probs
}

// Classes exposes the trained class list for diagnostics.
func (e *Engine) Classes() []CentroidClass {
	return e.classes
}
