package ml

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

// Artifacts bundles the pre-trained scaler and classifier parameters. They
// are fitted offline against the crop recommendation training set and
// loaded once at process start.
type Artifacts struct {
	MinMax     *MinMaxScaler   `json:"minmax"`
	Standard   *StandardScaler `json:"standard"`
	Classifier *Classifier     `json:"classifier"`
}

//go:embed artifacts/model.json
var defaultArtifactsJSON []byte

// LoadArtifacts reads model artifacts from path. An empty path, or a missing
// file, falls back to the build-embedded artifact set so the service can
// start without an external model directory.
func LoadArtifacts(path string) (*Artifacts, error) {
	data := defaultArtifactsJSON
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err == nil {
			data = fileData
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read model artifacts %s: %w", path, err)
		} else {
			log.Printf("Model artifacts %s not found, using embedded defaults", path)
		}
	}

	var a Artifacts
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse model artifacts: %w", err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// DefaultArtifacts returns the build-embedded artifact set.
func DefaultArtifacts() (*Artifacts, error) {
	return LoadArtifacts("")
}

func (a *Artifacts) validate() error {
	dims := len(models.FeatureNames)
	if a.MinMax == nil || a.Standard == nil || a.Classifier == nil {
		return fmt.Errorf("model artifacts incomplete")
	}
	if err := a.MinMax.validate(dims); err != nil {
		return err
	}
	if err := a.Standard.validate(dims); err != nil {
		return err
	}
	if len(a.Classifier.Classes) == 0 {
		return fmt.Errorf("classifier artifact has no classes")
	}
	for _, class := range a.Classifier.Classes {
		if len(class.Centroid) != dims {
			return fmt.Errorf("classifier centroid for class %d has %d dimensions, want %d",
				class.ID, len(class.Centroid), dims)
		}
	}
	return nil
}
