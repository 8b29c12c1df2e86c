package ml

import "fmt"

// MinMaxScaler rescales each feature into [0,1] using fitted per-feature
// bounds. Read-only after loading.
type MinMaxScaler struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

// Transform applies the fitted min-max scaling.
func (s *MinMaxScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.Min) {
		return nil, fmt.Errorf("minmax scaler expects %d features, got %d", len(s.Min), len(values))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		span := s.Max[i] - s.Min[i]
		if span == 0 {
			out[i] = 0
			continue
		}
		out[i] = (v - s.Min[i]) / span
	}
	return out, nil
}

func (s *MinMaxScaler) validate(dims int) error {
	if len(s.Min) != dims || len(s.Max) != dims {
		return fmt.Errorf("minmax scaler dimensions %d/%d, want %d", len(s.Min), len(s.Max), dims)
	}
	for i := range s.Min {
		if s.Max[i] < s.Min[i] {
			return fmt.Errorf("minmax scaler bound %d inverted", i)
		}
	}
	return nil
}

// StandardScaler centers and scales each feature using fitted mean and
// standard deviation. Applied after the min-max stage.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Transform applies the fitted standardization.
func (s *StandardScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.Mean) {
		return nil, fmt.Errorf("standard scaler expects %d features, got %d", len(s.Mean), len(values))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		std := s.Std[i]
		if std == 0 {
			std = 1
		}
		out[i] = (v - s.Mean[i]) / std
	}
	return out, nil
}

func (s *StandardScaler) validate(dims int) error {
	if len(s.Mean) != dims || len(s.Std) != dims {
		return fmt.Errorf("standard scaler dimensions %d/%d, want %d", len(s.Mean), len(s.Std), dims)
	}
	return nil
}
