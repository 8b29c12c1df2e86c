package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

// EmbeddingDims is the dimensionality of one annual satellite embedding.
const EmbeddingDims = 64

// featureEstimator reduces an embedding to one agronomic quantity:
//
//	clamp(mean(dims)*scale + offset + amp*stddev(dims), min, max)
//
// The dimension subsets and constants are hand-tuned against the embedding
// distribution and must be preserved verbatim; classifier behavior is
// sensitive to inputs outside its training ranges.
type featureEstimator struct {
	Dims   []int
	Scale  float64
	Offset float64
	Amp    float64
	Min    float64
	Max    float64
}

var featureEstimators = [7]featureEstimator{
	{Dims: []int{1, 5, 12, 23, 34, 32, 37}, Scale: 200, Offset: 70, Amp: 50, Min: 0, Max: 140},     // nitrogen
	{Dims: []int{3, 8, 15, 27, 41, 21, 22}, Scale: 150, Offset: 75, Amp: 40, Min: 5, Max: 145},     // phosphorus
	{Dims: []int{2, 9, 18, 31, 47, 45}, Scale: 180, Offset: 105, Amp: 60, Min: 5, Max: 205},        // potassium
	{Dims: []int{6, 13, 22, 35, 52, 32}, Scale: 40, Offset: 26, Amp: 15, Min: 8.8, Max: 43.7},      // temperature
	{Dims: []int{4, 11, 19, 29, 44, 37}, Scale: 80, Offset: 57, Amp: 30, Min: 14.3, Max: 99.9},     // humidity
	{Dims: []int{7, 14, 25, 38, 56, 21}, Scale: 4, Offset: 6.7, Amp: 2, Min: 3.5, Max: 9.9},        // ph
	{Dims: []int{10, 17, 26, 39, 58, 32, 45}, Scale: 200, Offset: 159, Amp: 100, Min: 20.2, Max: 298.6}, // rainfall
}

func (e featureEstimator) estimate(embedding []float64) float64 {
	selected := make([]float64, len(e.Dims))
	for i, d := range e.Dims {
		selected[i] = embedding[d]
	}

	var sum float64
	for _, v := range selected {
		sum += v
	}
	mean := sum / float64(len(selected))

	var variance float64
	for _, v := range selected {
		variance += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(variance / float64(len(selected)))

	score := mean*e.Scale + e.Offset + stddev*e.Amp
	return math.Max(e.Min, math.Min(e.Max, score))
}

// embeddingResponse is the provider's wire format for one annual embedding.
type embeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

// AlphaEarthClient queries the annual satellite-embedding provider over
// HTTP. The provider may be slow or report no data for a coordinate; both
// conditions are errors the caller turns into a synthetic fallback.
type AlphaEarthClient struct {
	baseURL string
	client  *http.Client
}

// NewAlphaEarthClient builds a provider client with a bounded request
// timeout so a slow provider cannot stall the worker pool.
func NewAlphaEarthClient(baseURL string, timeout time.Duration) *AlphaEarthClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AlphaEarthClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchEmbedding retrieves the annual embedding for a buffered coordinate.
func (c *AlphaEarthClient) FetchEmbedding(ctx context.Context, coord models.Coordinate, year, bufferMeters int) ([]float64, error) {
	endpoint := fmt.Sprintf("%s/v1/embeddings/annual?%s", c.baseURL, url.Values{
		"latitude":  {fmt.Sprintf("%f", coord.Latitude)},
		"longitude": {fmt.Sprintf("%f", coord.Longitude)},
		"year":      {fmt.Sprintf("%d", year)},
		"buffer":    {fmt.Sprintf("%d", bufferMeters)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no embedding data for (%f, %f) in %d", coord.Latitude, coord.Longitude, year)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding provider returned status %d", resp.StatusCode)
	}

	var body embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	if len(body.Embedding) != EmbeddingDims {
		return nil, fmt.Errorf("embedding has %d dimensions, want %d", len(body.Embedding), EmbeddingDims)
	}

	return body.Embedding, nil
}

// reduceEmbedding converts a 64-d embedding to the 7 agronomic quantities.
func reduceEmbedding(embedding []float64) models.FeatureVector {
	return models.FeatureVector{
		Nitrogen:    featureEstimators[0].estimate(embedding),
		Phosphorus:  featureEstimators[1].estimate(embedding),
		Potassium:   featureEstimators[2].estimate(embedding),
		Temperature: featureEstimators[3].estimate(embedding),
		Humidity:    featureEstimators[4].estimate(embedding),
		PH:          featureEstimators[5].estimate(embedding),
		Rainfall:    featureEstimators[6].estimate(embedding),
	}
}
