package resolver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

func TestEstimateClamping(t *testing.T) {
	flat := make([]float64, EmbeddingDims)

	// A zero embedding has zero mean and spread, so every estimate reduces
	// to its offset term.
	for i, e := range featureEstimators {
		got := e.estimate(flat)
		if got != e.Offset {
			t.Errorf("estimator %d on zero embedding = %v, want offset %v", i, got, e.Offset)
		}
	}

	high := make([]float64, EmbeddingDims)
	low := make([]float64, EmbeddingDims)
	for i := range high {
		high[i] = 10
		low[i] = -10
	}
	for i, e := range featureEstimators {
		if got := e.estimate(high); got != e.Max {
			t.Errorf("estimator %d on high embedding = %v, want clamp to %v", i, got, e.Max)
		}
		if got := e.estimate(low); got != e.Min {
			t.Errorf("estimator %d on low embedding = %v, want clamp to %v", i, got, e.Min)
		}
	}
}

func TestReduceEmbeddingWithinRanges(t *testing.T) {
	embedding := make([]float64, EmbeddingDims)
	for i := range embedding {
		embedding[i] = float64(i%7)/100.0 - 0.03
	}

	features := reduceEmbedding(embedding)
	for i, v := range features.Values() {
		name := models.FeatureNames[i]
		bounds := models.FeatureRanges[name]
		if v < bounds.Min || v > bounds.Max {
			t.Errorf("%s = %v, outside [%v, %v]", name, v, bounds.Min, bounds.Max)
		}
	}
}

func TestFetchEmbedding(t *testing.T) {
	embedding := make([]float64, EmbeddingDims)
	for i := range embedding {
		embedding[i] = 0.01 * float64(i)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings/annual" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("year") != "2024" {
			t.Errorf("year query = %q, want 2024", r.URL.Query().Get("year"))
		}
		json.NewEncoder(w).Encode(embeddingResponse{Embedding: embedding})
	}))
	defer server.Close()

	client := NewAlphaEarthClient(server.URL, time.Second)
	got, err := client.FetchEmbedding(context.Background(), models.Coordinate{Latitude: 9.03, Longitude: 38.74}, 2024, 1000)
	if err != nil {
		t.Fatalf("FetchEmbedding() error = %v", err)
	}
	if len(got) != EmbeddingDims {
		t.Fatalf("embedding length = %d, want %d", len(got), EmbeddingDims)
	}
}

func TestFetchEmbeddingNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewAlphaEarthClient(server.URL, time.Second)
	if _, err := client.FetchEmbedding(context.Background(), models.Coordinate{}, 2024, 1000); err == nil {
		t.Error("FetchEmbedding() on 404 = nil error, want error")
	}
}

func TestFetchEmbeddingWrongDimensions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingResponse{Embedding: []float64{1, 2, 3}})
	}))
	defer server.Close()

	client := NewAlphaEarthClient(server.URL, time.Second)
	if _, err := client.FetchEmbedding(context.Background(), models.Coordinate{}, 2024, 1000); err == nil {
		t.Error("FetchEmbedding() with 3 dimensions = nil error, want error")
	}
}

func TestResolverFallsBackToSynthesis(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	server.Close() // unreachable provider

	r := New(NewRealSource(NewAlphaEarthClient(server.URL, 100*time.Millisecond)))
	coord := models.Coordinate{Latitude: 9.0320, Longitude: 38.7469}

	features, meta := r.Resolve(context.Background(), coord, 2024, 1000)
	if meta.DataSource != "synthetic" {
		t.Errorf("DataSource = %q, want synthetic fallback", meta.DataSource)
	}
	if meta.Zone == "" {
		t.Error("fallback metadata missing zone")
	}

	want, _ := synthesizeFeatures(coord.Latitude, coord.Longitude)
	if features != want {
		t.Errorf("fallback features = %+v, want synthesized %+v", features, want)
	}
}

func TestSyntheticSourceMetadata(t *testing.T) {
	r := New(nil)
	if r.Mode() != "synthetic" {
		t.Errorf("Mode() = %q, want synthetic", r.Mode())
	}

	_, meta := r.Resolve(context.Background(), models.Coordinate{Latitude: 9.0320, Longitude: 38.7469}, 2024, 1000)
	if meta.DataSource != "synthetic" {
		t.Errorf("DataSource = %q, want synthetic", meta.DataSource)
	}
	if meta.Geohash == "" {
		t.Error("metadata missing geohash")
	}
	if meta.RegionAreaM2 <= 0 {
		t.Errorf("RegionAreaM2 = %v, want > 0", meta.RegionAreaM2)
	}
}
