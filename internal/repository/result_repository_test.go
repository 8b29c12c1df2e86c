package repository

import (
	"testing"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

func sampleResult(id, timestamp, crop string) *models.SavedResult {
	return &models.SavedResult{
		ID:              id,
		Timestamp:       timestamp,
		LocationName:    "9.0320, 38.7469",
		Latitude:        9.0320,
		Longitude:       38.7469,
		RecommendedCrop: crop,
		ConfidenceScore: 0.87,
		Features: models.FeatureVector{
			Nitrogen: 90, Phosphorus: 42, Potassium: 43,
			Temperature: 20.9, Humidity: 82, PH: 6.5, Rainfall: 202.9,
		},
		Alternatives: []models.AlternativeCrop{
			{Crop: "Jute", Score: 9.5},
			{Crop: "Maize", Score: 2.1},
		},
		DataSource:       "synthetic",
		AdviceEnglish:    "english advice",
		AdviceAmharic:    "amharic advice",
		AdviceAfaanOromo: "oromo advice",
		ProcessingTimeMs: 12.5,
	}
}

func TestResultSaveAndGetByID(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))

	saved := sampleResult("result_1", "2026-08-24T10:00:00Z", "Rice")
	if err := repo.Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.GetByID("result_1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() = nil, want result")
	}

	if got.RecommendedCrop != "Rice" {
		t.Errorf("RecommendedCrop = %q, want Rice", got.RecommendedCrop)
	}
	if got.Features != saved.Features {
		t.Errorf("Features = %+v, want %+v", got.Features, saved.Features)
	}
	if len(got.Alternatives) != 2 || got.Alternatives[0].Crop != "Jute" {
		t.Errorf("Alternatives = %v, want decoded [Jute Maize]", got.Alternatives)
	}
	if got.AdviceAmharic != "amharic advice" {
		t.Errorf("AdviceAmharic = %q", got.AdviceAmharic)
	}
}

func TestResultGetByIDMissing(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))

	got, err := repo.GetByID("nope")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetByID(missing) = %+v, want nil", got)
	}
}

func TestResultGetAllNewestFirst(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))

	for _, r := range []*models.SavedResult{
		sampleResult("result_old", "2026-08-23T10:00:00Z", "Rice"),
		sampleResult("result_new", "2026-08-24T10:00:00Z", "Maize"),
	} {
		if err := repo.Save(r); err != nil {
			t.Fatalf("Save(%s) error = %v", r.ID, err)
		}
	}

	results, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != "result_new" || results[1].ID != "result_old" {
		t.Errorf("GetAll() order = %s, %s, want newest first", results[0].ID, results[1].ID)
	}
}

func TestResultDeleteAndSummary(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))

	repo.Save(sampleResult("r1", "2026-08-24T10:00:00Z", "Rice"))
	repo.Save(sampleResult("r2", "2026-08-24T11:00:00Z", "Rice"))
	repo.Save(sampleResult("r3", "2026-08-24T12:00:00Z", "Maize"))

	summary, err := repo.Summary()
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.TotalResults != 3 || summary.UniqueCrops != 2 {
		t.Errorf("Summary() = %+v, want 3 results over 2 crops", summary)
	}

	deleted, err := repo.Delete("r2")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted {
		t.Error("Delete() = false, want true")
	}

	again, err := repo.Delete("r2")
	if err != nil {
		t.Fatalf("Delete() repeat error = %v", err)
	}
	if again {
		t.Error("Delete() repeat = true, want false")
	}

	summary, err = repo.Summary()
	if err != nil {
		t.Fatalf("Summary() after delete error = %v", err)
	}
	if summary.TotalResults != 2 {
		t.Errorf("TotalResults after delete = %d, want 2", summary.TotalResults)
	}
}
