package service

import (
	"strings"
	"testing"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

func adviceResponse() *models.RecommendationResponse {
	return &models.RecommendationResponse{
		Coordinate: models.Coordinate{Latitude: 9.0320, Longitude: 38.7469},
		Features: models.FeatureVector{
			Nitrogen: 90, Phosphorus: 42, Potassium: 43,
			Temperature: 20.9, Humidity: 82, PH: 6.5, Rainfall: 202.9,
		},
		Classification: models.ClassificationResult{
			Crop:       "Rice",
			ClassID:    1,
			Confidence: 0.87,
			Alternatives: []models.AlternativeCrop{
				{Crop: "Jute", Score: 9.5},
				{Crop: "Maize", Score: 2.1},
			},
		},
	}
}

func TestGenerateEnglishAdvice(t *testing.T) {
	advice := NewAdviceService().Generate(adviceResponse(), "english")

	for _, want := range []string{"Rice", "87% confidence", "Soil:", "Jute"} {
		if !strings.Contains(advice, want) {
			t.Errorf("english advice missing %q:\n%s", want, advice)
		}
	}
	if !strings.Contains(advice, "standing water") {
		t.Errorf("english advice missing rice guidance:\n%s", advice)
	}
}

func TestGenerateTranslatedHeaders(t *testing.T) {
	svc := NewAdviceService()

	amharic := svc.Generate(adviceResponse(), "amharic")
	if !strings.Contains(amharic, "የእርሻ ምክር") {
		t.Errorf("amharic advice missing header:\n%s", amharic)
	}

	oromo := svc.Generate(adviceResponse(), "afaan_oromo")
	if !strings.Contains(oromo, "Gorsa Qonnaa") {
		t.Errorf("afaan oromo advice missing header:\n%s", oromo)
	}

	// Unknown languages fall back to English.
	unknown := svc.Generate(adviceResponse(), "klingon")
	if !strings.Contains(unknown, "Agricultural Advice") {
		t.Errorf("unknown language advice missing english header:\n%s", unknown)
	}
}

func TestGenerateUnknownCropGuidance(t *testing.T) {
	response := adviceResponse()
	response.Classification.Crop = "Unknown"

	advice := NewAdviceService().Generate(response, "english")
	if !strings.Contains(advice, "extension office") {
		t.Errorf("advice for unknown crop missing generic guidance:\n%s", advice)
	}
}

func TestAdviceForFallsBackToEnglish(t *testing.T) {
	result := &models.SavedResult{
		AdviceEnglish: "english text",
		AdviceAmharic: "amharic text",
	}

	if got := AdviceFor(result, "amharic"); got != "amharic text" {
		t.Errorf("AdviceFor(amharic) = %q", got)
	}
	if got := AdviceFor(result, "afaan_oromo"); got != "english text" {
		t.Errorf("AdviceFor(afaan_oromo) with empty text = %q, want english fallback", got)
	}
	if got := AdviceFor(result, "english"); got != "english text" {
		t.Errorf("AdviceFor(english) = %q", got)
	}
}
