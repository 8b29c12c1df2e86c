package service

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
	"github.com/samikd35/RebootEarth-Dana/internal/repository"
)

// ResultService handles business logic for saved analysis results
type ResultService struct {
	resultRepo *repository.ResultRepository
	advice     *AdviceService
	sequence   atomic.Int64
}

// NewResultService creates a new result service
func NewResultService(resultRepo *repository.ResultRepository, advice *AdviceService) *ResultService {
	return &ResultService{resultRepo: resultRepo, advice: advice}
}

// SaveFromResponse persists a recommendation together with generated advice
// in all supported languages, returning the saved result id.
func (s *ResultService) SaveFromResponse(response *models.RecommendationResponse, locationName string) (string, error) {
	if locationName == "" {
		locationName = fmt.Sprintf("%.4f, %.4f", response.Coordinate.Latitude, response.Coordinate.Longitude)
	}

	now := time.Now()
	result := &models.SavedResult{
		ID:               fmt.Sprintf("result_%s_%03d", now.Format("20060102_150405"), s.sequence.Add(1)%1000),
		Timestamp:        now.Format(time.RFC3339),
		LocationName:     locationName,
		Latitude:         response.Coordinate.Latitude,
		Longitude:        response.Coordinate.Longitude,
		RecommendedCrop:  response.Classification.Crop,
		ConfidenceScore:  response.Classification.Confidence,
		Features:         response.Features,
		Alternatives:     response.Classification.Alternatives,
		DataSource:       response.Resolver.DataSource,
		AdviceEnglish:    s.advice.Generate(response, "english"),
		AdviceAmharic:    s.advice.Generate(response, "amharic"),
		AdviceAfaanOromo: s.advice.Generate(response, "afaan_oromo"),
		ProcessingTimeMs: response.ProcessingTimeMs,
	}

	if err := s.resultRepo.Save(result); err != nil {
		return "", err
	}
	return result.ID, nil
}

// GetAll retrieves all saved results, newest first
func (s *ResultService) GetAll() ([]models.SavedResult, error) {
	return s.resultRepo.GetAll()
}

// GetByID retrieves a saved result, or nil when not found
func (s *ResultService) GetByID(id string) (*models.SavedResult, error) {
	return s.resultRepo.GetByID(id)
}

// Delete removes a saved result. Returns false when it does not exist.
func (s *ResultService) Delete(id string) (bool, error) {
	return s.resultRepo.Delete(id)
}

// Summary aggregates saved results for the admin panel
func (s *ResultService) Summary() (models.ResultsSummary, error) {
	return s.resultRepo.Summary()
}

// AdviceFor returns the stored advice text for a language, falling back to
// English when the requested language has no text.
func AdviceFor(result *models.SavedResult, language string) string {
	switch language {
	case "amharic":
		if result.AdviceAmharic != "" {
			return result.AdviceAmharic
		}
	case "afaan_oromo":
		if result.AdviceAfaanOromo != "" {
			return result.AdviceAfaanOromo
		}
	case "english":
		return result.AdviceEnglish
	}
	return result.AdviceEnglish
}
