package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samikd35/RebootEarth-Dana/internal/models"
	"github.com/samikd35/RebootEarth-Dana/internal/service"
	"github.com/samikd35/RebootEarth-Dana/pkg/response"
)

// Request parsing defaults. The core never applies defaults itself; they
// belong to the HTTP boundary.
const (
	DefaultYear                = 2024
	DefaultBufferMeters        = 1000
	DefaultConfidenceThreshold = 0.7
)

// RecommendHandler handles HTTP requests for crop recommendations
type RecommendHandler struct {
	recommend *service.RecommendService
	batch     *service.BatchService
	results   *service.ResultService
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(recommend *service.RecommendService, batch *service.BatchService, results *service.ResultService) *RecommendHandler {
	return &RecommendHandler{recommend: recommend, batch: batch, results: results}
}

// recommendBody accepts both single and batch requests; a non-empty
// Locations field selects batch mode.
type recommendBody struct {
	Latitude            *float64        `json:"latitude"`
	Longitude           *float64        `json:"longitude"`
	Year                *int            `json:"year"`
	BufferMeters        *int            `json:"buffer_meters"`
	UseCache            *bool           `json:"use_cache"`
	ConfidenceThreshold *float64        `json:"confidence_threshold"`
	Locations           []locationEntry `json:"locations"`
}

type locationEntry struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Recommend handles POST /api/v1/recommend for both single and batch
// bodies
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var body recommendBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	if len(body.Locations) > 0 {
		h.handleBatch(c, body)
		return
	}
	h.handleSingle(c, body)
}

func (h *RecommendHandler) handleSingle(c *gin.Context, body recommendBody) {
	if body.Latitude == nil || body.Longitude == nil {
		response.BadRequest(c, "latitude and longitude are required", nil)
		return
	}

	req, err := buildRequest(*body.Latitude, *body.Longitude, body)
	if err != nil {
		response.BadRequest(c, "Invalid request", err)
		return
	}

	result, err := h.recommend.Recommend(c.Request.Context(), req)
	if err != nil {
		writeRecommendError(c, err)
		return
	}

	// Auto-save for later advice delivery; failure here never fails the
	// recommendation itself.
	savedID := ""
	if id, err := h.results.SaveFromResponse(&result, ""); err != nil {
		log.Printf("Failed to auto-save analysis result: %v", err)
	} else {
		savedID = id
	}

	response.Success(c, gin.H{
		"recommendation": result,
		"savedResultId":  savedID,
	})
}

func (h *RecommendHandler) handleBatch(c *gin.Context, body recommendBody) {
	requests := make([]models.RecommendationRequest, 0, len(body.Locations))
	for _, loc := range body.Locations {
		req, err := buildRequest(loc.Latitude, loc.Longitude, body)
		if err != nil {
			response.BadRequest(c, "Invalid request", err)
			return
		}
		requests = append(requests, req)
	}

	results, meta, err := h.batch.RecommendBatch(c.Request.Context(), requests)
	if err != nil {
		writeRecommendError(c, err)
		return
	}

	response.Success(c, gin.H{
		"batchResults":  results,
		"batchMetadata": meta,
	})
}

// Stats handles GET /api/v1/recommend/stats
func (h *RecommendHandler) Stats(c *gin.Context) {
	response.Success(c, h.recommend.Stats())
}

// Health handles GET /health
func (h *RecommendHandler) Health(c *gin.Context) {
	stats := h.recommend.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"featureSource": stats.FeatureSource,
		"cacheSize":     stats.CacheSize,
		"cacheCapacity": stats.CacheCapacity,
		"totalRequests": stats.TotalRequests,
		"cacheHits":     stats.CacheHits,
		"avgLatencyMs":  stats.AverageLatencyMs,
	})
}

// buildRequest applies HTTP-boundary defaults and constructs an immutable
// core request.
func buildRequest(lat, lon float64, body recommendBody) (models.RecommendationRequest, error) {
	req := models.RecommendationRequest{
		Coordinate:          models.Coordinate{Latitude: lat, Longitude: lon},
		Year:                DefaultYear,
		BufferMeters:        DefaultBufferMeters,
		UseCache:            true,
		ConfidenceThreshold: DefaultConfidenceThreshold,
	}
	if body.Year != nil {
		req.Year = *body.Year
	}
	if body.BufferMeters != nil {
		req.BufferMeters = *body.BufferMeters
	}
	if body.UseCache != nil {
		req.UseCache = *body.UseCache
	}
	if body.ConfidenceThreshold != nil {
		if *body.ConfidenceThreshold < 0 || *body.ConfidenceThreshold > 1 {
			return models.RecommendationRequest{}, &models.InputError{
				Field:  "confidence_threshold",
				Reason: "must be in [0, 1]",
			}
		}
		req.ConfidenceThreshold = *body.ConfidenceThreshold
	}
	return req, nil
}

// writeRecommendError maps the core error taxonomy onto HTTP statuses.
func writeRecommendError(c *gin.Context, err error) {
	var inputErr *models.InputError
	switch {
	case errors.As(err, &inputErr):
		response.BadRequest(c, "Invalid input", err)
	case errors.Is(err, models.ErrBatchSizeExceeded):
		response.BadRequest(c, "Batch rejected", err)
	default:
		response.InternalError(c, "Recommendation failed", err)
	}
}
