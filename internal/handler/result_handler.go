package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/samikd35/RebootEarth-Dana/internal/service"
	"github.com/samikd35/RebootEarth-Dana/pkg/response"
)

// ResultHandler handles HTTP requests for saved analysis results
type ResultHandler struct {
	results *service.ResultService
	farmers *service.FarmerService
	sms     *service.SMSService
}

// NewResultHandler creates a new result handler
func NewResultHandler(results *service.ResultService, farmers *service.FarmerService, sms *service.SMSService) *ResultHandler {
	return &ResultHandler{results: results, farmers: farmers, sms: sms}
}

// GetResults handles GET /api/v1/admin/results
func (h *ResultHandler) GetResults(c *gin.Context) {
	results, err := h.results.GetAll()
	if err != nil {
		response.InternalError(c, "Failed to get saved results", err)
		return
	}

	summary, err := h.results.Summary()
	if err != nil {
		response.InternalError(c, "Failed to summarize saved results", err)
		return
	}

	response.Success(c, gin.H{
		"results": results,
		"summary": summary,
	})
}

// GetResultByID handles GET /api/v1/admin/results/:id
func (h *ResultHandler) GetResultByID(c *gin.Context) {
	result, err := h.results.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get saved result", err)
		return
	}
	if result == nil {
		response.NotFound(c, "Result not found")
		return
	}
	response.Success(c, result)
}

// DeleteResult handles DELETE /api/v1/admin/results/:id
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	deleted, err := h.results.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to delete saved result", err)
		return
	}
	if !deleted {
		response.NotFound(c, "Result not found")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

type sendAdviceBody struct {
	ResultID       string `json:"result_id" binding:"required"`
	FarmerLocation string `json:"farmer_location" binding:"required"`
	Language       string `json:"language"`
}

// SendResultSMS handles POST /api/v1/admin/results/send-sms. It delivers a
// saved result's advice to every farmer registered at the location; the
// "auto" language selects each farmer's preferred language.
func (h *ResultHandler) SendResultSMS(c *gin.Context) {
	var body sendAdviceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}
	if body.Language == "" {
		body.Language = "auto"
	}

	result, err := h.results.GetByID(body.ResultID)
	if err != nil {
		response.InternalError(c, "Failed to get saved result", err)
		return
	}
	if result == nil {
		response.NotFound(c, "Saved result not found")
		return
	}

	farmers, err := h.farmers.GetFarmersByLocation(body.FarmerLocation)
	if err != nil {
		response.InternalError(c, "Failed to get farmers", err)
		return
	}
	if len(farmers) == 0 {
		response.NotFound(c, "No farmers found for location: "+body.FarmerLocation)
		return
	}

	sent := 0
	failed := 0
	deliveries := make([]service.SMSResult, 0, len(farmers))
	for _, farmer := range farmers {
		language := body.Language
		if language == "auto" {
			language = farmer.PreferredLanguage
		}
		advice := service.AdviceFor(result, language)

		sid, err := h.sms.SendAdvice(farmer.PhoneNumber, body.FarmerLocation, language, advice)
		delivery := service.SMSResult{Farmer: farmer.Name, Phone: farmer.PhoneNumber}
		if err != nil {
			failed++
			delivery.Status = "failed"
			delivery.Error = err.Error()
		} else {
			sent++
			delivery.Status = "sent"
			delivery.SID = sid
		}
		deliveries = append(deliveries, delivery)
	}

	response.Success(c, gin.H{
		"sentCount":    sent,
		"failedCount":  failed,
		"totalFarmers": len(farmers),
		"results":      deliveries,
		"savedResult": gin.H{
			"locationName": result.LocationName,
			"crop":         result.RecommendedCrop,
			"confidence":   result.ConfidenceScore,
		},
	})
}
