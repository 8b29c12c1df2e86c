package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/samikd35/RebootEarth-Dana/internal/models"
	"github.com/samikd35/RebootEarth-Dana/internal/service"
	"github.com/samikd35/RebootEarth-Dana/pkg/response"
)

// FarmerHandler handles HTTP requests for farmer contacts
type FarmerHandler struct {
	service *service.FarmerService
}

// NewFarmerHandler creates a new farmer handler
func NewFarmerHandler(service *service.FarmerService) *FarmerHandler {
	return &FarmerHandler{service: service}
}

type addFarmerBody struct {
	Name              string  `json:"name" binding:"required"`
	PhoneNumber       string  `json:"phone_number" binding:"required"`
	Location          string  `json:"location" binding:"required"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	PreferredLanguage string  `json:"preferred_language"`
}

// AddFarmer handles POST /api/v1/admin/farmers
func (h *FarmerHandler) AddFarmer(c *gin.Context) {
	var body addFarmerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	farmer := models.FarmerContact{
		Name:              body.Name,
		PhoneNumber:       body.PhoneNumber,
		Location:          body.Location,
		Latitude:          body.Latitude,
		Longitude:         body.Longitude,
		PreferredLanguage: body.PreferredLanguage,
	}

	created, err := h.service.AddFarmer(&farmer)
	if err != nil {
		response.BadRequest(c, "Failed to add farmer", err)
		return
	}
	if !created {
		response.BadRequest(c, "Farmer already exists", nil)
		return
	}

	response.Success(c, farmer)
}

type removeFarmerBody struct {
	Location    string `json:"location" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// RemoveFarmer handles POST /api/v1/admin/farmers/remove
func (h *FarmerHandler) RemoveFarmer(c *gin.Context) {
	var body removeFarmerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	removed, err := h.service.RemoveFarmer(body.Location, body.PhoneNumber)
	if err != nil {
		response.InternalError(c, "Failed to remove farmer", err)
		return
	}
	if !removed {
		response.NotFound(c, "Farmer not found")
		return
	}

	response.Success(c, gin.H{"removed": true})
}

// GetFarmersByLocation handles GET /api/v1/admin/farmers/:location
func (h *FarmerHandler) GetFarmersByLocation(c *gin.Context) {
	location := c.Param("location")

	farmers, err := h.service.GetFarmersByLocation(location)
	if err != nil {
		response.InternalError(c, "Failed to get farmers", err)
		return
	}

	response.Success(c, gin.H{
		"location": location,
		"farmers":  farmers,
	})
}

// GetAllFarmers handles GET /api/v1/admin/farmers
func (h *FarmerHandler) GetAllFarmers(c *gin.Context) {
	grouped, err := h.service.GetAllFarmers()
	if err != nil {
		response.InternalError(c, "Failed to get farmers", err)
		return
	}

	total := 0
	for _, farmers := range grouped {
		total += len(farmers)
	}

	response.Success(c, gin.H{
		"farmersByLocation": grouped,
		"totalFarmers":      total,
		"totalLocations":    len(grouped),
	})
}

type nearQuery struct {
	Latitude     float64 `form:"latitude" binding:"required"`
	Longitude    float64 `form:"longitude" binding:"required"`
	RadiusMeters float64 `form:"radius_meters"`
}

// GetFarmersNear handles GET /api/v1/admin/farmers-near
func (h *FarmerHandler) GetFarmersNear(c *gin.Context) {
	var q nearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query", err)
		return
	}
	if q.RadiusMeters == 0 {
		q.RadiusMeters = 10000
	}

	near, err := h.service.GetFarmersNear(models.Coordinate{Latitude: q.Latitude, Longitude: q.Longitude}, q.RadiusMeters)
	if err != nil {
		response.BadRequest(c, "Failed to find nearby farmers", err)
		return
	}

	response.Success(c, gin.H{
		"center":       gin.H{"latitude": q.Latitude, "longitude": q.Longitude},
		"radiusMeters": q.RadiusMeters,
		"farmers":      near,
	})
}

// GetLocations handles GET /api/v1/admin/locations
func (h *FarmerHandler) GetLocations(c *gin.Context) {
	locations, err := h.service.GetLocations()
	if err != nil {
		response.InternalError(c, "Failed to get locations", err)
		return
	}
	response.Success(c, gin.H{"locations": locations})
}
