package service

import (
	"fmt"
	"sort"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
	"github.com/samikd35/RebootEarth-Dana/internal/repository"
	"github.com/samikd35/RebootEarth-Dana/internal/spatial"
)

var supportedLanguages = map[string]bool{
	"english":     true,
	"amharic":     true,
	"afaan_oromo": true,
}

// FarmerService handles business logic for farmer contacts
type FarmerService struct {
	farmerRepo *repository.FarmerRepository
}

// NewFarmerService creates a new farmer service
func NewFarmerService(farmerRepo *repository.FarmerRepository) *FarmerService {
	return &FarmerService{farmerRepo: farmerRepo}
}

// AddFarmer validates and registers a farmer contact. Returns false when a
// farmer with the same location and phone already exists.
func (s *FarmerService) AddFarmer(farmer *models.FarmerContact) (bool, error) {
	if farmer.Name == "" {
		return false, fmt.Errorf("farmer name is required")
	}
	if farmer.PhoneNumber == "" {
		return false, fmt.Errorf("phone number is required")
	}
	if farmer.Location == "" {
		return false, fmt.Errorf("location is required")
	}
	if err := (models.Coordinate{Latitude: farmer.Latitude, Longitude: farmer.Longitude}).Validate(); err != nil {
		return false, err
	}
	if farmer.PreferredLanguage == "" {
		farmer.PreferredLanguage = "english"
	}
	if !supportedLanguages[farmer.PreferredLanguage] {
		return false, fmt.Errorf("unsupported language: %s", farmer.PreferredLanguage)
	}

	farmer.PhoneNumber = FormatEthiopianPhone(farmer.PhoneNumber)
	return s.farmerRepo.Create(farmer)
}

// RemoveFarmer deletes a farmer by location and phone number
func (s *FarmerService) RemoveFarmer(location, phoneNumber string) (bool, error) {
	if location == "" || phoneNumber == "" {
		return false, fmt.Errorf("location and phone number are required")
	}
	return s.farmerRepo.Delete(location, FormatEthiopianPhone(phoneNumber))
}

// GetFarmersByLocation retrieves the farmers registered at a location
func (s *FarmerService) GetFarmersByLocation(location string) ([]models.FarmerContact, error) {
	return s.farmerRepo.GetByLocation(location)
}

// FarmerDistance pairs a farmer with the great-circle distance to a query
// point.
type FarmerDistance struct {
	Farmer         models.FarmerContact `json:"farmer"`
	DistanceMeters float64              `json:"distanceMeters"`
}

// GetFarmersNear returns the farmers registered within radiusMeters of a
// point, nearest first. Used to target advice delivery around an analyzed
// field.
func (s *FarmerService) GetFarmersNear(coord models.Coordinate, radiusMeters float64) ([]FarmerDistance, error) {
	if err := coord.Validate(); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %v", radiusMeters)
	}

	farmers, err := s.farmerRepo.List()
	if err != nil {
		return nil, err
	}

	var near []FarmerDistance
	for _, f := range farmers {
		d := spatial.HaversineDistance(coord.Latitude, coord.Longitude, f.Latitude, f.Longitude)
		if d <= radiusMeters {
			near = append(near, FarmerDistance{Farmer: f, DistanceMeters: d})
		}
	}
	sort.Slice(near, func(i, j int) bool {
		return near[i].DistanceMeters < near[j].DistanceMeters
	})
	return near, nil
}

// GetAllFarmers retrieves all farmers grouped by location
func (s *FarmerService) GetAllFarmers() (map[string][]models.FarmerContact, error) {
	return s.farmerRepo.GetAll()
}

// GetLocations retrieves the distinct farmer locations
func (s *FarmerService) GetLocations() ([]string, error) {
	return s.farmerRepo.GetLocations()
}
