package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

// FarmerRepository handles database operations for farmer contacts
type FarmerRepository struct {
	db *sql.DB
}

// NewFarmerRepository creates a new farmer repository
func NewFarmerRepository(db *sql.DB) *FarmerRepository {
	return &FarmerRepository{db: db}
}

// Create inserts a new farmer contact. Returns false without error when the
// (location, phone) pair already exists.
func (r *FarmerRepository) Create(farmer *models.FarmerContact) (bool, error) {
	query := `INSERT INTO farmers (name, phone_number, location, latitude, longitude, preferred_language)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		farmer.Name, farmer.PhoneNumber, farmer.Location,
		farmer.Latitude, farmer.Longitude, farmer.PreferredLanguage,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert farmer: %w", err)
	}

	farmer.ID, _ = result.LastInsertId()
	return true, nil
}

// Delete removes a farmer by location and phone number. Returns false when
// no matching farmer exists.
func (r *FarmerRepository) Delete(location, phoneNumber string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM farmers WHERE location = ? AND phone_number = ?", location, phoneNumber)
	if err != nil {
		return false, fmt.Errorf("failed to delete farmer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

// GetByLocation retrieves all farmers registered at a location
func (r *FarmerRepository) GetByLocation(location string) ([]models.FarmerContact, error) {
	return r.query("SELECT id, name, phone_number, location, latitude, longitude, preferred_language, created_at FROM farmers WHERE location = ? ORDER BY name", location)
}

// GetAll retrieves all farmers grouped by location
func (r *FarmerRepository) GetAll() (map[string][]models.FarmerContact, error) {
	farmers, err := r.query("SELECT id, name, phone_number, location, latitude, longitude, preferred_language, created_at FROM farmers ORDER BY location, name")
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.FarmerContact)
	for _, f := range farmers {
		grouped[f.Location] = append(grouped[f.Location], f)
	}
	return grouped, nil
}

// List retrieves every farmer contact
func (r *FarmerRepository) List() ([]models.FarmerContact, error) {
	return r.query("SELECT id, name, phone_number, location, latitude, longitude, preferred_language, created_at FROM farmers ORDER BY location, name")
}

// GetLocations retrieves the distinct farmer locations
func (r *FarmerRepository) GetLocations() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT location FROM farmers ORDER BY location")
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (r *FarmerRepository) query(query string, args ...interface{}) ([]models.FarmerContact, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query farmers: %w", err)
	}
	defer rows.Close()

	var farmers []models.FarmerContact
	for rows.Next() {
		var f models.FarmerContact
		err := rows.Scan(
			&f.ID, &f.Name, &f.PhoneNumber, &f.Location,
			&f.Latitude, &f.Longitude, &f.PreferredLanguage, &f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan farmer: %w", err)
		}
		farmers = append(farmers, f)
	}
	return farmers, rows.Err()
}
