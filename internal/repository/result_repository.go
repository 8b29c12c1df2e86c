package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

// ResultRepository handles database operations for saved analysis results
type ResultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

const resultColumns = `id, timestamp, location_name, latitude, longitude,
	recommended_crop, confidence_score, features, alternatives, data_source,
	advice_english, advice_amharic, advice_afaan_oromo, processing_time_ms`

// Save inserts a saved analysis result
func (r *ResultRepository) Save(result *models.SavedResult) error {
	features, err := json.Marshal(result.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}
	alternatives, err := json.Marshal(result.Alternatives)
	if err != nil {
		return fmt.Errorf("failed to encode alternatives: %w", err)
	}

	query := `INSERT INTO saved_results (` + resultColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.Exec(query,
		result.ID, result.Timestamp, result.LocationName,
		result.Latitude, result.Longitude,
		result.RecommendedCrop, result.ConfidenceScore,
		string(features), string(alternatives), result.DataSource,
		result.AdviceEnglish, result.AdviceAmharic, result.AdviceAfaanOromo,
		result.ProcessingTimeMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert saved result: %w", err)
	}
	return nil
}

// GetAll retrieves all saved results, newest first
func (r *ResultRepository) GetAll() ([]models.SavedResult, error) {
	rows, err := r.db.Query(`SELECT ` + resultColumns + ` FROM saved_results ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved results: %w", err)
	}
	defer rows.Close()

	var results []models.SavedResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// GetByID retrieves a single saved result, or nil when not found
func (r *ResultRepository) GetByID(id string) (*models.SavedResult, error) {
	row := r.db.QueryRow(`SELECT `+resultColumns+` FROM saved_results WHERE id = ?`, id)
	result, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a saved result. Returns false when no matching result
// exists.
func (r *ResultRepository) Delete(id string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM saved_results WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete saved result: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

// Summary aggregates counts for the admin panel
func (r *ResultRepository) Summary() (models.ResultsSummary, error) {
	var summary models.ResultsSummary
	err := r.db.QueryRow(
		"SELECT COUNT(*), COUNT(DISTINCT recommended_crop) FROM saved_results",
	).Scan(&summary.TotalResults, &summary.UniqueCrops)
	if err != nil {
		return models.ResultsSummary{}, fmt.Errorf("failed to summarize saved results: %w", err)
	}
	return summary, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResult(row rowScanner) (models.SavedResult, error) {
	var (
		result                  models.SavedResult
		features, alternatives  string
		english, amharic, oromo sql.NullString
	)
	err := row.Scan(
		&result.ID, &result.Timestamp, &result.LocationName,
		&result.Latitude, &result.Longitude,
		&result.RecommendedCrop, &result.ConfidenceScore,
		&features, &alternatives, &result.DataSource,
		&english, &amharic, &oromo,
		&result.ProcessingTimeMs,
	)
	if err == sql.ErrNoRows {
		return models.SavedResult{}, err
	}
	if err != nil {
		return models.SavedResult{}, fmt.Errorf("failed to scan saved result: %w", err)
	}

	if err := json.Unmarshal([]byte(features), &result.Features); err != nil {
		return models.SavedResult{}, fmt.Errorf("failed to decode features: %w", err)
	}
	if err := json.Unmarshal([]byte(alternatives), &result.Alternatives); err != nil {
		return models.SavedResult{}, fmt.Errorf("failed to decode alternatives: %w", err)
	}
	result.AdviceEnglish = english.String
	result.AdviceAmharic = amharic.String
	result.AdviceAfaanOromo = oromo.String

	return result, nil
}
