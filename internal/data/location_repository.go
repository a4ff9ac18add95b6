package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// LocationRepository handles database operations for locations.
type LocationRepository struct {
	DB *sqlx.DB
}

// NewLocationRepository creates a new LocationRepository.
func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{DB: db}
}

// GetByID finds a location by its ID.
func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*Location, error) {
	var location Location
	query := `SELECT id, name, is_published, created_at FROM locations WHERE id = ?`
	if err := r.DB.GetContext(ctx, &location, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("location %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get location by id: %w", err)
	}
	return &location, nil
}

// ListPublished retrieves all published locations ordered by name, for the
// post form's location picker.
func (r *LocationRepository) ListPublished(ctx context.Context) ([]*Location, error) {
	var locations []*Location
	query := `SELECT id, name, is_published, created_at FROM locations WHERE is_published = 1 ORDER BY name`
	if err := r.DB.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("failed to list published locations: %w", err)
	}
	return locations, nil
}

// Save creates a new location and returns its ID.
func (r *LocationRepository) Save(ctx context.Context, location *Location) (int64, error) {
	query := `INSERT INTO locations (name, is_published) VALUES (:name, :is_published)`
	res, err := r.DB.NamedExecContext(ctx, query, location)
	if err != nil {
		return 0, fmt.Errorf("failed to save location: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted location id: %w", err)
	}
	location.ID = id
	return id, nil
}
