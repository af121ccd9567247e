package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// LocationRepository manages location reference data.
type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) error
	List(ctx context.Context) ([]domain.Location, error)
	DeleteByID(ctx context.Context, id int64) error
}

type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository builds the repository.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

func (r *locationRepository) Create(ctx context.Context, location *domain.Location) error {
	const query = `INSERT INTO locations (name) VALUES ($1) RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, location.Name).Scan(&location.ID, &location.CreatedAt)
}

func (r *locationRepository) List(ctx context.Context) ([]domain.Location, error) {
	const query = `SELECT id, name, created_at FROM locations ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Location
	for rows.Next() {
		var location domain.Location
		if err := rows.Scan(&location.ID, &location.Name, &location.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, location)
	}
	return result, rows.Err()
}

func (r *locationRepository) DeleteByID(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "locations", id)
}
