package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// WorkerRepository manages field workers.
type WorkerRepository interface {
	Create(ctx context.Context, worker *domain.Worker) error
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Worker, error)
	DeleteByID(ctx context.Context, id int64) error
}

type workerRepository struct {
	pool *pgxpool.Pool
}

// NewWorkerRepository builds the repository.
func NewWorkerRepository(pool *pgxpool.Pool) WorkerRepository {
	return &workerRepository{pool: pool}
}

func (r *workerRepository) Create(ctx context.Context, worker *domain.Worker) error {
	const query = `
        INSERT INTO workers (name, email, phone_number, department_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		worker.Name,
		worker.Email,
		worker.PhoneNumber,
		worker.DepartmentID,
	).Scan(&worker.ID, &worker.CreatedAt)
}

func (r *workerRepository) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	const query = `SELECT id, name, email, phone_number, department_id, created_at FROM workers WHERE id=$1`
	var worker domain.Worker
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&worker.ID,
		&worker.Name,
		&worker.Email,
		&worker.PhoneNumber,
		&worker.DepartmentID,
		&worker.CreatedAt,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return &worker, nil
}

func (r *workerRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Worker, error) {
	const query = `
        SELECT id, name, email, phone_number, department_id, created_at
        FROM workers WHERE department_id=$1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Worker
	for rows.Next() {
		var worker domain.Worker
		if err := rows.Scan(&worker.ID, &worker.Name, &worker.Email, &worker.PhoneNumber, &worker.DepartmentID, &worker.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, worker)
	}
	return result, rows.Err()
}

func (r *workerRepository) DeleteByID(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "workers", id)
}
