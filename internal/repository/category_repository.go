package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// CategoryRepository manages category reference data.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Category, error)
	ListAll(ctx context.Context) ([]CategoryWithDepartment, error)
	DeleteByID(ctx context.Context, id int64) error
}

// CategoryWithDepartment pairs a category with its department name for the
// admin listing.
type CategoryWithDepartment struct {
	domain.Category
	DepartmentName string
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository builds the repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, department_id, urgency)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		category.Name,
		category.DepartmentID,
		category.Urgency,
	).Scan(&category.ID, &category.CreatedAt)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	const query = `SELECT id, name, department_id, urgency, created_at FROM categories WHERE id=$1`
	var category domain.Category
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.DepartmentID,
		&category.Urgency,
		&category.CreatedAt,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return &category, nil
}

func (r *categoryRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Category, error) {
	const query = `
        SELECT id, name, department_id, urgency, created_at
        FROM categories WHERE department_id=$1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.DepartmentID, &category.Urgency, &category.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *categoryRepository) ListAll(ctx context.Context) ([]CategoryWithDepartment, error) {
	const query = `
        SELECT c.id, c.name, c.department_id, c.urgency, c.created_at, d.name
        FROM categories c JOIN departments d ON c.department_id = d.id
        ORDER BY d.name, c.name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CategoryWithDepartment
	for rows.Next() {
		var row CategoryWithDepartment
		if err := rows.Scan(&row.ID, &row.Name, &row.DepartmentID, &row.Urgency, &row.CreatedAt, &row.DepartmentName); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *categoryRepository) DeleteByID(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "categories", id)
}
