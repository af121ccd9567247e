package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// OfficeBearerRepository manages office bearer accounts.
type OfficeBearerRepository interface {
	Create(ctx context.Context, bearer *domain.OfficeBearer) error
	GetByID(ctx context.Context, id int64) (*domain.OfficeBearer, error)
	GetByEmail(ctx context.Context, email string) (*domain.OfficeBearer, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]domain.OfficeBearer, error)
	ListAll(ctx context.Context) ([]domain.OfficeBearer, error)
	DeleteByID(ctx context.Context, id int64) error
}

type officeBearerRepository struct {
	pool *pgxpool.Pool
}

// NewOfficeBearerRepository builds the repository.
func NewOfficeBearerRepository(pool *pgxpool.Pool) OfficeBearerRepository {
	return &officeBearerRepository{pool: pool}
}

const bearerColumns = `id, name, email, password_hash, mobile_number, role, department_id, created_at`

func (r *officeBearerRepository) Create(ctx context.Context, bearer *domain.OfficeBearer) error {
	const query = `
        INSERT INTO office_bearers (name, email, password_hash, mobile_number, role, department_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		bearer.Name,
		bearer.Email,
		bearer.PasswordHash,
		bearer.MobileNumber,
		bearer.Role,
		nullableID(bearer.DepartmentID),
	).Scan(&bearer.ID, &bearer.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *officeBearerRepository) GetByID(ctx context.Context, id int64) (*domain.OfficeBearer, error) {
	return r.fetchSingle(ctx, `SELECT `+bearerColumns+` FROM office_bearers WHERE id=$1`, id)
}

func (r *officeBearerRepository) GetByEmail(ctx context.Context, email string) (*domain.OfficeBearer, error) {
	return r.fetchSingle(ctx, `SELECT `+bearerColumns+` FROM office_bearers WHERE email=$1`, email)
}

func (r *officeBearerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.OfficeBearer, error) {
	var (
		bearer domain.OfficeBearer
		dept   *int64
	)
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&bearer.ID,
		&bearer.Name,
		&bearer.Email,
		&bearer.PasswordHash,
		&bearer.MobileNumber,
		&bearer.Role,
		&dept,
		&bearer.CreatedAt,
	); err != nil {
		return nil, mapNoRows(err)
	}
	if dept != nil {
		bearer.DepartmentID = *dept
	}
	return &bearer, nil
}

func (r *officeBearerRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.OfficeBearer, error) {
	query := `SELECT ` + bearerColumns + ` FROM office_bearers WHERE department_id=$1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBearers(rows)
}

func (r *officeBearerRepository) ListAll(ctx context.Context) ([]domain.OfficeBearer, error) {
	query := `SELECT ` + bearerColumns + ` FROM office_bearers ORDER BY department_id, name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBearers(rows)
}

func scanBearers(rows pgx.Rows) ([]domain.OfficeBearer, error) {
	var result []domain.OfficeBearer
	for rows.Next() {
		var (
			bearer domain.OfficeBearer
			dept   *int64
		)
		if err := rows.Scan(
			&bearer.ID,
			&bearer.Name,
			&bearer.Email,
			&bearer.PasswordHash,
			&bearer.MobileNumber,
			&bearer.Role,
			&dept,
			&bearer.CreatedAt,
		); err != nil {
			return nil, err
		}
		if dept != nil {
			bearer.DepartmentID = *dept
		}
		result = append(result, bearer)
	}
	return result, rows.Err()
}

func (r *officeBearerRepository) DeleteByID(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "office_bearers", id)
}
