package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// AuthorityRepository manages approving authority accounts.
type AuthorityRepository interface {
	Create(ctx context.Context, authority *domain.ApprovingAuthority) error
	GetByID(ctx context.Context, id int64) (*domain.ApprovingAuthority, error)
	GetByEmail(ctx context.Context, email string) (*domain.ApprovingAuthority, error)
	ListAll(ctx context.Context) ([]domain.ApprovingAuthority, error)
	DeleteByID(ctx context.Context, id int64) error
}

type authorityRepository struct {
	pool *pgxpool.Pool
}

// NewAuthorityRepository builds the repository.
func NewAuthorityRepository(pool *pgxpool.Pool) AuthorityRepository {
	return &authorityRepository{pool: pool}
}

const authorityColumns = `id, name, email, password_hash, mobile_number, created_at`

func (r *authorityRepository) Create(ctx context.Context, authority *domain.ApprovingAuthority) error {
	const query = `
        INSERT INTO approving_authorities (name, email, password_hash, mobile_number)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		authority.Name,
		authority.Email,
		authority.PasswordHash,
		authority.MobileNumber,
	).Scan(&authority.ID, &authority.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *authorityRepository) GetByID(ctx context.Context, id int64) (*domain.ApprovingAuthority, error) {
	return r.fetchSingle(ctx, `SELECT `+authorityColumns+` FROM approving_authorities WHERE id=$1`, id)
}

func (r *authorityRepository) GetByEmail(ctx context.Context, email string) (*domain.ApprovingAuthority, error) {
	return r.fetchSingle(ctx, `SELECT `+authorityColumns+` FROM approving_authorities WHERE email=$1`, email)
}

func (r *authorityRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.ApprovingAuthority, error) {
	var authority domain.ApprovingAuthority
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&authority.ID,
		&authority.Name,
		&authority.Email,
		&authority.PasswordHash,
		&authority.MobileNumber,
		&authority.CreatedAt,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return &authority, nil
}

func (r *authorityRepository) ListAll(ctx context.Context) ([]domain.ApprovingAuthority, error) {
	query := `SELECT ` + authorityColumns + ` FROM approving_authorities ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ApprovingAuthority
	for rows.Next() {
		var authority domain.ApprovingAuthority
		if err := rows.Scan(
			&authority.ID,
			&authority.Name,
			&authority.Email,
			&authority.PasswordHash,
			&authority.MobileNumber,
			&authority.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, authority)
	}
	return result, rows.Err()
}

func (r *authorityRepository) DeleteByID(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, "approving_authorities", id)
}
