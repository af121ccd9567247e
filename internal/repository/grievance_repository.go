package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// GrievanceRepository encapsulates grievance persistence.
type GrievanceRepository interface {
	Create(ctx context.Context, grievance *domain.Grievance) error
	Update(ctx context.Context, grievance *domain.Grievance) error
	GetByTicketID(ctx context.Context, ticketID string) (*domain.Grievance, error)
	CountInMonth(ctx context.Context, year int, month time.Month) (int, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Grievance, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]domain.GrievanceDetails, error)
	ListAll(ctx context.Context) ([]domain.GrievanceDetails, error)
	ListByEscalationLevel(ctx context.Context, level int) ([]domain.GrievanceDetails, error)
	ListEscalationCandidates(ctx context.Context, now time.Time) ([]domain.Grievance, error)
	PromoteEscalation(ctx context.Context, ticketID string, fromLevel int) (bool, error)
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

type grievanceRepository struct {
	pool *pgxpool.Pool
}

// NewGrievanceRepository instantiates repository.
func NewGrievanceRepository(pool *pgxpool.Pool) GrievanceRepository {
	return &grievanceRepository{pool: pool}
}

const grievanceColumns = `id, ticket_id, title, description, location, department_id, category_id,
       urgency, attachment, complainant_name, email, mobile_number, status, escalation_level,
       assigned_worker_id, response_deadline, resolution_deadline, created_at, updated_at`

func (r *grievanceRepository) Create(ctx context.Context, grievance *domain.Grievance) error {
	const query = `
        INSERT INTO grievances (ticket_id, title, description, location, department_id, category_id,
            urgency, attachment, complainant_name, email, mobile_number, status, escalation_level,
            response_deadline, resolution_deadline)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		grievance.TicketID,
		grievance.Title,
		grievance.Description,
		grievance.Location,
		grievance.DepartmentID,
		grievance.CategoryID,
		grievance.Urgency,
		grievance.Attachment,
		grievance.ComplainantName,
		grievance.Email,
		grievance.MobileNumber,
		grievance.Status,
		grievance.EscalationLevel,
		grievance.ResponseDeadline,
		grievance.ResolutionDeadline,
	).Scan(&grievance.ID, &grievance.CreatedAt, &grievance.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateTicketID
	}
	return err
}

func (r *grievanceRepository) Update(ctx context.Context, grievance *domain.Grievance) error {
	const query = `
        UPDATE grievances SET department_id=$1, status=$2, escalation_level=$3, assigned_worker_id=$4,
            response_deadline=$5, resolution_deadline=$6, updated_at=NOW()
        WHERE ticket_id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		grievance.DepartmentID,
		grievance.Status,
		grievance.EscalationLevel,
		grievance.AssignedWorkerID,
		grievance.ResponseDeadline,
		grievance.ResolutionDeadline,
		grievance.TicketID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *grievanceRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.Grievance, error) {
	query := `SELECT ` + grievanceColumns + ` FROM grievances WHERE ticket_id=$1`
	var grievance domain.Grievance
	if err := r.pool.QueryRow(ctx, query, ticketID).Scan(grievanceFields(&grievance)...); err != nil {
		return nil, mapNoRows(err)
	}
	return &grievance, nil
}

func (r *grievanceRepository) CountInMonth(ctx context.Context, year int, month time.Month) (int, error) {
	const query = `
        SELECT COUNT(*) FROM grievances
        WHERE EXTRACT(YEAR FROM created_at) = $1 AND EXTRACT(MONTH FROM created_at) = $2`
	var count int
	if err := r.pool.QueryRow(ctx, query, year, int(month)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *grievanceRepository) ListByEmail(ctx context.Context, email string) ([]domain.Grievance, error) {
	query := `SELECT ` + grievanceColumns + ` FROM grievances WHERE email=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrievances(rows)
}

const grievanceDetailColumns = `g.id, g.ticket_id, g.title, g.description, g.location, g.department_id,
       g.category_id, g.urgency, g.attachment, g.complainant_name, g.email, g.mobile_number, g.status,
       g.escalation_level, g.assigned_worker_id, g.response_deadline, g.resolution_deadline,
       g.created_at, g.updated_at, d.name, c.name, w.name, w.email, w.phone_number`

const grievanceDetailJoins = `
        FROM grievances g
        JOIN departments d ON g.department_id = d.id
        JOIN categories c ON g.category_id = c.id
        LEFT JOIN workers w ON g.assigned_worker_id = w.id`

func (r *grievanceRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.GrievanceDetails, error) {
	query := `SELECT ` + grievanceDetailColumns + grievanceDetailJoins + `
        WHERE g.department_id = $1 ORDER BY g.created_at DESC`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrievanceDetails(rows)
}

func (r *grievanceRepository) ListAll(ctx context.Context) ([]domain.GrievanceDetails, error) {
	query := `SELECT ` + grievanceDetailColumns + grievanceDetailJoins + ` ORDER BY g.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrievanceDetails(rows)
}

func (r *grievanceRepository) ListByEscalationLevel(ctx context.Context, level int) ([]domain.GrievanceDetails, error) {
	query := `SELECT ` + grievanceDetailColumns + grievanceDetailJoins + `
        WHERE g.escalation_level = $1 ORDER BY g.created_at DESC`
	rows, err := r.pool.Query(ctx, query, level)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrievanceDetails(rows)
}

func (r *grievanceRepository) ListEscalationCandidates(ctx context.Context, now time.Time) ([]domain.Grievance, error) {
	query := `SELECT ` + grievanceColumns + ` FROM grievances
        WHERE status <> $1
          AND ((escalation_level = 0 AND response_deadline < $2)
            OR (escalation_level = 1 AND resolution_deadline < $2))
        ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, domain.GrievanceStatusResolved, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrievances(rows)
}

// PromoteEscalation bumps the escalation level by one, guarded on the level
// the caller observed so a concurrent or repeated sweep cannot double-promote.
func (r *grievanceRepository) PromoteEscalation(ctx context.Context, ticketID string, fromLevel int) (bool, error) {
	const query = `
        UPDATE grievances SET escalation_level = escalation_level + 1, updated_at=NOW()
        WHERE ticket_id=$1 AND escalation_level=$2 AND status <> $3`
	cmd, err := r.pool.Exec(ctx, query, ticketID, fromLevel, domain.GrievanceStatusResolved)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *grievanceRepository) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	rows, err := r.pool.Query(ctx, `
        SELECT d.name, COUNT(g.id) FROM grievances g
        JOIN departments d ON g.department_id = d.id
        GROUP BY d.name ORDER BY d.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var row domain.CountByName
		if err := rows.Scan(&row.Name, &row.Count); err != nil {
			return nil, err
		}
		stats.ByDepartment = append(stats.ByDepartment, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	statusRows, err := r.pool.Query(ctx, `SELECT status, COUNT(id) FROM grievances GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer statusRows.Close()
	for statusRows.Next() {
		var row domain.CountByStatus
		if err := statusRows.Scan(&row.Status, &row.Count); err != nil {
			return nil, err
		}
		stats.ByStatus = append(stats.ByStatus, row)
	}
	if err := statusRows.Err(); err != nil {
		return nil, err
	}

	levelRows, err := r.pool.Query(ctx, `
        SELECT escalation_level, COUNT(id) FROM grievances
        WHERE escalation_level > 0 GROUP BY escalation_level`)
	if err != nil {
		return nil, err
	}
	defer levelRows.Close()
	for levelRows.Next() {
		var row domain.CountByLevel
		if err := levelRows.Scan(&row.Level, &row.Count); err != nil {
			return nil, err
		}
		stats.ByEscalation = append(stats.ByEscalation, row)
	}
	return stats, levelRows.Err()
}

func grievanceFields(g *domain.Grievance) []any {
	return []any{
		&g.ID,
		&g.TicketID,
		&g.Title,
		&g.Description,
		&g.Location,
		&g.DepartmentID,
		&g.CategoryID,
		&g.Urgency,
		&g.Attachment,
		&g.ComplainantName,
		&g.Email,
		&g.MobileNumber,
		&g.Status,
		&g.EscalationLevel,
		&g.AssignedWorkerID,
		&g.ResponseDeadline,
		&g.ResolutionDeadline,
		&g.CreatedAt,
		&g.UpdatedAt,
	}
}

func scanGrievances(rows pgx.Rows) ([]domain.Grievance, error) {
	var result []domain.Grievance
	for rows.Next() {
		var grievance domain.Grievance
		if err := rows.Scan(grievanceFields(&grievance)...); err != nil {
			return nil, err
		}
		result = append(result, grievance)
	}
	return result, rows.Err()
}

func scanGrievanceDetails(rows pgx.Rows) ([]domain.GrievanceDetails, error) {
	var result []domain.GrievanceDetails
	for rows.Next() {
		var detail domain.GrievanceDetails
		fields := grievanceFields(&detail.Grievance)
		fields = append(fields,
			&detail.DepartmentName,
			&detail.CategoryName,
			&detail.WorkerName,
			&detail.WorkerEmail,
			&detail.WorkerPhone,
		)
		if err := rows.Scan(fields...); err != nil {
			return nil, err
		}
		result = append(result, detail)
	}
	return result, rows.Err()
}
