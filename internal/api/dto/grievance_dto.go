package dto

import (
	"time"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// SubmitGrievanceRequest payload.
type SubmitGrievanceRequest struct {
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Location        string         `json:"location"`
	DepartmentID    int64          `json:"department_id"`
	CategoryID      int64          `json:"category_id"`
	Urgency         domain.Urgency `json:"urgency"`
	Attachment      *string        `json:"attachment"`
	ComplainantName string         `json:"complainant_name"`
	Email           string         `json:"email"`
	MobileNumber    string         `json:"mobile_number"`
}

// AssignGrievanceRequest payload.
type AssignGrievanceRequest struct {
	WorkerID int64 `json:"worker_id"`
}

// RevertGrievanceRequest payload.
type RevertGrievanceRequest struct {
	ResolutionDays int    `json:"resolution_days"`
	Comment        string `json:"comment"`
}

// TransferGrievanceRequest payload.
type TransferGrievanceRequest struct {
	DepartmentID int64 `json:"department_id"`
}

// GrievanceResponse is the submitter-facing view of a grievance.
type GrievanceResponse struct {
	TicketID           string                 `json:"ticket_id"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	Location           string                 `json:"location,omitempty"`
	DepartmentID       int64                  `json:"department_id"`
	CategoryID         int64                  `json:"category_id"`
	Urgency            domain.Urgency         `json:"urgency"`
	Status             domain.GrievanceStatus `json:"status"`
	EscalationLevel    int                    `json:"escalation_level"`
	ResponseDeadline   time.Time              `json:"response_deadline"`
	ResolutionDeadline time.Time              `json:"resolution_deadline"`
	CreatedAt          time.Time              `json:"created_at"`
}

// GrievanceDetailResponse adds joined names for staff listings.
type GrievanceDetailResponse struct {
	GrievanceResponse
	ComplainantName string  `json:"complainant_name"`
	Email           string  `json:"email"`
	MobileNumber    string  `json:"mobile_number,omitempty"`
	DepartmentName  string  `json:"department_name"`
	CategoryName    string  `json:"category_name"`
	WorkerName      *string `json:"worker_name,omitempty"`
	WorkerEmail     *string `json:"worker_email,omitempty"`
	WorkerPhone     *string `json:"worker_phone,omitempty"`
}

// MutationResponse wraps a committed state change; notification_failed marks
// the degraded case where emails did not go out.
type MutationResponse struct {
	Grievance          GrievanceResponse `json:"grievance"`
	NotificationFailed bool              `json:"notification_failed"`
}

// CountByNameResponse aggregation row.
type CountByNameResponse struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// CountByStatusResponse aggregation row.
type CountByStatusResponse struct {
	Status domain.GrievanceStatus `json:"status"`
	Count  int64                  `json:"count"`
}

// CountByLevelResponse aggregation row.
type CountByLevelResponse struct {
	Level int   `json:"level"`
	Count int64 `json:"count"`
}

// DashboardStatsResponse backs the admin dashboard.
type DashboardStatsResponse struct {
	ByDepartment []CountByNameResponse   `json:"by_department"`
	ByStatus     []CountByStatusResponse `json:"by_status"`
	ByEscalation []CountByLevelResponse  `json:"by_escalation"`
}
