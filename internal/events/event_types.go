package events

import (
	"time"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventGrievanceSubmitted        EventType = "grievance_submitted"
	EventGrievanceAssigned         EventType = "grievance_assigned"
	EventGrievanceResolved         EventType = "grievance_resolved"
	EventGrievanceEscalated        EventType = "grievance_escalated"
	EventGrievanceReverted         EventType = "grievance_reverted"
	EventGrievanceRevertedToLevel1 EventType = "grievance_reverted_to_level1"
	EventGrievanceTransferred      EventType = "grievance_transferred"
)

// ActorType identifies who drove the transition.
type ActorType string

const (
	ActorSubmitter ActorType = "SUBMITTER"
	ActorStaff     ActorType = "STAFF"
	ActorSystem    ActorType = "SYSTEM"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type  ActorType `json:"type"`
	Email string    `json:"email,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// GrievanceSubmittedPayload payload.
type GrievanceSubmittedPayload struct {
	DepartmentID int64          `json:"department_id"`
	CategoryID   int64          `json:"category_id"`
	Urgency      domain.Urgency `json:"urgency"`
	Title        string         `json:"title"`
}

// GrievanceAssignedPayload payload.
type GrievanceAssignedPayload struct {
	WorkerID   int64  `json:"worker_id"`
	WorkerName string `json:"worker_name"`
}

// GrievanceResolvedPayload payload.
type GrievanceResolvedPayload struct {
	PreviousStatus domain.GrievanceStatus `json:"previous_status"`
}

// GrievanceEscalatedPayload payload.
type GrievanceEscalatedPayload struct {
	FromLevel int       `json:"from_level"`
	ToLevel   int       `json:"to_level"`
	Deadline  time.Time `json:"breached_deadline"`
}

// GrievanceRevertedPayload payload, shared by both revert operations.
type GrievanceRevertedPayload struct {
	ToLevel            int       `json:"to_level"`
	Comment            string    `json:"comment"`
	ResolutionDeadline time.Time `json:"resolution_deadline"`
}

// GrievanceTransferredPayload payload.
type GrievanceTransferredPayload struct {
	FromDepartmentID int64 `json:"from_department_id"`
	ToDepartmentID   int64 `json:"to_department_id"`
}
