package domain

import "time"

// GrievanceStatus enumerates lifecycle states for grievances.
type GrievanceStatus string

const (
	GrievanceStatusSubmitted  GrievanceStatus = "Submitted"
	GrievanceStatusInProgress GrievanceStatus = "In Progress"
	GrievanceStatusResolved   GrievanceStatus = "Resolved"
)

// Urgency enumerates SLA urgency levels.
type Urgency string

const (
	UrgencyNormal    Urgency = "Normal"
	UrgencyHigh      Urgency = "High"
	UrgencyEmergency Urgency = "Emergency"
)

// Escalation levels. Level 1 locks the grievance from normal worker-level
// actions; level 2 is terminal for the scanner.
const (
	EscalationNone   = 0
	EscalationLevel1 = 1
	EscalationLevel2 = 2
)

// Grievance is the aggregate for complaint records.
type Grievance struct {
	ID                 int64
	TicketID           string
	Title              string
	Description        string
	Location           string
	DepartmentID       int64
	CategoryID         int64
	Urgency            Urgency
	Attachment         *string
	ComplainantName    string
	Email              string
	MobileNumber       string
	Status             GrievanceStatus
	EscalationLevel    int
	AssignedWorkerID   *int64
	ResponseDeadline   time.Time
	ResolutionDeadline time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Locked reports whether escalation has removed the grievance from normal
// worker-level assignment; only revert/transfer/admin paths may mutate it.
func (g *Grievance) Locked() bool {
	return g.EscalationLevel >= EscalationLevel1
}
