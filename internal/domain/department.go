package domain

import "time"

// Department represents an organizational unit that owns grievances.
type Department struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Category classifies grievances within a department and carries the
// default urgency applied when the submitter does not pick one.
type Category struct {
	ID           int64
	Name         string
	DepartmentID int64
	Urgency      Urgency
	CreatedAt    time.Time
}

// Location is a campus location a grievance can reference.
type Location struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
