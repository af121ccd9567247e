package domain

import "time"

// Worker is a field worker who executes assigned grievances. Workers belong
// to exactly one department and never log in; they are referenced, not owned,
// by grievances.
type Worker struct {
	ID           int64
	Name         string
	Email        string
	PhoneNumber  string
	DepartmentID int64
	CreatedAt    time.Time
}
