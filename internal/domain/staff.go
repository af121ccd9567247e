package domain

import "time"

// StaffRole enumerates helpdesk operator roles.
type StaffRole string

const (
	StaffRoleOfficeBearer StaffRole = "OFFICE_BEARER"
	StaffRoleAuthority    StaffRole = "APPROVING_AUTHORITY"
	StaffRoleAdmin        StaffRole = "ADMIN"
)

// OfficeBearer manages grievances for a single department: assignment,
// resolution and worker management. Admins are bearers with the admin role.
type OfficeBearer struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	MobileNumber string
	Role         StaffRole
	DepartmentID int64
	CreatedAt    time.Time
}

// ApprovingAuthority reviews level-1 escalated grievances. Authorities are
// department-independent.
type ApprovingAuthority struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	MobileNumber string
	CreatedAt    time.Time
}
