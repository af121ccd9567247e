package domain

// GrievanceDetails is a grievance joined with display names for staff and
// admin listings.
type GrievanceDetails struct {
	Grievance
	DepartmentName string
	CategoryName   string
	WorkerName     *string
	WorkerEmail    *string
	WorkerPhone    *string
}

// CountByName is a name/count aggregation row.
type CountByName struct {
	Name  string
	Count int64
}

// CountByStatus aggregates grievances per lifecycle status.
type CountByStatus struct {
	Status GrievanceStatus
	Count  int64
}

// CountByLevel aggregates grievances per escalation level.
type CountByLevel struct {
	Level int
	Count int64
}

// DashboardStats backs the admin dashboard.
type DashboardStats struct {
	ByDepartment []CountByName
	ByStatus     []CountByStatus
	ByEscalation []CountByLevel
}
