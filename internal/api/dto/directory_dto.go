package dto

import (
	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// CreateDepartmentRequest payload.
type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	Name           string         `json:"name"`
	DepartmentID   int64          `json:"department_id"`
	DefaultUrgency domain.Urgency `json:"default_urgency"`
}

// CreateLocationRequest payload.
type CreateLocationRequest struct {
	Name string `json:"name"`
}

// CreateWorkerRequest payload.
type CreateWorkerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	DepartmentID int64  `json:"department_id"`
}

// CreateStaffRequest payload for bearer, admin and authority accounts.
type CreateStaffRequest struct {
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Password     string           `json:"password"`
	MobileNumber string           `json:"mobile_number"`
	Role         domain.StaffRole `json:"role"`
	DepartmentID int64            `json:"department_id"`
}

// DepartmentResponse payload.
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryResponse payload.
type CategoryResponse struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	DepartmentID   int64          `json:"department_id"`
	DepartmentName string         `json:"department_name,omitempty"`
	DefaultUrgency domain.Urgency `json:"default_urgency"`
}

// LocationResponse payload.
type LocationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// WorkerResponse payload.
type WorkerResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	DepartmentID int64  `json:"department_id"`
}

// StaffResponse payload; password hashes never leave the service.
type StaffResponse struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	MobileNumber string           `json:"mobile_number,omitempty"`
	Role         domain.StaffRole `json:"role"`
	DepartmentID int64            `json:"department_id,omitempty"`
}
