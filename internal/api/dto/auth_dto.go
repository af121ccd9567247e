package dto

import (
	"time"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse payload.
type LoginResponse struct {
	Token        string           `json:"token"`
	ExpiresAt    time.Time        `json:"expires_at"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Role         domain.StaffRole `json:"role"`
	DepartmentID int64            `json:"department_id,omitempty"`
}
