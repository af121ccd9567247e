package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-helpdesk/grievance-service/internal/api/dto"
	"github.com/campus-helpdesk/grievance-service/internal/service"
	apperrors "github.com/campus-helpdesk/grievance-service/pkg/util/errorutil"
)

// AuthHandler serves staff login.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/staff/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required", nil)
	}
	session, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:        session.Token,
		ExpiresAt:    session.ExpiresAt,
		Name:         session.Name,
		Email:        session.Email,
		Role:         session.Role,
		DepartmentID: session.DepartmentID,
	}})
}
