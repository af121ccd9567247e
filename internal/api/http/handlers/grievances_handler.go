package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-helpdesk/grievance-service/internal/api/dto"
	"github.com/campus-helpdesk/grievance-service/internal/domain"
	"github.com/campus-helpdesk/grievance-service/internal/service"
	apperrors "github.com/campus-helpdesk/grievance-service/pkg/util/errorutil"
)

// GrievancesHandler serves the public intake and tracking endpoints. These
// routes are unauthenticated; submitters identify by email and ticket ID.
type GrievancesHandler struct {
	service *service.GrievanceService
}

// NewGrievancesHandler constructs handler.
func NewGrievancesHandler(grievanceService *service.GrievanceService) *GrievancesHandler {
	return &GrievancesHandler{service: grievanceService}
}

// Submit POST /grievances.
func (h *GrievancesHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.service.Submit(c.UserContext(), service.SubmitInput{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		DepartmentID:    req.DepartmentID,
		CategoryID:      req.CategoryID,
		Urgency:         req.Urgency,
		Attachment:      req.Attachment,
		ComplainantName: req.ComplainantName,
		Email:           req.Email,
		MobileNumber:    req.MobileNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": mutationResponse(result)})
}

// Track GET /grievances/track/*. Ticket IDs contain slashes, so the route
// captures the remainder of the path as the ID.
func (h *GrievancesHandler) Track(c *fiber.Ctx) error {
	ticketID, err := ticketIDParam(c)
	if err != nil {
		return err
	}
	grievance, err := h.service.Track(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": grievanceResponse(grievance)})
}

// History GET /grievances?email=.
func (h *GrievancesHandler) History(c *fiber.Ctx) error {
	email := c.Query("email")
	grievances, err := h.service.HistoryByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	items := make([]dto.GrievanceResponse, 0, len(grievances))
	for i := range grievances {
		items = append(items, grievanceResponse(&grievances[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func grievanceResponse(g *domain.Grievance) dto.GrievanceResponse {
	return dto.GrievanceResponse{
		TicketID:           g.TicketID,
		Title:              g.Title,
		Description:        g.Description,
		Location:           g.Location,
		DepartmentID:       g.DepartmentID,
		CategoryID:         g.CategoryID,
		Urgency:            g.Urgency,
		Status:             g.Status,
		EscalationLevel:    g.EscalationLevel,
		ResponseDeadline:   g.ResponseDeadline,
		ResolutionDeadline: g.ResolutionDeadline,
		CreatedAt:          g.CreatedAt,
	}
}

func grievanceDetailResponse(d *domain.GrievanceDetails) dto.GrievanceDetailResponse {
	return dto.GrievanceDetailResponse{
		GrievanceResponse: grievanceResponse(&d.Grievance),
		ComplainantName:   d.ComplainantName,
		Email:             d.Email,
		MobileNumber:      d.MobileNumber,
		DepartmentName:    d.DepartmentName,
		CategoryName:      d.CategoryName,
		WorkerName:        d.WorkerName,
		WorkerEmail:       d.WorkerEmail,
		WorkerPhone:       d.WorkerPhone,
	}
}

func mutationResponse(result *service.MutationResult) dto.MutationResponse {
	return dto.MutationResponse{
		Grievance:          grievanceResponse(result.Grievance),
		NotificationFailed: result.NotificationFailed,
	}
}

func ticketIDParam(c *fiber.Ctx) (string, error) {
	ticketID := c.Params("*")
	if ticketID == "" {
		return "", apperrors.NewValidationError("ticket id is required", nil)
	}
	return ticketID, nil
}
