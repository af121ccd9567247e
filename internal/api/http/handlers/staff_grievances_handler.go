package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-helpdesk/grievance-service/internal/api/dto"
	"github.com/campus-helpdesk/grievance-service/internal/auth"
	"github.com/campus-helpdesk/grievance-service/internal/domain"
	"github.com/campus-helpdesk/grievance-service/internal/service"
	apperrors "github.com/campus-helpdesk/grievance-service/pkg/util/errorutil"
)

// StaffGrievancesHandler serves authenticated grievance operations: office
// bearers assign and resolve within their department, authorities review
// level-1 escalations, admins see everything.
type StaffGrievancesHandler struct {
	service *service.GrievanceService
}

// NewStaffGrievancesHandler constructs handler.
func NewStaffGrievancesHandler(grievanceService *service.GrievanceService) *StaffGrievancesHandler {
	return &StaffGrievancesHandler{service: grievanceService}
}

// ListDepartment GET /staff/grievances. Bearers see their own department;
// admins may pick one with ?department_id=.
func (h *StaffGrievancesHandler) ListDepartment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	departmentID := principal.DepartmentID()
	if principal.Role == domain.StaffRoleAdmin {
		if raw := c.Query("department_id"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return apperrors.NewValidationError("invalid department_id", nil)
			}
			departmentID = parsed
		}
	}
	if departmentID == 0 {
		return apperrors.NewValidationError("department_id is required", nil)
	}
	details, err := h.service.ListByDepartment(c.UserContext(), departmentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": detailItems(details)})
}

// ListAll GET /admin/grievances.
func (h *StaffGrievancesHandler) ListAll(c *fiber.Ctx) error {
	details, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": detailItems(details)})
}

// ListEscalated GET /authority/grievances/escalated/:level.
func (h *StaffGrievancesHandler) ListEscalated(c *fiber.Ctx) error {
	level, err := c.ParamsInt("level")
	if err != nil {
		return apperrors.NewValidationError("invalid escalation level", nil)
	}
	details, err := h.service.ListEscalated(c.UserContext(), level)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": detailItems(details)})
}

// Assign POST /staff/grievances/assign/*.
func (h *StaffGrievancesHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	ticketID, err := ticketIDParam(c)
	if err != nil {
		return err
	}
	var req dto.AssignGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.WorkerID == 0 {
		return apperrors.NewValidationError("worker_id is required", nil)
	}
	result, err := h.service.Assign(c.UserContext(), ticketID, req.WorkerID, principal.Email())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mutationResponse(result)})
}

// Resolve POST /staff/grievances/resolve/*.
func (h *StaffGrievancesHandler) Resolve(c *fiber.Ctx) error {
	ticketID, err := ticketIDParam(c)
	if err != nil {
		return err
	}
	result, err := h.service.Resolve(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mutationResponse(result)})
}

// Revert POST /authority/grievances/revert/*.
func (h *StaffGrievancesHandler) Revert(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	ticketID, err := ticketIDParam(c)
	if err != nil {
		return err
	}
	var req dto.RevertGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.service.Revert(c.UserContext(), ticketID, req.ResolutionDays, req.Comment, principal.Email())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mutationResponse(result)})
}

// RevertToLevel1 POST /admin/grievances/revert-to-level1/*.
func (h *StaffGrievancesHandler) RevertToLevel1(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	ticketID, err := ticketIDParam(c)
	if err != nil {
		return err
	}
	var req dto.RevertGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.service.RevertToLevel1(c.UserContext(), ticketID, req.ResolutionDays, req.Comment, principal.Email())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mutationResponse(result)})
}

// Transfer POST /admin/grievances/transfer/*.
func (h *StaffGrievancesHandler) Transfer(c *fiber.Ctx) error {
	ticketID, err := ticketIDParam(c)
	if err != nil {
		return err
	}
	var req dto.TransferGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.service.Transfer(c.UserContext(), ticketID, req.DepartmentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mutationResponse(result)})
}

// Stats GET /admin/dashboard/stats.
func (h *StaffGrievancesHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.DashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	response := dto.DashboardStatsResponse{
		ByDepartment: make([]dto.CountByNameResponse, 0, len(stats.ByDepartment)),
		ByStatus:     make([]dto.CountByStatusResponse, 0, len(stats.ByStatus)),
		ByEscalation: make([]dto.CountByLevelResponse, 0, len(stats.ByEscalation)),
	}
	for _, row := range stats.ByDepartment {
		response.ByDepartment = append(response.ByDepartment, dto.CountByNameResponse{Name: row.Name, Count: row.Count})
	}
	for _, row := range stats.ByStatus {
		response.ByStatus = append(response.ByStatus, dto.CountByStatusResponse{Status: row.Status, Count: row.Count})
	}
	for _, row := range stats.ByEscalation {
		response.ByEscalation = append(response.ByEscalation, dto.CountByLevelResponse{Level: row.Level, Count: row.Count})
	}
	return c.JSON(fiber.Map{"data": response})
}

func detailItems(details []domain.GrievanceDetails) []dto.GrievanceDetailResponse {
	items := make([]dto.GrievanceDetailResponse, 0, len(details))
	for i := range details {
		items = append(items, grievanceDetailResponse(&details[i]))
	}
	return items
}
