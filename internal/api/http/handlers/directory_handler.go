package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-helpdesk/grievance-service/internal/api/dto"
	"github.com/campus-helpdesk/grievance-service/internal/domain"
	"github.com/campus-helpdesk/grievance-service/internal/service"
	apperrors "github.com/campus-helpdesk/grievance-service/pkg/util/errorutil"
)

// DirectoryHandler serves reference data: the public read side feeds the
// submission form, the admin write side manages the records.
type DirectoryHandler struct {
	service *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: directoryService}
}

// ListDepartments GET /departments.
func (h *DirectoryHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.service.ListDepartments(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		items = append(items, dto.DepartmentResponse{ID: department.ID, Name: department.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateDepartment POST /admin/departments.
func (h *DirectoryHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	department, err := h.service.CreateDepartment(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.DepartmentResponse{ID: department.ID, Name: department.Name}})
}

// DeleteDepartment DELETE /admin/departments/:id.
func (h *DirectoryHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteDepartment(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCategories GET /categories?department_id=.
func (h *DirectoryHandler) ListCategories(c *fiber.Ctx) error {
	departmentID := int64(c.QueryInt("department_id"))
	categories, err := h.service.ListCategories(c.UserContext(), departmentID)
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, categoryResponse(category, ""))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListCategoriesAdmin GET /admin/categories, with department names.
func (h *DirectoryHandler) ListCategoriesAdmin(c *fiber.Ctx) error {
	entries, err := h.service.ListCategoriesWithDepartments(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, categoryResponse(entry.Category, entry.DepartmentName))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateCategory POST /admin/categories.
func (h *DirectoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.CreateCategory(c.UserContext(), req.Name, req.DepartmentID, req.DefaultUrgency)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": categoryResponse(*category, "")})
}

// DeleteCategory DELETE /admin/categories/:id.
func (h *DirectoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListLocations GET /locations.
func (h *DirectoryHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.service.ListLocations(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.LocationResponse, 0, len(locations))
	for _, location := range locations {
		items = append(items, dto.LocationResponse{ID: location.ID, Name: location.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateLocation POST /admin/locations.
func (h *DirectoryHandler) CreateLocation(c *fiber.Ctx) error {
	var req dto.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	location, err := h.service.CreateLocation(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.LocationResponse{ID: location.ID, Name: location.Name}})
}

// DeleteLocation DELETE /admin/locations/:id.
func (h *DirectoryHandler) DeleteLocation(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteLocation(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListWorkers GET /staff/workers?department_id=.
func (h *DirectoryHandler) ListWorkers(c *fiber.Ctx) error {
	departmentID := int64(c.QueryInt("department_id"))
	if departmentID == 0 {
		return apperrors.NewValidationError("department_id is required", nil)
	}
	workers, err := h.service.ListWorkers(c.UserContext(), departmentID)
	if err != nil {
		return err
	}
	items := make([]dto.WorkerResponse, 0, len(workers))
	for _, worker := range workers {
		items = append(items, workerResponse(worker))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateWorker POST /staff/workers.
func (h *DirectoryHandler) CreateWorker(c *fiber.Ctx) error {
	var req dto.CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	worker, err := h.service.CreateWorker(c.UserContext(), service.CreateWorkerInput{
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": workerResponse(*worker)})
}

// DeleteWorker DELETE /staff/workers/:id.
func (h *DirectoryHandler) DeleteWorker(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteWorker(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListOfficeBearers GET /admin/office-bearers?department_id=.
func (h *DirectoryHandler) ListOfficeBearers(c *fiber.Ctx) error {
	departmentID := int64(c.QueryInt("department_id"))
	bearers, err := h.service.ListOfficeBearers(c.UserContext(), departmentID)
	if err != nil {
		return err
	}
	items := make([]dto.StaffResponse, 0, len(bearers))
	for _, bearer := range bearers {
		items = append(items, bearerResponse(bearer))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateOfficeBearer POST /admin/office-bearers.
func (h *DirectoryHandler) CreateOfficeBearer(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	bearer, err := h.service.CreateOfficeBearer(c.UserContext(), service.CreateStaffInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		MobileNumber: req.MobileNumber,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": bearerResponse(*bearer)})
}

// DeleteOfficeBearer DELETE /admin/office-bearers/:id.
func (h *DirectoryHandler) DeleteOfficeBearer(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteOfficeBearer(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAuthorities GET /admin/authorities.
func (h *DirectoryHandler) ListAuthorities(c *fiber.Ctx) error {
	authorities, err := h.service.ListAuthorities(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.StaffResponse, 0, len(authorities))
	for _, authority := range authorities {
		items = append(items, authorityResponse(authority))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateAuthority POST /admin/authorities.
func (h *DirectoryHandler) CreateAuthority(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	authority, err := h.service.CreateAuthority(c.UserContext(), service.CreateStaffInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": authorityResponse(*authority)})
}

// DeleteAuthority DELETE /admin/authorities/:id.
func (h *DirectoryHandler) DeleteAuthority(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteAuthority(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func idParam(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return int64(id), nil
}

func categoryResponse(category domain.Category, departmentName string) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:             category.ID,
		Name:           category.Name,
		DepartmentID:   category.DepartmentID,
		DepartmentName: departmentName,
		DefaultUrgency: category.Urgency,
	}
}

func workerResponse(worker domain.Worker) dto.WorkerResponse {
	return dto.WorkerResponse{
		ID:           worker.ID,
		Name:         worker.Name,
		Email:        worker.Email,
		PhoneNumber:  worker.PhoneNumber,
		DepartmentID: worker.DepartmentID,
	}
}

func bearerResponse(bearer domain.OfficeBearer) dto.StaffResponse {
	return dto.StaffResponse{
		ID:           bearer.ID,
		Name:         bearer.Name,
		Email:        bearer.Email,
		MobileNumber: bearer.MobileNumber,
		Role:         bearer.Role,
		DepartmentID: bearer.DepartmentID,
	}
}

func authorityResponse(authority domain.ApprovingAuthority) dto.StaffResponse {
	return dto.StaffResponse{
		ID:           authority.ID,
		Name:         authority.Name,
		Email:        authority.Email,
		MobileNumber: authority.MobileNumber,
		Role:         domain.StaffRoleAuthority,
	}
}
