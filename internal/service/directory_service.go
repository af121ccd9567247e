package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/campus-helpdesk/grievance-service/internal/auth"
	"github.com/campus-helpdesk/grievance-service/internal/domain"
	"github.com/campus-helpdesk/grievance-service/internal/repository"
	apperrors "github.com/campus-helpdesk/grievance-service/pkg/util/errorutil"
)

// DirectoryService manages the reference data grievances hang off of:
// departments, categories, locations, workers and the staff roster.
// Deletions are blocked while anything still references the record.
type DirectoryService struct {
	departments repository.DepartmentRepository
	categories  repository.CategoryRepository
	locations   repository.LocationRepository
	workers     repository.WorkerRepository
	bearers     repository.OfficeBearerRepository
	authorities repository.AuthorityRepository
	bcryptCost  int
	logger      *zap.Logger
}

// DirectoryDependencies bundles collaborators for the directory service.
type DirectoryDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	CategoryRepo   repository.CategoryRepository
	LocationRepo   repository.LocationRepository
	WorkerRepo     repository.WorkerRepository
	BearerRepo     repository.OfficeBearerRepository
	AuthorityRepo  repository.AuthorityRepository
	BcryptCost     int
	Logger         *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{
		departments: deps.DepartmentRepo,
		categories:  deps.CategoryRepo,
		locations:   deps.LocationRepo,
		workers:     deps.WorkerRepo,
		bearers:     deps.BearerRepo,
		authorities: deps.AuthorityRepo,
		bcryptCost:  deps.BcryptCost,
		logger:      logger,
	}
}

// CreateDepartment registers a department.
func (s *DirectoryService) CreateDepartment(ctx context.Context, name string) (*domain.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("department name is required", nil)
	}
	department := &domain.Department{Name: name}
	if err := s.departments.Create(ctx, department); err != nil {
		return nil, apperrors.MapError(err)
	}
	return department, nil
}

// ListDepartments lists every department.
func (s *DirectoryService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return departments, nil
}

// DeleteDepartment removes a department unless grievances, categories,
// workers or bearers still reference it.
func (s *DirectoryService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.mapDelete(s.departments.DeleteByID(ctx, id), "department", id)
}

// CreateCategory registers a category under a department. DefaultUrgency
// falls back to Normal when omitted.
func (s *DirectoryService) CreateCategory(ctx context.Context, name string, departmentID int64, defaultUrgency domain.Urgency) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || departmentID == 0 {
		return nil, apperrors.NewValidationError("category name and department are required", nil)
	}
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		return nil, mapRepoError(err, "department", map[string]any{"department_id": departmentID})
	}
	if defaultUrgency == "" {
		defaultUrgency = domain.UrgencyNormal
	}
	if !validUrgency(defaultUrgency) {
		return nil, apperrors.NewValidationError("unknown urgency", map[string]any{"urgency": defaultUrgency})
	}
	category := &domain.Category{Name: name, DepartmentID: departmentID, Urgency: defaultUrgency}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// ListCategories lists categories, scoped to a department when one is given.
func (s *DirectoryService) ListCategories(ctx context.Context, departmentID int64) ([]domain.Category, error) {
	if departmentID != 0 {
		categories, err := s.categories.ListByDepartment(ctx, departmentID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		return categories, nil
	}
	withDepartments, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	categories := make([]domain.Category, 0, len(withDepartments))
	for _, entry := range withDepartments {
		categories = append(categories, entry.Category)
	}
	return categories, nil
}

// ListCategoriesWithDepartments lists all categories with department names
// for the admin console.
func (s *DirectoryService) ListCategoriesWithDepartments(ctx context.Context) ([]repository.CategoryWithDepartment, error) {
	entries, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// DeleteCategory removes a category unless grievances still reference it.
func (s *DirectoryService) DeleteCategory(ctx context.Context, id int64) error {
	return s.mapDelete(s.categories.DeleteByID(ctx, id), "category", id)
}

// CreateLocation registers a campus location.
func (s *DirectoryService) CreateLocation(ctx context.Context, name string) (*domain.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("location name is required", nil)
	}
	location := &domain.Location{Name: name}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, apperrors.MapError(err)
	}
	return location, nil
}

// ListLocations lists every location.
func (s *DirectoryService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return locations, nil
}

// DeleteLocation removes a location.
func (s *DirectoryService) DeleteLocation(ctx context.Context, id int64) error {
	return s.mapDelete(s.locations.DeleteByID(ctx, id), "location", id)
}

// CreateWorkerInput describes a field worker.
type CreateWorkerInput struct {
	Name         string
	Email        string
	PhoneNumber  string
	DepartmentID int64
}

// CreateWorker registers a field worker under a department.
func (s *DirectoryService) CreateWorker(ctx context.Context, input CreateWorkerInput) (*domain.Worker, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" || input.DepartmentID == 0 {
		return nil, apperrors.NewValidationError("worker name, email and department are required", nil)
	}
	if _, err := s.departments.GetByID(ctx, input.DepartmentID); err != nil {
		return nil, mapRepoError(err, "department", map[string]any{"department_id": input.DepartmentID})
	}
	worker := &domain.Worker{
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		DepartmentID: input.DepartmentID,
	}
	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, apperrors.MapError(err)
	}
	return worker, nil
}

// ListWorkers lists a department's workers.
func (s *DirectoryService) ListWorkers(ctx context.Context, departmentID int64) ([]domain.Worker, error) {
	workers, err := s.workers.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return workers, nil
}

// DeleteWorker removes a worker unless a grievance is still assigned to it.
func (s *DirectoryService) DeleteWorker(ctx context.Context, id int64) error {
	return s.mapDelete(s.workers.DeleteByID(ctx, id), "worker", id)
}

// CreateStaffInput describes an office bearer or admin account.
type CreateStaffInput struct {
	Name         string
	Email        string
	Password     string
	MobileNumber string
	Role         domain.StaffRole
	DepartmentID int64
}

// CreateOfficeBearer registers an office bearer or admin account with a
// bcrypt-hashed password.
func (s *DirectoryService) CreateOfficeBearer(ctx context.Context, input CreateStaffInput) (*domain.OfficeBearer, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required", nil)
	}
	if input.Role == "" {
		input.Role = domain.StaffRoleOfficeBearer
	}
	if input.Role != domain.StaffRoleOfficeBearer && input.Role != domain.StaffRoleAdmin {
		return nil, apperrors.NewValidationError("role must be OFFICE_BEARER or ADMIN", nil)
	}
	if input.Role == domain.StaffRoleOfficeBearer && input.DepartmentID == 0 {
		return nil, apperrors.NewValidationError("office bearers require a department", nil)
	}
	if input.DepartmentID != 0 {
		if _, err := s.departments.GetByID(ctx, input.DepartmentID); err != nil {
			return nil, mapRepoError(err, "department", map[string]any{"department_id": input.DepartmentID})
		}
	}
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	bearer := &domain.OfficeBearer{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		MobileNumber: input.MobileNumber,
		Role:         input.Role,
		DepartmentID: input.DepartmentID,
	}
	if err := s.bearers.Create(ctx, bearer); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
		}
		return nil, apperrors.MapError(err)
	}
	return bearer, nil
}

// ListOfficeBearers lists every bearer, or a department's bearers when a
// department is given.
func (s *DirectoryService) ListOfficeBearers(ctx context.Context, departmentID int64) ([]domain.OfficeBearer, error) {
	var (
		bearers []domain.OfficeBearer
		err     error
	)
	if departmentID != 0 {
		bearers, err = s.bearers.ListByDepartment(ctx, departmentID)
	} else {
		bearers, err = s.bearers.ListAll(ctx)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return bearers, nil
}

// DeleteOfficeBearer removes a bearer account.
func (s *DirectoryService) DeleteOfficeBearer(ctx context.Context, id int64) error {
	return s.mapDelete(s.bearers.DeleteByID(ctx, id), "office bearer", id)
}

// CreateAuthority registers an approving authority account.
func (s *DirectoryService) CreateAuthority(ctx context.Context, input CreateStaffInput) (*domain.ApprovingAuthority, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required", nil)
	}
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	authority := &domain.ApprovingAuthority{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		MobileNumber: input.MobileNumber,
	}
	if err := s.authorities.Create(ctx, authority); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
		}
		return nil, apperrors.MapError(err)
	}
	return authority, nil
}

// ListAuthorities lists every approving authority.
func (s *DirectoryService) ListAuthorities(ctx context.Context) ([]domain.ApprovingAuthority, error) {
	authorities, err := s.authorities.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return authorities, nil
}

// DeleteAuthority removes an authority account.
func (s *DirectoryService) DeleteAuthority(ctx context.Context, id int64) error {
	return s.mapDelete(s.authorities.DeleteByID(ctx, id), "approving authority", id)
}

func (s *DirectoryService) mapDelete(err error, resource string, id int64) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	case errors.Is(err, repository.ErrForeignKeyInUse):
		return apperrors.NewConflict(resource+" is still referenced and cannot be deleted", map[string]any{"id": id})
	default:
		return apperrors.MapError(err)
	}
}

func validUrgency(urgency domain.Urgency) bool {
	switch urgency {
	case domain.UrgencyNormal, domain.UrgencyHigh, domain.UrgencyEmergency:
		return true
	}
	return false
}
