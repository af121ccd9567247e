package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-helpdesk/grievance-service/internal/config"
	"github.com/campus-helpdesk/grievance-service/internal/domain"
	"github.com/campus-helpdesk/grievance-service/internal/events"
	"github.com/campus-helpdesk/grievance-service/internal/mailer"
	"github.com/campus-helpdesk/grievance-service/internal/repository"
	"github.com/campus-helpdesk/grievance-service/internal/sla"
	apperrors "github.com/campus-helpdesk/grievance-service/pkg/util/errorutil"
	"github.com/campus-helpdesk/grievance-service/pkg/util/retry"
)

// GrievanceService owns the grievance lifecycle: intake, assignment,
// resolution, reverts and transfers. Every mutation validates before
// touching the store, and notification failures never roll a committed
// mutation back; they surface as a degraded result instead.
type GrievanceService struct {
	grievances    repository.GrievanceRepository
	departments   repository.DepartmentRepository
	categories    repository.CategoryRepository
	workers       repository.WorkerRepository
	bearers       repository.OfficeBearerRepository
	authorities   repository.AuthorityRepository
	notifier      Notifier
	dispatcher    events.Dispatcher
	clock         Clock
	logger        *zap.Logger
	orgPrefix     string
	allocAttempts int
}

// GrievanceDependencies bundles collaborators for the grievance service.
type GrievanceDependencies struct {
	GrievanceRepo  repository.GrievanceRepository
	DepartmentRepo repository.DepartmentRepository
	CategoryRepo   repository.CategoryRepository
	WorkerRepo     repository.WorkerRepository
	BearerRepo     repository.OfficeBearerRepository
	AuthorityRepo  repository.AuthorityRepository
	Notifier       Notifier
	Dispatcher     events.Dispatcher
	Clock          Clock
	Logger         *zap.Logger
}

// NewGrievanceService constructs the service.
func NewGrievanceService(cfg config.TicketConfig, deps GrievanceDependencies) *GrievanceService {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := cfg.OrgPrefix
	if prefix == "" {
		prefix = "lnm"
	}
	attempts := cfg.AllocAttempts
	if attempts <= 0 {
		attempts = 5
	}
	return &GrievanceService{
		grievances:    deps.GrievanceRepo,
		departments:   deps.DepartmentRepo,
		categories:    deps.CategoryRepo,
		workers:       deps.WorkerRepo,
		bearers:       deps.BearerRepo,
		authorities:   deps.AuthorityRepo,
		notifier:      deps.Notifier,
		dispatcher:    deps.Dispatcher,
		clock:         clock,
		logger:        logger,
		orgPrefix:     prefix,
		allocAttempts: attempts,
	}
}

// SubmitInput describes a new grievance.
type SubmitInput struct {
	Title           string
	Description     string
	Location        string
	DepartmentID    int64
	CategoryID      int64
	Urgency         domain.Urgency
	Attachment      *string
	ComplainantName string
	Email           string
	MobileNumber    string
}

// MutationResult reports a committed state change. NotificationFailed marks
// the degraded case where the mutation succeeded but one or more
// notifications did not go out.
type MutationResult struct {
	Grievance          *domain.Grievance
	NotificationFailed bool
}

// Submit registers a grievance: deadlines from the urgency policy, a
// month-scoped ticket ID minted under a bounded retry, and a confirmation
// email to the submitter.
func (s *GrievanceService) Submit(ctx context.Context, input SubmitInput) (*MutationResult, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.ComplainantName = strings.TrimSpace(input.ComplainantName)
	input.Email = strings.TrimSpace(input.Email)
	if input.Title == "" || input.Description == "" || input.ComplainantName == "" || input.Email == "" {
		return nil, apperrors.NewValidationError("title, description, complainant name and email are required", nil)
	}
	if input.DepartmentID == 0 || input.CategoryID == 0 {
		return nil, apperrors.NewValidationError("department and category are required", nil)
	}

	if _, err := s.departments.GetByID(ctx, input.DepartmentID); err != nil {
		return nil, mapRepoError(err, "department", map[string]any{"department_id": input.DepartmentID})
	}
	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, mapRepoError(err, "category", map[string]any{"category_id": input.CategoryID})
	}
	if category.DepartmentID != input.DepartmentID {
		return nil, apperrors.NewValidationError("category does not belong to department", nil)
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = category.Urgency
	}
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}

	now := s.clock.Now()
	responseDeadline, resolutionDeadline := sla.Deadlines(urgency, now)

	grievance := &domain.Grievance{
		Title:              input.Title,
		Description:        input.Description,
		Location:           input.Location,
		DepartmentID:       input.DepartmentID,
		CategoryID:         input.CategoryID,
		Urgency:            urgency,
		Attachment:         input.Attachment,
		ComplainantName:    input.ComplainantName,
		Email:              input.Email,
		MobileNumber:       input.MobileNumber,
		Status:             domain.GrievanceStatusSubmitted,
		EscalationLevel:    domain.EscalationNone,
		ResponseDeadline:   responseDeadline,
		ResolutionDeadline: resolutionDeadline,
	}

	// Count-then-insert races under concurrent submissions; the unique
	// constraint on ticket_id arbitrates and the loser recounts.
	err = retry.Do(ctx, s.allocAttempts, func(ctx context.Context) error {
		count, err := s.grievances.CountInMonth(ctx, now.Year(), now.Month())
		if err != nil {
			return err
		}
		grievance.TicketID = s.formatTicketID(now, count+1)
		return s.grievances.Create(ctx, grievance)
	}, func(err error) bool {
		return errors.Is(err, repository.ErrDuplicateTicketID)
	})
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			return nil, apperrors.NewAllocationExhausted("failed to allocate a unique ticket id", err)
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventGrievanceSubmitted,
		TicketID: grievance.TicketID,
		Actor:    events.Actor{Type: events.ActorSubmitter, Email: grievance.Email},
		Payload: events.GrievanceSubmittedPayload{
			DepartmentID: grievance.DepartmentID,
			CategoryID:   grievance.CategoryID,
			Urgency:      grievance.Urgency,
			Title:        grievance.Title,
		},
	})

	result := &MutationResult{Grievance: grievance}
	s.notifyOrFlag(ctx, result, mailer.KindTicketConfirmation, []string{grievance.Email}, mailer.MessageData{
		TicketID:        grievance.TicketID,
		ComplainantName: grievance.ComplainantName,
		Urgency:         string(grievance.Urgency),
		ResolveIn:       resolveWindow(grievance.Urgency),
	})
	return result, nil
}

// Assign moves a Submitted, unescalated grievance to In Progress under the
// given worker. The worker work-order email needs the office bearer for
// contact details; when no bearer matches, that email is skipped without
// failing the assignment.
func (s *GrievanceService) Assign(ctx context.Context, ticketID string, workerID int64, bearerEmail string) (*MutationResult, error) {
	grievance, err := s.grievances.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, mapRepoError(err, "grievance", map[string]any{"ticket_id": ticketID})
	}
	if grievance.Locked() {
		return nil, apperrors.NewConflict("grievance is escalated and locked from assignment", map[string]any{
			"ticket_id":        ticketID,
			"escalation_level": grievance.EscalationLevel,
		})
	}
	if grievance.Status != domain.GrievanceStatusSubmitted {
		return nil, apperrors.NewConflict("grievance is not awaiting assignment", map[string]any{
			"ticket_id": ticketID,
			"status":    grievance.Status,
		})
	}

	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		return nil, mapRepoError(err, "worker", map[string]any{"worker_id": workerID})
	}

	grievance.Status = domain.GrievanceStatusInProgress
	grievance.AssignedWorkerID = &worker.ID
	if err := s.grievances.Update(ctx, grievance); err != nil {
		return nil, mapRepoError(err, "grievance", map[string]any{"ticket_id": ticketID})
	}

	s.publish(ctx, events.Event{
		Type:     events.EventGrievanceAssigned,
		TicketID: grievance.TicketID,
		Actor:    events.Actor{Type: events.ActorStaff, Email: bearerEmail},
		Payload: events.GrievanceAssignedPayload{
			WorkerID:   worker.ID,
			WorkerName: worker.Name,
		},
	})

	result := &MutationResult{Grievance: grievance}
	s.notifyOrFlag(ctx, result, mailer.KindAssignmentToUser, []string{grievance.Email}, mailer.MessageData{
		TicketID:        grievance.TicketID,
		ComplainantName: grievance.ComplainantName,
		WorkerName:      worker.Name,
		WorkerPhone:     worker.PhoneNumber,
	})

	bearer, err := s.bearers.GetByEmail(ctx, bearerEmail)
	switch {
	case err == nil:
		s.notifyOrFlag(ctx, result, mailer.KindAssignmentToWorker, []string{worker.Email}, mailer.MessageData{
			TicketID:   grievance.TicketID,
			Title:      grievance.Title,
			WorkerName: worker.Name,
			ActorEmail: bearer.Email,
		})
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Info("no office bearer found, skipping worker email",
			zap.String("ticket_id", ticketID),
			zap.String("bearer_email", bearerEmail))
	default:
		s.logger.Warn("office bearer lookup failed, skipping worker email",
			zap.String("ticket_id", ticketID),
			zap.Error(err))
	}
	return result, nil
}

// Resolve marks an unlocked grievance as resolved and tells the submitter.
func (s *GrievanceService) Resolve(ctx context.Context, ticketID string) (*MutationResult, error) {
	grievance, err := s.grievances.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, mapRepoError(err, "grievance", map[string]any{"ticket_id": ticketID})
	}
	if grievance.Locked() {
		return nil, apperrors.NewConflict("grievance is escalated; use revert before resolving", map[string]any{
			"ticket_id":        ticketID,
			"escalation_level": grievance.EscalationLevel,
		})
	}
	if grievance.Status == domain.GrievanceStatusResolved {
		return nil, apperrors.NewConflict("grievance already resolved", map[string]any{"ticket_id": ticketID})
	}

	previous := grievance.Status
	grievance.Status = domain.GrievanceStatusResolved
	grievance.AssignedWorkerID = nil
	if err := s.grievances.Update(ctx, grievance); err != nil {
		return nil, mapRepoError(err, "grievance", map[string]any{"ticket_id": ticketID})
	}

	s.publish(ctx, events.Event{
		Type:     events.EventGrievanceResolved,
		TicketID: grievance.TicketID,
		Actor:    events.Actor{Type: events.ActorStaff},
		Payload:  events.GrievanceResolvedPayload{PreviousStatus: previous},
	})

	result := &MutationResult{Grievance: grievance}
	s.notifyOrFlag(ctx, result, mailer.KindResolution, []string{grievance.Email}, mailer.MessageData{
		TicketID:        grievance.TicketID,
		ComplainantName: grievance.ComplainantName,
	})
	return result, nil
}

// Revert returns a level-1 escalated grievance to the Submitted state with
// fresh deadlines derived from the supplied day count, and notifies the
// department's office bearers.
func (s *GrievanceService) Revert(ctx context.Context, ticketID string, newResolutionDays int, comment, authorityEmail string) (*MutationResult, error) {
	if err := validateRevertInput(comment, newResolutionDays); err != nil {
		return nil, err
	}
	grievance, err := s.grievances.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, mapRepoError(err, "grievance", map[string]any{"ticket_id": ticketID})
	}
	if grievance.EscalationLevel != domain.EscalationLevel1 {
		return nil, apperrors.NewConflict("only level-1 escalated grievances can be reverted", map[string]any{
			"ticket_id":        ticketID,
			"escalation_level": grievance.EscalationLevel,
		})
	}

	now := s.clock.Now()
	grievance.ResponseDeadline, grievance.ResolutionDeadline = sla.DeadlinesForDays(newResolutionDays, now)
	grievance.Status = domain.GrievanceStatusSubmitted
	grievance.EscalationLevel = domain.EscalationNone
	grievance.AssignedWorkerID = nil
	if err := s.grievances.Update(ctx, grievance); err != nil {
		return nil, mapRepoError(err, "grievance", map[string]any{"ticket_id": ticketID})
	}

	s.publish(ctx, events.Event{
		Type:     events.EventGrievanceReverted,
		TicketID: grievance.TicketID,
		Actor:    events.Actor{Type: events.ActorStaff, Email: authorityEmail},
		Payload: events.GrievanceRevertedPayload{
			ToLevel:            domain.EscalationNone,
			Comment:            comment,
			ResolutionDeadline: grievance.ResolutionDeadline,
		},
	})

	result := &MutationResult{Grievance: grievance}
	department, err := s.departments.GetByID(ctx, grievance.DepartmentID)
	departmentName := ""
	if err == nil {
		departmentName = department.Name
	}
	s.notifyOrFlag(ctx, result, mailer.KindRevertToBearers, s.bearerEmails(ctx, grievance.DepartmentID), mailer.MessageData{
		TicketID:       grievance.TicketID,
		Comment:        comment,
		DepartmentName: departmentName,
		ActorEmail:     authorityEmail,
	})
	return result, nil
}

// RevertToLevel1 returns a level-2 grievance to level 1 with fresh deadlines
// and notifies every approving authority.
func (s *GrievanceService) RevertToLevel1(ctx context.Context, ticketID string, newResolutionDays int, comment, adminEmail string) (*MutationResult, error) {
	if err := validateRevertInput(comment, newResolutionDays); err != nil {
		return nil, err
	}
	grievance, err := s.grievances.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, mapRepoError(err, "grievance", map[string]any{"ticket_id": ticketID})
	}
	if grievance.EscalationLevel != domain.EscalationLevel2 {
		return nil, apperrors.NewConflict("only level-2 escalated grievances can be returned to level 1", map[string]any{
			"ticket_id":        ticketID,
			"escalation_level": grievance.EscalationLevel,
		})
	}

	now := s.clock.Now()
	grievance.ResponseDeadline, grievance.ResolutionDeadline = sla.DeadlinesForDays(newResolutionDays, now)
	grievance.EscalationLevel = domain.EscalationLevel1
	if err := s.grievances.Update(ctx, grievance); err != nil {
		return nil, mapRepoError(err, "grievance", map[string]any{"ticket_id": ticketID})
	}

	s.publish(ctx, events.Event{
		Type:     events.EventGrievanceRevertedToLevel1,
		TicketID: grievance.TicketID,
		Actor:    events.Actor{Type: events.ActorStaff, Email: adminEmail},
		Payload: events.GrievanceRevertedPayload{
			ToLevel:            domain.EscalationLevel1,
			Comment:            comment,
			ResolutionDeadline: grievance.ResolutionDeadline,
		},
	})

	result := &MutationResult{Grievance: grievance}
	s.notifyOrFlag(ctx, result, mailer.KindRevertToAuthorities, s.authorityEmails(ctx), mailer.MessageData{
		TicketID:   grievance.TicketID,
		Comment:    comment,
		ActorEmail: adminEmail,
	})
	return result, nil
}

// Transfer moves a grievance to another department, resetting it to
// Submitted at level 0 with deadlines recomputed from the grievance's
// original urgency, and notifies the destination's office bearers.
func (s *GrievanceService) Transfer(ctx context.Context, ticketID string, newDepartmentID int64) (*MutationResult, error) {
	if strings.TrimSpace(ticketID) == "" || newDepartmentID == 0 {
		return nil, apperrors.NewValidationError("ticket id and destination department are required", nil)
	}
	grievance, err := s.grievances.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, mapRepoError(err, "grievance", map[string]any{"ticket_id": ticketID})
	}
	department, err := s.departments.GetByID(ctx, newDepartmentID)
	if err != nil {
		return nil, mapRepoError(err, "department", map[string]any{"department_id": newDepartmentID})
	}

	fromDepartment := grievance.DepartmentID
	now := s.clock.Now()
	grievance.ResponseDeadline, grievance.ResolutionDeadline = sla.Deadlines(grievance.Urgency, now)
	grievance.DepartmentID = department.ID
	grievance.Status = domain.GrievanceStatusSubmitted
	grievance.EscalationLevel = domain.EscalationNone
	grievance.AssignedWorkerID = nil
	if err := s.grievances.Update(ctx, grievance); err != nil {
		return nil, mapRepoError(err, "grievance", map[string]any{"ticket_id": ticketID})
	}

	s.publish(ctx, events.Event{
		Type:     events.EventGrievanceTransferred,
		TicketID: grievance.TicketID,
		Actor:    events.Actor{Type: events.ActorStaff},
		Payload: events.GrievanceTransferredPayload{
			FromDepartmentID: fromDepartment,
			ToDepartmentID:   department.ID,
		},
	})

	result := &MutationResult{Grievance: grievance}
	s.notifyOrFlag(ctx, result, mailer.KindTransferNotice, s.bearerEmails(ctx, department.ID), mailer.MessageData{
		TicketID:       grievance.TicketID,
		Title:          grievance.Title,
		DepartmentName: department.Name,
	})
	return result, nil
}

// Track returns lifecycle fields for one ticket.
func (s *GrievanceService) Track(ctx context.Context, ticketID string) (*domain.Grievance, error) {
	grievance, err := s.grievances.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, mapRepoError(err, "grievance", map[string]any{"ticket_id": ticketID})
	}
	return grievance, nil
}

// HistoryByEmail lists a submitter's grievances, newest first.
func (s *GrievanceService) HistoryByEmail(ctx context.Context, email string) ([]domain.Grievance, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("email is required", nil)
	}
	grievances, err := s.grievances.ListByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return grievances, nil
}

// ListByDepartment lists a department's grievances with joined names.
func (s *GrievanceService) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.GrievanceDetails, error) {
	details, err := s.grievances.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return details, nil
}

// ListAll lists every grievance for the admin console.
func (s *GrievanceService) ListAll(ctx context.Context) ([]domain.GrievanceDetails, error) {
	details, err := s.grievances.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return details, nil
}

// ListEscalated lists grievances at the given escalation level.
func (s *GrievanceService) ListEscalated(ctx context.Context, level int) ([]domain.GrievanceDetails, error) {
	if level < domain.EscalationLevel1 || level > domain.EscalationLevel2 {
		return nil, apperrors.NewValidationError("escalation level must be 1 or 2", nil)
	}
	details, err := s.grievances.ListByEscalationLevel(ctx, level)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return details, nil
}

// DashboardStats aggregates grievance counts for the admin dashboard.
func (s *GrievanceService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.grievances.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

func (s *GrievanceService) formatTicketID(now time.Time, serial int) string {
	return fmt.Sprintf("%s/%d/%02d/%04d", s.orgPrefix, now.Year(), int(now.Month()), serial)
}

func validateRevertInput(comment string, days int) error {
	if strings.TrimSpace(comment) == "" || days <= 0 {
		return apperrors.NewValidationError("comment and a positive number of resolution days are required", nil)
	}
	return nil
}

func resolveWindow(urgency domain.Urgency) string {
	switch urgency {
	case domain.UrgencyEmergency:
		return "24 hours"
	case domain.UrgencyHigh:
		return "3 working days"
	default:
		return "5 working days"
	}
}

func (s *GrievanceService) bearerEmails(ctx context.Context, departmentID int64) []string {
	bearers, err := s.bearers.ListByDepartment(ctx, departmentID)
	if err != nil {
		s.logger.Warn("office bearer listing failed", zap.Int64("department_id", departmentID), zap.Error(err))
		return nil
	}
	emails := make([]string, 0, len(bearers))
	for _, bearer := range bearers {
		emails = append(emails, bearer.Email)
	}
	return emails
}

func (s *GrievanceService) authorityEmails(ctx context.Context) []string {
	authorities, err := s.authorities.ListAll(ctx)
	if err != nil {
		s.logger.Warn("authority listing failed", zap.Error(err))
		return nil
	}
	emails := make([]string, 0, len(authorities))
	for _, authority := range authorities {
		emails = append(emails, authority.Email)
	}
	return emails
}

func (s *GrievanceService) notifyOrFlag(ctx context.Context, result *MutationResult, kind mailer.Kind, recipients []string, data mailer.MessageData) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, kind, recipients, data); err != nil {
		result.NotificationFailed = true
	}
}

func (s *GrievanceService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func mapRepoError(err error, resource string, details map[string]any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, details)
	}
	return apperrors.MapError(err)
}
