package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/campus-helpdesk/grievance-service/internal/config"
	"github.com/campus-helpdesk/grievance-service/internal/domain"
	"github.com/campus-helpdesk/grievance-service/internal/mailer"
	"github.com/campus-helpdesk/grievance-service/internal/repository"
	"github.com/campus-helpdesk/grievance-service/internal/sla"
	apperrors "github.com/campus-helpdesk/grievance-service/pkg/util/errorutil"
)

// fixedClock pins time for deterministic deadlines and ticket serials.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeGrievanceRepo struct {
	records     map[string]*domain.Grievance
	nextID      int64
	failCreates int
	createCalls int
}

func newFakeGrievanceRepo() *fakeGrievanceRepo {
	return &fakeGrievanceRepo{records: make(map[string]*domain.Grievance)}
}

func (r *fakeGrievanceRepo) Create(_ context.Context, g *domain.Grievance) error {
	r.createCalls++
	if r.failCreates > 0 {
		r.failCreates--
		return repository.ErrDuplicateTicketID
	}
	if _, exists := r.records[g.TicketID]; exists {
		return repository.ErrDuplicateTicketID
	}
	r.nextID++
	g.ID = r.nextID
	copied := *g
	r.records[g.TicketID] = &copied
	return nil
}

func (r *fakeGrievanceRepo) Update(_ context.Context, g *domain.Grievance) error {
	if _, exists := r.records[g.TicketID]; !exists {
		return repository.ErrNotFound
	}
	copied := *g
	r.records[g.TicketID] = &copied
	return nil
}

func (r *fakeGrievanceRepo) GetByTicketID(_ context.Context, ticketID string) (*domain.Grievance, error) {
	g, exists := r.records[ticketID]
	if !exists {
		return nil, repository.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGrievanceRepo) CountInMonth(_ context.Context, year int, month time.Month) (int, error) {
	count := 0
	for _, g := range r.records {
		if strings.Contains(g.TicketID, "/"+monthPrefix(year, month)+"/") {
			count++
		}
	}
	return count, nil
}

func (r *fakeGrievanceRepo) ListByEmail(_ context.Context, email string) ([]domain.Grievance, error) {
	var out []domain.Grievance
	for _, g := range r.records {
		if g.Email == email {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeGrievanceRepo) ListByDepartment(_ context.Context, departmentID int64) ([]domain.GrievanceDetails, error) {
	var out []domain.GrievanceDetails
	for _, g := range r.records {
		if g.DepartmentID == departmentID {
			out = append(out, domain.GrievanceDetails{Grievance: *g})
		}
	}
	return out, nil
}

func (r *fakeGrievanceRepo) ListAll(context.Context) ([]domain.GrievanceDetails, error) {
	var out []domain.GrievanceDetails
	for _, g := range r.records {
		out = append(out, domain.GrievanceDetails{Grievance: *g})
	}
	return out, nil
}

func (r *fakeGrievanceRepo) ListByEscalationLevel(_ context.Context, level int) ([]domain.GrievanceDetails, error) {
	var out []domain.GrievanceDetails
	for _, g := range r.records {
		if g.EscalationLevel == level {
			out = append(out, domain.GrievanceDetails{Grievance: *g})
		}
	}
	return out, nil
}

func (r *fakeGrievanceRepo) ListEscalationCandidates(_ context.Context, now time.Time) ([]domain.Grievance, error) {
	var out []domain.Grievance
	for _, g := range r.records {
		if g.Status == domain.GrievanceStatusResolved {
			continue
		}
		if (g.EscalationLevel == domain.EscalationNone && g.ResponseDeadline.Before(now)) ||
			(g.EscalationLevel == domain.EscalationLevel1 && g.ResolutionDeadline.Before(now)) {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeGrievanceRepo) PromoteEscalation(_ context.Context, ticketID string, fromLevel int) (bool, error) {
	g, exists := r.records[ticketID]
	if !exists || g.EscalationLevel != fromLevel || g.EscalationLevel >= domain.EscalationLevel2 {
		return false, nil
	}
	g.EscalationLevel++
	return true, nil
}

func (r *fakeGrievanceRepo) Stats(context.Context) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{}, nil
}

type fakeDepartmentRepo struct{ records map[int64]domain.Department }

func (r *fakeDepartmentRepo) Create(_ context.Context, d *domain.Department) error {
	r.records[d.ID] = *d
	return nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	d, exists := r.records[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDepartmentRepo) List(context.Context) ([]domain.Department, error) { return nil, nil }
func (r *fakeDepartmentRepo) DeleteByID(context.Context, int64) error           { return nil }

type fakeCategoryRepo struct{ records map[int64]domain.Category }

func (r *fakeCategoryRepo) Create(context.Context, *domain.Category) error { return nil }

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	c, exists := r.records[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) ListByDepartment(context.Context, int64) ([]domain.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) ListAll(context.Context) ([]repository.CategoryWithDepartment, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) DeleteByID(context.Context, int64) error { return nil }

type fakeWorkerRepo struct{ records map[int64]domain.Worker }

func (r *fakeWorkerRepo) Create(context.Context, *domain.Worker) error { return nil }

func (r *fakeWorkerRepo) GetByID(_ context.Context, id int64) (*domain.Worker, error) {
	w, exists := r.records[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r *fakeWorkerRepo) ListByDepartment(context.Context, int64) ([]domain.Worker, error) {
	return nil, nil
}

func (r *fakeWorkerRepo) DeleteByID(context.Context, int64) error { return nil }

type fakeBearerRepo struct{ records map[string]domain.OfficeBearer }

func (r *fakeBearerRepo) Create(context.Context, *domain.OfficeBearer) error { return nil }

func (r *fakeBearerRepo) GetByID(context.Context, int64) (*domain.OfficeBearer, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeBearerRepo) GetByEmail(_ context.Context, email string) (*domain.OfficeBearer, error) {
	b, exists := r.records[email]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBearerRepo) ListByDepartment(_ context.Context, departmentID int64) ([]domain.OfficeBearer, error) {
	var out []domain.OfficeBearer
	for _, b := range r.records {
		if b.DepartmentID == departmentID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBearerRepo) ListAll(context.Context) ([]domain.OfficeBearer, error) {
	var out []domain.OfficeBearer
	for _, b := range r.records {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBearerRepo) DeleteByID(context.Context, int64) error { return nil }

type fakeAuthorityRepo struct{ records []domain.ApprovingAuthority }

func (r *fakeAuthorityRepo) Create(context.Context, *domain.ApprovingAuthority) error { return nil }

func (r *fakeAuthorityRepo) GetByID(context.Context, int64) (*domain.ApprovingAuthority, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeAuthorityRepo) GetByEmail(context.Context, string) (*domain.ApprovingAuthority, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeAuthorityRepo) ListAll(context.Context) ([]domain.ApprovingAuthority, error) {
	return r.records, nil
}

func (r *fakeAuthorityRepo) DeleteByID(context.Context, int64) error { return nil }

type sentMail struct {
	kind       mailer.Kind
	recipients []string
	data       mailer.MessageData
}

type fakeNotifier struct {
	sent    []sentMail
	failAll bool
}

func (n *fakeNotifier) Notify(_ context.Context, kind mailer.Kind, recipients []string, data mailer.MessageData) error {
	n.sent = append(n.sent, sentMail{kind: kind, recipients: recipients, data: data})
	if n.failAll {
		return errors.New("smtp unavailable")
	}
	return nil
}

func monthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%d/%02d", year, int(month))
}

type fixture struct {
	service     *GrievanceService
	grievances  *fakeGrievanceRepo
	bearers     *fakeBearerRepo
	authorities *fakeAuthorityRepo
	workers     *fakeWorkerRepo
	notifier    *fakeNotifier
	now         time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	// A Monday, clear of the rest day.
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	grievances := newFakeGrievanceRepo()
	departments := &fakeDepartmentRepo{records: map[int64]domain.Department{
		1: {ID: 1, Name: "Maintenance"},
		2: {ID: 2, Name: "Sanitation"},
	}}
	categories := &fakeCategoryRepo{records: map[int64]domain.Category{
		10: {ID: 10, Name: "Electrical", DepartmentID: 1, Urgency: domain.UrgencyHigh},
		11: {ID: 11, Name: "Plumbing", DepartmentID: 1, Urgency: domain.UrgencyNormal},
	}}
	workers := &fakeWorkerRepo{records: map[int64]domain.Worker{
		100: {ID: 100, Name: "Ravi", Email: "ravi@campus.edu", PhoneNumber: "555-0100", DepartmentID: 1},
	}}
	bearers := &fakeBearerRepo{records: map[string]domain.OfficeBearer{
		"bearer@campus.edu": {ID: 1, Name: "Bearer", Email: "bearer@campus.edu", Role: domain.StaffRoleOfficeBearer, DepartmentID: 1},
		"two@campus.edu":    {ID: 2, Name: "Two", Email: "two@campus.edu", Role: domain.StaffRoleOfficeBearer, DepartmentID: 2},
	}}
	authorities := &fakeAuthorityRepo{records: []domain.ApprovingAuthority{
		{ID: 1, Name: "Authority", Email: "authority@campus.edu"},
	}}
	notifier := &fakeNotifier{}

	svc := NewGrievanceService(config.TicketConfig{OrgPrefix: "lnm", AllocAttempts: 5}, GrievanceDependencies{
		GrievanceRepo:  grievances,
		DepartmentRepo: departments,
		CategoryRepo:   categories,
		WorkerRepo:     workers,
		BearerRepo:     bearers,
		AuthorityRepo:  authorities,
		Notifier:       notifier,
		Clock:          fixedClock{now: now},
		Logger:         zap.NewNop(),
	})
	return &fixture{
		service:     svc,
		grievances:  grievances,
		bearers:     bearers,
		authorities: authorities,
		workers:     workers,
		notifier:    notifier,
		now:         now,
	}
}

func submitInput() SubmitInput {
	return SubmitInput{
		Title:           "Broken light",
		Description:     "Corridor light is out",
		Location:        "Block A",
		DepartmentID:    1,
		CategoryID:      10,
		ComplainantName: "Asha",
		Email:           "asha@student.edu",
		MobileNumber:    "555-0199",
	}
}

func TestSubmitAllocatesSequentialTicketIDs(t *testing.T) {
	f := newFixture(t)

	first, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if first.Grievance.TicketID != "lnm/2025/06/0001" {
		t.Errorf("first ticket id = %q, want lnm/2025/06/0001", first.Grievance.TicketID)
	}
	if second.Grievance.TicketID != "lnm/2025/06/0002" {
		t.Errorf("second ticket id = %q, want lnm/2025/06/0002", second.Grievance.TicketID)
	}
	if first.NotificationFailed {
		t.Error("notification should have succeeded")
	}
}

func TestSubmitUsesCategoryDefaultUrgencyAndDeadlines(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	g := result.Grievance
	if g.Urgency != domain.UrgencyHigh {
		t.Fatalf("urgency = %q, want category default High", g.Urgency)
	}
	wantResponse, wantResolution := sla.Deadlines(domain.UrgencyHigh, f.now)
	if !g.ResponseDeadline.Equal(wantResponse) {
		t.Errorf("response deadline = %v, want %v", g.ResponseDeadline, wantResponse)
	}
	if !g.ResolutionDeadline.Equal(wantResolution) {
		t.Errorf("resolution deadline = %v, want %v", g.ResolutionDeadline, wantResolution)
	}
	if g.Status != domain.GrievanceStatusSubmitted || g.EscalationLevel != domain.EscalationNone {
		t.Errorf("new grievance state = %q level %d", g.Status, g.EscalationLevel)
	}
}

func TestSubmitRetriesOnDuplicateTicketID(t *testing.T) {
	f := newFixture(t)
	f.grievances.failCreates = 2

	result, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if f.grievances.createCalls != 3 {
		t.Errorf("create calls = %d, want 3", f.grievances.createCalls)
	}
	if result.Grievance.TicketID == "" {
		t.Error("ticket id not allocated")
	}
}

func TestSubmitAllocationExhausted(t *testing.T) {
	f := newFixture(t)
	f.grievances.failCreates = 100

	_, err := f.service.Submit(context.Background(), submitInput())
	if err == nil {
		t.Fatal("expected allocation failure")
	}
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code != "ALLOCATION_EXHAUSTED" {
		t.Errorf("code = %q, want ALLOCATION_EXHAUSTED", domainErr.Code)
	}
	if f.grievances.createCalls != 5 {
		t.Errorf("create calls = %d, want 5", f.grievances.createCalls)
	}
}

func TestSubmitRejectsCategoryFromOtherDepartment(t *testing.T) {
	f := newFixture(t)

	input := submitInput()
	input.DepartmentID = 2
	if _, err := f.service.Submit(context.Background(), input); err == nil {
		t.Fatal("expected validation error for mismatched category")
	}
}

func TestSubmitNotificationFailureDegradesResult(t *testing.T) {
	f := newFixture(t)
	f.notifier.failAll = true

	result, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.NotificationFailed {
		t.Error("notification failure not reported")
	}
	if _, err := f.grievances.GetByTicketID(context.Background(), result.Grievance.TicketID); err != nil {
		t.Errorf("grievance not committed: %v", err)
	}
}

func TestAssignHappyPath(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	f.notifier.sent = nil

	result, err := f.service.Assign(context.Background(), submitted.Grievance.TicketID, 100, "bearer@campus.edu")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	g := result.Grievance
	if g.Status != domain.GrievanceStatusInProgress {
		t.Errorf("status = %q, want In Progress", g.Status)
	}
	if g.AssignedWorkerID == nil || *g.AssignedWorkerID != 100 {
		t.Error("worker not recorded")
	}
	if len(f.notifier.sent) != 2 {
		t.Fatalf("sent %d notifications, want submitter and worker", len(f.notifier.sent))
	}
	if f.notifier.sent[0].kind != mailer.KindAssignmentToUser || f.notifier.sent[1].kind != mailer.KindAssignmentToWorker {
		t.Errorf("notification kinds = %v %v", f.notifier.sent[0].kind, f.notifier.sent[1].kind)
	}
}

func TestAssignSkipsWorkerMailWhenBearerUnknown(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	f.notifier.sent = nil

	result, err := f.service.Assign(context.Background(), submitted.Grievance.TicketID, 100, "ghost@campus.edu")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if result.NotificationFailed {
		t.Error("missing bearer must not degrade the result")
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("sent %d notifications, want submitter only", len(f.notifier.sent))
	}
}

func TestAssignRejectedWhileEscalated(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ticketID := submitted.Grievance.TicketID
	stored, _ := f.grievances.GetByTicketID(context.Background(), ticketID)
	stored.EscalationLevel = domain.EscalationLevel1
	if err := f.grievances.Update(context.Background(), stored); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err = f.service.Assign(context.Background(), ticketID, 100, "bearer@campus.edu")
	if err == nil {
		t.Fatal("expected conflict for escalated grievance")
	}
	after, _ := f.grievances.GetByTicketID(context.Background(), ticketID)
	if after.Status != domain.GrievanceStatusSubmitted || after.AssignedWorkerID != nil {
		t.Error("rejected assignment must not mutate the record")
	}
}

func TestResolveClearsWorker(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ticketID := submitted.Grievance.TicketID
	if _, err := f.service.Assign(context.Background(), ticketID, 100, "bearer@campus.edu"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	result, err := f.service.Resolve(context.Background(), ticketID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Grievance.Status != domain.GrievanceStatusResolved {
		t.Errorf("status = %q", result.Grievance.Status)
	}
	if result.Grievance.AssignedWorkerID != nil {
		t.Error("resolved grievance must not retain a worker")
	}

	if _, err := f.service.Resolve(context.Background(), ticketID); err == nil {
		t.Fatal("resolving twice must conflict")
	}
}

func TestRevertRequiresLevel1(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err = f.service.Revert(context.Background(), submitted.Grievance.TicketID, 3, "needs rework", "authority@campus.edu")
	if err == nil {
		t.Fatal("expected conflict for unescalated grievance")
	}
}

func TestRevertValidatesInput(t *testing.T) {
	f := newFixture(t)

	if _, err := f.service.Revert(context.Background(), "lnm/2025/06/0001", 0, "comment", "a@b.c"); err == nil {
		t.Error("zero days must be rejected")
	}
	if _, err := f.service.Revert(context.Background(), "lnm/2025/06/0001", 3, "  ", "a@b.c"); err == nil {
		t.Error("blank comment must be rejected")
	}
	if f.grievances.createCalls != 0 {
		t.Error("validation must run before any store access")
	}
}

func TestRevertResetsStateAndNotifiesBearers(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ticketID := submitted.Grievance.TicketID
	stored, _ := f.grievances.GetByTicketID(context.Background(), ticketID)
	stored.Status = domain.GrievanceStatusInProgress
	stored.EscalationLevel = domain.EscalationLevel1
	workerID := int64(100)
	stored.AssignedWorkerID = &workerID
	if err := f.grievances.Update(context.Background(), stored); err != nil {
		t.Fatalf("seed: %v", err)
	}
	f.notifier.sent = nil

	result, err := f.service.Revert(context.Background(), ticketID, 3, "start over", "authority@campus.edu")
	if err != nil {
		t.Fatalf("revert: %v", err)
	}
	g := result.Grievance
	if g.Status != domain.GrievanceStatusSubmitted || g.EscalationLevel != domain.EscalationNone || g.AssignedWorkerID != nil {
		t.Errorf("reverted state = %q level %d worker %v", g.Status, g.EscalationLevel, g.AssignedWorkerID)
	}
	wantResponse, wantResolution := sla.DeadlinesForDays(3, f.now)
	if !g.ResponseDeadline.Equal(wantResponse) || !g.ResolutionDeadline.Equal(wantResolution) {
		t.Error("deadlines not recomputed from the granted days")
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].kind != mailer.KindRevertToBearers {
		t.Fatalf("notifications = %v", f.notifier.sent)
	}
	if len(f.notifier.sent[0].recipients) != 1 || f.notifier.sent[0].recipients[0] != "bearer@campus.edu" {
		t.Errorf("recipients = %v, want department bearers", f.notifier.sent[0].recipients)
	}
}

func TestRevertToLevel1KeepsLevel1(t *testing.T) {
	f := newFixture(t)
	submitted, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ticketID := submitted.Grievance.TicketID
	stored, _ := f.grievances.GetByTicketID(context.Background(), ticketID)
	stored.EscalationLevel = domain.EscalationLevel2
	if err := f.grievances.Update(context.Background(), stored); err != nil {
		t.Fatalf("seed: %v", err)
	}
	f.notifier.sent = nil

	result, err := f.service.RevertToLevel1(context.Background(), ticketID, 2, "authority to retry", "admin@campus.edu")
	if err != nil {
		t.Fatalf("revert to level 1: %v", err)
	}
	if result.Grievance.EscalationLevel != domain.EscalationLevel1 {
		t.Errorf("level = %d, want 1", result.Grievance.EscalationLevel)
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].kind != mailer.KindRevertToAuthorities {
		t.Fatalf("notifications = %v", f.notifier.sent)
	}
	if len(f.notifier.sent[0].recipients) != 1 || f.notifier.sent[0].recipients[0] != "authority@campus.edu" {
		t.Errorf("recipients = %v, want all authorities", f.notifier.sent[0].recipients)
	}
}

func TestTransferUsesOriginalUrgency(t *testing.T) {
	f := newFixture(t)
	input := submitInput()
	input.Urgency = domain.UrgencyEmergency
	submitted, err := f.service.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	ticketID := submitted.Grievance.TicketID
	stored, _ := f.grievances.GetByTicketID(context.Background(), ticketID)
	stored.Status = domain.GrievanceStatusInProgress
	stored.EscalationLevel = domain.EscalationLevel1
	if err := f.grievances.Update(context.Background(), stored); err != nil {
		t.Fatalf("seed: %v", err)
	}
	f.notifier.sent = nil

	result, err := f.service.Transfer(context.Background(), ticketID, 2)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	g := result.Grievance
	if g.DepartmentID != 2 {
		t.Errorf("department = %d, want 2", g.DepartmentID)
	}
	if g.Status != domain.GrievanceStatusSubmitted || g.EscalationLevel != domain.EscalationNone || g.AssignedWorkerID != nil {
		t.Errorf("transferred state = %q level %d", g.Status, g.EscalationLevel)
	}
	wantResponse, wantResolution := sla.Deadlines(domain.UrgencyEmergency, f.now)
	if !g.ResponseDeadline.Equal(wantResponse) || !g.ResolutionDeadline.Equal(wantResolution) {
		t.Error("deadlines must be recomputed from the original urgency")
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].kind != mailer.KindTransferNotice {
		t.Fatalf("notifications = %v", f.notifier.sent)
	}
	if len(f.notifier.sent[0].recipients) != 1 || f.notifier.sent[0].recipients[0] != "two@campus.edu" {
		t.Errorf("recipients = %v, want destination bearers", f.notifier.sent[0].recipients)
	}
}

func TestTrackUnknownTicket(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Track(context.Background(), "lnm/2025/06/9999")
	if err == nil {
		t.Fatal("expected not found")
	}
	if apperrors.ToDomainError(err).HTTPStatus != 404 {
		t.Errorf("status = %d, want 404", apperrors.ToDomainError(err).HTTPStatus)
	}
}

func TestHistoryByEmail(t *testing.T) {
	f := newFixture(t)
	if _, err := f.service.Submit(context.Background(), submitInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	other := submitInput()
	other.Email = "someone@else.edu"
	if _, err := f.service.Submit(context.Background(), other); err != nil {
		t.Fatalf("submit: %v", err)
	}

	grievances, err := f.service.HistoryByEmail(context.Background(), "asha@student.edu")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(grievances) != 1 {
		t.Fatalf("got %d grievances, want 1", len(grievances))
	}
}
