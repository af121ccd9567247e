package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
	"github.com/campus-helpdesk/grievance-service/internal/events"
)

func seedGrievance(t *testing.T, repo *fakeGrievanceRepo, ticketID string, level int, response, resolution time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), &domain.Grievance{
		TicketID:           ticketID,
		Title:              "seed",
		Description:        "seed",
		DepartmentID:       1,
		CategoryID:         10,
		Urgency:            domain.UrgencyNormal,
		Email:              "seed@student.edu",
		Status:             domain.GrievanceStatusSubmitted,
		EscalationLevel:    level,
		ResponseDeadline:   response,
		ResolutionDeadline: resolution,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", ticketID, err)
	}
}

func TestScanPromotesOverdueGrievances(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	repo := newFakeGrievanceRepo()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	// Response breached at level 0: promote to 1.
	seedGrievance(t, repo, "lnm/2025/06/0001", domain.EscalationNone, past, future)
	// Resolution breached at level 1: promote to 2.
	seedGrievance(t, repo, "lnm/2025/06/0002", domain.EscalationLevel1, past, past)
	// Nothing breached: untouched.
	seedGrievance(t, repo, "lnm/2025/06/0003", domain.EscalationNone, future, future)
	// Level 2 is terminal for the sweep.
	seedGrievance(t, repo, "lnm/2025/06/0004", domain.EscalationLevel2, past, past)

	dispatcher := events.NewInMemoryDispatcher()
	var escalated []events.Event
	dispatcher.Subscribe(events.EventGrievanceEscalated, func(_ context.Context, event events.Event) error {
		escalated = append(escalated, event)
		return nil
	})

	svc := NewEscalationService(repo, dispatcher, zap.NewNop())
	promoted, err := svc.Scan(context.Background(), now)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(promoted) != 2 {
		t.Fatalf("promoted %v, want two tickets", promoted)
	}

	first, _ := repo.GetByTicketID(context.Background(), "lnm/2025/06/0001")
	if first.EscalationLevel != domain.EscalationLevel1 {
		t.Errorf("ticket 0001 level = %d, want 1", first.EscalationLevel)
	}
	second, _ := repo.GetByTicketID(context.Background(), "lnm/2025/06/0002")
	if second.EscalationLevel != domain.EscalationLevel2 {
		t.Errorf("ticket 0002 level = %d, want 2", second.EscalationLevel)
	}
	untouched, _ := repo.GetByTicketID(context.Background(), "lnm/2025/06/0003")
	if untouched.EscalationLevel != domain.EscalationNone {
		t.Errorf("ticket 0003 level = %d, want 0", untouched.EscalationLevel)
	}
	terminal, _ := repo.GetByTicketID(context.Background(), "lnm/2025/06/0004")
	if terminal.EscalationLevel != domain.EscalationLevel2 {
		t.Errorf("ticket 0004 level = %d, want 2", terminal.EscalationLevel)
	}
	if len(escalated) != 2 {
		t.Errorf("published %d escalation events, want 2", len(escalated))
	}
}

func TestScanIsIdempotentAcrossRepeats(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	repo := newFakeGrievanceRepo()
	past := now.Add(-time.Hour)
	seedGrievance(t, repo, "lnm/2025/06/0001", domain.EscalationNone, past, now.Add(time.Hour))

	svc := NewEscalationService(repo, nil, zap.NewNop())
	first, err := svc.Scan(context.Background(), now)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first scan promoted %v", first)
	}

	// The record is now at level 1 with an unbreached resolution deadline,
	// so a repeated sweep finds no candidate.
	second, err := svc.Scan(context.Background(), now)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second scan promoted %v, want none", second)
	}

	g, _ := repo.GetByTicketID(context.Background(), "lnm/2025/06/0001")
	if g.EscalationLevel != domain.EscalationLevel1 {
		t.Errorf("level = %d, want 1 after repeated sweeps", g.EscalationLevel)
	}
}

func TestScanSkipsResolvedGrievances(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	repo := newFakeGrievanceRepo()
	past := now.Add(-time.Hour)
	seedGrievance(t, repo, "lnm/2025/06/0001", domain.EscalationNone, past, past)
	g, _ := repo.GetByTicketID(context.Background(), "lnm/2025/06/0001")
	g.Status = domain.GrievanceStatusResolved
	if err := repo.Update(context.Background(), g); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewEscalationService(repo, nil, zap.NewNop())
	promoted, err := svc.Scan(context.Background(), now)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(promoted) != 0 {
		t.Fatalf("promoted %v, want none", promoted)
	}
}
