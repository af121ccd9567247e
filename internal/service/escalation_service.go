package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-helpdesk/grievance-service/internal/domain"
	"github.com/campus-helpdesk/grievance-service/internal/events"
	"github.com/campus-helpdesk/grievance-service/internal/repository"
)

// EscalationService sweeps for grievances whose deadline has passed and
// promotes them one escalation level. Promotion is monotonic: a guarded
// update keyed on the observed level makes repeated or concurrent sweeps
// idempotent, and levels are never lowered here.
type EscalationService struct {
	grievances repository.GrievanceRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewEscalationService constructs the service.
func NewEscalationService(grievances repository.GrievanceRepository, dispatcher events.Dispatcher, logger *zap.Logger) *EscalationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EscalationService{
		grievances: grievances,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Scan promotes every overdue grievance and returns the ticket IDs that were
// actually bumped in this pass. A failure on one record is logged and the
// sweep moves on; the record is retried on the next pass.
func (s *EscalationService) Scan(ctx context.Context, now time.Time) ([]string, error) {
	candidates, err := s.grievances.ListEscalationCandidates(ctx, now)
	if err != nil {
		return nil, err
	}

	var promoted []string
	for _, grievance := range candidates {
		bumped, err := s.grievances.PromoteEscalation(ctx, grievance.TicketID, grievance.EscalationLevel)
		if err != nil {
			s.logger.Error("escalation promotion failed",
				zap.String("ticket_id", grievance.TicketID),
				zap.Int("from_level", grievance.EscalationLevel),
				zap.Error(err))
			continue
		}
		if !bumped {
			// Another sweep got there first.
			continue
		}

		toLevel := grievance.EscalationLevel + 1
		breached := grievance.ResponseDeadline
		if grievance.EscalationLevel == domain.EscalationLevel1 {
			breached = grievance.ResolutionDeadline
		}
		s.logger.Info("grievance escalated",
			zap.String("ticket_id", grievance.TicketID),
			zap.Int("to_level", toLevel))

		if s.dispatcher != nil {
			_ = s.dispatcher.Publish(ctx, events.Event{
				ID:        uuid.NewString(),
				Type:      events.EventGrievanceEscalated,
				TicketID:  grievance.TicketID,
				Actor:     events.Actor{Type: events.ActorSystem},
				Timestamp: now,
				Payload: events.GrievanceEscalatedPayload{
					FromLevel: grievance.EscalationLevel,
					ToLevel:   toLevel,
					Deadline:  breached,
				},
			})
		}
		promoted = append(promoted, grievance.TicketID)
	}
	return promoted, nil
}
