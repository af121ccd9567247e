package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campus-helpdesk/grievance-service/internal/events"
	"github.com/campus-helpdesk/grievance-service/internal/mailer"
)

// Notifier dispatches a templated notification. Implementations must treat
// an empty recipient list as a no-op success and must never panic into the
// calling transition.
type Notifier interface {
	Notify(ctx context.Context, kind mailer.Kind, recipients []string, data mailer.MessageData) error
}

// NotificationService renders templates and hands them to the mail sender.
// A send failure is reported to the caller but the caller's state change is
// already committed; the failure only degrades the response.
type NotificationService struct {
	sender     mailer.Sender
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service. sender may be nil, in which
// case notifications are logged and dropped.
func NewNotificationService(sender mailer.Sender, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		sender:     sender,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Notify renders and sends one notification.
func (n *NotificationService) Notify(ctx context.Context, kind mailer.Kind, recipients []string, data mailer.MessageData) error {
	if len(recipients) == 0 {
		n.logger.Debug("notification skipped, no recipients",
			zap.String("kind", string(kind)),
			zap.String("ticket_id", data.TicketID))
		return nil
	}

	subject, body, err := mailer.Render(kind, data)
	if err != nil {
		n.logger.Error("notification template render failed",
			zap.String("kind", string(kind)),
			zap.String("ticket_id", data.TicketID),
			zap.Error(err))
		return err
	}

	if n.sender == nil {
		n.logger.Info("notification sender not configured, dropping",
			zap.String("kind", string(kind)),
			zap.String("ticket_id", data.TicketID),
			zap.Int("recipients", len(recipients)))
		return nil
	}

	if err := n.sender.Send(recipients, subject, body); err != nil {
		n.logger.Warn("notification send failed",
			zap.String("kind", string(kind)),
			zap.String("ticket_id", data.TicketID),
			zap.Error(err))
		return err
	}
	return nil
}

// RegisterHandlers subscribes audit handlers to domain events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventGrievanceSubmitted, n.logEvent)
	n.dispatcher.Subscribe(events.EventGrievanceAssigned, n.logEvent)
	n.dispatcher.Subscribe(events.EventGrievanceResolved, n.logEvent)
	n.dispatcher.Subscribe(events.EventGrievanceEscalated, n.logEvent)
	n.dispatcher.Subscribe(events.EventGrievanceReverted, n.logEvent)
	n.dispatcher.Subscribe(events.EventGrievanceRevertedToLevel1, n.logEvent)
	n.dispatcher.Subscribe(events.EventGrievanceTransferred, n.logEvent)
}

func (n *NotificationService) logEvent(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("ticket_id", event.TicketID),
		zap.String("actor", string(event.Actor.Type)),
		zap.Any("payload", event.Payload))
	return nil
}
