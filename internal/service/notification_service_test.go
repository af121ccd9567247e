package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/campus-helpdesk/grievance-service/internal/mailer"
)

type fakeSender struct {
	to      [][]string
	subject string
	err     error
}

func (s *fakeSender) Send(to []string, subject, _ string) error {
	s.to = append(s.to, to)
	s.subject = subject
	return s.err
}

func TestNotifyEmptyRecipientsIsNoop(t *testing.T) {
	sender := &fakeSender{}
	svc := NewNotificationService(sender, nil, zap.NewNop())

	err := svc.Notify(context.Background(), mailer.KindTicketConfirmation, nil, mailer.MessageData{TicketID: "lnm/2025/06/0001"})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sender.to) != 0 {
		t.Error("no mail should be sent without recipients")
	}
}

func TestNotifySendsRenderedTemplate(t *testing.T) {
	sender := &fakeSender{}
	svc := NewNotificationService(sender, nil, zap.NewNop())

	err := svc.Notify(context.Background(), mailer.KindTicketConfirmation, []string{"asha@student.edu"}, mailer.MessageData{
		TicketID:        "lnm/2025/06/0001",
		ComplainantName: "Asha",
		Urgency:         "High",
		ResolveIn:       "3 working days",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sender.to) != 1 || sender.to[0][0] != "asha@student.edu" {
		t.Fatalf("recipients = %v", sender.to)
	}
	if sender.subject == "" {
		t.Error("subject not rendered")
	}
}

func TestNotifyNilSenderDrops(t *testing.T) {
	svc := NewNotificationService(nil, nil, zap.NewNop())

	err := svc.Notify(context.Background(), mailer.KindResolution, []string{"asha@student.edu"}, mailer.MessageData{TicketID: "lnm/2025/06/0001"})
	if err != nil {
		t.Fatalf("nil sender must drop, not fail: %v", err)
	}
}

func TestNotifyPropagatesSendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	svc := NewNotificationService(sender, nil, zap.NewNop())

	err := svc.Notify(context.Background(), mailer.KindResolution, []string{"asha@student.edu"}, mailer.MessageData{TicketID: "lnm/2025/06/0001"})
	if err == nil {
		t.Fatal("send failure must be reported")
	}
}
