package events

import (
	"context"
	"errors"
	"testing"
)

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	var order []string
	dispatcher.Subscribe(EventGrievanceSubmitted, func(context.Context, Event) error {
		order = append(order, "first")
		return nil
	})
	dispatcher.Subscribe(EventGrievanceSubmitted, func(context.Context, Event) error {
		order = append(order, "second")
		return nil
	})
	dispatcher.Subscribe(EventGrievanceResolved, func(context.Context, Event) error {
		order = append(order, "other")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventGrievanceSubmitted, TicketID: "lnm/2025/06/0001"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("handler order = %v", order)
	}
}

func TestPublishContinuesPastHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	var reached bool
	dispatcher.Subscribe(EventGrievanceEscalated, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(EventGrievanceEscalated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventGrievanceEscalated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !reached {
		t.Error("later handlers must still run after a failure")
	}
}
