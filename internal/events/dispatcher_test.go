package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventIssueCreated, func(ctx context.Context, e Event) error {
		got = append(got, "first:"+e.IssueID)
		return nil
	})
	d.Subscribe(EventIssueCreated, func(ctx context.Context, e Event) error {
		got = append(got, "second:"+e.IssueID)
		return nil
	})
	d.Subscribe(EventIssueAssigned, func(ctx context.Context, e Event) error {
		got = append(got, "assigned")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventIssueCreated, IssueID: "issue-1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 2 || got[0] != "first:issue-1" || got[1] != "second:issue-1" {
		t.Errorf("deliveries = %v", got)
	}
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventIssueStatusChanged, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventIssueStatusChanged, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventIssueStatusChanged}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !reached {
		t.Error("second handler not invoked after first failed")
	}
}

func TestDispatcherUnsubscribedTypeIsNoOp(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventIssueCommentAdded}); err != nil {
		t.Fatalf("Publish without subscribers: %v", err)
	}
}
