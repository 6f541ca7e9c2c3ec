package item

import (
	"catalog/pkg/auth"
	"catalog/pkg/events"
	"context"
	"testing"
	"time"
)

// fakePublisher captures published events so tests can wait on them.
type fakePublisher struct {
	published chan *events.Event
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: make(chan *events.Event, 8)}
}

func (f *fakePublisher) Publish(ctx context.Context, exchange string, event *events.Event, headers events.Headers) error {
	f.published <- event
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) wait(t *testing.T) *events.Event {
	t.Helper()
	select {
	case event := <-f.published:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a published event")
		return nil
	}
}

func TestDeleteItemPublishesOnlyRealRemovals(t *testing.T) {
	repo := newFakeRepository()
	item := seedItem(repo)
	publisher := newFakePublisher()
	handler := NewDeleteItemHandler(repo, publisher)

	if _, err := handler.Handle(context.Background(), &DeleteItemRequest{ID: item.ID}); err != nil {
		t.Fatalf("delete existing: %v", err)
	}

	event := publisher.wait(t)
	if event.Event != events.ItemDeletedEvent {
		t.Errorf("event = %q, want %q", event.Event, events.ItemDeletedEvent)
	}

	// The idempotent no-op path must stay silent: no deletion happened, so
	// nothing may reach the audit log.
	if _, err := handler.Handle(context.Background(), &DeleteItemRequest{ID: "never-existed"}); err != nil {
		t.Fatalf("delete nonexistent: %v", err)
	}

	select {
	case event := <-publisher.published:
		t.Errorf("no-op delete published %q for item %+v", event.Event, event.Payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestItemEventsCarryAuthenticatedActor(t *testing.T) {
	repo := newFakeRepository()
	publisher := newFakePublisher()
	handler := NewCreateItemHandler(repo, publisher)

	ctx := auth.ContextWithUsername(context.Background(), "admin")

	if _, err := handler.Handle(ctx, &CreateItemRequest{
		Name:        "Red Mug",
		Description: "Ceramic mug",
		Category:    "Other",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	event := publisher.wait(t)
	if event.Event != events.ItemCreatedEvent {
		t.Errorf("event = %q, want %q", event.Event, events.ItemCreatedEvent)
	}

	payload, ok := event.Payload.(events.ItemPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Payload)
	}
	if payload.Actor != "admin" {
		t.Errorf("actor = %q, want %q", payload.Actor, "admin")
	}
	if payload.ID == "" {
		t.Error("expected the stored item id in the payload")
	}
}
