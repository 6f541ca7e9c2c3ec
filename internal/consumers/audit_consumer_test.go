package consumers

import (
	"catalog/domain"
	"catalog/pkg/events"
	"context"
	"testing"

	"go.uber.org/zap"
)

type fakeAuditStore struct {
	recorded []domain.ItemAudit
	err      error
}

func (f *fakeAuditStore) RecordItemEvent(ctx context.Context, audit domain.ItemAudit) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, audit)
	return nil
}

func TestAuditHandlerRecordsItemEvents(t *testing.T) {
	store := &fakeAuditStore{}
	handler := NewItemAuditHandler(store, zap.NewNop())

	event := events.NewEvent(
		events.ItemCreatedEvent,
		events.EventVersionV1,
		events.ItemPayload{ID: "item-1", Name: "Red Mug"},
		events.Headers{TraceID: "trace-1"},
	)

	if err := handler.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	if len(store.recorded) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(store.recorded))
	}

	audit := store.recorded[0]
	if audit.Event != events.ItemCreatedEvent {
		t.Errorf("event = %q", audit.Event)
	}
	if audit.ItemID != "item-1" {
		t.Errorf("itemID = %q", audit.ItemID)
	}
	if audit.TraceID != "trace-1" {
		t.Errorf("traceID = %q", audit.TraceID)
	}
	if audit.ID == "" {
		t.Error("expected an audit row id")
	}
}

func TestAuditHandlerIgnoresUnknownEvents(t *testing.T) {
	store := &fakeAuditStore{}
	handler := NewItemAuditHandler(store, zap.NewNop())

	event := events.NewEvent("bid.placed", events.EventVersionV1, nil, events.Headers{})

	if err := handler.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("unknown events should be acked, got %v", err)
	}
	if len(store.recorded) != 0 {
		t.Error("unknown event must not be recorded")
	}
}

func TestAuditHandlerRejectsMalformedPayload(t *testing.T) {
	store := &fakeAuditStore{}
	handler := NewItemAuditHandler(store, zap.NewNop())

	event := events.NewEvent(events.ItemDeletedEvent, events.EventVersionV1, map[string]any{}, events.Headers{})

	if err := handler.HandleEvent(context.Background(), event); err == nil {
		t.Error("expected error for payload without item id")
	}
}
