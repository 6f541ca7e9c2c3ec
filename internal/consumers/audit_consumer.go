package consumers

import (
	"catalog/domain"
	"catalog/pkg/events"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditStore is the slice of the repository the audit worker needs.
type AuditStore interface {
	RecordItemEvent(ctx context.Context, audit domain.ItemAudit) error
}

// ItemAuditHandler records every catalog mutation event as an audit row.
type ItemAuditHandler struct {
	store  AuditStore
	logger *zap.Logger
}

func NewItemAuditHandler(store AuditStore, logger *zap.Logger) *ItemAuditHandler {
	return &ItemAuditHandler{
		store:  store,
		logger: logger,
	}
}

func (h *ItemAuditHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	zap.L().Info("Item event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	switch event.Event {
	case events.ItemCreatedEvent, events.ItemUpdatedEvent, events.ItemDeletedEvent:
		return h.record(ctx, event)
	default:
		zap.L().Warn("Unknown item event type", zap.String("event", event.Event))
		return nil
	}
}

func (h *ItemAuditHandler) record(ctx context.Context, event *events.Event) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("malformed payload - marshal failed: %w", err)
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}
	if payload.ID == "" {
		return fmt.Errorf("malformed payload - item id missing")
	}

	audit := domain.ItemAudit{
		ID:         uuid.New().String(),
		Event:      event.Event,
		ItemID:     payload.ID,
		TraceID:    event.TraceID,
		Payload:    payloadBytes,
		ReceivedAt: time.Now().UTC(),
	}

	if err := h.store.RecordItemEvent(ctx, audit); err != nil {
		return fmt.Errorf("recording audit row: %w", err)
	}

	zap.L().Info("Audit row recorded",
		zap.String("event", event.Event),
		zap.String("itemID", payload.ID),
	)

	return nil
}
