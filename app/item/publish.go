package item

import (
	"catalog/domain"
	"catalog/pkg/auth"
	"catalog/pkg/events"
	"context"
	"time"

	"go.uber.org/zap"
)

// publishItemEvent emits a mutation event in the background, attributed to
// the authenticated admin from the request context. Publishing is
// best-effort: a missing publisher or a broker failure never fails the
// request, it is only logged.
func publishItemEvent(ctx context.Context, publisher events.Publisher, eventName string, item domain.Item) {
	if publisher == nil {
		return
	}

	actor := auth.UsernameFromContext(ctx)

	go func() {
		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "catalog",
		}

		event := events.NewEvent(
			eventName,
			events.EventVersionV1,
			events.ItemPayload{
				ID:           item.ID,
				Actor:        actor,
				Name:         item.Name,
				Description:  item.Description,
				Category:     item.Category,
				CustomFields: item.CustomFields,
				CreatedAt:    item.CreatedAt,
				UpdatedAt:    item.UpdatedAt,
			},
			headers,
		)

		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := publisher.Publish(publishCtx, events.ItemExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish item event",
				zap.String("event", eventName),
				zap.String("itemID", item.ID),
				zap.Error(err),
			)
		}
	}()
}
