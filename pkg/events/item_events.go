package events

import (
	"catalog/domain"
	"time"
)

const (
	ItemDomain   = "item"
	ItemExchange = "catalog.item"
)

// Event names
const (
	ItemCreatedEvent = "item.created"
	ItemUpdatedEvent = "item.updated"
	ItemDeletedEvent = "item.deleted"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

// ItemPayload is shared by the item.created and item.updated events; the
// item.deleted event carries only the id. The inline image is deliberately
// left out of the payload to keep messages small.
type ItemPayload struct {
	ID           string              `json:"id"`
	Actor        string              `json:"actor,omitempty"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	CustomFields domain.CustomFields `json:"customFields,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}
