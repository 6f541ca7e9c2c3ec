package item

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
)

type DeleteItemHandler struct {
	repository Repository
	publisher  events.Publisher
}

type DeleteItemRequest struct {
	ID string `query:"id"`
}

type DeleteItemResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewDeleteItemHandler(repository Repository, publisher events.Publisher) *DeleteItemHandler {
	return &DeleteItemHandler{
		repository: repository,
		publisher:  publisher,
	}
}

func (h DeleteItemHandler) Handle(ctx context.Context, req *DeleteItemRequest) (*DeleteItemResponse, error) {
	if req.ID == "" {
		return nil, httperror.BadRequest(
			"item.destroy.missing_id",
			"Item ID is required",
			nil,
		)
	}

	// Hard delete, idempotent: removing an id that no longer exists is still
	// a success.
	deleted, err := h.repository.DeleteItem(ctx, req.ID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"item.destroy.failed",
			"An error occurred while deleting the item",
			nil,
		)
	}

	// The no-op path emits no event; only real removals reach the audit log.
	if deleted {
		publishItemEvent(ctx, h.publisher, events.ItemDeletedEvent, domain.Item{ID: req.ID})
	}

	return &DeleteItemResponse{
		Success: true,
		Message: "Item deleted successfully",
	}, nil
}
