package item

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

type UpdateItemHandler struct {
	repository Repository
	publisher  events.Publisher
}

type UpdateItemRequest struct {
	ID           string               `json:"_id"`
	Name         *string              `json:"name,omitempty"`
	Description  *string              `json:"description,omitempty"`
	Category     *string              `json:"category,omitempty" validate:"omitempty,oneof=Electronics Furniture Clothing Books Food Sports Other"`
	Image        *string              `json:"image,omitempty"`
	CustomFields *domain.CustomFields `json:"customFields,omitempty" validate:"omitempty,max=20"`
}

type UpdateItemResponse struct {
	Success bool        `json:"success"`
	Data    domain.Item `json:"data"`
}

func NewUpdateItemHandler(repository Repository, publisher events.Publisher) *UpdateItemHandler {
	return &UpdateItemHandler{
		repository: repository,
		publisher:  publisher,
	}
}

func (h UpdateItemHandler) Handle(ctx context.Context, req *UpdateItemRequest) (*UpdateItemResponse, error) {
	if req.ID == "" {
		return nil, httperror.BadRequest(
			"item.update.missing_id",
			"Item ID is required",
			nil,
		)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"item.update.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"item.update.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	if req.Image != nil {
		if err := validateImage(*req.Image); err != nil {
			return nil, err
		}
	}

	item, err := h.repository.GetItem(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"item.update.not_found",
				"Item not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"item.update.failed",
			"Failed to get item",
			nil,
		)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.CustomFields != nil {
		// The bag is replaced wholesale, never merged key-by-key.
		item.CustomFields = *req.CustomFields
	}

	item.UpdatedAt = time.Now().UTC()

	if err := h.repository.UpdateItem(ctx, item); err != nil {
		return nil, httperror.InternalServerError(
			"item.update.update_failed",
			"An error occurred while updating the item",
			nil,
		)
	}

	publishItemEvent(ctx, h.publisher, events.ItemUpdatedEvent, item)

	return &UpdateItemResponse{
		Success: true,
		Data:    item,
	}, nil
}
