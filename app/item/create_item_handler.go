package item

import (
	"catalog/domain"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type CreateItemHandler struct {
	repository Repository
	publisher  events.Publisher
}

type CreateItemRequest struct {
	Name         string              `json:"name" validate:"required"`
	Description  string              `json:"description" validate:"required"`
	Category     string              `json:"category" validate:"required,oneof=Electronics Furniture Clothing Books Food Sports Other"`
	Image        string              `json:"image"`
	CustomFields domain.CustomFields `json:"customFields" validate:"max=20"`
}

type CreateItemResponse struct {
	Success bool        `json:"success"`
	Data    domain.Item `json:"data"`
}

func NewCreateItemHandler(repository Repository, publisher events.Publisher) *CreateItemHandler {
	return &CreateItemHandler{
		repository: repository,
		publisher:  publisher,
	}
}

func (h CreateItemHandler) Handle(ctx context.Context, req *CreateItemRequest) (*CreateItemResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"item.create.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"item.create.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	if err := validateImage(req.Image); err != nil {
		return nil, err
	}

	// Identifier and timestamps are service-owned; anything the caller sent
	// for them never reaches this point since the request carries no such
	// fields.
	now := time.Now().UTC()
	item := domain.Item{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Image:        req.Image,
		CustomFields: req.CustomFields,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := h.repository.CreateItem(ctx, item)
	if err != nil {
		return nil, httperror.InternalServerError(
			"item.create.create_failed",
			"An error occurred while creating the item",
			nil,
		)
	}

	publishItemEvent(ctx, h.publisher, events.ItemCreatedEvent, created)

	return &CreateItemResponse{
		Success: true,
		Data:    created,
	}, nil
}

func validateImage(image string) *httperror.Error {
	if image == "" {
		return nil
	}

	if !strings.HasPrefix(image, "data:image/") {
		return httperror.BadRequest(
			"item.image.invalid_format",
			"Image must be an inline data URI",
			nil,
		)
	}

	if len(image) > domain.MaxImageBytes {
		return httperror.BadRequest(
			"item.image.too_large",
			"Image must not exceed 2MB",
			map[string]any{
				"size_mb": float64(len(image)) / 1024 / 1024,
				"max_mb":  2,
			},
		)
	}

	return nil
}
