package item

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCreateItemAssignsIDAndTimestamps(t *testing.T) {
	repo := newFakeRepository()
	handler := NewCreateItemHandler(repo, nil)

	req := &CreateItemRequest{
		Name:         "Red Mug",
		Description:  "Ceramic mug",
		Category:     domain.CategoryOther,
		CustomFields: domain.CustomFields{"color": "red"},
	}

	res, err := handler.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	item := res.Data
	if item.ID == "" {
		t.Error("expected assigned id")
	}
	if item.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}
	if !item.CreatedAt.Equal(item.UpdatedAt) {
		t.Errorf("expected createdAt == updatedAt, got %v / %v", item.CreatedAt, item.UpdatedAt)
	}
	if item.Name != req.Name || item.Description != req.Description || item.Category != req.Category {
		t.Errorf("stored fields differ from input: %+v", item)
	}
	if item.CustomFields["color"] != "red" {
		t.Errorf("custom fields not preserved: %+v", item.CustomFields)
	}
}

func TestCreateItemValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateItemRequest
	}{
		{"missing name", CreateItemRequest{Description: "d", Category: domain.CategoryBooks}},
		{"missing description", CreateItemRequest{Name: "n", Category: domain.CategoryBooks}},
		{"unknown category", CreateItemRequest{Name: "n", Description: "d", Category: "Gadgets"}},
		{"too many custom fields", CreateItemRequest{
			Name: "n", Description: "d", Category: domain.CategoryBooks,
			CustomFields: manyCustomFields(21),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			handler := NewCreateItemHandler(repo, nil)

			_, err := handler.Handle(context.Background(), &tt.req)

			var httpErr *httperror.Error
			if !errors.As(err, &httpErr) || httpErr.Status != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
			if repo.calls != 0 {
				t.Error("expected validation to fail before any store access")
			}
		})
	}
}

func TestCreateItemRejectsBadImage(t *testing.T) {
	repo := newFakeRepository()
	handler := NewCreateItemHandler(repo, nil)

	base := CreateItemRequest{Name: "n", Description: "d", Category: domain.CategoryBooks}

	notDataURI := base
	notDataURI.Image = "https://example.com/pic.png"
	if _, err := handler.Handle(context.Background(), &notDataURI); err == nil {
		t.Error("expected non-data-URI image to be rejected")
	}

	tooLarge := base
	tooLarge.Image = "data:image/png;base64," + strings.Repeat("A", domain.MaxImageBytes)
	if _, err := handler.Handle(context.Background(), &tooLarge); err == nil {
		t.Error("expected oversized image to be rejected")
	}

	ok := base
	ok.Image = "data:image/png;base64,iVBORw0KGgo="
	if _, err := handler.Handle(context.Background(), &ok); err != nil {
		t.Errorf("expected small data URI to be accepted, got %v", err)
	}
}

func TestCreateItemStoreError(t *testing.T) {
	repo := newFakeRepository()
	repo.err = errors.New("connection refused")
	handler := NewCreateItemHandler(repo, nil)

	_, err := handler.Handle(context.Background(), &CreateItemRequest{
		Name: "n", Description: "d", Category: domain.CategoryBooks,
	})

	var httpErr *httperror.Error
	if !errors.As(err, &httpErr) || httpErr.Status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func manyCustomFields(n int) domain.CustomFields {
	fields := make(domain.CustomFields, n)
	for i := 0; i < n; i++ {
		fields[strings.Repeat("k", i+1)] = "v"
	}
	return fields
}
