package item

import (
	"catalog/domain"
	"catalog/pkg/httperror"
	"context"
)

type GetItemsHandler struct {
	repository Repository
}

type GetItemsRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
}

type GetItemsResponse struct {
	Success bool          `json:"success"`
	Data    []domain.Item `json:"data"`
}

func NewGetItemsHandler(repository Repository) *GetItemsHandler {
	return &GetItemsHandler{
		repository: repository,
	}
}

// Handle serves both the plain listing and the filtered search; both return
// the full result set newest-created first, without pagination. A malformed
// or absent filter degrades to the unfiltered listing, never to an error.
func (h GetItemsHandler) Handle(ctx context.Context, req *GetItemsRequest) (*GetItemsResponse, error) {
	query := domain.SearchQuery{
		Term:     req.Search,
		Category: req.Category,
	}

	var (
		items []domain.Item
		err   error
	)

	if query.IsEmpty() {
		items, err = h.repository.GetItems(ctx)
	} else {
		items, err = h.repository.SearchItems(ctx, query)
	}

	if err != nil {
		return nil, httperror.InternalServerError(
			"item.index.failed",
			"Failed to retrieve items",
			nil,
		)
	}

	return &GetItemsResponse{
		Success: true,
		Data:    items,
	}, nil
}
