package item

import (
	"catalog/domain"
	"context"
)

type Repository interface {
	Close() error
	GetItems(ctx context.Context) ([]domain.Item, error)
	SearchItems(ctx context.Context, query domain.SearchQuery) ([]domain.Item, error)
	GetItem(ctx context.Context, id string) (domain.Item, error)
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	UpdateItem(ctx context.Context, item domain.Item) error
	// DeleteItem reports whether a row was actually removed; deleting an
	// absent id is a successful no-op.
	DeleteItem(ctx context.Context, id string) (bool, error)
}
