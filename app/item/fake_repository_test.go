package item

import (
	"catalog/domain"
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
)

// fakeRepository is an in-memory stand-in for the store. It assigns ids the
// way the real store does and counts calls so tests can assert a handler
// bailed out before touching it.
type fakeRepository struct {
	items map[string]domain.Item
	calls int
	err   error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: make(map[string]domain.Item)}
}

func (f *fakeRepository) Close() error { return nil }

func (f *fakeRepository) GetItems(ctx context.Context) ([]domain.Item, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	items := make([]domain.Item, 0, len(f.items))
	for _, item := range f.items {
		items = append(items, item)
	}
	sortNewestFirst(items)
	return items, nil
}

func (f *fakeRepository) SearchItems(ctx context.Context, query domain.SearchQuery) ([]domain.Item, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	items := make([]domain.Item, 0)
	for _, item := range f.items {
		if query.Matches(item) {
			items = append(items, item)
		}
	}
	sortNewestFirst(items)
	return items, nil
}

func (f *fakeRepository) GetItem(ctx context.Context, id string) (domain.Item, error) {
	f.calls++
	if f.err != nil {
		return domain.Item{}, f.err
	}

	item, ok := f.items[id]
	if !ok {
		return domain.Item{}, sql.ErrNoRows
	}
	return item, nil
}

func (f *fakeRepository) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	f.calls++
	if f.err != nil {
		return domain.Item{}, f.err
	}

	item.ID = uuid.New().String()
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	f.calls++
	if f.err != nil {
		return f.err
	}

	if _, ok := f.items[item.ID]; ok {
		f.items[item.ID] = item
	}
	return nil
}

func (f *fakeRepository) DeleteItem(ctx context.Context, id string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}

	_, existed := f.items[id]
	delete(f.items, id)
	return existed, nil
}

func sortNewestFirst(items []domain.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
