// Package filter re-derives a filtered view of an already-fetched item list,
// the way the catalog pages do after loading everything once. It duplicates
// the server predicate's matching fields so the two paths always agree; with
// the whole item in hand it simply scans every custom field directly.
package filter

import (
	"catalog/domain"
	"strings"
)

// Matches reports whether a single item satisfies the term and category
// selection. The term is a case-insensitive substring match over name,
// description, category and every custom-field key and value; the category
// is an exact match, skipped for "" or "all".
func Matches(item domain.Item, term, category string) bool {
	if category != "" && category != domain.CategoryAll && item.Category != category {
		return false
	}

	query := strings.ToLower(strings.TrimSpace(term))
	if query == "" {
		return true
	}

	if strings.Contains(strings.ToLower(item.Name), query) ||
		strings.Contains(strings.ToLower(item.Description), query) ||
		strings.Contains(strings.ToLower(item.Category), query) {
		return true
	}

	for key, value := range item.CustomFields {
		if strings.Contains(strings.ToLower(key), query) ||
			strings.Contains(strings.ToLower(value), query) {
			return true
		}
	}

	return false
}

// Apply returns the items satisfying the selection, preserving input order.
// Pure function of its inputs; the input slice is never modified.
func Apply(items []domain.Item, term, category string) []domain.Item {
	filtered := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if Matches(item, term, category) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
