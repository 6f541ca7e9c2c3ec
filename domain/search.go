package domain

import "strings"

// SearchQuery is the canonical matching predicate for catalog searches. The
// SQL built by the store and the in-memory filter used by clients must both
// agree with Matches; it is the reference the two are tested against.
type SearchQuery struct {
	Term     string
	Category string
}

// IsEmpty reports whether the query places no restriction at all.
func (q SearchQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Term) == "" && !q.HasCategory()
}

// HasCategory reports whether the query restricts to a concrete category.
// An absent selection and the "all" sentinel both mean no restriction.
func (q SearchQuery) HasCategory() bool {
	return q.Category != "" && q.Category != CategoryAll
}

// Matches reports whether an item satisfies the query. The term is a
// case-insensitive substring match over name, description, category and every
// custom-field key and value. The category restriction is an exact,
// case-sensitive equality, ANDed with the term predicate.
func (q SearchQuery) Matches(item Item) bool {
	if q.HasCategory() && item.Category != q.Category {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(q.Term))
	if term == "" {
		return true
	}

	if strings.Contains(strings.ToLower(item.Name), term) ||
		strings.Contains(strings.ToLower(item.Description), term) ||
		strings.Contains(strings.ToLower(item.Category), term) {
		return true
	}

	for key, value := range item.CustomFields {
		if strings.Contains(strings.ToLower(key), term) ||
			strings.Contains(strings.ToLower(value), term) {
			return true
		}
	}

	return false
}
