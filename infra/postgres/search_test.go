package postgres

import (
	"catalog/domain"
	"strings"
	"testing"
)

func TestBuildSearchQueryMatchAll(t *testing.T) {
	for _, q := range []domain.SearchQuery{
		{},
		{Category: domain.CategoryAll},
		{Term: "  "},
	} {
		query, args := buildSearchQuery(q)

		if strings.Contains(query, "WHERE") {
			t.Errorf("expected no WHERE clause for %+v, got %q", q, query)
		}
		if len(args) != 0 {
			t.Errorf("expected no args for %+v, got %v", q, args)
		}
		if !strings.HasSuffix(query, "ORDER BY created_at DESC") {
			t.Errorf("expected newest-first ordering, got %q", query)
		}
	}
}

func TestBuildSearchQueryTerm(t *testing.T) {
	query, args := buildSearchQuery(domain.SearchQuery{Term: "shirt"})

	for _, predicate := range []string{
		"name ILIKE", "description ILIKE", "category ILIKE",
		"jsonb_each_text(custom_fields)", "cf.key ILIKE", "cf.value ILIKE",
	} {
		if !strings.Contains(query, predicate) {
			t.Errorf("expected %q in query, got %q", predicate, query)
		}
	}
	if len(args) != 1 || args[0] != "%shirt%" {
		t.Errorf("unexpected args: %v", args)
	}

	// Keys and values are scanned individually, never the raw JSON document,
	// so a term carrying JSON punctuation cannot match the syntax itself.
	if strings.Contains(query, "custom_fields::text") {
		t.Errorf("expected no whole-document text scan, got %q", query)
	}
}

func TestBuildSearchQueryTermAndCategory(t *testing.T) {
	query, args := buildSearchQuery(domain.SearchQuery{
		Term:     "shirt",
		Category: domain.CategoryClothing,
	})

	if !strings.Contains(query, " AND category = $2") {
		t.Errorf("expected exact category restriction ANDed on, got %q", query)
	}
	if len(args) != 2 || args[0] != "%shirt%" || args[1] != domain.CategoryClothing {
		t.Errorf("unexpected args: %v", args)
	}
	if !strings.HasSuffix(query, "ORDER BY created_at DESC") {
		t.Errorf("expected newest-first ordering, got %q", query)
	}
}

func TestBuildSearchQueryCategoryOnly(t *testing.T) {
	query, args := buildSearchQuery(domain.SearchQuery{Category: domain.CategoryBooks})

	if strings.Contains(query, "ILIKE") {
		t.Errorf("expected no term predicate, got %q", query)
	}
	if !strings.Contains(query, "WHERE category = $1") {
		t.Errorf("expected category restriction, got %q", query)
	}
	if len(args) != 1 || args[0] != domain.CategoryBooks {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildSearchQueryEscapesWildcards(t *testing.T) {
	_, args := buildSearchQuery(domain.SearchQuery{Term: "100%_cotton"})

	if args[0] != `%100\%\_cotton%` {
		t.Errorf("expected LIKE metacharacters escaped, got %v", args[0])
	}
}
