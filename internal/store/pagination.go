package store

import "strings"

// Pagination defaults applied when a request omits or supplies non-positive
// values. No upper bound on limit is enforced here; a transport layer may
// impose one.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageRequest describes which slice of a filtered result set to fetch.
type PageRequest struct {
	Page   int    // 1-based page number
	Limit  int    // maximum items per page
	Search string // optional free-text search term
}

// Normalize returns a copy with non-positive page/limit coerced to the
// defaults and the search term trimmed. A whitespace-only search term is
// treated as absent.
func (p PageRequest) Normalize() PageRequest {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// Offset computes the number of rows to skip for this page.
// Callers must Normalize first.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the uniform envelope returned by every paginated list operation.
// Total counts all rows matching the filter, ignoring pagination.
type Page[T any] struct {
	Items       []T
	Total       int
	CurrentPage int
	LastPage    int
	Limit       int
}

// NewPage assembles a Page from fetched items, the total matching count, and
// the normalized request that produced them. LastPage is the ceiling of
// total/limit and never less than 1, so an empty result set still reports a
// single (empty) page.
func NewPage[T any](items []T, total int, req PageRequest) *Page[T] {
	lastPage := (total + req.Limit - 1) / req.Limit
	if lastPage < 1 {
		lastPage = 1
	}

	if items == nil {
		items = []T{}
	}

	return &Page[T]{
		Items:       items,
		Total:       total,
		CurrentPage: req.Page,
		LastPage:    lastPage,
		Limit:       req.Limit,
	}
}
