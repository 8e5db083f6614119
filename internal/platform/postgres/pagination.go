package postgres

import "github.com/bookbazaar/bookbazaar-api/internal/store"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePageArgs clamps caller-supplied pagination arguments to sane
// bounds. Pages are 1-indexed.
func normalizePageArgs(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// offsetPage assembles the offset-protocol page envelope: a real total count
// and HasNext/HasPrev derived from page arithmetic.
func offsetPage[T any](items []T, page, pageSize, total int) *store.Page[T] {
	return &store.Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: &total,
		HasNext:    page*pageSize < total,
		HasPrev:    page > 1,
	}
}
