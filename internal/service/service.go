// Package service implements the business rules on top of the repositories.
// Handlers validate and bind; services authorize, orchestrate and persist.
package service

// Page is a paginated result. Pages has a floor of one even when Total is
// zero so UI pagers stay well-defined.
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func newPage[T any](items []T, page, limit int, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	if pages < 1 {
		pages = 1
	}
	return &Page[T]{Items: items, Page: page, Limit: limit, Total: total, Pages: pages}
}

// normalizePaging clamps page and limit to their defaults (1 and 10).
func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}
