// Package usecase contains the application-specific business rules.
package usecase

// Page is one page of a list endpoint's results.
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Total int64 `json:"total"`
}

// NewPage assembles a page, deriving the page count from the total.
func NewPage[T any](items []T, page, limit int, total int64) *Page[T] {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}

	return &Page[T]{
		Items: items,
		Page:  page,
		Pages: pages,
		Total: total,
	}
}
