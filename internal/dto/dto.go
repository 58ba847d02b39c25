// Package dto holds the request and response shapes of the HTTP API and
// the hand-written functions converting them to and from model types.
// JSON names are snake_case.  Validation rules live in `validate` tags
// and are checked by the service layer.
package dto

// Page wraps one page of a paginated listing.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// NewPage builds a Page, turning a nil slice into an empty list.
func NewPage[T any](items []T, total int64, page, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: page, PageSize: size}
}

// mapSlice converts every element with fn and never returns nil.
func mapSlice[S, T any](in []S, fn func(S) T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
