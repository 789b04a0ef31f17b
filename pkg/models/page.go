package models

// Pageable selects an offset+limit window of a filtered result set.
// A zero or negative limit means "no limit".
type Pageable struct {
	Offset int `json:"offset" validate:"min=0"`
	Limit  int `json:"limit"`
}

// PageOf builds a Pageable.
func PageOf(offset, limit int) Pageable {
	return Pageable{Offset: offset, Limit: limit}
}

// Page is one window of a filtered result set. TotalItems counts the whole
// filtered set, independent of the window size.
type Page[T any] struct {
	Content    []T `json:"content"`
	TotalItems int `json:"total_items"`
}

// Paginate applies the window to the full filtered slice and wraps it in a
// Page whose TotalItems reflects the slice before windowing.
func Paginate[T any](items []T, pageable Pageable) Page[T] {
	total := len(items)

	start := pageable.Offset
	if start < 0 {
		start = 0
	}

	if start > total {
		start = total
	}

	end := total
	if pageable.Limit > 0 && start+pageable.Limit < total {
		end = start + pageable.Limit
	}

	return Page[T]{Content: items[start:end], TotalItems: total}
}
