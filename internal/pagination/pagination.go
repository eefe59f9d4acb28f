package pagination

import "strconv"

// DefaultPageSize is the number of posts per listing page.
const DefaultPageSize = 10

// Page is one window of an ordered result set plus the metadata needed to
// render pagination controls.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"number"`
	Size        int   `json:"size"`
	TotalCount  int64 `json:"total_count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// ParseNumber maps a raw ?page= value to a valid 1-based page number.
// Absent, non-numeric or non-positive values all mean page 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset returns the row offset of the given page.
func Offset(number, size int) int {
	return (number - 1) * size
}

// New builds a Page from an already-windowed item slice and the total count
// of the unwindowed result. A page past the end carries no items and is not
// an error.
func New[T any](items []T, number, size int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Number:      number,
		Size:        size,
		TotalCount:  total,
		HasNext:     number < TotalPages(total, size),
		HasPrevious: number > 1,
	}
}

// TotalPages returns the number of pages needed for total items.
func TotalPages(total int64, size int) int {
	return int((total + int64(size) - 1) / int64(size))
}
