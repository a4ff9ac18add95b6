// Package pagination slices ordered sequences into fixed-size pages.
//
// Every function here is total: out-of-range, missing or non-numeric input
// is clamped to the nearest valid page instead of being rejected, so listing
// endpoints never fail on a bad ?page parameter.
package pagination

import "strconv"

// DefaultPageSize is the fallback page size when configuration supplies a
// non-positive value.
const DefaultPageSize = 10

// Page is one window over an ordered sequence.
type Page[T any] struct {
	Items       []T
	Number      int // 1-based page number after clamping
	Count       int // total number of pages, at least 1
	Size        int // page size the window was cut with
	TotalItems  int
	HasNext     bool
	HasPrevious bool
}

// NextNumber returns the page number after this one, for navigation links.
func (p Page[T]) NextNumber() int {
	return p.Number + 1
}

// PreviousNumber returns the page number before this one.
func (p Page[T]) PreviousNumber() int {
	return p.Number - 1
}

// ParsePageNumber maps a raw query parameter to a requested page number.
// Missing, non-numeric or sub-1 values resolve to page 1.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate cuts the requested window out of items. A requested page past the
// end clamps to the last page; a request below 1 clamps to the first. The
// empty sequence yields a single empty page rather than zero pages.
func Paginate[T any](items []T, pageSize, requested int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(items)
	count := (total + pageSize - 1) / pageSize
	if count == 0 {
		count = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > count {
		number = count
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		Number:      number,
		Count:       count,
		Size:        pageSize,
		TotalItems:  total,
		HasNext:     number < count,
		HasPrevious: number > 1,
	}
}
