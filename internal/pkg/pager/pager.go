// Package pager converts 1-based page coordinates into offset/limit pairs.
//
// Callers must pass a page number >= 1 and a page size >= 1; the HTTP layer
// enforces both before a Pager is built. Values outside that range are not
// clamped here.
package pager

import "math"

// Pager describes one page of an ordered result set.
type Pager struct {
	number int
	size   int
}

// New creates a Pager for the given 1-based page number and page size.
func New(number, size int) Pager {
	return Pager{number: number, size: size}
}

// Number returns the 1-based page number.
func (p Pager) Number() int { return p.number }

// Size returns the page size.
func (p Pager) Size() int { return p.size }

// Offset returns how many rows precede this page, saturating at
// math.MaxInt64 for pages too far out to address.
func (p Pager) Offset() int64 {
	skipped, size := int64(p.number-1), int64(p.size)
	if size > 0 && skipped > math.MaxInt64/size {
		return math.MaxInt64
	}
	return skipped * size
}

// Limit returns the maximum number of rows on this page.
func (p Pager) Limit() int64 {
	return int64(p.size)
}

// TotalPages returns ceil(total/size), or 0 when total is 0.
func (p Pager) TotalPages(total int64) int {
	if total <= 0 || p.size <= 0 {
		return 0
	}
	return int(pages(total, int64(p.size)))
}

// PastEnd reports whether the page starts beyond the last of total rows.
// It compares page indexes and never computes the offset.
func (p Pager) PastEnd(total int64) bool {
	if p.size <= 0 || total <= 0 {
		return true
	}
	return int64(p.number-1) >= pages(total, int64(p.size))
}

// pages is ceil(total/size) for positive operands.
func pages(total, size int64) int64 {
	n := total / size
	if total%size != 0 {
		n++
	}
	return n
}
