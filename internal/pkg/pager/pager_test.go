package pager

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPager_OffsetAndLimit(t *testing.T) {
	tests := []struct {
		number, size  int
		offset, limit int64
	}{
		{1, 10, 0, 10},
		{2, 10, 10, 10},
		{3, 2, 4, 2},
		{1, 1, 0, 1},
	}

	for _, tt := range tests {
		p := New(tt.number, tt.size)
		assert.Equal(t, tt.offset, p.Offset(), "page %d size %d", tt.number, tt.size)
		assert.Equal(t, tt.limit, p.Limit(), "page %d size %d", tt.number, tt.size)
	}
}

func TestPager_TotalPages(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		total    int64
		expected int
	}{
		{"no rows", 10, 0, 0},
		{"exact fit", 2, 4, 2},
		{"remainder adds a page", 2, 3, 2},
		{"fewer rows than page", 10, 3, 1},
		{"single row pages", 1, 7, 7},
		{"largest total", 2, math.MaxInt64, math.MaxInt64/2 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, New(1, tt.size).TotalPages(tt.total))
		})
	}
}

func TestPager_PastEnd(t *testing.T) {
	assert.False(t, New(1, 10).PastEnd(3))
	assert.False(t, New(2, 2).PastEnd(3))
	assert.True(t, New(3, 2).PastEnd(3))
	assert.True(t, New(1, 10).PastEnd(0))
	assert.False(t, New(1, 10).PastEnd(math.MaxInt64))
}

func TestPager_HugePageNumber(t *testing.T) {
	p := New(100_000_000_000_000_000, 100)

	assert.Equal(t, int64(math.MaxInt64), p.Offset())
	assert.True(t, p.PastEnd(3))
	assert.True(t, New(math.MaxInt, math.MaxInt).PastEnd(math.MaxInt64))
}

func TestPager_Accessors(t *testing.T) {
	p := New(4, 25)
	assert.Equal(t, 4, p.Number())
	assert.Equal(t, 25, p.Size())
}
