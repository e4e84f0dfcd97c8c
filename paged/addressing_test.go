package paged

import (
	"testing"

	"github.com/hupe1980/hugearray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePageSize(t *testing.T) {
	tests := []struct {
		pageSize int
		valid    bool
	}{
		{1, true},
		{2, true},
		{4096, true},
		{MaxPageSize, true},
		{0, false},
		{-4, false},
		{3, false},
		{1000, false},
		{MaxPageSize * 2, false},
	}

	for _, tt := range tests {
		err := ValidatePageSize(tt.pageSize)
		if tt.valid {
			assert.NoError(t, err, "page size %d", tt.pageSize)
			continue
		}
		assert.ErrorIs(t, err, hugearray.ErrInvalidPageSize, "page size %d", tt.pageSize)

		var pse *hugearray.PageSizeError
		require.ErrorAs(t, err, &pse)
		assert.Equal(t, tt.pageSize, pse.PageSize)
	}
}

func TestAddressing(t *testing.T) {
	const pageSize = 4096
	shift := PageShift(pageSize)
	mask := uint64(pageSize - 1)
	assert.Equal(t, uint(12), shift)

	tests := []struct {
		index  uint64
		page   uint64
		offset uint64
	}{
		{0, 0, 0},
		{4095, 0, 4095},
		{4096, 1, 0},
		{10_000, 2, 1808},
		{1 << 40, 1 << 28, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.page, PageIndex(tt.index, shift), "page of %d", tt.index)
		assert.Equal(t, tt.offset, IndexInPage(tt.index, mask), "offset of %d", tt.index)
	}
}

func TestNumPages(t *testing.T) {
	assert.Equal(t, uint64(0), NumPages(0, 1024))
	assert.Equal(t, uint64(1), NumPages(1, 1024))
	assert.Equal(t, uint64(1), NumPages(1024, 1024))
	assert.Equal(t, uint64(2), NumPages(1025, 1024))
	assert.Equal(t, uint64(1)<<52, NumPages(hugearray.MaxCapacity, 1024))
}

func TestDefaultPageSize(t *testing.T) {
	assert.Equal(t, 4096, DefaultPageSize(8))
	assert.Equal(t, 8192, DefaultPageSize(4))
	assert.Equal(t, 32768, DefaultPageSize(1))
	// 24-byte elements round down to a power of two.
	assert.Equal(t, 1024, DefaultPageSize(24))
	assert.Equal(t, 32768, DefaultPageSize(0))
	assert.Equal(t, 1, DefaultPageSize(1<<20))
}

func TestLayout(t *testing.T) {
	l, err := NewLayout(256)
	require.NoError(t, err)

	assert.Equal(t, 256, l.PageSize())
	assert.Equal(t, uint(8), l.Shift())
	assert.Equal(t, uint64(255), l.Mask())
	assert.Equal(t, 3, l.Page(1000))
	assert.Equal(t, 232, l.Offset(1000))
	assert.Equal(t, uint64(1000), l.Index(3, 232))
	assert.Equal(t, 4, l.Pages(1000))
	assert.Equal(t, uint64(1024), l.Capacity(4))

	_, err = NewLayout(100)
	assert.ErrorIs(t, err, hugearray.ErrInvalidPageSize)

	l, err = ResolveLayout(0, 8)
	require.NoError(t, err)
	assert.Equal(t, 4096, l.PageSize())
}
