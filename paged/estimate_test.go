package paged

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesFor(t *testing.T) {
	assert.Equal(t, uint64(0), BytesFor(0, 8))
	assert.Equal(t, uint64(8), BytesFor(1, 8))
	assert.Equal(t, uint64(8), BytesFor(1, 1))
	assert.Equal(t, uint64(8), BytesFor(8, 1))
	assert.Equal(t, uint64(16), BytesFor(9, 1))
	assert.Equal(t, uint64(8_000_000_000), BytesFor(1_000_000_000, 8))
	assert.Equal(t, uint64(math.MaxUint64), BytesFor(math.MaxUint64, 8))
}

func TestElementType(t *testing.T) {
	assert.Equal(t, 8, Int64.Width())
	assert.Equal(t, 8, Float64.Width())
	assert.Equal(t, 4, Int32.Width())
	assert.Equal(t, 1, Byte.Width())
	assert.Positive(t, Object.Width())

	assert.Equal(t, "int64", Int64.String())
	assert.Equal(t, "object", Object.String())
}

func TestEstimateArray(t *testing.T) {
	// Payload dominates, page headers add a small overhead.
	est := EstimateArray(1_000_000, Int64, 4096)
	assert.GreaterOrEqual(t, est, uint64(8_000_000))
	assert.Less(t, est, uint64(8_100_000))

	// Default page size is used for invalid page sizes.
	assert.Equal(t, EstimateArray(1_000_000, Int64, 0), EstimateArray(1_000_000, Int64, 4096))

	// Narrow elements take less memory.
	assert.Less(t, EstimateArray(1_000_000, Byte, 0), EstimateArray(1_000_000, Int32, 0))

	assert.Equal(t, uint64(math.MaxUint64), EstimateWidth(math.MaxUint64, 8, 1024))
}

func TestEstimatePages(t *testing.T) {
	assert.Equal(t, uint64(3*4096*8), EstimatePages(3, 4096, 8))
	assert.Equal(t, uint64(math.MaxUint64), EstimatePages(math.MaxUint64, 4096, 8))
}
