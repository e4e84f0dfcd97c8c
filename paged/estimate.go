package paged

import (
	"math"
	"math/bits"
	"unsafe"
)

// sliceHeaderBytes is the size of a Go slice header (pointer, len, cap).
var sliceHeaderBytes = uint64(unsafe.Sizeof([]byte(nil)))

// BytesFor returns the payload footprint of count elements of the given
// width, rounded up to 8-byte alignment. It saturates at math.MaxUint64.
func BytesFor(count uint64, width int) uint64 {
	if count == 0 || width <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(count, uint64(width))
	if hi != 0 || lo > math.MaxUint64-7 {
		return math.MaxUint64
	}
	return (lo + 7) &^ 7
}

// EstimateArray returns the estimated footprint of a paged array of count
// elements: payload, one slice header per page and the page table itself.
// pageSize 0 selects DefaultPageSize for the element width.
func EstimateArray(count uint64, elemType ElementType, pageSize int) uint64 {
	return EstimateWidth(count, elemType.Width(), pageSize)
}

// EstimateWidth is EstimateArray for an arbitrary element width.
func EstimateWidth(count uint64, width, pageSize int) uint64 {
	if pageSize <= 0 || pageSize&(pageSize-1) != 0 {
		pageSize = DefaultPageSize(width)
	}
	pages := NumPages(count, pageSize)
	return saturatingAdd(
		BytesFor(count, width),
		saturatingAdd(sliceHeaderBytes, saturatingMul(pages, sliceHeaderBytes)),
	)
}

// EstimatePages returns the footprint of pages full pages of the given
// width, as reserved by growable structures.
func EstimatePages(pages uint64, pageSize, width int) uint64 {
	return saturatingMul(pages, BytesFor(uint64(pageSize), width))
}

func saturatingAdd(a, b uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return s
}

func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
