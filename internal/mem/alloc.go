package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of every page (one cache line).
const Alignment = 64

// Scalar is the set of pointer-free element types that may live in
// byte-backed aligned memory. Types holding pointers must never be placed
// there: the garbage collector would not see them.
type Scalar interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 |
		~int64 | ~uint64 | ~float32 | ~float64
}

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// Aligned allocates a zeroed slice of n elements starting on a 64-byte boundary.
func Aligned[T Scalar](n int) []T {
	if n <= 0 {
		return nil
	}

	var zero T
	width := int(unsafe.Sizeof(zero))
	byteSlice := AllocAligned(n * width)

	// 64-byte alignment satisfies the alignment of every Scalar type.
	ptr := unsafe.Pointer(&byteSlice[0]) //nolint:gosec // unsafe is required for memory alignment

	return unsafe.Slice((*T)(ptr), n) //nolint:gosec // unsafe is required for memory alignment
}
