package mem

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestAllocAligned(t *testing.T) {
	sizes := []int{1, 10, 63, 64, 65, 100, 1024}

	for _, size := range sizes {
		buf := AllocAligned(size)
		assert.Len(t, buf, size)
		assert.Equal(t, size, cap(buf))

		addr := uintptr(unsafe.Pointer(&buf[0]))
		assert.Equal(t, uintptr(0), addr%Alignment, "Address %d should be aligned to %d for size %d", addr, Alignment, size)
	}

	assert.Nil(t, AllocAligned(0))
	assert.Nil(t, AllocAligned(-1))
}

func TestAligned(t *testing.T) {
	sizes := []int{1, 7, 8, 9, 100, 4096}

	for _, size := range sizes {
		longs := Aligned[int64](size)
		assert.Len(t, longs, size)
		assert.Equal(t, uintptr(0), uintptr(unsafe.Pointer(&longs[0]))%Alignment)

		doubles := Aligned[float64](size)
		assert.Len(t, doubles, size)
		assert.Equal(t, uintptr(0), uintptr(unsafe.Pointer(&doubles[0]))%Alignment)

		ints := Aligned[int32](size)
		assert.Len(t, ints, size)

		bytes := Aligned[byte](size)
		assert.Len(t, bytes, size)
	}

	assert.Nil(t, Aligned[int64](0))
	assert.Nil(t, Aligned[int32](-5))
}

func TestAligned_Zeroed(t *testing.T) {
	page := Aligned[int64](1024)
	for i, v := range page {
		if v != 0 {
			t.Fatalf("element %d not zeroed: %d", i, v)
		}
	}
}

func BenchmarkAligned(b *testing.B) {
	sizes := []int{512, 4096, 32768}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Aligned[int64](size)
			}
		})
	}
}
