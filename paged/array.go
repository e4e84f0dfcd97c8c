package paged

import (
	"fmt"
	"iter"
	"sync"

	"github.com/hupe1980/hugearray"
	"github.com/hupe1980/hugearray/internal/conv"
)

// Array is an immutable paged array.
//
// Concurrent reads are safe. Nothing in this module writes to the pages of
// an Array after it has been returned.
type Array[T any] struct {
	pages  [][]T
	size   uint64
	layout Layout

	releaseOnce sync.Once
	release     func()
}

// FromPages wraps pages as an Array of size elements. Every page except the
// last must hold exactly layout.PageSize() elements and the pages must cover
// size. The caller must not write to pages afterwards.
func FromPages[T any](pages [][]T, size uint64, layout Layout) (*Array[T], error) {
	if err := hugearray.CheckCapacity(size); err != nil {
		return nil, err
	}
	var capacity uint64
	for i, p := range pages {
		if i < len(pages)-1 && len(p) != layout.size {
			return nil, fmt.Errorf("page %d has %d elements, want %d", i, len(p), layout.size)
		}
		capacity += uint64(len(p))
	}
	if capacity < size {
		return nil, fmt.Errorf("pages hold %d elements, want at least %d", capacity, size)
	}
	return &Array[T]{pages: pages, size: size, layout: layout}, nil
}

// FromSlice copies values into a new paged Array.
func FromSlice[T any](values []T, pageSize int) (*Array[T], error) {
	layout, err := ResolveLayout(pageSize, WidthOf[T]())
	if err != nil {
		return nil, err
	}
	size := uint64(len(values))
	pages := make([][]T, layout.Pages(size))
	for i := range pages {
		start := i << layout.shift
		end := min(start+layout.size, len(values))
		pages[i] = append([]T(nil), values[start:end]...)
	}
	return &Array[T]{pages: pages, size: size, layout: layout}, nil
}

// WithRelease registers fn to run on the first call to Release and returns a.
func (a *Array[T]) WithRelease(fn func()) *Array[T] {
	a.release = fn
	return a
}

// Release returns the memory reserved for the array to the resource
// controller it was allocated under. The array must not be used afterwards.
func (a *Array[T]) Release() {
	a.releaseOnce.Do(func() {
		if a.release != nil {
			a.release()
		}
		a.pages = nil
		a.size = 0
	})
}

// Size returns the number of elements.
func (a *Array[T]) Size() uint64 { return a.size }

// PageSize returns the number of elements per page.
func (a *Array[T]) PageSize() int { return a.layout.size }

// PageCount returns the number of backing pages.
func (a *Array[T]) PageCount() int { return len(a.pages) }

// Get returns the element at index. It panics with a *hugearray.IndexError
// if index >= Size(), as indexing a slice out of range would.
func (a *Array[T]) Get(index uint64) T {
	if index >= a.size {
		panic(&hugearray.IndexError{Index: index, Capacity: a.size})
	}
	return a.pages[index>>a.layout.shift][index&a.layout.mask]
}

// At is Get with an error instead of a panic.
func (a *Array[T]) At(index uint64) (T, error) {
	if err := hugearray.CheckIndex(index, a.size); err != nil {
		var zero T
		return zero, err
	}
	return a.pages[index>>a.layout.shift][index&a.layout.mask], nil
}

// All iterates over all (index, value) pairs in index order.
func (a *Array[T]) All() iter.Seq2[uint64, T] {
	return func(yield func(uint64, T) bool) {
		var index uint64
		for _, page := range a.pages {
			for _, v := range page {
				if index >= a.size {
					return
				}
				if !yield(index, v) {
					return
				}
				index++
			}
		}
	}
}

// CopyTo copies elements starting at start into dst and returns the number
// of elements copied.
func (a *Array[T]) CopyTo(dst []T, start uint64) int {
	n := 0
	for start < a.size && n < len(dst) {
		page := a.pages[start>>a.layout.shift]
		offset := int(start & a.layout.mask)
		limit := min(uint64(len(page)-offset), a.size-start)
		c := copy(dst[n:], page[offset:offset+int(limit)])
		n += c
		start += uint64(c)
	}
	return n
}

// ToSlice copies the array into a single slice. It fails if the array is
// too large to be addressed by one slice.
func (a *Array[T]) ToSlice() ([]T, error) {
	n, err := conv.Uint64ToInt(a.size)
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	a.CopyTo(out, 0)
	return out, nil
}
