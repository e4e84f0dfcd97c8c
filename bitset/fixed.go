package bitset

import (
	"iter"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/hugearray"
	"github.com/hupe1980/hugearray/internal/conv"
	"github.com/hupe1980/hugearray/paged"
)

// Fixed is a concurrent bit set with a capacity chosen at construction.
//
// All methods are safe for concurrent use. Indices at or beyond Capacity
// fail with a *hugearray.IndexError.
type Fixed struct {
	pages    [][]atomic.Uint64
	layout   paged.Layout
	capacity uint64
	alloc    *paged.Allocator[atomic.Uint64]
}

// NewFixed creates a bit set of capacity bits, all clear.
func NewFixed(capacity uint64, opts ...hugearray.Option) (*Fixed, error) {
	if err := hugearray.CheckCapacity(capacity); err != nil {
		return nil, err
	}
	cfg, err := hugearray.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	alloc, err := paged.NewAllocatorOf[atomic.Uint64]("bitset.NewFixed", cfg)
	if err != nil {
		return nil, err
	}
	pages, err := alloc.Pages(wordsFor(capacity))
	if err != nil {
		return nil, err
	}
	return &Fixed{
		pages:    pages,
		layout:   alloc.Layout(),
		capacity: capacity,
		alloc:    alloc,
	}, nil
}

// EstimateFixed returns the estimated footprint in bytes of a Fixed set of
// capacity bits with the default page size.
func EstimateFixed(capacity uint64) uint64 {
	return paged.EstimateWidth(wordsFor(capacity), 8, 0)
}

// Capacity returns the number of addressable bits.
func (b *Fixed) Capacity() uint64 { return b.capacity }

func (b *Fixed) word(index uint64) (*atomic.Uint64, error) {
	if err := hugearray.CheckIndex(index, b.capacity); err != nil {
		return nil, err
	}
	w := index >> wordShift
	return &b.pages[b.layout.Page(w)][b.layout.Offset(w)], nil
}

// Set sets the bit at index.
func (b *Fixed) Set(index uint64) error {
	w, err := b.word(index)
	if err != nil {
		return err
	}
	setBit(w, bitMask(index))
	return nil
}

// Get reports whether the bit at index is set.
func (b *Fixed) Get(index uint64) (bool, error) {
	w, err := b.word(index)
	if err != nil {
		return false, err
	}
	return w.Load()&bitMask(index) != 0, nil
}

// GetAndSet sets the bit at index and returns its previous state. Among
// concurrent callers on the same clear bit exactly one observes false.
func (b *Fixed) GetAndSet(index uint64) (bool, error) {
	w, err := b.word(index)
	if err != nil {
		return false, err
	}
	return setBit(w, bitMask(index)), nil
}

// Clear clears the bit at index.
func (b *Fixed) Clear(index uint64) error {
	w, err := b.word(index)
	if err != nil {
		return err
	}
	clearBit(w, bitMask(index))
	return nil
}

// Flip toggles the bit at index.
func (b *Fixed) Flip(index uint64) error {
	w, err := b.word(index)
	if err != nil {
		return err
	}
	flipBit(w, bitMask(index))
	return nil
}

// SetRange sets every bit in [start, end).
func (b *Fixed) SetRange(start, end uint64) error {
	if start > end {
		return &hugearray.IndexError{Index: start, Capacity: end}
	}
	if end > b.capacity {
		return &hugearray.IndexError{Index: end - 1, Capacity: b.capacity}
	}
	setWordRange(b.pages, b.layout, start, end)
	return nil
}

// Cardinality returns the number of set bits.
func (b *Fixed) Cardinality() uint64 { return cardinality(b.pages) }

// IsEmpty reports whether no bit is set.
func (b *Fixed) IsEmpty() bool { return isEmpty(b.pages) }

// AllSet reports whether every bit in [0, Capacity) is set.
func (b *Fixed) AllSet() bool { return allSet(b.pages, b.layout, b.capacity) }

// NextSetBit returns the first set bit at or after from.
func (b *Fixed) NextSetBit(from uint64) (uint64, bool) {
	return nextSetBit(b.pages, b.layout, from, b.capacity)
}

// All iterates over the set bits in ascending order.
func (b *Fixed) All() iter.Seq[uint64] {
	return setBits(b.pages, b.layout, b.capacity)
}

// ClearAll clears every bit. Concurrent Sets may or may not survive.
func (b *Fixed) ClearAll() { clearAll(b.pages) }

// ToBitSet copies the set into a *bitset.BitSet.
func (b *Fixed) ToBitSet() (*bitset.BitSet, error) {
	n, err := conv.Uint64ToInt(wordsFor(b.capacity))
	if err != nil {
		return nil, err
	}
	words := make([]uint64, 0, n)
	for _, page := range b.pages {
		for i := range page {
			words = append(words, page[i].Load())
		}
	}
	return bitset.FromWithLength(uint(b.capacity), words), nil
}

// ToRoaring copies the set into a 64-bit roaring bitmap.
func (b *Fixed) ToRoaring() *roaring64.Bitmap {
	return toRoaring(b.All())
}

// Release returns the reserved memory to the resource controller. The set
// must not be used afterwards.
func (b *Fixed) Release() {
	b.alloc.Release()
	b.pages = nil
	b.capacity = 0
}

func toRoaring(bits iter.Seq[uint64]) *roaring64.Bitmap {
	rb := roaring64.New()
	for i := range bits {
		rb.Add(i)
	}
	return rb
}
