package bitset

import (
	"iter"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/hugearray"
	"github.com/hupe1980/hugearray/internal/pagetable"
	"github.com/hupe1980/hugearray/paged"
)

// Growing is a concurrent bit set that grows on demand.
//
// Writers that touch a bit beyond the current capacity race to publish a
// larger page table; every pre-existing page is carried over, so no set bit
// is ever lost. Reads and clears beyond the capacity never grow the set.
type Growing struct {
	table  *pagetable.Table[atomic.Uint64]
	layout paged.Layout
}

// NewGrowing creates an empty growable bit set. hugearray.WithInitialCapacity
// pre-sizes it to the given number of bits.
func NewGrowing(opts ...hugearray.Option) (*Growing, error) {
	cfg, err := hugearray.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	alloc, err := paged.NewAllocatorOf[atomic.Uint64]("bitset.Growing", cfg)
	if err != nil {
		return nil, err
	}
	table, err := pagetable.New(alloc, cfg, wordsFor(cfg.InitialCapacity))
	if err != nil {
		return nil, err
	}
	return &Growing{table: table, layout: alloc.Layout()}, nil
}

// Capacity returns the number of bits addressable without growth.
func (b *Growing) Capacity() uint64 {
	return b.table.Capacity() << wordShift
}

// load returns the word holding index, or nil if it is beyond the current
// capacity.
func (b *Growing) load(index uint64) *atomic.Uint64 {
	w := index >> wordShift
	pages := b.table.Load()
	p := b.layout.Page(w)
	if p >= len(pages) {
		return nil
	}
	return &pages[p][b.layout.Offset(w)]
}

// ensure returns the word holding index, growing the table if needed.
func (b *Growing) ensure(index uint64) (*atomic.Uint64, error) {
	if w := b.load(index); w != nil {
		return w, nil
	}
	if index >= hugearray.MaxCapacity {
		return nil, &hugearray.CapacityError{Capacity: index + 1}
	}
	w := index >> wordShift
	pages, err := b.table.Ensure(w)
	if err != nil {
		return nil, err
	}
	return &pages[b.layout.Page(w)][b.layout.Offset(w)], nil
}

// Set sets the bit at index, growing the set if needed.
func (b *Growing) Set(index uint64) error {
	w, err := b.ensure(index)
	if err != nil {
		return err
	}
	setBit(w, bitMask(index))
	return nil
}

// Get reports whether the bit at index is set. Indices beyond the capacity
// read as clear.
func (b *Growing) Get(index uint64) bool {
	w := b.load(index)
	return w != nil && w.Load()&bitMask(index) != 0
}

// GetAndSet sets the bit at index, growing the set if needed, and returns
// its previous state.
func (b *Growing) GetAndSet(index uint64) (bool, error) {
	w, err := b.ensure(index)
	if err != nil {
		return false, err
	}
	return setBit(w, bitMask(index)), nil
}

// Clear clears the bit at index. Indices beyond the capacity are ignored.
func (b *Growing) Clear(index uint64) {
	if w := b.load(index); w != nil {
		clearBit(w, bitMask(index))
	}
}

// Flip toggles the bit at index, growing the set if needed.
func (b *Growing) Flip(index uint64) error {
	w, err := b.ensure(index)
	if err != nil {
		return err
	}
	flipBit(w, bitMask(index))
	return nil
}

// SetRange sets every bit in [start, end), growing the set if needed.
func (b *Growing) SetRange(start, end uint64) error {
	if start > end {
		return &hugearray.IndexError{Index: start, Capacity: end}
	}
	if start == end {
		return nil
	}
	if end > hugearray.MaxCapacity {
		return &hugearray.CapacityError{Capacity: end}
	}
	pages, err := b.table.Ensure((end - 1) >> wordShift)
	if err != nil {
		return err
	}
	setWordRange(pages, b.layout, start, end)
	return nil
}

// Cardinality returns the number of set bits.
func (b *Growing) Cardinality() uint64 { return cardinality(b.table.Load()) }

// IsEmpty reports whether no bit is set.
func (b *Growing) IsEmpty() bool { return isEmpty(b.table.Load()) }

// AllSet reports whether every bit in [0, Capacity) is set.
func (b *Growing) AllSet() bool {
	pages := b.table.Load()
	return allSet(pages, b.layout, b.layout.Capacity(len(pages))<<wordShift)
}

// NextSetBit returns the first set bit at or after from.
func (b *Growing) NextSetBit(from uint64) (uint64, bool) {
	pages := b.table.Load()
	return nextSetBit(pages, b.layout, from, b.layout.Capacity(len(pages))<<wordShift)
}

// All iterates over the set bits in ascending order. Bits beyond the
// capacity at the start of the iteration are not visited.
func (b *Growing) All() iter.Seq[uint64] {
	pages := b.table.Load()
	return setBits(pages, b.layout, b.layout.Capacity(len(pages))<<wordShift)
}

// ClearAll clears every bit without shrinking the set.
func (b *Growing) ClearAll() { clearAll(b.table.Load()) }

// ToRoaring copies the set into a 64-bit roaring bitmap.
func (b *Growing) ToRoaring() *roaring64.Bitmap {
	return toRoaring(b.All())
}

// Release returns the reserved memory to the resource controller. The set
// must not be used afterwards.
func (b *Growing) Release() {
	b.table.Release()
}
