package builder

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/hupe1980/hugearray"
	"github.com/hupe1980/hugearray/internal/pagetable"
	"github.com/hupe1980/hugearray/paged"
)

// ErrBuilt is returned by writes and builds after Build has been called.
var ErrBuilt = errors.New("builder: already built")

// Builder collects values written concurrently into disjoint regions and
// finalizes them into an immutable paged.Array.
type Builder[T any] struct {
	table  *pagetable.Table[T]
	layout paged.Layout
	cfg    hugearray.Config

	_      cpu.CacheLinePad
	cursor atomic.Uint64
	_      cpu.CacheLinePad

	// written counts elements copied by completed writes. The add after each
	// copy publishes the copy to Build, which loads the counter.
	written atomic.Uint64
	built   atomic.Bool
}

// New creates an empty builder. hugearray.WithInitialCapacity pre-sizes it.
func New[T any](opts ...hugearray.Option) (*Builder[T], error) {
	cfg, err := hugearray.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	alloc, err := paged.NewAllocatorOf[T]("builder", cfg)
	if err != nil {
		return nil, err
	}
	table, err := pagetable.New(alloc, cfg, cfg.InitialCapacity)
	if err != nil {
		return nil, err
	}
	return &Builder[T]{
		table:  table,
		layout: alloc.Layout(),
		cfg:    cfg,
	}, nil
}

// Capacity returns the number of elements addressable without growth.
func (b *Builder[T]) Capacity() uint64 { return b.table.Capacity() }

// Allocate claims a fresh region of count elements and returns its start.
// Regions returned by Allocate never overlap each other.
func (b *Builder[T]) Allocate(count uint64) uint64 {
	return b.cursor.Add(count) - count
}

// Allocated returns the total number of elements claimed with Allocate.
func (b *Builder[T]) Allocated() uint64 { return b.cursor.Load() }

// WriteRange copies values into [start, start+len(values)), growing the
// backing array if needed. The caller guarantees that no other goroutine
// writes to the same region.
func (b *Builder[T]) WriteRange(start uint64, values []T) error {
	if b.built.Load() {
		return ErrBuilt
	}
	if len(values) == 0 {
		return nil
	}
	n := uint64(len(values))
	if start > hugearray.MaxCapacity || n > hugearray.MaxCapacity-start {
		return &hugearray.CapacityError{Capacity: start + n}
	}

	pages, err := b.table.Ensure(start + n - 1)
	if err != nil {
		return err
	}
	for len(values) > 0 {
		page := pages[b.layout.Page(start)]
		c := copy(page[b.layout.Offset(start):], values)
		values = values[c:]
		start += uint64(c)
	}
	b.written.Add(n)
	return nil
}

// Written returns the number of elements copied by completed writes,
// counting overlapping writes once per write.
func (b *Builder[T]) Written() uint64 { return b.written.Load() }

// Set writes a single value at index.
func (b *Builder[T]) Set(index uint64, value T) error {
	return b.WriteRange(index, []T{value})
}

// Build finalizes the builder into an array of finalSize elements. Values
// beyond finalSize are dropped; indices never written hold the zero value.
//
// Build makes every write that completed before it visible to the caller:
// each WriteRange publishes its copy through an atomic add that Build
// observes. Writes still in flight when Build is called are a caller error.
// A failed Build leaves the builder open.
func (b *Builder[T]) Build(finalSize uint64) (*paged.Array[T], error) {
	if b.built.Swap(true) {
		return nil, ErrBuilt
	}
	start := time.Now()
	b.written.Load() // acquire every completed write

	arr, err := b.build(finalSize)

	b.cfg.Metrics.RecordBuild(finalSize, time.Since(start))
	b.cfg.Logger.LogBuild(context.Background(), finalSize, b.layout.Pages(finalSize), err)
	if err != nil {
		// nothing was handed out; writers may continue
		b.built.Store(false)
		return nil, err
	}
	return arr.WithRelease(b.table.Release), nil
}

func (b *Builder[T]) build(finalSize uint64) (*paged.Array[T], error) {
	if err := hugearray.CheckCapacity(finalSize); err != nil {
		return nil, err
	}
	pages := b.table.Load()
	if finalSize > 0 {
		var err error
		if pages, err = b.table.Ensure(finalSize - 1); err != nil {
			return nil, err
		}
	}

	n := b.layout.Pages(finalSize)
	out := make([][]T, n)
	copy(out, pages[:n])
	if n > 0 {
		last := int(finalSize - b.layout.Capacity(n-1))
		out[n-1] = out[n-1][:last:last]
	}
	return paged.FromPages(out, finalSize, b.layout)
}
