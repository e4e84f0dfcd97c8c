package paged

import (
	"context"
	"sync/atomic"

	"github.com/hupe1980/hugearray"
	"github.com/hupe1980/hugearray/internal/conv"
	"github.com/hupe1980/hugearray/internal/mem"
)

// Allocator hands out pages of T and accounts their bytes against the
// configured resource controller.
//
// Allocator is safe for concurrent use; growable structures call Page from
// every goroutine that races to grow.
type Allocator[T any] struct {
	layout  Layout
	width   int
	newPage func(n int) []T
	cfg     hugearray.Config
	op      string

	reserved atomic.Int64
}

// NewAllocator returns an allocator for primitive elements. Pages start on a
// cache line boundary.
func NewAllocator[T Element](op string, cfg hugearray.Config) (*Allocator[T], error) {
	return newAllocator(op, cfg, mem.Aligned[T])
}

// NewAllocatorOf returns an allocator for arbitrary element types, including
// atomic words and object references.
func NewAllocatorOf[T any](op string, cfg hugearray.Config) (*Allocator[T], error) {
	return newAllocator(op, cfg, func(n int) []T { return make([]T, n) })
}

func newAllocator[T any](op string, cfg hugearray.Config, newPage func(int) []T) (*Allocator[T], error) {
	width := WidthOf[T]()
	layout, err := ResolveLayout(cfg.PageSize, width)
	if err != nil {
		return nil, err
	}
	if cfg.Metrics == nil {
		cfg.Metrics = hugearray.NoopMetricsCollector{}
	}
	if cfg.Logger == nil {
		cfg.Logger = hugearray.NoopLogger()
	}
	return &Allocator[T]{
		layout:  layout,
		width:   width,
		newPage: newPage,
		cfg:     cfg,
		op:      op,
	}, nil
}

// Layout returns the page layout of this allocator.
func (a *Allocator[T]) Layout() Layout { return a.layout }

// Pages allocates every page for size elements. Pages are full except the
// last, which holds the remainder; a size below one page yields one short
// page and a size of 0 yields no pages.
func (a *Allocator[T]) Pages(size uint64) ([][]T, error) {
	if err := hugearray.CheckCapacity(size); err != nil {
		return nil, err
	}
	n := a.layout.Pages(size)
	if n == 0 {
		return [][]T{}, nil
	}

	if err := a.reserve(BytesFor(size, a.width)); err != nil {
		return nil, err
	}

	pages := make([][]T, n)
	last := n - 1
	for i := 0; i < last; i++ {
		pages[i] = a.newPage(a.layout.size)
	}
	pages[last] = a.newPage(int(size - a.layout.Capacity(last)))
	return pages, nil
}

// Page allocates one full page.
func (a *Allocator[T]) Page() ([]T, error) {
	if err := a.reserve(BytesFor(uint64(a.layout.size), a.width)); err != nil {
		return nil, err
	}
	return a.newPage(a.layout.size), nil
}

// Discard returns the bytes of a page that was allocated but never
// published, e.g. by the loser of a growth race.
func (a *Allocator[T]) Discard(page []T) {
	bytes := conv.SaturatingInt64(BytesFor(uint64(len(page)), a.width))
	a.reserved.Add(-bytes)
	a.cfg.Resources.ReleaseMemory(bytes)
}

// DiscardPages returns the bytes of pages obtained from one call to Pages.
func (a *Allocator[T]) DiscardPages(pages [][]T) {
	var n uint64
	for _, p := range pages {
		n += uint64(len(p))
	}
	bytes := conv.SaturatingInt64(BytesFor(n, a.width))
	a.reserved.Add(-bytes)
	a.cfg.Resources.ReleaseMemory(bytes)
}

// Reserved returns the bytes currently reserved by this allocator.
func (a *Allocator[T]) Reserved() int64 {
	return a.reserved.Load()
}

// Release returns every reserved byte to the resource controller. The pages
// themselves are reclaimed by the garbage collector once unreachable.
func (a *Allocator[T]) Release() {
	bytes := a.reserved.Swap(0)
	a.cfg.Resources.ReleaseMemory(bytes)
}

func (a *Allocator[T]) reserve(bytes uint64) error {
	n := conv.SaturatingInt64(bytes)
	if err := a.cfg.Resources.AcquireMemory(n); err != nil {
		a.cfg.Metrics.RecordAllocation(n, err)
		a.cfg.Logger.LogAllocation(context.Background(), a.op, n, err)
		return hugearray.NewResourceError(a.op, n, err)
	}
	a.reserved.Add(n)
	a.cfg.Metrics.RecordAllocation(n, nil)
	return nil
}
