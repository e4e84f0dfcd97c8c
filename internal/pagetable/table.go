package pagetable

import (
	"context"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/hupe1980/hugearray"
	"github.com/hupe1980/hugearray/paged"
)

// Table is a lock-free, append-by-replacement table of pages of E.
type Table[E any] struct {
	_       cpu.CacheLinePad
	current atomic.Pointer[[][]E]
	_       cpu.CacheLinePad

	alloc  *paged.Allocator[E]
	layout paged.Layout
	cfg    hugearray.Config
}

// New creates a table whose pages come from alloc, pre-sized to hold
// initialCapacity elements.
func New[E any](alloc *paged.Allocator[E], cfg hugearray.Config, initialCapacity uint64) (*Table[E], error) {
	if err := hugearray.CheckCapacity(initialCapacity); err != nil {
		return nil, err
	}
	if cfg.Metrics == nil {
		cfg.Metrics = hugearray.NoopMetricsCollector{}
	}
	if cfg.Logger == nil {
		cfg.Logger = hugearray.NoopLogger()
	}

	t := &Table[E]{
		alloc:  alloc,
		layout: alloc.Layout(),
		cfg:    cfg,
	}

	n := t.layout.Pages(initialCapacity)
	pages := make([][]E, n)
	for i := range pages {
		page, err := alloc.Page()
		if err != nil {
			for _, p := range pages[:i] {
				alloc.Discard(p)
			}
			return nil, err
		}
		pages[i] = page
	}
	t.current.Store(&pages)
	return t, nil
}

// Layout returns the page layout.
func (t *Table[E]) Layout() paged.Layout { return t.layout }

// Load returns the current table. The returned slice must not be modified.
func (t *Table[E]) Load() [][]E {
	return *t.current.Load()
}

// Capacity returns the number of elements addressable without growth.
func (t *Table[E]) Capacity() uint64 {
	return t.layout.Capacity(len(*t.current.Load()))
}

// Ensure returns a table that covers index, growing the shared table if
// needed. Contention is resolved internally; only allocation failures and
// indices beyond hugearray.MaxCapacity are reported.
func (t *Table[E]) Ensure(index uint64) ([][]E, error) {
	cur := t.current.Load()
	page := t.layout.Page(index)
	if page < len(*cur) {
		return *cur, nil
	}
	if index >= hugearray.MaxCapacity {
		return nil, &hugearray.CapacityError{Capacity: index + 1}
	}

	for {
		old := *cur
		if page < len(old) {
			return old, nil
		}

		target := t.target(len(old), page+1)
		grown, err := t.grow(old, target)
		if err != nil && target > page+1 {
			// the headroom may not fit into the memory budget
			grown, err = t.grow(old, page+1)
		}
		if err != nil {
			return nil, err
		}

		if t.current.CompareAndSwap(cur, &grown) {
			t.cfg.Metrics.RecordGrowth(len(old), len(grown), true)
			t.cfg.Logger.LogGrowth(context.Background(), len(old), len(grown), true)
			return grown, nil
		}

		// Lost the race: the winner's table is at least as large as old.
		for _, p := range grown[len(old):] {
			t.alloc.Discard(p)
		}
		t.cfg.Metrics.RecordGrowth(len(old), len(grown), false)
		t.cfg.Logger.LogGrowth(context.Background(), len(old), len(grown), false)
		cur = t.current.Load()
	}
}

// target returns the page count to grow to. It adds at least an eighth so
// that appending writers pay amortized O(1) per page.
func (t *Table[E]) target(have, need int) int {
	maxPages := t.layout.Pages(hugearray.MaxCapacity)
	return min(max(need, have+have>>3+1), maxPages)
}

// grow builds a copy of old with n pages.
func (t *Table[E]) grow(old [][]E, n int) ([][]E, error) {
	grown := make([][]E, n)
	copy(grown, old)
	for i := len(old); i < n; i++ {
		page, err := t.alloc.Page()
		if err != nil {
			for _, p := range grown[len(old):i] {
				t.alloc.Discard(p)
			}
			return nil, err
		}
		grown[i] = page
	}
	return grown, nil
}

// Release returns the bytes of every page to the resource controller.
func (t *Table[E]) Release() {
	t.alloc.Release()
}
