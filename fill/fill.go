package fill

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hugearray"
	"github.com/hupe1980/hugearray/paged"
)

// Filler allocates and initializes pages of T in parallel.
type Filler[T paged.Element] struct {
	alloc  *paged.Allocator[T]
	layout paged.Layout
	cfg    hugearray.Config
}

// NewFiller validates cfg and returns a Filler. op names the owning
// structure in logs and resource errors.
func NewFiller[T paged.Element](op string, cfg hugearray.Config) (*Filler[T], error) {
	alloc, err := paged.NewAllocator[T](op, cfg)
	if err != nil {
		return nil, err
	}
	return &Filler[T]{
		alloc:  alloc,
		layout: alloc.Layout(),
		cfg:    cfg,
	}, nil
}

// Layout returns the page layout.
func (f *Filler[T]) Layout() paged.Layout { return f.layout }

// Allocate allocates the pages for size elements and fills them with s.
func (f *Filler[T]) Allocate(ctx context.Context, size uint64, s Strategy[T]) ([][]T, error) {
	pages, err := f.alloc.Pages(size)
	if err != nil {
		return nil, err
	}
	if _, ok := s.(zero[T]); ok {
		// fresh pages are already zeroed
		return pages, nil
	}
	if err := f.Fill(ctx, pages, s); err != nil {
		f.alloc.DiscardPages(pages)
		return nil, err
	}
	return pages, nil
}

// Fill overwrites existing pages with s in parallel. The pages must follow
// this Filler's layout: every page but the last is full.
//
// Fill returns ctx.Err() if ctx is canceled before all pages are claimed;
// pages already claimed are completed first.
func (f *Filler[T]) Fill(ctx context.Context, pages [][]T, s Strategy[T]) error {
	if len(pages) == 0 {
		return nil
	}
	if err := f.cfg.Resources.AcquireFill(ctx); err != nil {
		return err
	}
	defer f.cfg.Resources.ReleaseFill()

	start := time.Now()
	workers := min(f.cfg.Concurrency, len(pages))

	var err error
	if workers <= 1 {
		err = f.fillSequential(ctx, pages, s)
	} else {
		err = f.fillParallel(ctx, pages, s, workers)
	}

	elapsed := time.Since(start)
	f.cfg.Metrics.RecordFill(len(pages), elapsed, err)
	f.cfg.Logger.LogFill(ctx, f.layout.Capacity(len(pages)), len(pages), workers, elapsed, err)
	return err
}

func (f *Filler[T]) fillSequential(ctx context.Context, pages [][]T, s Strategy[T]) error {
	for p, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		fillPage(page, f.layout.Index(p, 0), s)
	}
	return nil
}

func (f *Filler[T]) fillParallel(ctx context.Context, pages [][]T, s Strategy[T], workers int) error {
	var cursor atomic.Int64
	n := int64(len(pages))

	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				p := cursor.Add(1) - 1
				if p >= n {
					return nil
				}
				fillPage(pages[p], f.layout.Index(int(p), 0), s)
			}
		})
	}
	return g.Wait()
}

// Release returns the bytes reserved for allocated pages to the resource
// controller.
func (f *Filler[T]) Release() {
	f.alloc.Release()
}

// Reserved returns the bytes currently reserved by this Filler.
func (f *Filler[T]) Reserved() int64 {
	return f.alloc.Reserved()
}

// New allocates an array of size elements and initializes it in parallel
// with s.
func New[T paged.Element](ctx context.Context, size uint64, s Strategy[T], opts ...hugearray.Option) (*paged.Array[T], error) {
	cfg, err := hugearray.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	f, err := NewFiller[T]("fill", cfg)
	if err != nil {
		return nil, err
	}
	pages, err := f.Allocate(ctx, size, s)
	if err != nil {
		return nil, err
	}
	arr, err := paged.FromPages(pages, size, f.layout)
	if err != nil {
		f.Release()
		return nil, err
	}
	return arr.WithRelease(f.Release), nil
}
