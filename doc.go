// Package hugearray provides huge paged arrays and wait-free concurrent
// primitives for arrays spanning billions of elements.
//
// Arrays are split into power-of-two pages instead of one giant allocation.
// On top of that paged storage, the subpackages provide:
//
//   - paged: addressing, memory estimates, page allocation and the immutable Array[T]
//   - fill: parallel page initialization (identity, generator or zero fill)
//   - bitset: a fixed-size and a growing atomic bit set
//   - disjointset: a concurrent union-find with union-by-min and optional seeds
//   - builder: concurrent writes of disjoint regions into a growing array
//   - resource: memory admission control and fill concurrency limits
//
// This package holds what they share: configuration options, errors,
// logging and metrics.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	// Parallel identity fill of one billion int64 values.
//	ids, _ := fill.New(ctx, 1_000_000_000, fill.Identity[int64]())
//
//	// Per-superstep active-node tracking.
//	active, _ := bitset.NewFixed(nodeCount)
//	_ = active.Set(42)
//
//	// Connected components.
//	dss, _ := disjointset.New(nodeCount)
//	_ = dss.Union(0, 1)
//	same, _ := dss.SameSet(0, 1) // true
//
// # Concurrency Model
//
// Every mutation on a bit set or disjoint set is a compare-and-swap retry
// loop on a single word; no operation takes a lock or blocks. Growable
// structures publish their page table through one atomic pointer and grow by
// installing a strictly larger copy. Only fill.New owns goroutines.
//
// # Configuration
//
//	bs, err := bitset.NewGrowing(
//	    hugearray.WithPageSize(1<<14),
//	    hugearray.WithLogger(hugearray.NewTextLogger(slog.LevelDebug)),
//	    hugearray.WithResourceController(rc),
//	)
package hugearray
