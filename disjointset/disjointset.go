package disjointset

import (
	"context"
	"errors"
	"math"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/hupe1980/hugearray"
	"github.com/hupe1980/hugearray/fill"
	"github.com/hupe1980/hugearray/paged"
)

// ErrInvalidSeed is returned when a seed function yields an id outside
// [0, MaxSeed].
var ErrInvalidSeed = errors.New("seed ids must be in [0, MaxSeed]")

// MaxSeed is the largest accepted seed id. Ids above it are reserved for
// unseeded elements, which draw from a counter starting at max(seed)+1.
const MaxSeed = math.MaxInt64 / 2

// unassigned marks an element without a partition id.
const unassigned = int64(-1)

// DisjointSet is a concurrent union-find over the elements [0, Size()).
//
// All methods are safe for concurrent use. Indices at or beyond Size fail
// with a *hugearray.IndexError.
type DisjointSet struct {
	parents [][]int64
	ids     [][]int64 // nil unless seeded
	layout  paged.Layout
	size    uint64

	_      cpu.CacheLinePad
	nextID atomic.Int64
	_      cpu.CacheLinePad

	fillers []*fill.Filler[int64]
}

// New creates a disjoint set of capacity singleton sets.
func New(capacity uint64, opts ...hugearray.Option) (*DisjointSet, error) {
	cfg, err := hugearray.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return newDisjointSet(context.Background(), capacity, cfg)
}

// NewSeeded creates a disjoint set whose elements start with the partition
// ids returned by seed. Elements for which seed reports false are unseeded.
// seed is called concurrently, exactly once per element.
func NewSeeded(capacity uint64, seed func(index uint64) (int64, bool), opts ...hugearray.Option) (*DisjointSet, error) {
	cfg, err := hugearray.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()

	d, err := newDisjointSet(ctx, capacity, cfg)
	if err != nil {
		return nil, err
	}

	f, err := fill.NewFiller[int64]("disjointset.NewSeeded", cfg)
	if err != nil {
		d.Release()
		return nil, err
	}
	d.fillers = append(d.fillers, f)

	var (
		maxSeed atomic.Int64
		invalid atomic.Bool
	)
	maxSeed.Store(unassigned)
	ids, err := f.Allocate(ctx, capacity, fill.Generate(func(i uint64) int64 {
		id, ok := seed(i)
		if !ok {
			return unassigned
		}
		if id < 0 || id > MaxSeed {
			invalid.Store(true)
			return unassigned
		}
		for {
			cur := maxSeed.Load()
			if id <= cur || maxSeed.CompareAndSwap(cur, id) {
				return id
			}
		}
	}))
	if err != nil {
		d.Release()
		return nil, err
	}
	if invalid.Load() {
		d.Release()
		return nil, ErrInvalidSeed
	}

	d.ids = ids
	d.nextID.Store(maxSeed.Load() + 1)
	return d, nil
}

func newDisjointSet(ctx context.Context, capacity uint64, cfg hugearray.Config) (*DisjointSet, error) {
	if err := hugearray.CheckCapacity(capacity); err != nil {
		return nil, err
	}
	f, err := fill.NewFiller[int64]("disjointset.New", cfg)
	if err != nil {
		return nil, err
	}
	parents, err := f.Allocate(ctx, capacity, fill.Identity[int64]())
	if err != nil {
		return nil, err
	}
	return &DisjointSet{
		parents: parents,
		layout:  f.Layout(),
		size:    capacity,
		fillers: []*fill.Filler[int64]{f},
	}, nil
}

// Estimate returns the estimated footprint in bytes of a disjoint set of
// capacity elements with the default page size.
func Estimate(capacity uint64, seeded bool) uint64 {
	n := paged.EstimateArray(capacity, paged.Int64, 0)
	if seeded {
		n += paged.EstimateArray(capacity, paged.Int64, 0)
	}
	return n
}

// Size returns the number of elements.
func (d *DisjointSet) Size() uint64 { return d.size }

// Seeded reports whether the set was created with NewSeeded.
func (d *DisjointSet) Seeded() bool { return d.ids != nil }

func (d *DisjointSet) parent(i int64) *int64 {
	u := uint64(i)
	return &d.parents[d.layout.Page(u)][d.layout.Offset(u)]
}

func (d *DisjointSet) find(i int64) int64 {
	for {
		p := atomic.LoadInt64(d.parent(i))
		if p == i {
			return i
		}
		gp := atomic.LoadInt64(d.parent(p))
		if gp == p {
			return p
		}
		atomic.CompareAndSwapInt64(d.parent(i), p, gp)
		i = gp
	}
}

// setID returns the partition id of root, assigning one from the shared
// counter if it has none yet. Without seeds every id is 0.
func (d *DisjointSet) setID(root int64) int64 {
	if d.ids == nil {
		return 0
	}
	u := uint64(root)
	slot := &d.ids[d.layout.Page(u)][d.layout.Offset(u)]
	if id := atomic.LoadInt64(slot); id != unassigned {
		return id
	}
	id := d.nextID.Add(1) - 1
	if atomic.CompareAndSwapInt64(slot, unassigned, id) {
		return id
	}
	// Another goroutine assigned first; the drawn id stays unused.
	return atomic.LoadInt64(slot)
}

// less orders roots by (set id, index).
func (d *DisjointSet) less(a, b int64) bool {
	ida, idb := d.setID(a), d.setID(b)
	if ida != idb {
		return ida < idb
	}
	return a < b
}

func (d *DisjointSet) check(indices ...uint64) error {
	for _, i := range indices {
		if err := hugearray.CheckIndex(i, d.size); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the current root of the set containing a.
func (d *DisjointSet) Find(a uint64) (uint64, error) {
	if err := d.check(a); err != nil {
		return 0, err
	}
	return uint64(d.find(int64(a))), nil
}

// Union merges the sets containing a and b.
func (d *DisjointSet) Union(a, b uint64) error {
	if err := d.check(a, b); err != nil {
		return err
	}
	for {
		ra, rb := d.find(int64(a)), d.find(int64(b))
		if ra == rb {
			return nil
		}
		if d.less(rb, ra) {
			ra, rb = rb, ra
		}
		if atomic.CompareAndSwapInt64(d.parent(rb), rb, ra) {
			return nil
		}
	}
}

// SameSet reports whether a and b are in the same set.
func (d *DisjointSet) SameSet(a, b uint64) (bool, error) {
	if err := d.check(a, b); err != nil {
		return false, err
	}
	for {
		ra, rb := d.find(int64(a)), d.find(int64(b))
		if ra == rb {
			return true, nil
		}
		// ra may have been linked below rb after it was found.
		if atomic.LoadInt64(d.parent(ra)) == ra {
			return false, nil
		}
	}
}

// SetIDOf returns the representative id of the set containing a: the
// partition id of its root when seeded, the root index otherwise.
func (d *DisjointSet) SetIDOf(a uint64) (int64, error) {
	if err := d.check(a); err != nil {
		return 0, err
	}
	root := d.find(int64(a))
	if d.ids == nil {
		return root, nil
	}
	return d.setID(root), nil
}

// Components returns the number of distinct sets. The count is a snapshot
// and may be stale under concurrent unions.
func (d *DisjointSet) Components() uint64 {
	var n uint64
	var base int64
	for _, page := range d.parents {
		for i := range page {
			if atomic.LoadInt64(&page[i]) == base+int64(i) {
				n++
			}
		}
		base += int64(len(page))
	}
	return n
}

// Release returns the reserved memory to the resource controller. The set
// must not be used afterwards.
func (d *DisjointSet) Release() {
	for _, f := range d.fillers {
		f.Release()
	}
	d.fillers = nil
	d.parents = nil
	d.ids = nil
	d.size = 0
}
