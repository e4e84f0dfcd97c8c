package hugearray_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/hupe1980/hugearray"
	"github.com/hupe1980/hugearray/bitset"
	"github.com/hupe1980/hugearray/builder"
	"github.com/hupe1980/hugearray/disjointset"
	"github.com/hupe1980/hugearray/fill"
	"github.com/hupe1980/hugearray/paged"
	"github.com/hupe1980/hugearray/resource"
)

// Example_fill demonstrates parallel initialization of a paged array.
func Example_fill() {
	arr, err := fill.New(context.Background(), 10_000, fill.Identity[int64](),
		hugearray.WithPageSize(1024),
		hugearray.WithConcurrency(4),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer arr.Release()

	fmt.Println(arr.Size(), arr.PageCount(), arr.Get(9_999))
	// Output: 10000 10 9999
}

// Example_fixedBitSet demonstrates a fixed-capacity concurrent bit set.
func Example_fixedBitSet() {
	bs, err := bitset.NewFixed(1000)
	if err != nil {
		log.Fatal(err)
	}

	_ = bs.SetRange(10, 13)
	first, _ := bs.GetAndSet(500)
	second, _ := bs.GetAndSet(500)

	fmt.Println(slices.Collect(bs.All()), first, second)

	err = bs.Set(1000)
	fmt.Println(errors.Is(err, hugearray.ErrIndexOutOfRange))
	// Output:
	// [10 11 12 500] false true
	// true
}

// Example_growingBitSet demonstrates a bit set that grows on demand.
func Example_growingBitSet() {
	bs, err := bitset.NewGrowing()
	if err != nil {
		log.Fatal(err)
	}

	_ = bs.Set(0)
	_ = bs.Set(2_000_000)

	fmt.Println(bs.Capacity() > 2_000_000, bs.Cardinality())
	// Output: true 2
}

// Example_disjointSet demonstrates concurrent union-find.
func Example_disjointSet() {
	ds, err := disjointset.New(10)
	if err != nil {
		log.Fatal(err)
	}

	_ = ds.Union(0, 1)
	_ = ds.Union(2, 3)
	_ = ds.Union(1, 2)

	a, _ := ds.SameSet(0, 3)
	b, _ := ds.SameSet(4, 5)
	fmt.Println(a, b, ds.Components())
	// Output: true false 7
}

// Example_builder demonstrates assembling an array from disjoint regions.
func Example_builder() {
	b, err := builder.New[string]()
	if err != nil {
		log.Fatal(err)
	}

	_ = b.WriteRange(2, []string{"c", "d"})
	_ = b.WriteRange(0, []string{"a", "b"})

	arr, err := b.Build(4)
	if err != nil {
		log.Fatal(err)
	}
	values, _ := arr.ToSlice()
	fmt.Println(values)
	// Output: [a b c d]
}

// Example_admission demonstrates rejecting a job before allocating it.
func Example_admission() {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})

	small := paged.EstimateArray(1<<16, paged.Int64, 0)
	large := disjointset.Estimate(1<<20, true)

	fmt.Println(rc.Admit(small) == nil)
	fmt.Println(errors.Is(rc.Admit(large), hugearray.ErrMemoryLimitExceeded))
	// Output:
	// true
	// true
}
