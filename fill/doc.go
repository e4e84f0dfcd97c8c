// Package fill initializes huge paged arrays in parallel.
//
// All pages are allocated up front. A fixed number of goroutines then claim
// page indices from a shared atomic cursor until none are left, so every page
// is written by exactly one goroutine and load is balanced dynamically when
// some pages are slower to compute than others. Each worker fills its pages
// sequentially; the call returns after a single join.
//
// The value of each element is produced by a Strategy:
//
//	ids, _ := fill.New(ctx, n, fill.Identity[int64]())
//	ranks, _ := fill.New(ctx, n, fill.Generate(func(i uint64) float64 { return 1 / float64(n) }))
//	flags, _ := fill.New(ctx, n, fill.Zero[byte]())
//
// Strategies are dispatched once per page; the built-in ones run tight loops
// without an interface call per element.
package fill
