// Package disjointset implements a lock-free concurrent union-find over
// paged int64 parent links.
//
// Find uses path halving: every visited node is redirected to its
// grandparent with a single best-effort compare-and-swap whose failure is
// ignored. Union links the losing root below the winning root with a
// compare-and-swap and restarts from fresh roots on interference.
//
// Roots are ordered by (set id, root index) and the smaller one survives a
// merge. Without seeds every set id is zero, so the smallest element of a
// set is its representative. With NewSeeded, seeded elements keep their
// partition id and unseeded ones draw ids from a shared counter starting
// above the largest seed, so a seeded partition always survives a merge
// with an unseeded one:
//
//	prev := map[uint64]int64{0: 7, 1: 7, 5: 3}
//	ds, _ := disjointset.NewSeeded(10, func(i uint64) (int64, bool) {
//		id, ok := prev[i]
//		return id, ok
//	})
//	_ = ds.Union(0, 9)
//	id, _ := ds.SetIDOf(9) // 7
package disjointset
