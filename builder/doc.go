// Package builder assembles a huge paged array from many goroutines.
//
// Writers copy values into regions they own, either agreed upon in advance
// or claimed with Allocate. The backing page table grows on demand exactly
// like a growing bit set: racing writers build larger tables and one of them
// wins the swap. Regions are not checked for overlap; overlapping writes
// leave an unspecified value at the overlapped indices.
//
//	b, _ := builder.New[int64]()
//	var g errgroup.Group
//	for _, chunk := range chunks {
//		g.Go(func() error {
//			start := b.Allocate(uint64(len(chunk)))
//			return b.WriteRange(start, chunk)
//		})
//	}
//	_ = g.Wait()
//	arr, _ := b.Build(b.Allocated())
package builder
