// Package paged implements the storage layer shared by every huge structure:
// power-of-two page addressing, memory estimates for capacity planning, page
// allocation with memory admission control, and the immutable Array[T].
//
// # Addressing
//
// A global index i maps to page i >> shift and offset i & mask, where
// pageSize == 1 << shift. Every page except the last holds exactly pageSize
// elements; the last page may be shorter.
//
//	layout, _ := paged.NewLayout(4096)
//	page, offset := layout.Page(10_000), layout.Offset(10_000) // 2, 1808
//
// # Estimates
//
// BytesFor and EstimateArray are pure planning queries. Pair them with
// resource.Controller.Admit to reject jobs before anything is allocated.
package paged
