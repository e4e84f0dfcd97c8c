// Package mem provides memory allocation utilities.
//
// # Aligned Pages
//
// Pages of pointer-free element types are allocated on 64-byte (cache line)
// boundaries, so a page never shares its first cache line with a neighbouring
// allocation and parallel fills of adjacent pages do not false-share.
package mem
