// Package bitset provides lock-free concurrent bit sets over paged atomic
// 64-bit words.
//
// Architecture:
//   - Paged design: words live in power-of-two pages (4096 words = 262144 bits by default)
//   - Lock-free: every mutation is a compare-and-swap retry loop on one word
//   - Fixed: sized once, out-of-range indices are reported as *hugearray.IndexError
//   - Growing: pages published through an atomically replaced page table;
//     indices beyond the capacity grow the set instead of failing
//
// Snapshot queries (Cardinality, IsEmpty, AllSet, All) are safe under
// concurrent mutation but are not linearizable as a whole: they observe each
// word at a slightly different instant.
//
// Used for:
//   - Active-node / vote-to-halt tracking per superstep
//   - Visited sets of streaming ingestion with unknown element counts
package bitset
