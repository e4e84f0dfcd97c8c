package bitset

import (
	"iter"
	"math/bits"
	"sync/atomic"

	"github.com/hupe1980/hugearray/paged"
)

const (
	wordBits  = 64
	wordShift = 6 // log2(64)
	wordMask  = wordBits - 1
)

func bitMask(index uint64) uint64 {
	return uint64(1) << (index & wordMask)
}

func wordsFor(bits uint64) uint64 {
	return (bits + wordMask) >> wordShift
}

// setBit sets mask in w and reports whether it was already set.
func setBit(w *atomic.Uint64, mask uint64) bool {
	for {
		old := w.Load()
		if old&mask == mask {
			return true
		}
		if w.CompareAndSwap(old, old|mask) {
			return false
		}
	}
}

// clearBit clears mask in w.
func clearBit(w *atomic.Uint64, mask uint64) {
	for {
		old := w.Load()
		if old&mask == 0 {
			return
		}
		if w.CompareAndSwap(old, old&^mask) {
			return
		}
	}
}

// flipBit toggles mask in w.
func flipBit(w *atomic.Uint64, mask uint64) {
	for {
		old := w.Load()
		if w.CompareAndSwap(old, old^mask) {
			return
		}
	}
}

// setWordRange sets bits [start, end) of a word-aligned range spread over
// pages. Inner words are stored whole; the edge words are CAS-merged.
func setWordRange(pages [][]atomic.Uint64, layout paged.Layout, start, end uint64) {
	if start >= end {
		return
	}
	word := func(w uint64) *atomic.Uint64 {
		return &pages[layout.Page(w)][layout.Offset(w)]
	}

	first, last := start>>wordShift, (end-1)>>wordShift
	firstMask := ^uint64(0) << (start & wordMask)
	lastMask := ^uint64(0) >> (wordMask - ((end - 1) & wordMask))

	if first == last {
		setBit(word(first), firstMask&lastMask)
		return
	}
	setBit(word(first), firstMask)
	for w := first + 1; w < last; w++ {
		word(w).Store(^uint64(0))
	}
	setBit(word(last), lastMask)
}

func cardinality(pages [][]atomic.Uint64) uint64 {
	var n uint64
	for _, page := range pages {
		for i := range page {
			if v := page[i].Load(); v != 0 {
				n += uint64(bits.OnesCount64(v))
			}
		}
	}
	return n
}

func isEmpty(pages [][]atomic.Uint64) bool {
	for _, page := range pages {
		for i := range page {
			if page[i].Load() != 0 {
				return false
			}
		}
	}
	return true
}

// allSet reports whether every bit in [0, n) is set.
func allSet(pages [][]atomic.Uint64, layout paged.Layout, n uint64) bool {
	full := n >> wordShift
	for w := uint64(0); w < full; w++ {
		if pages[layout.Page(w)][layout.Offset(w)].Load() != ^uint64(0) {
			return false
		}
	}
	if rem := n & wordMask; rem != 0 {
		mask := uint64(1)<<rem - 1
		if pages[layout.Page(full)][layout.Offset(full)].Load()&mask != mask {
			return false
		}
	}
	return true
}

// nextSetBit returns the first set bit at or after from, below limit.
func nextSetBit(pages [][]atomic.Uint64, layout paged.Layout, from, limit uint64) (uint64, bool) {
	if from >= limit {
		return 0, false
	}
	w := from >> wordShift
	lastWord := (limit - 1) >> wordShift
	v := pages[layout.Page(w)][layout.Offset(w)].Load() & (^uint64(0) << (from & wordMask))
	for {
		if v != 0 {
			i := w<<wordShift + uint64(bits.TrailingZeros64(v))
			if i >= limit {
				return 0, false
			}
			return i, true
		}
		w++
		if w > lastWord {
			return 0, false
		}
		v = pages[layout.Page(w)][layout.Offset(w)].Load()
	}
}

// setBits yields every set bit below limit in ascending order.
func setBits(pages [][]atomic.Uint64, layout paged.Layout, limit uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		var base uint64
		for _, page := range pages {
			for i := range page {
				v := page[i].Load()
				for v != 0 {
					idx := base + uint64(bits.TrailingZeros64(v))
					if idx >= limit || !yield(idx) {
						return
					}
					v &= v - 1
				}
				base += wordBits
			}
		}
	}
}

func clearAll(pages [][]atomic.Uint64) {
	for _, page := range pages {
		for i := range page {
			page[i].Store(0)
		}
	}
}
