package paged

import (
	"math/bits"

	"github.com/hupe1980/hugearray"
)

// PageSizeInBytes is the payload size targeted by DefaultPageSize.
const PageSizeInBytes = 32 * 1024

// MaxPageSize bounds configurable page sizes (elements per page).
const MaxPageSize = 1 << 30

// ValidatePageSize returns a *hugearray.PageSizeError unless pageSize is a
// positive power of two no larger than MaxPageSize.
func ValidatePageSize(pageSize int) error {
	if pageSize <= 0 || pageSize > MaxPageSize || pageSize&(pageSize-1) != 0 {
		return &hugearray.PageSizeError{PageSize: pageSize}
	}
	return nil
}

// PageShift returns log2(pageSize). pageSize must be a power of two.
func PageShift(pageSize int) uint {
	return uint(bits.TrailingZeros(uint(pageSize)))
}

// PageIndex returns the page holding index.
func PageIndex(index uint64, shift uint) uint64 {
	return index >> shift
}

// IndexInPage returns the offset of index within its page.
func IndexInPage(index, mask uint64) uint64 {
	return index & mask
}

// NumPages returns the number of pages needed for size elements
// (ceiling division). pageSize must be a power of two.
func NumPages(size uint64, pageSize int) uint64 {
	shift := PageShift(pageSize)
	return (size >> shift) + boolToUint64(size&uint64(pageSize-1) != 0)
}

func boolToUint64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// DefaultPageSize returns the largest power of two number of elements of the
// given width that fits into PageSizeInBytes (at least one).
func DefaultPageSize(width int) int {
	if width <= 0 {
		width = 1
	}
	n := PageSizeInBytes / width
	if n <= 1 {
		return 1
	}
	return 1 << (bits.Len(uint(n)) - 1)
}

// Layout is a validated page size together with its shift and mask.
type Layout struct {
	size  int
	shift uint
	mask  uint64
}

// NewLayout validates pageSize and precomputes shift and mask.
func NewLayout(pageSize int) (Layout, error) {
	if err := ValidatePageSize(pageSize); err != nil {
		return Layout{}, err
	}
	return Layout{
		size:  pageSize,
		shift: PageShift(pageSize),
		mask:  uint64(pageSize - 1),
	}, nil
}

// ResolveLayout returns the layout for a configured page size, falling back
// to DefaultPageSize(width) when pageSize is 0.
func ResolveLayout(pageSize, width int) (Layout, error) {
	if pageSize == 0 {
		pageSize = DefaultPageSize(width)
	}
	return NewLayout(pageSize)
}

// PageSize returns the number of elements per page.
func (l Layout) PageSize() int { return l.size }

// Shift returns log2 of the page size.
func (l Layout) Shift() uint { return l.shift }

// Mask returns page size - 1.
func (l Layout) Mask() uint64 { return l.mask }

// Page returns the page index of a global index.
func (l Layout) Page(index uint64) int {
	return int(index >> l.shift)
}

// Offset returns the offset of a global index within its page.
func (l Layout) Offset(index uint64) int {
	return int(index & l.mask)
}

// Pages returns the number of pages needed for size elements.
func (l Layout) Pages(size uint64) int {
	return int((size >> l.shift) + boolToUint64(size&l.mask != 0))
}

// Capacity returns the number of elements held by pages full pages.
func (l Layout) Capacity(pages int) uint64 {
	return uint64(pages) << l.shift
}

// Index composes a global index from a page index and an offset.
func (l Layout) Index(page, offset int) uint64 {
	return uint64(page)<<l.shift | uint64(offset)
}
