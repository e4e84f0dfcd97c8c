package hugearray

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hugearray/resource"
)

var (
	// ErrInvalidPageSize is returned when a page size is not a positive power of two.
	ErrInvalidPageSize = errors.New("page size must be a positive power of two")

	// ErrInvalidCapacity is returned when a requested capacity cannot be addressed.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrInvalidConcurrency is returned when the configured concurrency is negative.
	ErrInvalidConcurrency = errors.New("concurrency must not be negative")

	// ErrIndexOutOfRange is matched by every *IndexError via errors.Is.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrMemoryLimitExceeded is returned when an allocation would exceed the
	// memory budget of the configured resource controller.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// MaxCapacity is the largest element count any structure accepts.
// Indices must stay representable as int64 for the disjoint-set parent links.
const MaxCapacity = uint64(1) << 62

// PageSizeError indicates a page size that is not a power of two.
//
// It matches ErrInvalidPageSize via errors.Is.
type PageSizeError struct {
	PageSize int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("invalid page size %d: must be a positive power of two", e.PageSize)
}

func (e *PageSizeError) Unwrap() error { return ErrInvalidPageSize }

// CapacityError indicates a capacity outside [0, MaxCapacity].
//
// It matches ErrInvalidCapacity via errors.Is.
type CapacityError struct {
	Capacity uint64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("invalid capacity %d: must not exceed %d", e.Capacity, MaxCapacity)
}

func (e *CapacityError) Unwrap() error { return ErrInvalidCapacity }

// IndexError reports an index at or beyond the capacity of a fixed-size structure.
//
// It matches ErrIndexOutOfRange via errors.Is.
type IndexError struct {
	Index    uint64
	Capacity uint64
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Capacity)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// ResourceError reports a fatal allocation failure.
//
// The original underlying error can be accessed via errors.Unwrap.
type ResourceError struct {
	Op    string
	Bytes int64
	cause error
}

// NewResourceError wraps cause as a fatal allocation failure of op.
func NewResourceError(op string, bytes int64, cause error) *ResourceError {
	return &ResourceError{Op: op, Bytes: bytes, cause: cause}
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: allocating %d bytes: %v", e.Op, e.Bytes, e.cause)
}

func (e *ResourceError) Unwrap() error { return e.cause }

// CheckIndex returns an *IndexError when index >= capacity.
func CheckIndex(index, capacity uint64) error {
	if index >= capacity {
		return &IndexError{Index: index, Capacity: capacity}
	}
	return nil
}

// CheckCapacity returns a *CapacityError when capacity exceeds MaxCapacity.
func CheckCapacity(capacity uint64) error {
	if capacity > MaxCapacity {
		return &CapacityError{Capacity: capacity}
	}
	return nil
}
