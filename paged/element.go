package paged

import "unsafe"

// Element is the set of primitive element types with parallel initialization
// support.
type Element interface {
	~int64 | ~float64 | ~int32 | ~byte
}

// ElementType tags the element type of a structure for estimation.
type ElementType int

const (
	// Int64 is a 64-bit signed integer element.
	Int64 ElementType = iota
	// Float64 is a 64-bit floating point element.
	Float64
	// Int32 is a 32-bit signed integer element.
	Int32
	// Byte is an 8-bit element.
	Byte
	// Object is an opaque reference (pointer-sized) element.
	Object
)

// Width returns the element size in bytes.
func (t ElementType) Width() int {
	switch t {
	case Int64, Float64:
		return 8
	case Int32:
		return 4
	case Byte:
		return 1
	default:
		return int(unsafe.Sizeof(uintptr(0)))
	}
}

func (t ElementType) String() string {
	switch t {
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Byte:
		return "byte"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// WidthOf returns the in-memory size of T in bytes.
func WidthOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
