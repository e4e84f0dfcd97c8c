package fill

import (
	"github.com/hupe1980/hugearray/paged"
)

// Strategy produces the initial value of every element.
// ValueAt must be safe for concurrent use.
type Strategy[T paged.Element] interface {
	ValueAt(index uint64) T
}

type identity[T paged.Element] struct{}

func (identity[T]) ValueAt(index uint64) T { return T(index) }

type generator[T paged.Element] struct {
	fn func(index uint64) T
}

func (g generator[T]) ValueAt(index uint64) T { return g.fn(index) }

type zero[T paged.Element] struct{}

func (zero[T]) ValueAt(uint64) T {
	var z T
	return z
}

// Identity sets every element to its own index.
func Identity[T paged.Element]() Strategy[T] { return identity[T]{} }

// Generate sets every element to fn(index). fn is called concurrently from
// several goroutines.
func Generate[T paged.Element](fn func(index uint64) T) Strategy[T] {
	return generator[T]{fn: fn}
}

// Zero leaves every element at its zero value.
func Zero[T paged.Element]() Strategy[T] { return zero[T]{} }

// fillPage writes one page whose first element has global index base.
func fillPage[T paged.Element](page []T, base uint64, s Strategy[T]) {
	switch s := s.(type) {
	case zero[T]:
		clear(page)
	case identity[T]:
		for i := range page {
			page[i] = T(base + uint64(i))
		}
	case generator[T]:
		fn := s.fn
		for i := range page {
			page[i] = fn(base + uint64(i))
		}
	default:
		for i := range page {
			page[i] = s.ValueAt(base + uint64(i))
		}
	}
}
