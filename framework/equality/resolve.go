package equality

import (
	"errors"

	"github.com/km-arc/go-bootstrap/framework/container"
)

// ErrNilContainer is returned when a comparer is requested from a nil container.
var ErrNilContainer = errors.New("equality: nil container")

// Resolve returns the comparer registered for T, or Default[T] when none is.
// A registration that does not implement Comparer[T] is treated as absent.
//
//	cmp, err := equality.Resolve[*Customer](c)
//	same := cmp.Equals(a, b)
func Resolve[T any](c *container.Container) (Comparer[T], error) {
	if c == nil {
		return nil, ErrNilContainer
	}
	if v, ok := c.Lookup(KeyOf[T]()); ok {
		if cmp, ok := v.(Comparer[T]); ok {
			return cmp, nil
		}
	}
	return Default[T](), nil
}

// MustResolve is like Resolve but panics on a nil container.
func MustResolve[T any](c *container.Container) Comparer[T] {
	cmp, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return cmp
}

// Register installs cmp as the comparer for T unless one is already
// registered, and reports whether it did.
func Register[T any](c *container.Container, cmp Comparer[T]) bool {
	return c.TryInstance(KeyOf[T](), cmp)
}
