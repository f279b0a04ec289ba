// Package equality defines the Comparer capability, the structural default
// comparer, and the container helpers that resolve one with a fallback.
package equality

import (
	"reflect"
	"strings"

	"github.com/km-arc/go-bootstrap/framework/container"
)

// Comparer is an equality strategy for values of type T.
//
// Implementations are registered as container singletons, so they must be
// stateless and safe for concurrent use.
type Comparer[T any] interface {
	Equals(a, b T) bool
	HashOf(a T) int
}

// Equatable is implemented by types that define their own equality.
// Default uses it in preference to == when T implements it.
type Equatable[T any] interface {
	Equal(other T) bool
	Hash() int
}

// Funcs adapts a pair of functions to Comparer.
type Funcs[T any] struct {
	EqualsFunc func(a, b T) bool
	HashFunc   func(a T) int
}

// Equals reports whether a and b are equal according to EqualsFunc.
func (f Funcs[T]) Equals(a, b T) bool { return f.EqualsFunc(a, b) }

// HashOf returns HashFunc(a).
func (f Funcs[T]) HashOf(a T) int { return f.HashFunc(a) }

// KeyPrefix starts every comparer key.
const KeyPrefix = "equality.Comparer["

// KeyFor returns the container key of the comparer for valueType.
//
//	equality.KeyFor(reflect.TypeFor[*catalog.Customer]())
//	// "equality.Comparer[*github.com/km-arc/go-bootstrap/internal/catalog.Customer]"
func KeyFor(valueType reflect.Type) string {
	return KeyPrefix + container.KeyFor(valueType) + "]"
}

// KeyOf returns the container key of the comparer for T.
func KeyOf[T any]() string {
	return KeyFor(reflect.TypeFor[T]())
}

var (
	boolType = reflect.TypeFor[bool]()
	intType  = reflect.TypeFor[int]()
)

// ValueType reports the T for which rt satisfies Comparer[T], judged by its
// Equals(T, T) bool and HashOf(T) int methods. rt may be a concrete type or
// an interface type.
func ValueType(rt reflect.Type) (reflect.Type, bool) {
	if rt == nil {
		return nil, false
	}
	eq, ok := rt.MethodByName("Equals")
	if !ok {
		return nil, false
	}
	hash, ok := rt.MethodByName("HashOf")
	if !ok {
		return nil, false
	}

	// Concrete method types carry the receiver as their first input.
	skip := 1
	if rt.Kind() == reflect.Interface {
		skip = 0
	}
	et, ht := eq.Type, hash.Type
	if et.NumIn() != 2+skip || et.NumOut() != 1 || et.Out(0) != boolType {
		return nil, false
	}
	if ht.NumIn() != 1+skip || ht.NumOut() != 1 || ht.Out(0) != intType {
		return nil, false
	}
	t := et.In(skip)
	if et.In(skip+1) != t || ht.In(skip) != t {
		return nil, false
	}
	return t, true
}

// IsComparerInterface reports whether iface is an instantiation of Comparer.
func IsComparerInterface(iface reflect.Type) bool {
	if iface == nil || iface.Kind() != reflect.Interface {
		return false
	}
	return iface.PkgPath() == comparerPkgPath && strings.HasPrefix(iface.Name(), "Comparer[")
}

var comparerPkgPath = reflect.TypeFor[Comparer[int]]().PkgPath()
