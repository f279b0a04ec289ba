package assembly

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
	"strings"
)

// ErrNoConstructor is returned by Type.New for types without a zero-argument constructor.
var ErrNoConstructor = errors.New("assembly: type has no zero-argument constructor")

// Type is a reflective descriptor of one catalogued type.
//
// Descriptors are immutable once built. Depending on how they were declared
// they may lack a reflect.Type (open generics, broken entries) or a
// constructor (interfaces, NoConstructor).
type Type struct {
	name     string
	pkgPath  string
	rtype    reflect.Type
	abstract bool
	params   []string
	ctor     func() any
	declared []reflect.Type
	err      error
}

// Option adjusts a descriptor while it is being declared.
type Option func(*Type)

// Abstract marks the type as a base type that must never be instantiated by
// discovery, even though Go can construct it.
func Abstract() Option {
	return func(t *Type) { t.abstract = true }
}

// NoConstructor removes the zero-argument constructor, for types that can
// only be built with arguments (e.g. through NewX(dep)).
func NoConstructor() Option {
	return func(t *Type) { t.ctor = nil }
}

// Implements declares an extra capability interface the type satisfies.
// Declarations the type does not actually satisfy are ignored by discovery.
func Implements(iface reflect.Type) Option {
	return func(t *Type) {
		if iface != nil && iface.Kind() == reflect.Interface {
			t.declared = append(t.declared, iface)
		}
	}
}

// Of declares T with a derived zero-argument constructor: reflect.New of the
// element for pointer types, the zero value otherwise. Interfaces get none.
//
//	assembly.Of[*CustomerComparer]()
func Of[T any](opts ...Option) *Type {
	rt := reflect.TypeFor[T]()
	t := fromReflect(rt)
	t.ctor = zeroConstructor(rt)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Constructed declares T with an explicit zero-argument constructor.
func Constructed[T any](ctor func() T, opts ...Option) *Type {
	t := fromReflect(reflect.TypeFor[T]())
	if ctor != nil {
		t.ctor = func() any { return ctor() }
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Generic declares an open generic definition such as Repository[T] that has
// not been instantiated. Go cannot reflect over it, so the descriptor carries
// only its name and type parameter names.
//
//	assembly.Generic("example.com/store", "Repository", "T")
func Generic(pkgPath, name string, params ...string) *Type {
	return &Type{name: name, pkgPath: pkgPath, params: params}
}

// Broken declares an entry whose type could not be loaded.
func Broken(name string, err error) *Type {
	if err == nil {
		err = errors.New("unknown load failure")
	}
	return &Type{name: name, err: fmt.Errorf("load %s: %w", name, err)}
}

func fromReflect(rt reflect.Type) *Type {
	named := rt
	for named.Kind() == reflect.Pointer && named.Name() == "" {
		named = named.Elem()
	}
	return &Type{name: rt.String(), pkgPath: named.PkgPath(), rtype: rt}
}

func zeroConstructor(rt reflect.Type) func() any {
	switch rt.Kind() {
	case reflect.Interface:
		return nil
	case reflect.Pointer:
		elem := rt.Elem()
		return func() any { return reflect.New(elem).Interface() }
	default:
		return func() any { return reflect.Zero(rt).Interface() }
	}
}

// Name returns the display name, e.g. "*catalog.CustomerComparer".
func (t *Type) Name() string { return t.name }

// PkgPath returns the import path of the declaring package, if known.
func (t *Type) PkgPath() string { return t.pkgPath }

// Reflect returns the underlying reflect.Type, or nil for open generics and
// broken entries.
func (t *Type) Reflect() reflect.Type { return t.rtype }

// Err returns the load failure for broken entries.
func (t *Type) Err() error { return t.err }

// IsInterface reports whether the type is an interface type.
func (t *Type) IsInterface() bool {
	return t.rtype != nil && t.rtype.Kind() == reflect.Interface
}

// IsAbstract reports whether the type was declared Abstract.
func (t *Type) IsAbstract() bool { return t.abstract }

// IsOpen reports whether the type still has unbound type parameters.
func (t *Type) IsOpen() bool { return len(t.params) > 0 }

// TypeParams returns the unbound type parameter names of an open generic.
func (t *Type) TypeParams() []string { return append([]string(nil), t.params...) }

// HasConstructor reports whether New can be called.
func (t *Type) HasConstructor() bool { return t.ctor != nil }

// IsExported reports whether the declaring name is exported. Pointer types
// are judged by their element; unnamed composite types have no declaration
// and are never exported. Instantiation brackets are ignored, so
// Box[int] is judged as Box.
func (t *Type) IsExported() bool {
	if t.rtype == nil {
		return isExportedName(t.name)
	}
	named := t.rtype
	for named.Kind() == reflect.Pointer && named.Name() == "" {
		named = named.Elem()
	}
	if named.Name() == "" {
		return false
	}
	return isExportedName(named.Name())
}

func isExportedName(name string) bool {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return token.IsExported(name)
}

// AssignableTo reports whether values of this type satisfy iface.
func (t *Type) AssignableTo(iface reflect.Type) bool {
	return t.rtype != nil && t.rtype.Implements(iface)
}

// Declared returns the extra capability interfaces declared with Implements
// that the type really satisfies.
func (t *Type) Declared() []reflect.Type {
	var out []reflect.Type
	for _, iface := range t.declared {
		if t.AssignableTo(iface) {
			out = append(out, iface)
		}
	}
	return out
}

// New invokes the zero-argument constructor. A panicking constructor is
// reported as an error.
func (t *Type) New() (v any, err error) {
	if t.ctor == nil {
		return nil, ErrNoConstructor
	}
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = fmt.Errorf("assembly: constructor panicked: %v", rec)
		}
	}()
	return t.ctor(), nil
}

// String implements fmt.Stringer.
func (t *Type) String() string {
	if t.IsOpen() {
		return t.name + "[" + strings.Join(t.params, ", ") + "]"
	}
	return t.name
}
