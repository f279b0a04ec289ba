package equality

import (
	"hash/maphash"
	"math"
	"reflect"
)

// seed is shared so that every default comparer hashes a value the same way
// for the life of the process.
var seed = maphash.MakeSeed()

// Default returns the structural default comparer for T:
//   - if T implements Equatable[T], its Equal and Hash methods;
//   - otherwise == for comparable values, which is identity for pointers;
//   - slices, maps, funcs and channels compare by reference identity;
//   - any other non-comparable value compares with reflect.DeepEqual.
func Default[T any]() Comparer[T] {
	if reflect.TypeFor[T]().Implements(reflect.TypeFor[Equatable[T]]()) {
		return equatableComparer[T]{}
	}
	return structuralComparer[T]{}
}

type equatableComparer[T any] struct{}

func (equatableComparer[T]) Equals(a, b T) bool {
	an, bn := isNil(any(a)), isNil(any(b))
	if an || bn {
		return an && bn
	}
	return any(a).(Equatable[T]).Equal(b)
}

func (equatableComparer[T]) HashOf(a T) int {
	if isNil(any(a)) {
		return 0
	}
	return any(a).(Equatable[T]).Hash()
}

type structuralComparer[T any] struct{}

func (structuralComparer[T]) Equals(a, b T) bool {
	return equalValues(any(a), any(b))
}

func (structuralComparer[T]) HashOf(a T) int {
	return hashValue(any(a))
}

func equalValues(a, b any) (eq bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		// Comparable structs may still hold non-comparable values in
		// interface fields; those fall through to the structural path.
		defer func() {
			if recover() != nil {
				eq = reflect.DeepEqual(a, b)
			}
		}()
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Func, reflect.Chan:
		return va.Pointer() == vb.Pointer()
	}
	return reflect.DeepEqual(a, b)
}

func hashValue(a any) (h int) {
	if a == nil {
		return 0
	}
	if reflect.TypeOf(a).Comparable() {
		defer func() {
			if recover() != nil {
				h = deepHash(reflect.ValueOf(a))
			}
		}()
		return int(maphash.Comparable(seed, a))
	}
	v := reflect.ValueOf(a)
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return int(maphash.Comparable(seed, v.Pointer()))
	}
	return deepHash(v)
}

// maxHashDepth bounds deepHash on cyclic structures; values deeper than this
// contribute nothing, which keeps equal values hashing equally.
const maxHashDepth = 8

// deepHash hashes v consistently with reflect.DeepEqual.
func deepHash(v reflect.Value) int {
	var h maphash.Hash
	h.SetSeed(seed)
	writeValue(&h, v, 0)
	return int(h.Sum64())
}

func writeValue(h *maphash.Hash, v reflect.Value, depth int) {
	if depth > maxHashDepth || !v.IsValid() {
		return
	}
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeUint(h, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeUint(h, v.Uint())
	case reflect.Float32, reflect.Float64:
		writeFloat(h, v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		writeFloat(h, real(c))
		writeFloat(h, imag(c))
	case reflect.String:
		h.WriteString(v.String())
	case reflect.Array, reflect.Slice:
		writeUint(h, uint64(v.Len()))
		for i := range v.Len() {
			writeValue(h, v.Index(i), depth+1)
		}
	case reflect.Map:
		// Order independent: combine per-entry hashes with addition.
		var sum uint64
		iter := v.MapRange()
		for iter.Next() {
			var entry maphash.Hash
			entry.SetSeed(seed)
			writeValue(&entry, iter.Key(), depth+1)
			writeValue(&entry, iter.Value(), depth+1)
			sum += entry.Sum64()
		}
		writeUint(h, uint64(v.Len()))
		writeUint(h, sum)
	case reflect.Struct:
		for i := range v.NumField() {
			writeValue(h, v.Field(i), depth+1)
		}
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			h.WriteByte(0)
			return
		}
		writeValue(h, v.Elem(), depth+1)
	default:
		// Funcs, channels and unsafe pointers only DeepEqual when nil or
		// identical; hashing the kind keeps equal values equal.
		writeUint(h, uint64(v.Kind()))
	}
}

func writeFloat(h *maphash.Hash, f float64) {
	if f == 0 {
		f = 0 // -0 == +0
	}
	writeUint(h, math.Float64bits(f))
}

func writeUint(h *maphash.Hash, u uint64) {
	var b [8]byte
	for i := range b {
		b[i] = byte(u >> (8 * i))
	}
	_, _ = h.Write(b[:])
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
