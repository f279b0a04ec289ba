package discovery

import (
	"errors"
	"reflect"

	"github.com/km-arc/go-bootstrap/framework/assembly"
	"github.com/km-arc/go-bootstrap/framework/container"
	"github.com/km-arc/go-bootstrap/framework/equality"
)

// Comparers registers every eligible equality.Comparer implementation in asm
// as a container instance keyed by the value type it compares. Each comparer
// is constructed once during the scan; a constructor that fails aborts the
// scan with a *ConstructionError. Existing registrations are never replaced;
// the number of keys actually registered is returned.
func (s *Scanner) Comparers(c *container.Container, asm *assembly.Assembly) (int, error) {
	types, err := s.Eligible(asm)
	if err != nil {
		return 0, err
	}

	registered := 0
	for _, t := range types {
		vts := comparedTypes(t)
		if len(vts) == 0 {
			continue
		}
		cmp, err := newComparer(t)
		if err != nil {
			return registered, err
		}
		for _, vt := range vts {
			key := equality.KeyFor(vt)
			if !c.TryInstance(key, cmp) {
				s.logger.Debug("Comparer already registered, keeping existing.", "key", key, "type", t.Name())
				continue
			}
			s.logger.Debug("Registered comparer.", "assembly", asm.Name(), "key", key, "type", t.Name())
			registered++
		}
	}
	return registered, nil
}

func newComparer(t *assembly.Type) (any, error) {
	v, err := t.New()
	if err != nil {
		return nil, &ConstructionError{Type: t.Name(), Err: err}
	}
	if isNil(v) {
		return nil, &ConstructionError{Type: t.Name(), Err: errors.New("constructor returned nil")}
	}
	return v, nil
}

// comparedTypes lists each value type T for which t satisfies Comparer[T],
// from its own method set and from declared Comparer interfaces, without
// duplicates.
func comparedTypes(t *assembly.Type) []reflect.Type {
	var (
		out  []reflect.Type
		seen = make(map[reflect.Type]bool)
	)
	add := func(vt reflect.Type, ok bool) {
		if ok && !seen[vt] {
			seen[vt] = true
			out = append(out, vt)
		}
	}

	add(equality.ValueType(t.Reflect()))
	for _, iface := range t.Declared() {
		if equality.IsComparerInterface(iface) {
			add(equality.ValueType(iface))
		}
	}
	return out
}

// Factory returns a container factory that constructs t on resolution. A
// failure surfaces as a panic carrying a *ConstructionError, matching Make's
// behaviour for unresolvable keys.
func Factory(t *assembly.Type) container.Factory {
	return func(*container.Container) any {
		v, err := t.New()
		if err != nil {
			panic(&ConstructionError{Type: t.Name(), Err: err})
		}
		return v
	}
}
