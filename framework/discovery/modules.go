package discovery

import (
	"errors"
	"reflect"

	"github.com/km-arc/go-bootstrap/framework/assembly"
	"github.com/km-arc/go-bootstrap/framework/container"
)

// ServiceModule is a unit of registration: it writes its services into the
// container and is then discarded.
//
//	type RepositoryModule struct{}
//
//	func (RepositoryModule) Register(c *container.Container) error {
//	    c.TrySingleton(container.KeyOf[CustomerRepository](), func(*container.Container) any {
//	        return newMemoryRepository()
//	    })
//	    return nil
//	}
//
// Modules must not depend on running before or after any other module.
type ServiceModule interface {
	Register(c *container.Container) error
}

var moduleType = reflect.TypeFor[ServiceModule]()

// Modules constructs every eligible ServiceModule found in assemblies.
//
// The order of the result follows catalogue order, but callers must not rely
// on it. A type listed in several assemblies is constructed once. The first
// type that cannot be constructed aborts the scan with a *ConstructionError.
func (s *Scanner) Modules(assemblies ...*assembly.Assembly) ([]ServiceModule, error) {
	var (
		modules []ServiceModule
		seen    = make(map[reflect.Type]bool)
	)
	for _, asm := range assemblies {
		types, err := s.Assignable(asm, moduleType)
		if err != nil {
			return nil, err
		}
		for _, t := range types {
			if seen[t.Reflect()] {
				continue
			}
			seen[t.Reflect()] = true

			m, err := newModule(t)
			if err != nil {
				return nil, err
			}
			s.logger.Debug("Discovered service module.", "assembly", asm.Name(), "type", t.Name())
			modules = append(modules, m)
		}
	}
	return modules, nil
}

func newModule(t *assembly.Type) (ServiceModule, error) {
	v, err := t.New()
	if err != nil {
		return nil, &ConstructionError{Type: t.Name(), Err: err}
	}
	if isNil(v) {
		return nil, &ConstructionError{Type: t.Name(), Err: errors.New("constructor returned nil")}
	}
	m, ok := v.(ServiceModule)
	if !ok {
		return nil, &ConstructionError{Type: t.Name(), Err: errors.New("constructed value is not a ServiceModule")}
	}
	return m, nil
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
