package assembly

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Assembly is a named, read-only catalogue of type descriptors. It plays
// the part of a loaded code library: discovery enumerates it but never
// changes it.
type Assembly struct {
	name string

	once    sync.Once
	load    func() ([]*Type, error)
	entries []*Type
	loadErr error
}

// New builds an assembly from a fixed list of descriptors.
//
//	var Catalog = assembly.New("catalog",
//	    assembly.Of[*CustomerComparer](),
//	    assembly.Of[*RepositoryModule](),
//	)
func New(name string, entries ...*Type) *Assembly {
	list := make([]*Type, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			list = append(list, e)
		}
	}
	return Load(name, func() ([]*Type, error) { return list, nil })
}

// Load builds an assembly whose descriptors are produced lazily, at most once,
// by fn. A *LoadError from fn marks a partial failure: the descriptors fn did
// return stay usable. Any other error fails the whole assembly.
func Load(name string, fn func() ([]*Type, error)) *Assembly {
	return &Assembly{name: name, load: fn}
}

// Name returns the assembly name.
func (a *Assembly) Name() string { return a.name }

func (a *Assembly) ensure() {
	a.once.Do(func() {
		a.entries, a.loadErr = a.load()
	})
}

// Types returns every descriptor that loaded. When some entries failed to
// load the loaded ones are still returned, together with a *LoadError
// describing the failures.
func (a *Assembly) Types() ([]*Type, error) {
	a.ensure()

	var (
		loaded   = make([]*Type, 0, len(a.entries))
		failures []error
	)
	var partial *LoadError
	if errors.As(a.loadErr, &partial) {
		failures = append(failures, partial.Failures...)
	} else if a.loadErr != nil {
		return nil, fmt.Errorf("assembly %s: %w", a.name, a.loadErr)
	}

	for _, t := range a.entries {
		if t == nil {
			continue
		}
		if t.Err() != nil {
			failures = append(failures, t.Err())
			continue
		}
		loaded = append(loaded, t)
	}

	if len(failures) > 0 {
		return loaded, &LoadError{Assembly: a.name, Failures: failures}
	}
	return loaded, nil
}

// String implements fmt.Stringer.
func (a *Assembly) String() string { return a.name }

// LoadError reports entries of an assembly that could not be loaded. It is a
// partial failure: the accompanying descriptors are valid.
type LoadError struct {
	Assembly string
	Failures []error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("assembly %s: %d type(s) failed to load: %s",
		e.Assembly, len(e.Failures), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual failures to errors.Is / errors.As.
func (e *LoadError) Unwrap() []error { return e.Failures }
