package discovery

import (
	"errors"
	"log/slog"
	"reflect"

	"github.com/km-arc/go-bootstrap/framework/assembly"
)

// Filter decides whether a catalogued type is eligible for discovery.
type Filter func(t *assembly.Type) bool

// DefaultFilter accepts types that discovery may instantiate: concrete,
// exported, closed and constructible with no arguments.
func DefaultFilter(t *assembly.Type) bool {
	return IsConcrete(t) && t.IsExported() && !t.IsOpen() && t.HasConstructor()
}

// IsConcrete reports whether t is neither an interface nor declared abstract.
// Open generics and broken entries have no reflect.Type and are not concrete.
func IsConcrete(t *assembly.Type) bool {
	return t.Reflect() != nil && !t.IsInterface() && !t.IsAbstract()
}

// And combines filters; a type must pass all of them.
func And(filters ...Filter) Filter {
	return func(t *assembly.Type) bool {
		for _, f := range filters {
			if !f(t) {
				return false
			}
		}
		return true
	}
}

// Scanner walks assemblies and applies a Filter to their types.
type Scanner struct {
	filter Filter
	logger *slog.Logger
}

// NewScanner creates a Scanner. A nil filter means DefaultFilter and a nil
// logger means slog.Default().
func NewScanner(logger *slog.Logger, filter Filter) *Scanner {
	if filter == nil {
		filter = DefaultFilter
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{filter: filter, logger: logger}
}

// Eligible returns the types of asm that pass the filter.
//
// Entries that failed to load are skipped: a library with one broken type
// must not hide the rest. Only a failure to enumerate the assembly at all is
// returned as an error.
func (s *Scanner) Eligible(asm *assembly.Assembly) ([]*assembly.Type, error) {
	types, err := asm.Types()
	if err != nil {
		var loadErr *assembly.LoadError
		if !errors.As(err, &loadErr) {
			return nil, err
		}
		for _, failure := range loadErr.Failures {
			s.logger.Debug("Skipping type that failed to load.", "assembly", asm.Name(), "error", failure)
		}
	}

	out := make([]*assembly.Type, 0, len(types))
	for _, t := range types {
		if s.filter(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Assignable returns the eligible types of asm that implement iface.
func (s *Scanner) Assignable(asm *assembly.Assembly, iface reflect.Type) ([]*assembly.Type, error) {
	types, err := s.Eligible(asm)
	if err != nil {
		return nil, err
	}
	out := types[:0]
	for _, t := range types {
		if t.AssignableTo(iface) {
			out = append(out, t)
		}
	}
	return out, nil
}
