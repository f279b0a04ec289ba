package bootstrap

import (
	"github.com/km-arc/go-bootstrap/framework/assembly"
	"github.com/km-arc/go-bootstrap/framework/container"
)

// Pass is an extra discovery or verification step run around an Orchestrator.
type Pass func(c *container.Container, assemblies []*assembly.Assembly) error

// Decorator wraps an Orchestrator, in the manner of HTTP middleware.
type Decorator func(next Orchestrator) Orchestrator

// Chain wraps base with decorators. The first decorator is the outermost, so
//
//	Chain(base, Before(a), After(b))
//
// runs a, then base, then b.
func Chain(base Orchestrator, decorators ...Decorator) Orchestrator {
	o := base
	for i := len(decorators) - 1; i >= 0; i-- {
		o = decorators[i](o)
	}
	return o
}

// Wrap returns an Orchestrator that runs before, then next, then after.
// Either pass may be nil. Arguments are validated before anything runs.
func Wrap(next Orchestrator, before, after Pass) Orchestrator {
	return OrchestratorFunc(func(c *container.Container, assemblies ...*assembly.Assembly) error {
		if err := Validate(c, assemblies); err != nil {
			return err
		}
		if before != nil {
			if err := before(c, assemblies); err != nil {
				return err
			}
		}
		if err := next.RegisterServices(c, assemblies...); err != nil {
			return err
		}
		if after != nil {
			return after(c, assemblies)
		}
		return nil
	})
}

// Before runs pass ahead of the wrapped orchestrator.
func Before(pass Pass) Decorator {
	return func(next Orchestrator) Orchestrator { return Wrap(next, pass, nil) }
}

// After runs pass once the wrapped orchestrator has succeeded.
func After(pass Pass) Decorator {
	return func(next Orchestrator) Orchestrator { return Wrap(next, nil, pass) }
}
