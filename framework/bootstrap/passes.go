package bootstrap

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/km-arc/go-bootstrap/framework/assembly"
	"github.com/km-arc/go-bootstrap/framework/container"
	"github.com/km-arc/go-bootstrap/framework/discovery"
)

// ErrUnbound is returned by Require when a key is missing after bootstrap.
var ErrUnbound = errors.New("bootstrap: required key not bound")

// Require returns a Pass that fails unless every key is bound.
//
//	o := bootstrap.Chain(bootstrap.New(logger),
//	    bootstrap.After(bootstrap.Require(container.KeyOf[CustomerRepository]())),
//	)
func Require(keys ...string) Pass {
	return func(c *container.Container, _ []*assembly.Assembly) error {
		var missing []string
		for _, k := range keys {
			if !c.Bound(k) {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: %s", ErrUnbound, strings.Join(missing, ", "))
		}
		return nil
	}
}

// Capabilities returns a Pass that registers every eligible implementation of
// the capability interface C as a singleton under CapabilityKey. It is the
// building block for extra discovery passes such as validators or mappers.
// Registration is idempotent, like the comparer scan.
func Capabilities[C any](scanner *discovery.Scanner) Pass {
	iface := reflect.TypeFor[C]()
	return func(c *container.Container, assemblies []*assembly.Assembly) error {
		for _, asm := range assemblies {
			types, err := scanner.Assignable(asm, iface)
			if err != nil {
				return err
			}
			for _, t := range types {
				c.TrySingleton(CapabilityKey(iface, t.Reflect()), discovery.Factory(t))
			}
		}
		return nil
	}
}

// CapabilityKey is the container key of implementation impl of capability iface.
func CapabilityKey(iface, impl reflect.Type) string {
	return container.KeyFor(iface) + "#" + container.KeyFor(impl)
}

// Implementations resolves every registered implementation of C in key order.
func Implementations[C any](c *container.Container) []C {
	prefix := container.KeyOf[C]() + "#"
	var out []C
	for _, k := range c.Keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if v, ok := container.TryResolve[C](c, k); ok {
			out = append(out, v)
		}
	}
	return out
}
