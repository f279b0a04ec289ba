// Package container provides the IoC container that the bootstrapper
// populates at startup.
//
// # Overview
//
// The container maps string keys to factories or pre-built instances. Keys
// are normally derived from Go types so that an interface names its own slot:
//
//	key := container.KeyOf[CustomerRepository]()
//
// Because Go has no runtime constructor reflection, auto-wiring is replaced
// by explicit factory functions.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register: modules and comparers are written in by the bootstrapper
//  3. Resolve: any number of goroutines may resolve once registration is done
//
// # Bindings
//
//	// Transient: new instance every Make()
//	c.Bind(key, func(c *container.Container) any { return &Foo{} })
//
//	// Singleton: created once, reused
//	c.Singleton(key, func(c *container.Container) any { return newCache() })
//
//	// Pre-built value
//	c.Instance(key, cfg)
//
// # Idempotent registration
//
// The Try variants never overwrite. They report whether they registered, so
// running the same registration twice leaves the registry unchanged:
//
//	c.TrySingleton(key, factory) // true
//	c.TrySingleton(key, other)   // false, factory still wins
//
// # Resolving
//
//	raw, ok := c.Lookup(key)                          // absence is not an error
//	repo := container.Resolve[CustomerRepository](c, key) // panics if missing
//
// # Extend / Decorate
//
//	c.Extend(key, func(instance any, c *container.Container) any {
//	    return &TimestampLogger{Inner: instance.(*Logger)}
//	})
package container
