package container

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"sync"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) any

// Lifetime controls how often a binding's factory runs.
type Lifetime int

const (
	// Transient bindings build a new value on every resolution.
	Transient Lifetime = iota
	// Singleton bindings build once and cache the value for the container's life.
	Singleton
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	default:
		return fmt.Sprintf("lifetime(%d)", int(l))
	}
}

// binding holds a registered factory and its lifetime.
type binding struct {
	factory  Factory
	lifetime Lifetime
}

// extender wraps an already-resolved instance with decorator logic.
type extender func(instance any, c *Container) any

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC registry the bootstrapper writes into.
//
// Keys are strings, normally produced by TypeKey / KeyOf so that an interface
// type maps to a stable name. Two registration families exist:
//   - Bind / Singleton / Instance replace whatever the key held before.
//   - TryBind / TrySingleton / TryInstance are idempotent: the first
//     registration of a key wins and later attempts report false.
//
// Resolution is safe for concurrent use once registration has finished.
type Container struct {
	mu sync.RWMutex

	// key → binding
	bindings map[string]*binding

	// key → resolved singleton or pre-built instance
	instances map[string]any

	// alias → canonical key
	aliases map[string]string

	// key → extender funcs
	extenders map[string][]extender

	// resolved callbacks: []func(key, instance)
	afterResolving []func(string, any)
}

// SelfKey is the key under which every container registers itself.
const SelfKey = "container"

// New creates an empty container.
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
		extenders: make(map[string][]extender),
	}
	c.instances[SelfKey] = c
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory, replacing any previous registration.
//
//	c.Bind(container.KeyOf[Clock](), func(*container.Container) any { return systemClock{} })
func (c *Container) Bind(key string, factory Factory) {
	c.register(key, factory, Transient, true)
}

// Singleton registers a factory whose result is cached after first resolution,
// replacing any previous registration.
func (c *Container) Singleton(key string, factory Factory) {
	c.register(key, factory, Singleton, true)
}

// Instance registers a pre-built value, replacing any previous registration.
func (c *Container) Instance(key string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := c.canonical(key)
	delete(c.bindings, k)
	c.instances[k] = instance
}

// TryBind registers a transient factory unless key is already bound.
// It reports whether the registration took place.
func (c *Container) TryBind(key string, factory Factory) bool {
	return c.register(key, factory, Transient, false)
}

// TrySingleton registers a singleton factory unless key is already bound.
// It reports whether the registration took place.
//
//	if !c.TrySingleton(key, factory) {
//	    // someone got there first; their registration stands
//	}
func (c *Container) TrySingleton(key string, factory Factory) bool {
	return c.register(key, factory, Singleton, false)
}

// TryInstance registers a pre-built value unless key is already bound.
func (c *Container) TryInstance(key string, instance any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := c.canonical(key)
	if c.boundLocked(k) {
		return false
	}
	c.instances[k] = instance
	return true
}

func (c *Container) register(key string, factory Factory, lifetime Lifetime, replace bool) bool {
	if factory == nil {
		panic(fmt.Sprintf("container: nil factory for [%s]", key))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	k := c.canonical(key)
	if !replace && c.boundLocked(k) {
		return false
	}
	// Drop a cached instance so it is rebuilt with the new factory.
	delete(c.instances, k)
	c.bindings[k] = &binding{factory: factory, lifetime: lifetime}
	return true
}

// Alias registers an alternative name for a key.
func (c *Container) Alias(key, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if key == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", key))
	}
	c.aliases[alias] = c.canonical(key)
}

// Extend decorates every future resolution of key.
// An already cached singleton is decorated in place.
//
//	c.Extend(loggerKey, func(instance any, c *container.Container) any {
//	    return instance.(*slog.Logger).With("component", "billing")
//	})
func (c *Container) Extend(key string, fn func(instance any, c *Container) any) {
	c.mu.Lock()
	k := c.canonical(key)
	c.extenders[k] = append(c.extenders[k], fn)
	inst, cached := c.instances[k]
	c.mu.Unlock()

	if cached {
		extended := fn(inst, c)
		c.mu.Lock()
		c.instances[k] = extended
		c.mu.Unlock()
	}
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Lookup resolves key, reporting false when nothing is registered under it.
// Absence is not an error; callers decide their own fallback.
func (c *Container) Lookup(key string) (any, bool) {
	c.mu.RLock()
	k := c.canonical(key)
	if inst, ok := c.instances[k]; ok {
		c.mu.RUnlock()
		return inst, true
	}
	b, ok := c.bindings[k]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return c.build(k, b), true
}

// Make resolves key and panics if nothing is registered under it.
func (c *Container) Make(key string) any {
	inst, ok := c.Lookup(key)
	if !ok {
		panic(fmt.Sprintf("container: no binding registered for [%s]", key))
	}
	return inst
}

// build executes a factory, caching the result for singletons.
// Concurrent first resolutions of one singleton keep whichever value was
// stored first so every caller observes the same instance.
func (c *Container) build(key string, b *binding) any {
	instance := b.factory(c)

	c.mu.RLock()
	exts := c.extenders[key]
	c.mu.RUnlock()
	for _, ext := range exts {
		instance = ext(instance, c)
	}

	if b.lifetime == Singleton {
		c.mu.Lock()
		if existing, ok := c.instances[key]; ok {
			c.mu.Unlock()
			return existing
		}
		c.instances[key] = instance
		c.mu.Unlock()
	}

	c.fireAfterResolving(key, instance)
	return instance
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether anything is registered under key.
func (c *Container) Bound(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.boundLocked(c.canonical(key))
}

// Resolved reports whether key holds a cached instance.
func (c *Container) Resolved(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(key)]
	return ok
}

// Forget removes the binding and cached instance for key.
func (c *Container) Forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := c.canonical(key)
	delete(c.bindings, k)
	delete(c.instances, k)
}

// Flush resets the container to its freshly constructed state.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[string]*binding)
	c.instances = map[string]any{SelfKey: c}
	c.aliases = make(map[string]string)
	c.extenders = make(map[string][]extender)
}

// Keys returns every registered key in sorted order.
func (c *Container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Entry describes one registration for diagnostics.
type Entry struct {
	Key      string `json:"key" yaml:"key"`
	Lifetime string `json:"lifetime" yaml:"lifetime"`
	Resolved bool   `json:"resolved" yaml:"resolved"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Describe returns a sorted snapshot of the registry without resolving anything.
func (c *Container) Describe() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, 0, len(c.bindings)+len(c.instances))
	for k, b := range c.bindings {
		e := Entry{Key: k, Lifetime: b.lifetime.String()}
		if inst, ok := c.instances[k]; ok {
			e.Resolved = true
			e.Type = fmt.Sprintf("%T", inst)
		}
		out = append(out, e)
	}
	for k, inst := range c.instances {
		if _, bound := c.bindings[k]; bound {
			continue
		}
		out = append(out, Entry{Key: k, Lifetime: "instance", Resolved: true, Type: fmt.Sprintf("%T", inst)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (c *Container) boundLocked(key string) bool {
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// canonical resolves an alias to its canonical key.
func (c *Container) canonical(key string) string {
	if target, ok := c.aliases[key]; ok {
		return target
	}
	return key
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after any factory runs.
func (c *Container) AfterResolving(cb func(key string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(key string, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(key, instance)
	}
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// key when working with interfaces.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "example.com/app.UserRepository"
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return KeyFor(t)
}

// KeyOf returns the key for type T. Interfaces are keyed by their own name.
func KeyOf[T any]() string {
	return KeyFor(reflect.TypeFor[T]())
}

// KeyFor returns the key for a reflect.Type. Named types use their import
// path and name; pointers, slices, arrays, maps and channels are spelled out
// from the keys of their element types, so types from two packages that
// share a name never collide:
//
//	KeyFor(reflect.TypeFor[*model.Customer]()) // "*example.com/a/model.Customer"
//
// Funcs, structs and interfaces without a name use the reflect string.
func KeyFor(t reflect.Type) string {
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}
		return t.PkgPath() + "." + t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + KeyFor(t.Elem())
	case reflect.Slice:
		return "[]" + KeyFor(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + KeyFor(t.Elem())
	case reflect.Map:
		return "map[" + KeyFor(t.Key()) + "]" + KeyFor(t.Elem())
	case reflect.Chan:
		elem := KeyFor(t.Elem())
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + elem
		case reflect.SendDir:
			return "chan<- " + elem
		}
		return "chan " + elem
	}
	return t.String()
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result. It panics on a missing
// binding or a type mismatch.
//
//	repo := container.Resolve[CustomerRepository](c, container.KeyOf[CustomerRepository]())
func Resolve[T any](c *Container, key string) T {
	instance := c.Make(key)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%s]: [%s] resolved to %T", reflect.TypeFor[T](), key, instance))
	}
	return typed
}

// TryResolve is like Resolve but reports absence or a type mismatch as false.
func TryResolve[T any](c *Container, key string) (T, bool) {
	instance, ok := c.Lookup(key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := instance.(T)
	return typed, ok
}
