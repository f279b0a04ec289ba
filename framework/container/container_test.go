package container_test

import (
	"sync"
	"testing"

	"github.com/km-arc/go-bootstrap/framework/container"
	billingmodel "github.com/km-arc/go-bootstrap/internal/fixture/billing/model"
	shippingmodel "github.com/km-arc/go-bootstrap/internal/fixture/shipping/model"
)

// ── stubs ─────────────────────────────────────────────────────────────────────

type Greeter interface{ Greet() string }

type englishGreeter struct{ name string }

func (g *englishGreeter) Greet() string { return "hello " + g.name }

func newGreeter(name string) container.Factory {
	return func(*container.Container) any { return &englishGreeter{name: name} }
}

// ── Registration ──────────────────────────────────────────────────────────────

func TestBind_TransientBuildsEachTime(t *testing.T) {
	c := container.New()
	c.Bind("greeter", newGreeter("a"))

	first := c.Make("greeter")
	second := c.Make("greeter")
	if first == second {
		t.Error("transient binding should build a new instance per Make()")
	}
}

func TestSingleton_CachesFirstBuild(t *testing.T) {
	c := container.New()
	c.Singleton("greeter", newGreeter("a"))

	first := c.Make("greeter")
	second := c.Make("greeter")
	if first != second {
		t.Error("singleton binding should return the same instance")
	}
	if !c.Resolved("greeter") {
		t.Error("Resolved() should be true after the first Make()")
	}
}

func TestSingleton_ReplacesPreviousBinding(t *testing.T) {
	c := container.New()
	c.Singleton("greeter", newGreeter("a"))
	_ = c.Make("greeter")
	c.Singleton("greeter", newGreeter("b"))

	got := container.Resolve[Greeter](c, "greeter").Greet()
	if got != "hello b" {
		t.Errorf("Greet(): got %q, want %q", got, "hello b")
	}
}

func TestTrySingleton_FirstRegistrationWins(t *testing.T) {
	c := container.New()

	if !c.TrySingleton("greeter", newGreeter("first")) {
		t.Fatal("first TrySingleton should register")
	}
	if c.TrySingleton("greeter", newGreeter("second")) {
		t.Error("second TrySingleton should be a no-op")
	}

	got := container.Resolve[Greeter](c, "greeter").Greet()
	if got != "hello first" {
		t.Errorf("Greet(): got %q, want %q", got, "hello first")
	}
}

func TestTrySingleton_DoesNotReplaceInstance(t *testing.T) {
	c := container.New()
	original := &englishGreeter{name: "manual"}
	c.Instance("greeter", original)

	if c.TrySingleton("greeter", newGreeter("scan")) {
		t.Error("TrySingleton should not overwrite a pre-built instance")
	}
	if c.Make("greeter") != original {
		t.Error("the manual instance should still be resolved")
	}
}

func TestTryInstance_And_TryBind(t *testing.T) {
	c := container.New()
	if !c.TryInstance("n", 1) {
		t.Fatal("TryInstance on an empty key should register")
	}
	if c.TryInstance("n", 2) {
		t.Error("TryInstance on a bound key should be a no-op")
	}
	if c.TryBind("n", func(*container.Container) any { return 3 }) {
		t.Error("TryBind on a bound key should be a no-op")
	}
	if got := c.Make("n").(int); got != 1 {
		t.Errorf("n: got %d, want 1", got)
	}
}

func TestAlias_ResolvesCanonicalKey(t *testing.T) {
	c := container.New()
	c.Instance("config", "cfg")
	c.Alias("config", "configuration")

	if got := c.Make("configuration").(string); got != "cfg" {
		t.Errorf("alias: got %q, want %q", got, "cfg")
	}
}

func TestAlias_ToItselfPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("aliasing a key to itself should panic")
		}
	}()
	container.New().Alias("x", "x")
}

// ── Resolution ────────────────────────────────────────────────────────────────

func TestLookup_MissingIsNotAnError(t *testing.T) {
	c := container.New()
	v, ok := c.Lookup("missing")
	if ok || v != nil {
		t.Errorf("Lookup(missing): got (%v, %v), want (nil, false)", v, ok)
	}
}

func TestMake_MissingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Make on an unbound key should panic")
		}
	}()
	container.New().Make("missing")
}

func TestNew_BindsItself(t *testing.T) {
	c := container.New()
	if c.Make(container.SelfKey) != c {
		t.Error("container should resolve itself under SelfKey")
	}
}

func TestTryResolve_TypeMismatch(t *testing.T) {
	c := container.New()
	c.Instance("n", 42)

	if _, ok := container.TryResolve[string](c, "n"); ok {
		t.Error("TryResolve[string] on an int should report false")
	}
	if got, ok := container.TryResolve[int](c, "n"); !ok || got != 42 {
		t.Errorf("TryResolve[int]: got (%d, %v), want (42, true)", got, ok)
	}
}

func TestSingleton_ConcurrentResolveSharesInstance(t *testing.T) {
	c := container.New()
	c.Singleton("greeter", newGreeter("a"))

	const n = 32
	got := make([]any, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = c.Make("greeter")
		}()
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if got[i] != got[0] {
			t.Fatalf("goroutine %d saw a different singleton", i)
		}
	}
}

// ── Extend / callbacks ────────────────────────────────────────────────────────

func TestExtend_DecoratesResolution(t *testing.T) {
	c := container.New()
	c.Bind("word", func(*container.Container) any { return "go" })
	c.Extend("word", func(instance any, _ *container.Container) any {
		return instance.(string) + "!"
	})

	if got := c.Make("word").(string); got != "go!" {
		t.Errorf("extended: got %q, want %q", got, "go!")
	}
}

func TestExtend_DecoratesCachedSingleton(t *testing.T) {
	c := container.New()
	c.Singleton("word", func(*container.Container) any { return "go" })
	_ = c.Make("word")
	c.Extend("word", func(instance any, _ *container.Container) any {
		return instance.(string) + "!"
	})

	if got := c.Make("word").(string); got != "go!" {
		t.Errorf("extended singleton: got %q, want %q", got, "go!")
	}
}

func TestAfterResolving_Fires(t *testing.T) {
	c := container.New()
	c.Bind("n", func(*container.Container) any { return 7 })

	var seen []string
	c.AfterResolving(func(key string, _ any) { seen = append(seen, key) })
	_ = c.Make("n")

	if len(seen) != 1 || seen[0] != "n" {
		t.Errorf("AfterResolving: got %v, want [n]", seen)
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func TestForget_And_Flush(t *testing.T) {
	c := container.New()
	c.Instance("a", 1)
	c.Instance("b", 2)

	c.Forget("a")
	if c.Bound("a") {
		t.Error("Forget should remove the key")
	}

	c.Flush()
	if c.Bound("b") {
		t.Error("Flush should remove every key")
	}
	if !c.Bound(container.SelfKey) {
		t.Error("Flush should keep the self binding")
	}
}

func TestKeys_Sorted(t *testing.T) {
	c := container.New()
	c.Instance("zeta", 1)
	c.Bind("alpha", func(*container.Container) any { return 2 })

	got := c.Keys()
	want := []string{"alpha", container.SelfKey, "zeta"}
	if len(got) != len(want) {
		t.Fatalf("Keys(): got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDescribe_ReportsLifetimeWithoutResolving(t *testing.T) {
	c := container.New()
	c.Singleton("s", newGreeter("a"))
	c.Bind("t", newGreeter("b"))

	entries := map[string]container.Entry{}
	for _, e := range c.Describe() {
		entries[e.Key] = e
	}

	tests := []struct {
		key      string
		lifetime string
		resolved bool
	}{
		{"s", "singleton", false},
		{"t", "transient", false},
		{container.SelfKey, "instance", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			e, ok := entries[tt.key]
			if !ok {
				t.Fatalf("missing entry for %q", tt.key)
			}
			if e.Lifetime != tt.lifetime {
				t.Errorf("Lifetime: got %q, want %q", e.Lifetime, tt.lifetime)
			}
			if e.Resolved != tt.resolved {
				t.Errorf("Resolved: got %v, want %v", e.Resolved, tt.resolved)
			}
		})
	}
}

func TestTypeKey_InterfacePointer(t *testing.T) {
	want := "github.com/km-arc/go-bootstrap/framework/container_test.Greeter"
	if got := container.TypeKey((*Greeter)(nil)); got != want {
		t.Errorf("TypeKey: got %q, want %q", got, want)
	}
	if got := container.KeyOf[Greeter](); got != want {
		t.Errorf("KeyOf: got %q, want %q", got, want)
	}
	if got := container.KeyOf[[]int](); got != "[]int" {
		t.Errorf("KeyOf[[]int]: got %q, want %q", got, "[]int")
	}
}

func TestKeyFor_UnnamedTypesUseImportPaths(t *testing.T) {
	const (
		billing  = "github.com/km-arc/go-bootstrap/internal/fixture/billing/model.Customer"
		shipping = "github.com/km-arc/go-bootstrap/internal/fixture/shipping/model.Customer"
	)
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"named", container.KeyOf[billingmodel.Customer](), billing},
		{"pointer", container.KeyOf[*billingmodel.Customer](), "*" + billing},
		{"slice", container.KeyOf[[]*shippingmodel.Customer](), "[]*" + shipping},
		{"array", container.KeyOf[[2]billingmodel.Customer](), "[2]" + billing},
		{"map", container.KeyOf[map[string]*billingmodel.Customer](), "map[string]*" + billing},
		{"recv chan", container.KeyOf[<-chan shippingmodel.Customer](), "<-chan " + shipping},
		{"send chan", container.KeyOf[chan<- shippingmodel.Customer](), "chan<- " + shipping},
		{"chan", container.KeyOf[chan shippingmodel.Customer](), "chan " + shipping},
		{"builtin", container.KeyOf[int](), "int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestKeyFor_SamePackageNameDistinctKeys(t *testing.T) {
	a := container.KeyOf[*billingmodel.Customer]()
	b := container.KeyOf[*shippingmodel.Customer]()
	if a == b {
		t.Fatalf("both pointer types keyed as %q", a)
	}

	c := container.New()
	if !c.TryInstance(a, "billing") || !c.TryInstance(b, "shipping") {
		t.Fatal("second registration was treated as a duplicate")
	}
}
