package discovery_test

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-bootstrap/framework/assembly"
	"github.com/km-arc/go-bootstrap/framework/container"
	"github.com/km-arc/go-bootstrap/framework/discovery"
	"github.com/km-arc/go-bootstrap/framework/equality"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Customer struct{ ID int }

type CustomerComparer struct{}

func (CustomerComparer) Equals(a, b *Customer) bool { return a.ID == b.ID }
func (CustomerComparer) HashOf(a *Customer) int     { return a.ID }

type CodeComparer struct{}

func (*CodeComparer) Equals(a, b string) bool { return a == b }
func (*CodeComparer) HashOf(a string) int     { return len(a) }

type RepositoryModule struct{}

func (RepositoryModule) Register(c *container.Container) error {
	c.TryInstance("repository", "memory")
	return nil
}

type AuditModule struct{ calls int }

func (m *AuditModule) Register(c *container.Container) error {
	m.calls++
	c.TryInstance("audit", m)
	return nil
}

type hiddenModule struct{}

func (hiddenModule) Register(*container.Container) error { return nil }

type Plain struct{}

func quietScanner(filter discovery.Filter) *discovery.Scanner {
	return discovery.NewScanner(slog.New(slog.NewTextHandler(io.Discard, nil)), filter)
}

// constructedFlag returns a descriptor whose constructor records that it ran.
func constructedFlag(ran *bool, opts ...assembly.Option) *assembly.Type {
	return assembly.Constructed(func() *AuditModule {
		*ran = true
		return &AuditModule{}
	}, opts...)
}

//
// -----------------------------------------------------------------------------
// Filter
// -----------------------------------------------------------------------------

func TestDefaultFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  *assembly.Type
		want bool
	}{
		{"concrete exported pointer", assembly.Of[*AuditModule](), true},
		{"concrete exported value", assembly.Of[RepositoryModule](), true},
		{"interface", assembly.Of[discovery.ServiceModule](), false},
		{"abstract", assembly.Of[*AuditModule](assembly.Abstract()), false},
		{"unexported", assembly.Of[hiddenModule](), false},
		{"open generic", assembly.Generic("example.com/x", "Repository", "T"), false},
		{"no constructor", assembly.Of[*AuditModule](assembly.NoConstructor()), false},
		{"broken", assembly.Broken("Ghost", errors.New("gone")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, discovery.DefaultFilter(tt.typ))
		})
	}
}

func TestAnd(t *testing.T) {
	t.Parallel()

	notAudit := func(t *assembly.Type) bool { return t.Reflect() != reflect.TypeFor[*AuditModule]() }
	f := discovery.And(discovery.DefaultFilter, notAudit)

	assert.False(t, f(assembly.Of[*AuditModule]()))
	assert.True(t, f(assembly.Of[RepositoryModule]()))
}

func TestEligible_SkipsLoadFailures(t *testing.T) {
	t.Parallel()

	asm := assembly.New("mixed",
		assembly.Broken("Ghost", errors.New("missing dependency")),
		assembly.Of[RepositoryModule](),
		assembly.Of[Plain](),
	)

	types, err := quietScanner(nil).Eligible(asm)
	require.NoError(t, err)
	assert.Len(t, types, 2)
}

func TestEligible_TotalFailureIsReturned(t *testing.T) {
	t.Parallel()

	boom := errors.New("cannot open library")
	asm := assembly.Load("dead", func() ([]*assembly.Type, error) { return nil, boom })

	_, err := quietScanner(nil).Eligible(asm)
	assert.ErrorIs(t, err, boom)
}

//
// -----------------------------------------------------------------------------
// Modules
// -----------------------------------------------------------------------------

func TestModules_FindsOnlyServiceModules(t *testing.T) {
	t.Parallel()

	asm := assembly.New("app",
		assembly.Of[RepositoryModule](),
		assembly.Of[*AuditModule](),
		assembly.Of[CustomerComparer](),
		assembly.Of[Plain](),
	)

	modules, err := quietScanner(nil).Modules(asm)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.IsType(t, RepositoryModule{}, modules[0])
	assert.IsType(t, &AuditModule{}, modules[1])
}

func TestModules_NeverConstructsIneligibleTypes(t *testing.T) {
	t.Parallel()

	var abstract, noCtor bool
	asm := assembly.New("app",
		constructedFlag(&abstract, assembly.Abstract()),
		constructedFlag(&noCtor, assembly.NoConstructor()),
		assembly.Of[discovery.ServiceModule](),
		assembly.Of[hiddenModule](),
		assembly.Generic("example.com/app", "ModuleOf", "T"),
	)

	modules, err := quietScanner(nil).Modules(asm)
	require.NoError(t, err)
	assert.Empty(t, modules)
	assert.False(t, abstract, "abstract type was constructed")
	assert.False(t, noCtor, "type without constructor was constructed")
}

func TestModules_DeduplicatesAcrossAssemblies(t *testing.T) {
	t.Parallel()

	a := assembly.New("a", assembly.Of[*AuditModule]())
	b := assembly.New("b", assembly.Of[*AuditModule](), assembly.Of[RepositoryModule]())

	modules, err := quietScanner(nil).Modules(a, b)
	require.NoError(t, err)
	assert.Len(t, modules, 2)
}

func TestModules_ConstructionErrors(t *testing.T) {
	t.Parallel()

	acceptAll := func(*assembly.Type) bool { return true }

	tests := []struct {
		name   string
		filter discovery.Filter
		typ    *assembly.Type
		want   string
	}{
		{
			name:   "missing constructor",
			filter: acceptAll,
			typ:    assembly.Of[*AuditModule](assembly.NoConstructor()),
			want:   "no zero-argument constructor",
		},
		{
			name: "constructor panics",
			typ:  assembly.Constructed(func() *AuditModule { panic("db offline") }),
			want: "db offline",
		},
		{
			name: "constructor returns nil",
			typ:  assembly.Constructed(func() *AuditModule { return nil }),
			want: "returned nil",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietScanner(tt.filter).Modules(assembly.New("bad", tt.typ))
			require.Error(t, err)

			var ce *discovery.ConstructionError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "*discovery_test.AuditModule", ce.Type)
			assert.ErrorIs(t, err, discovery.ErrConstruction)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestModules_PartialLoadDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	asm := assembly.New("mixed",
		assembly.Broken("BrokenModule", errors.New("missing dependency")),
		assembly.Of[RepositoryModule](),
	)

	modules, err := quietScanner(nil).Modules(asm)
	require.NoError(t, err)
	assert.Len(t, modules, 1)
}

//
// -----------------------------------------------------------------------------
// Comparers
// -----------------------------------------------------------------------------

func TestComparers_RegistersInstancePerValueType(t *testing.T) {
	t.Parallel()

	c := container.New()
	asm := assembly.New("app",
		assembly.Of[CustomerComparer](),
		assembly.Of[*CodeComparer](),
		assembly.Of[RepositoryModule](),
	)

	n, err := quietScanner(nil).Comparers(c, asm)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.True(t, c.Bound(equality.KeyOf[*Customer]()))
	assert.True(t, c.Bound(equality.KeyOf[string]()))

	first := c.Make(equality.KeyOf[string]())
	assert.Same(t, first, c.Make(equality.KeyOf[string]()), "comparers are shared instances")

	cmp, err := equality.Resolve[*Customer](c)
	require.NoError(t, err)
	assert.True(t, cmp.Equals(&Customer{ID: 1}, &Customer{ID: 1}))
}

func TestComparers_DeclaredInstantiationIsDeduplicated(t *testing.T) {
	t.Parallel()

	c := container.New()
	asm := assembly.New("app",
		assembly.Of[CustomerComparer](assembly.Implements(reflect.TypeFor[equality.Comparer[*Customer]]())),
	)

	n, err := quietScanner(nil).Comparers(c, asm)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestComparers_NeverOverwrites(t *testing.T) {
	t.Parallel()

	c := container.New()
	manual := equality.Funcs[*Customer]{
		EqualsFunc: func(a, b *Customer) bool { return a == b },
		HashFunc:   func(*Customer) int { return 0 },
	}
	require.True(t, equality.Register[*Customer](c, manual))

	asm := assembly.New("app", assembly.Of[CustomerComparer](), assembly.Of[CustomerComparer]())
	n, err := quietScanner(nil).Comparers(c, asm)
	require.NoError(t, err)
	assert.Zero(t, n)

	cmp, err := equality.Resolve[*Customer](c)
	require.NoError(t, err)
	assert.IsType(t, manual, cmp)
}

func TestComparers_AbstractComparerIgnored(t *testing.T) {
	t.Parallel()

	c := container.New()
	asm := assembly.New("app", assembly.Of[CustomerComparer](assembly.Abstract()))

	n, err := quietScanner(nil).Comparers(c, asm)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, c.Bound(equality.KeyOf[*Customer]()))
}

func TestComparers_BrokenConstructorFailsScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  *assembly.Type
		msg  string
	}{
		{
			name: "panics",
			typ:  assembly.Constructed(func() *CodeComparer { panic("no") }),
			msg:  "discovery: construct *discovery_test.CodeComparer: assembly: constructor panicked: no",
		},
		{
			name: "returns nil",
			typ:  assembly.Constructed(func() *CodeComparer { return nil }),
			msg:  "discovery: construct *discovery_test.CodeComparer: constructor returned nil",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := container.New()
			n, err := quietScanner(nil).Comparers(c, assembly.New("app", tt.typ))
			require.Error(t, err)
			assert.Zero(t, n)

			var ce *discovery.ConstructionError
			require.ErrorAs(t, err, &ce)
			assert.ErrorIs(t, err, discovery.ErrConstruction)
			assert.EqualError(t, err, tt.msg)
			assert.False(t, c.Bound(equality.KeyOf[string]()))
		})
	}
}

func TestComparers_ConstructedOncePerType(t *testing.T) {
	t.Parallel()

	calls := 0
	c := container.New()
	asm := assembly.New("app", assembly.Constructed(func() *CodeComparer {
		calls++
		return &CodeComparer{}
	}, assembly.Implements(reflect.TypeFor[equality.Comparer[string]]())))

	n, err := quietScanner(nil).Comparers(c, asm)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, calls, "built during the scan")

	c.Make(equality.KeyOf[string]())
	assert.Equal(t, 1, calls, "resolution reuses the scanned instance")
}
