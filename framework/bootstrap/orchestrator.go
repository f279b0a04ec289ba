package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/km-arc/go-bootstrap/framework/assembly"
	"github.com/km-arc/go-bootstrap/framework/container"
	"github.com/km-arc/go-bootstrap/framework/discovery"
)

// ErrInvalidArgument is returned for a nil container, an empty assembly list
// or a nil assembly.
var ErrInvalidArgument = errors.New("bootstrap: invalid argument")

// Orchestrator populates a container from assemblies. Implementations may
// wrap another Orchestrator to add discovery passes around it.
type Orchestrator interface {
	RegisterServices(c *container.Container, assemblies ...*assembly.Assembly) error
}

// OrchestratorFunc adapts a function to Orchestrator.
type OrchestratorFunc func(c *container.Container, assemblies ...*assembly.Assembly) error

// RegisterServices calls f.
func (f OrchestratorFunc) RegisterServices(c *container.Container, assemblies ...*assembly.Assembly) error {
	return f(c, assemblies...)
}

// Option configures the default orchestrator.
type Option func(*Default)

// WithFilter replaces discovery.DefaultFilter.
func WithFilter(filter discovery.Filter) Option {
	return func(d *Default) { d.filter = filter }
}

// Default is the two-phase orchestrator: service modules first, then the
// blanket comparer scan, one assembly at a time.
type Default struct {
	logger  *slog.Logger
	filter  discovery.Filter
	scanner *discovery.Scanner
}

// New creates the default orchestrator. A nil logger means slog.Default().
func New(logger *slog.Logger, opts ...Option) *Default {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Default{logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	d.scanner = discovery.NewScanner(logger, d.filter)
	return d
}

// Scanner returns the scanner the orchestrator discovers with, so that
// wrapping passes can apply the same filter.
func (d *Default) Scanner() *discovery.Scanner { return d.scanner }

// RegisterServices runs every discovered module's Register exactly once, then
// registers every discovered comparer.
//
// An error returned by a module is passed back unchanged and stops the
// bootstrap; registrations already made stay in the container.
func (d *Default) RegisterServices(c *container.Container, assemblies ...*assembly.Assembly) error {
	if err := Validate(c, assemblies); err != nil {
		return err
	}

	modules, err := d.scanner.Modules(assemblies...)
	if err != nil {
		return err
	}
	for _, m := range modules {
		if err := m.Register(c); err != nil {
			d.logger.Error("Service module registration failed.", "module", fmt.Sprintf("%T", m), "error", err)
			return err
		}
	}
	d.logger.Debug("All service modules registered.", "count", len(modules))

	comparers := 0
	for _, asm := range assemblies {
		n, err := d.scanner.Comparers(c, asm)
		if err != nil {
			return err
		}
		comparers += n
	}

	d.logger.Info("Bootstrap complete.",
		"assemblies", len(assemblies),
		"modules", len(modules),
		"comparers", comparers,
	)
	return nil
}

// Validate checks the arguments of RegisterServices.
func Validate(c *container.Container, assemblies []*assembly.Assembly) error {
	if c == nil {
		return fmt.Errorf("%w: nil container", ErrInvalidArgument)
	}
	if len(assemblies) == 0 {
		return fmt.Errorf("%w: no assemblies", ErrInvalidArgument)
	}
	for i, asm := range assemblies {
		if asm == nil {
			return fmt.Errorf("%w: assembly %d is nil", ErrInvalidArgument, i)
		}
	}
	return nil
}
