package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aretw0/introspection"
	"github.com/google/uuid"

	"github.com/km-arc/go-bootstrap/framework/assembly"
	"github.com/km-arc/go-bootstrap/framework/bootstrap"
	"github.com/km-arc/go-bootstrap/framework/config"
	"github.com/km-arc/go-bootstrap/framework/container"
	"github.com/km-arc/go-bootstrap/framework/equality"
	"github.com/km-arc/go-bootstrap/framework/providers"
	"github.com/km-arc/go-bootstrap/framework/routing"
)

// ShutdownTimeout bounds how long Serve waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Application is the top-level application container.
// It embeds the Container so user code can call app.Bind(),
// app.TrySingleton(), app.Make() directly.
type Application struct {
	*container.Container
	id           string
	cfg          *config.Config
	logger       *slog.Logger
	orchestrator bootstrap.Orchestrator
	passes       []bootstrap.Decorator
	booted       bool
}

// Option configures an Application.
type Option func(*Application)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Application) { a.logger = logger }
}

// WithOrchestrator replaces the default orchestrator.
func WithOrchestrator(o bootstrap.Orchestrator) Option {
	return func(a *Application) { a.orchestrator = o }
}

// WithPasses decorates the orchestrator with extra passes, outermost first.
//
//	app.New(cfg, app.WithPasses(bootstrap.After(bootstrap.Require(key))))
func WithPasses(decorators ...bootstrap.Decorator) Option {
	return func(a *Application) {
		a.passes = append(a.passes, decorators...)
	}
}

// New creates the application around cfg. The configuration and logger are
// bound before bootstrap, so the framework modules keep them. A nil cfg is
// replaced by config.Load().
func New(cfg *config.Config, opts ...Option) *Application {
	if cfg == nil {
		cfg = config.Load()
	}
	a := &Application{
		Container: container.New(),
		id:        uuid.NewString(),
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = cfg.Logger(os.Stderr)
	}
	if a.orchestrator == nil {
		a.orchestrator = bootstrap.New(a.logger)
	}
	a.orchestrator = bootstrap.Chain(a.orchestrator, a.passes...)

	a.Instance(providers.ConfigKey, a.cfg)
	a.Instance(providers.LoggerKey, a.logger)
	a.Instance(providers.InstanceKey, a.id)
	return a
}

// Boot registers the framework modules and every module and comparer found
// in assemblies. Booting again with the same assemblies changes nothing.
func (a *Application) Boot(assemblies ...*assembly.Assembly) error {
	all := append([]*assembly.Assembly{providers.Assembly}, assemblies...)
	if err := a.orchestrator.RegisterServices(a.Container, all...); err != nil {
		return err
	}
	a.booted = true
	return nil
}

// Booted reports whether Boot has succeeded at least once.
func (a *Application) Booted() bool { return a.booted }

// ID identifies this application instance; it is random per process.
func (a *Application) ID() string { return a.id }

// Snapshot is a point-in-time view of the application registry.
type Snapshot struct {
	App       string            `json:"app" yaml:"app"`
	Env       string            `json:"env" yaml:"env"`
	Instance  string            `json:"instance" yaml:"instance"`
	Booted    bool              `json:"booted" yaml:"booted"`
	Comparers []string          `json:"comparers" yaml:"comparers"`
	Bindings  []container.Entry `json:"bindings" yaml:"bindings"`
}

// Snapshot describes the registry without resolving anything.
func (a *Application) Snapshot() Snapshot {
	s := Snapshot{
		App:       a.cfg.App.Name,
		Env:       a.cfg.App.Env,
		Instance:  a.id,
		Booted:    a.booted,
		Comparers: []string{},
		Bindings:  a.Describe(),
	}
	for _, e := range s.Bindings {
		if strings.HasPrefix(e.Key, equality.KeyPrefix) {
			s.Comparers = append(s.Comparers, e.Key)
		}
	}
	return s
}

// State implements introspection.Introspectable.
func (a *Application) State() any { return a.Snapshot() }

// ComponentType implements introspection.Component.
func (a *Application) ComponentType() string { return "application" }

var _ introspection.Introspectable = (*Application)(nil)
var _ introspection.Component = (*Application)(nil)

// Config returns the application configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// Router resolves the inspection router bound by the framework modules.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, providers.RouterKey)
}

// Run listens on the configured inspection address and serves until ctx is done.
func (a *Application) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", a.cfg.Inspect.Addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve serves the inspection router on ln until ctx is done, then shuts the
// server down gracefully. It returns nil after a clean shutdown.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	if !a.booted {
		return errors.New("app: Serve called before Boot")
	}
	srv := &http.Server{
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(a.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Serving registry inspection.", "app", a.cfg.App.Name, "addr", ln.Addr().String(), "env", a.cfg.App.Env)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	a.logger.Info("Server stopped.")
	return nil
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.cfg.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.cfg.App.Debug }
