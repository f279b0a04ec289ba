package providers

import (
	"os"

	"github.com/km-arc/go-bootstrap/framework/assembly"
	"github.com/km-arc/go-bootstrap/framework/config"
	"github.com/km-arc/go-bootstrap/framework/container"
	"github.com/km-arc/go-bootstrap/framework/routing"
)

// Container keys bound by the framework modules.
const (
	ConfigKey   = "config"
	LoggerKey   = "logger"
	RouterKey   = "router"
	InstanceKey = "app.instance"
)

// Assembly lists the framework's own service modules. Pass it to the
// orchestrator next to the application's assemblies.
var Assembly = assembly.New("framework",
	assembly.Of[ConfigModule](),
	assembly.Of[LoggerModule](),
	assembly.Of[InspectionModule](),
)

// ── ConfigModule ──────────────────────────────────────────────────────────────

// ConfigModule binds the application configuration and validates it.
//
// Bound keys:
//   - "config"        → *config.Config, loaded from .env and the environment
//   - "configuration" → alias of "config"
//
// A configuration registered before bootstrap is kept and validated as is.
type ConfigModule struct{}

func (ConfigModule) Register(app *container.Container) error {
	app.TrySingleton(ConfigKey, func(c *container.Container) any {
		return config.Load()
	})
	app.Alias(ConfigKey, "configuration")
	return container.Resolve[*config.Config](app, ConfigKey).Validate()
}

// ── LoggerModule ──────────────────────────────────────────────────────────────

// LoggerModule binds the application logger.
//
// Bound keys:
//   - "logger" → *slog.Logger writing to stderr with the level and format of "config"
type LoggerModule struct{}

func (LoggerModule) Register(app *container.Container) error {
	app.TrySingleton(LoggerKey, func(c *container.Container) any {
		return container.Resolve[*config.Config](c, ConfigKey).Logger(os.Stderr)
	})
	return nil
}

// ── InspectionModule ──────────────────────────────────────────────────────────

// InspectionModule binds the HTTP router serving the registry inspection
// endpoints (see Inspector). Requests other than /healthz are traced with
// the global OpenTelemetry TracerProvider.
//
// Bound keys:
//   - "router" → *routing.Router
type InspectionModule struct{}

func (InspectionModule) Register(app *container.Container) error {
	app.TrySingleton(RouterKey, func(c *container.Container) any {
		service := "bootstrap"
		if cfg, ok := container.TryResolve[*config.Config](c, ConfigKey); ok {
			service = cfg.App.Name
		}
		r := routing.New(Logger(c))
		r.Middleware(routing.Tracing(service, nil, "/healthz"))
		NewInspector(c).Mount(r)
		return r
	})
	return nil
}
