package providers

import (
	"log/slog"
	"net/http"

	"github.com/km-arc/go-bootstrap/framework/config"
	"github.com/km-arc/go-bootstrap/framework/container"
	gohttp "github.com/km-arc/go-bootstrap/framework/http"
	"github.com/km-arc/go-bootstrap/framework/routing"
)

// Inspector serves a read-only view of a container's registry.
//
//	GET /healthz                 → {"status": "ok", "app": "...", "instance": "...", "bindings": n}
//	GET /bindings[?match=glob]   → {"data": [entry...]}
//	GET /bindings/{key}          → {"data": entry} or 404
//
// Binding responses are JSON unless ?format=yaml or an Accept header
// mentioning yaml is given. Keys contain slashes, so {key} is a catch-all
// and may be percent-encoded.
type Inspector struct {
	c *container.Container
}

// NewInspector creates an Inspector for c.
func NewInspector(c *container.Container) *Inspector {
	return &Inspector{c: c}
}

// Mount registers the inspection routes on r.
func (i *Inspector) Mount(r *routing.Router) {
	r.Get("/healthz", i.health)
	r.Prefix("/bindings", func(r *routing.Router) {
		r.Get("/", i.index)
		r.Get("/*", i.show)
	})
}

func (i *Inspector) health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":   "ok",
		"bindings": len(i.c.Keys()),
	}
	if cfg, ok := container.TryResolve[*config.Config](i.c, ConfigKey); ok {
		body["app"] = cfg.App.Name
	}
	if id, ok := container.TryResolve[string](i.c, InstanceKey); ok {
		body["instance"] = id
	}
	gohttp.NewResponse(w).JSON(http.StatusOK, body)
}

func (i *Inspector) index(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	entries, err := Match(i.c.Describe(), gohttp.NewRequest(r).Query("match"))
	if err != nil {
		res.Error(http.StatusBadRequest, "Invalid match pattern.")
		return
	}
	res.Success(r, entries)
}

func (i *Inspector) show(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	key, err := gohttp.NewRequest(r).RouteParam("*")
	if err != nil || key == "" {
		res.Error(http.StatusBadRequest, "Invalid binding key.")
		return
	}
	for _, e := range i.c.Describe() {
		if e.Key == key {
			res.Success(r, e)
			return
		}
	}
	res.NotFound("Binding not found.")
}

// Logger returns the container's logger, or slog.Default() when none is bound.
func Logger(c *container.Container) *slog.Logger {
	if l, ok := container.TryResolve[*slog.Logger](c, LoggerKey); ok {
		return l
	}
	return slog.Default()
}
