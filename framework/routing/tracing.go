package routing

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns middleware that opens a server span per request, named
// "HTTP <method> <path>". Requests to excluded paths are not traced. A nil
// tp uses the global TracerProvider, which is a no-op until one is installed.
func Tracing(service string, tp trace.TracerProvider, excluded ...string) func(http.Handler) http.Handler {
	opts := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method + " " + r.URL.Path
		}),
	}
	if tp != nil {
		opts = append(opts, otelhttp.WithTracerProvider(tp))
	}
	if len(excluded) > 0 {
		skip := make(map[string]bool, len(excluded))
		for _, p := range excluded {
			skip[p] = true
		}
		opts = append(opts, otelhttp.WithFilter(func(r *http.Request) bool {
			return !skip[r.URL.Path]
		}))
	}

	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, service, opts...)
	}
}
