package routing_test

import (
	"net/http"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/km-arc/go-bootstrap/framework/routing"
)

func TestTracing_RecordsSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	r := routing.New(quiet())
	r.Middleware(routing.Tracing("inspect", tp, "/healthz"))
	r.Get("/bindings", okHandler)
	r.Get("/healthz", okHandler)

	do(t, r, http.MethodGet, "/bindings")
	do(t, r, http.MethodGet, "/healthz")

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans: got %d want 1", len(spans))
	}
	if got := spans[0].Name(); got != "HTTP GET /bindings" {
		t.Errorf("span name: got %q want %q", got, "HTTP GET /bindings")
	}
}

func TestTracing_NilProviderPassesThrough(t *testing.T) {
	r := routing.New(quiet())
	r.Middleware(routing.Tracing("inspect", nil))
	r.Get("/hello", okHandler)

	if rr := do(t, r, http.MethodGet, "/hello"); rr.Code != http.StatusOK {
		t.Errorf("GET /hello: got %d want 200", rr.Code)
	}
}
