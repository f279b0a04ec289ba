package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gopkg.in/yaml.v3"

	gohttp "github.com/km-arc/go-bootstrap/framework/http"
	"github.com/km-arc/go-bootstrap/framework/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newResponse(t *testing.T) (*gohttp.Response, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	return m
}

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestResponse_JSON(t *testing.T) {
	res, rr := newResponse(t)
	res.JSON(http.StatusOK, map[string]any{"key": "val"})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q want application/json", ct)
	}
	m := decodeJSON(t, rr)
	if m["key"] != "val" {
		t.Errorf("body key: got %v want val", m["key"])
	}
}

func TestResponse_SuccessJSON(t *testing.T) {
	res, rr := newResponse(t)
	res.Success(httptest.NewRequest(http.MethodGet, "/", nil), map[string]any{"id": float64(1)})

	m := decodeJSON(t, rr)
	data, ok := m["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data envelope, got %T", m["data"])
	}
	if data["id"] != float64(1) {
		t.Errorf("data.id: got %v want 1", data["id"])
	}
}

// ── YAML ──────────────────────────────────────────────────────────────────────

func TestResponse_SuccessYAML(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
	}{
		{"query", httptest.NewRequest(http.MethodGet, "/?format=yaml", nil)},
		{"accept", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Accept", "application/yaml")
			return r
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			res.Success(tt.req, map[string]any{"key": "config"})

			if ct := rr.Header().Get("Content-Type"); ct != "application/yaml" {
				t.Errorf("Content-Type: got %q want application/yaml", ct)
			}
			var m map[string]map[string]string
			if err := yaml.Unmarshal(rr.Body.Bytes(), &m); err != nil {
				t.Fatalf("yaml: %v", err)
			}
			if m["data"]["key"] != "config" {
				t.Errorf("data.key: got %q want config", m["data"]["key"])
			}
		})
	}
}

func TestSuccess_QueryOverridesAccept(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?format=json", nil)
	r.Header.Set("Accept", "application/yaml")

	res, rr := newResponse(t)
	res.Success(r, "ok")
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q want application/json", ct)
	}
}

// ── Errors ────────────────────────────────────────────────────────────────────

func TestResponse_NotFound(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default message", nil, "Not found."},
		{"custom message", []string{"Binding not found."}, "Binding not found."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			res.NotFound(tt.args...)

			if rr.Code != http.StatusNotFound {
				t.Errorf("status: got %d want 404", rr.Code)
			}
			if m := decodeJSON(t, rr); m["message"] != tt.want {
				t.Errorf("message: got %v want %q", m["message"], tt.want)
			}
		})
	}
}

func TestResponse_ValidationError(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"key": "required"})
	_ = v.Fails()

	res, rr := newResponse(t)
	res.ValidationError(v.Errors())

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d want 422", rr.Code)
	}
	m := decodeJSON(t, rr)
	bag, ok := m["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected errors bag, got %T", m["errors"])
	}
	if _, ok := bag["key"]; !ok {
		t.Errorf("expected key error in %v", bag)
	}
}
