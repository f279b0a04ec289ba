package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Request wraps *http.Request with the few helpers the inspection
// endpoints need.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a URL route parameter (chi), percent-decoded.
// Use "*" for a catch-all segment.
func (req *Request) RouteParam(key string) (string, error) {
	return url.PathUnescape(chi.URLParam(req.raw, key))
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// WantsYAML reports whether the client asked for a YAML body, either with
// ?format=yaml or an Accept header mentioning yaml. An explicit format
// query wins over the header.
func (req *Request) WantsYAML() bool {
	if f := req.Query("format"); f != "" {
		return f == "yaml"
	}
	return strings.Contains(req.Header("Accept"), "yaml")
}
