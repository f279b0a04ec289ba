// Package http provides response helpers for the registry inspection endpoints.
//
//	func (h *handler) show(w http.ResponseWriter, r *http.Request) {
//	    res := gohttp.NewResponse(w)
//	    res.Success(r, entry)           // JSON, or YAML for ?format=yaml
//	}
//
// Error bodies are always JSON: {"message": "..."}.
package http
