package web

import "net/http"

// RegisterRoutes registers the web routes on mux. Patterns carry no method,
// so every HTTP method reaches the same handler. Paths without a route get a
// plain-text 404.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("/{$}", h.Index)
	mux.HandleFunc("/banner/banner.jpg", h.Banner)
	mux.HandleFunc("/search", h.Search)
	mux.HandleFunc("/search/", h.Search)
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/", h.NotFound)
}
