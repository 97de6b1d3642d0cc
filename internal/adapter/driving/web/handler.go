// Package web implements the HTML driving adapter: the landing page, the
// banner image and the search results page.
package web

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/petsearch/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/petsearch/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/petsearch/internal/application"
	"github.com/ericfisherdev/petsearch/internal/domain/model"
)

const (
	indexPath  = "static/index.html"
	bannerPath = "static/banner/banner.jpg"

	notFoundBody = "404 Not Found"
)

// Searcher runs a search for the handler. *application.SearchService
// satisfies it.
type Searcher interface {
	Search(ctx context.Context, query model.SearchQuery) (model.SearchResult, error)
}

// Handler is the web driving adapter that serves HTML pages.
type Handler struct {
	searcher Searcher
	static   fs.FS
	logger   *slog.Logger
}

// NewHandler creates a Handler serving static assets from StaticFS.
func NewHandler(searcher Searcher, logger *slog.Logger) *Handler {
	return &Handler{
		searcher: searcher,
		static:   StaticFS,
		logger:   logger,
	}
}

// Index serves the landing page with the search form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, r, indexPath, "text/html")
}

// Banner serves the banner image shown on the landing page.
func (h *Handler) Banner(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, r, bannerPath, "image/jpeg")
}

// Search runs the search pipeline for the animals query parameter and
// renders the results. The page is rendered into a buffer first so a failure
// never leaves a partially written response.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := model.SearchQuery{Animals: r.URL.Query().Get("animals")}
	h.logger.Info("performing search", "animals", query.Animals, "remote_addr", r.RemoteAddr)

	result, err := h.searcher.Search(r.Context(), query)
	if err != nil {
		h.searchFailed(w, r, query, err)
		return
	}

	page := templates.Layout("Search Results for "+query.Animals, templates.SearchResults(toSearchResultsViewModel(result)))
	h.writePage(w, r, http.StatusOK, page)
}

// NotFound answers every path without a dedicated route.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(notFoundBody))
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request, name, contentType string) {
	data, err := fs.ReadFile(h.static, name)
	if err != nil {
		h.logger.Error("failed to read static asset", "path", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(data)
}

// searchFailed maps a pipeline error to a status code and renders the error
// page: 504 for timeouts, 502 for every other upstream failure.
func (h *Handler) searchFailed(w http.ResponseWriter, r *http.Request, query model.SearchQuery, err error) {
	status := http.StatusBadGateway
	title := "Search unavailable"
	if application.IsTimeout(err) {
		status = http.StatusGatewayTimeout
		title = "Search timed out"
	}

	stage := application.Stage("unknown")
	var stageErr *application.StageError
	if errors.As(err, &stageErr) {
		stage = stageErr.Stage
	}

	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		h.logger.Info("search abandoned by client", "animals", query.Animals, "stage", stage)
	} else {
		h.logger.Error("search failed", "animals", query.Animals, "stage", stage, "status", status, "error", err)
	}

	page := templates.Layout(title, templates.ErrorPage(vm.ErrorViewModel{
		StatusCode: status,
		Title:      title,
		Message:    stageMessage(stage),
		Query:      query.Animals,
	}))
	h.writePage(w, r, status, page)
}

func stageMessage(stage application.Stage) string {
	switch stage {
	case application.StageToken:
		return "We could not sign in to the pet listings service. Please try again in a moment."
	case application.StageListings:
		return "The pet listings service did not answer properly. Please try again in a moment."
	case application.StageTrivia:
		return "We found your animals but could not fetch a cat fact. Please try again in a moment."
	default:
		return "Something went wrong while searching. Please try again in a moment."
	}
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, status int, page templ.Component) {
	var buf bytes.Buffer
	if err := page.Render(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
