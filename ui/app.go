package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"txdash/domain/dataset"
	"txdash/domain/section"
	"txdash/internal"
	"txdash/internal/errors"
	"txdash/ports"
)

// App is the read-only JSON API over the same sections and datasets the
// HTML dashboard shows.
type App struct {
	router *chi.Mux
	reader ports.ReaderPort
	logger *internal.Logger
}

// NewApp creates the JSON API
func NewApp(reader ports.ReaderPort) *App {
	app := &App{
		router: chi.NewRouter(),
		reader: reader,
		logger: internal.DefaultLogger,
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Route("/api", func(r chi.Router) {
		r.Get("/sections", a.handleListSections)
		r.Get("/sections/{slug}", a.handleGetSection)
		r.Get("/datasets/{name}", a.handleGetDataset)
	})
	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.writeError(w, r, errors.NotFound(fmt.Sprintf("route %s", r.URL.Path)))
	})
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves the API on addr
func (a *App) Start(addr string) error {
	a.logger.Info("[App] Starting JSON API on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	count := 0
	for _, summary := range a.reader.Sections() {
		count += len(summary.Datasets)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "datasets": count})
}

func (a *App) handleListSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.reader.Sections())
}

func (a *App) handleGetSection(w http.ResponseWriter, r *http.Request) {
	sec, err := section.Parse(chi.URLParam(r, "slug"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	p, err := a.reader.RenderSection(r.Context(), sec)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// datasetResponse is a table as plain JSON values: finite numbers as
// numbers, everything else as text, empty cells as null
type datasetResponse struct {
	Name    dataset.Name    `json:"name"`
	Index   string          `json:"index,omitempty"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
	Total   int             `json:"total"`
}

func newDatasetResponse(t *dataset.Table) datasetResponse {
	resp := datasetResponse{
		Name:    t.Name,
		Index:   t.Index,
		Columns: t.Columns,
		Rows:    make([][]interface{}, len(t.Rows)),
		Total:   t.Len(),
	}
	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			switch {
			case v.IsEmpty():
				cells[j] = nil
			case v.IsFinite():
				cells[j] = v.Number
			default:
				cells[j] = v.Text
			}
		}
		resp.Rows[i] = cells
	}
	return resp
}

func (a *App) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "name")
	name, ok := dataset.ParseName(raw)
	if !ok {
		a.writeError(w, r, errors.NotFound(fmt.Sprintf("dataset %q", raw)))
		return
	}

	table, err := a.reader.Dataset(r.Context(), name)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newDatasetResponse(table))
}

func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("[App] %s %s (request %s): %v",
			r.Method, r.URL.Path, middleware.GetReqID(r.Context()), err)
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		internal.DefaultLogger.Warn("[App] Failed to encode response: %v", err)
	}
}
