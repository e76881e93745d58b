package server

import (
	"log/slog"
	"net/http"

	"salesdash/internal/geo"
	"salesdash/internal/handlers"
	"salesdash/internal/prefs"
	"salesdash/internal/services"
)

type Server struct {
	dashboard   *services.Dashboard
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(dashboard *services.Dashboard, boundaries *geo.Boundaries, theme *prefs.ThemeStore, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		dashboard:   dashboard,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(dashboard, boundaries, theme, logger),
		sseHandlers: handlers.NewSSEHandlers(dashboard, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard shell
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// Aggregates over the filtered set
	s.mux.HandleFunc("GET /api/kpis", s.apiHandlers.HandleKPIs)
	s.mux.HandleFunc("GET /api/timeseries", s.apiHandlers.HandleTimeSeries)
	s.mux.HandleFunc("GET /api/categories", s.apiHandlers.HandleCategories)
	s.mux.HandleFunc("GET /api/products", s.apiHandlers.HandleProducts)
	s.mux.HandleFunc("GET /api/stream", s.apiHandlers.HandleStream)
	s.mux.HandleFunc("GET /api/geo", s.apiHandlers.HandleGeo)
	s.mux.HandleFunc("GET /api/geo/boundaries", s.apiHandlers.HandleGeoBoundaries)
	s.mux.HandleFunc("GET /api/hierarchy", s.apiHandlers.HandleHierarchy)
	s.mux.HandleFunc("GET /api/graph", s.apiHandlers.HandleGraph)
	s.mux.HandleFunc("GET /api/table", s.apiHandlers.HandleTable)
	s.mux.HandleFunc("GET /api/export.xlsx", s.apiHandlers.HandleExport)

	// Filter state
	s.mux.HandleFunc("GET /api/filter-options", s.apiHandlers.HandleFilterOptions)
	s.mux.HandleFunc("GET /api/filters", s.apiHandlers.HandleGetFilters)
	s.mux.HandleFunc("PUT /api/filters", s.apiHandlers.HandleUpdateFilters)
	s.mux.HandleFunc("DELETE /api/filters", s.apiHandlers.HandleResetFilters)

	// UI preferences
	s.mux.HandleFunc("GET /api/theme", s.apiHandlers.HandleGetTheme)
	s.mux.HandleFunc("PUT /api/theme", s.apiHandlers.HandlePutTheme)

	// Datastar SSE fragments
	s.mux.HandleFunc("GET /sse/kpis", s.sseHandlers.HandleKPIs)
	s.mux.HandleFunc("GET /sse/table", s.sseHandlers.HandleTable)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
