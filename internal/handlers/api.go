package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"salesdash/internal/analytics"
	"salesdash/internal/errors"
	"salesdash/internal/exports"
	"salesdash/internal/geo"
	"salesdash/internal/models"
	"salesdash/internal/observability"
	"salesdash/internal/prefs"
	"salesdash/internal/services"
)

const aggregateCacheControl = "public, max-age=60"

type APIHandlers struct {
	dashboard  *services.Dashboard
	boundaries *geo.Boundaries
	theme      *prefs.ThemeStore
	logger     *slog.Logger
}

func NewAPIHandlers(dashboard *services.Dashboard, boundaries *geo.Boundaries, theme *prefs.ThemeStore, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dashboard:  dashboard,
		boundaries: boundaries,
		theme:      theme,
		logger:     logger,
	}
}

func cacheHeaders() map[string]string {
	return map[string]string{"Cache-Control": aggregateCacheControl}
}

func (h *APIHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.dashboard.KPIs(), cacheHeaders())
}

func (h *APIHandlers) HandleTimeSeries(w http.ResponseWriter, r *http.Request) {
	frame := analytics.ParseFrame(r.URL.Query().Get("frame"))
	errors.WriteSuccessWithHeaders(w, h.dashboard.TimeSeries(frame), cacheHeaders())
}

func (h *APIHandlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.dashboard.CategoryRollups(), cacheHeaders())
}

func (h *APIHandlers) HandleProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	errors.WriteSuccessWithHeaders(w, h.dashboard.ProductRollups(limit), cacheHeaders())
}

func (h *APIHandlers) HandleStream(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.dashboard.Stream(), cacheHeaders())
}

func (h *APIHandlers) HandleGeo(w http.ResponseWriter, r *http.Request) {
	query := analytics.GeoQuery{Level: analytics.ParseGeoLevel(r.URL.Query().Get("level"))}
	if name := r.URL.Query().Get("within"); name != "" {
		query.Within = &analytics.GeoSelection{
			Level: analytics.ParseGeoLevel(r.URL.Query().Get("within_level")),
			Name:  name,
		}
	}
	errors.WriteSuccessWithHeaders(w, h.dashboard.GeoRollups(query), cacheHeaders())
}

// HandleGeoBoundaries joins the current country rollup against the boundary
// index. With no boundaries loaded the map degrades to an empty feature
// list rather than an error.
func (h *APIHandlers) HandleGeoBoundaries(w http.ResponseWriter, r *http.Request) {
	rollups := h.dashboard.GeoRollups(analytics.GeoQuery{Level: models.GeoCountry})
	names := make([]string, 0, len(rollups))
	for _, g := range rollups {
		names = append(names, g.LocationName)
	}

	errors.WriteSuccess(w, map[string]any{
		"ready":      h.boundaries.Ready(),
		"boundaries": h.boundaries.ForCountries(names),
	})
}

func (h *APIHandlers) HandleHierarchy(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.dashboard.Hierarchy(), cacheHeaders())
}

func (h *APIHandlers) HandleGraph(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.dashboard.Graph(), cacheHeaders())
}

func (h *APIHandlers) HandleTable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per"))

	errors.WriteSuccess(w, h.dashboard.Table(analytics.TableQuery{
		Search:     q.Get("q"),
		SortColumn: q.Get("sort"),
		SortDir:    analytics.SortDir(q.Get("dir")),
		Page:       page,
		PerPage:    perPage,
	}))
}

func (h *APIHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.Options())
}

func (h *APIHandlers) HandleGetFilters(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.Filters())
}

type filterUpdateRequest struct {
	Dimension string            `json:"dimension"`
	Values    []string          `json:"values"`
	DateRange *models.DateRange `json:"date_range"`
}

// HandleUpdateFilters replaces one filter dimension. The categorical
// dimensions take a string list; dateRange takes a start/end pair.
func (h *APIHandlers) HandleUpdateFilters(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	var req filterUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "invalid filter update body"), requestID)
		return
	}

	dimension := models.FilterDimension(req.Dimension)
	var value any
	if dimension == models.DimensionDateRange {
		if req.DateRange == nil {
			errors.WriteError(w, h.logger, errors.Validation("dateRange update requires date_range"), requestID)
			return
		}
		value = *req.DateRange
	} else {
		if req.Values == nil {
			req.Values = []string{}
		}
		value = req.Values
	}

	if err := h.dashboard.UpdateFilter(dimension, value); err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}
	errors.WriteSuccess(w, h.dashboard.Filters())
}

func (h *APIHandlers) HandleResetFilters(w http.ResponseWriter, r *http.Request) {
	h.dashboard.ResetFilters()
	errors.WriteSuccess(w, h.dashboard.Filters())
}

func (h *APIHandlers) HandleGetTheme(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{"theme": string(h.theme.Get())})
}

// HandlePutTheme toggles when no explicit theme is supplied. An empty body
// counts as a toggle request; a malformed one is rejected.
func (h *APIHandlers) HandlePutTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		requestID := observability.GetRequestID(r.Context())
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "invalid theme body"), requestID)
		return
	}

	if body.Theme == "" {
		if h.theme.Get() == prefs.ThemeLight {
			body.Theme = string(prefs.ThemeDark)
		} else {
			body.Theme = string(prefs.ThemeLight)
		}
	}
	errors.WriteSuccess(w, map[string]string{"theme": string(h.theme.Set(body.Theme))})
}

// HandleExport downloads the full filtered set as an XLSX workbook.
func (h *APIHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.xlsx"`)

	if err := exports.WriteWorkbook(w, h.dashboard.Filtered()); err != nil {
		h.logger.Error("excel export failed", "error", err, "request_id", requestID)
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.Stats())
}
