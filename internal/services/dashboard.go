package services

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"salesdash/internal/analytics"
	"salesdash/internal/errors"
	"salesdash/internal/models"
)

// Dashboard holds the immutable record set and the session filter state, and
// serves every derived aggregate from the current filtered subset. The
// filtered slice is memoized against a filter-state signature; aggregators
// themselves are pure, so a cold recompute always yields the same output.
type Dashboard struct {
	mu       sync.RWMutex
	records  []models.TransactionRecord
	filters  models.FilterState
	options  models.FilterOptions
	graphCfg analytics.GraphConfig
	logger   *slog.Logger

	filteredSig string
	filtered    []models.TransactionRecord

	loadedAt time.Time
}

func NewDashboard(graphCfg analytics.GraphConfig, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		records:  []models.TransactionRecord{},
		filters:  models.DefaultFilterState(),
		graphCfg: graphCfg,
		logger:   logger,
	}
}

// SetData installs the dataset. Later loads win over earlier ones; the
// records themselves are treated as immutable from here on.
func (d *Dashboard) SetData(records []models.TransactionRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.records = records
	d.options = analytics.Options(records)
	d.filteredSig = ""
	d.filtered = nil
	d.loadedAt = time.Now()
	d.logger.Info("dataset installed", "records", len(records))
}

// Filters returns a copy of the current filter state.
func (d *Dashboard) Filters() models.FilterState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filters.Clone()
}

// Options returns the filter choices derived from the unfiltered dataset.
func (d *Dashboard) Options() models.FilterOptions {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.options
}

// UpdateFilter replaces one dimension of the filter state. The date range
// dimension takes a models.DateRange; the categorical dimensions take a
// []string. Anything else is a caller bug, reported as a validation error.
func (d *Dashboard) UpdateFilter(dimension models.FilterDimension, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch dimension {
	case models.DimensionDateRange:
		dr, ok := value.(models.DateRange)
		if !ok {
			return errors.Validation(fmt.Sprintf("dateRange requires a date range value, got %T", value))
		}
		if dr.EndDate.Before(dr.StartDate) {
			return errors.Validation("date range end precedes start")
		}
		d.filters.DateRange = dr
	case models.DimensionRegions, models.DimensionCountries, models.DimensionCategories, models.DimensionStatuses:
		values, ok := value.([]string)
		if !ok {
			return errors.Validation(fmt.Sprintf("%s requires a string list, got %T", dimension, value))
		}
		selected := append([]string{}, values...)
		switch dimension {
		case models.DimensionRegions:
			d.filters.Regions = selected
		case models.DimensionCountries:
			d.filters.Countries = selected
		case models.DimensionCategories:
			d.filters.Categories = selected
		case models.DimensionStatuses:
			d.filters.Statuses = selected
		}
	default:
		return errors.Validation(fmt.Sprintf("unknown filter dimension %q", dimension))
	}

	d.invalidateLocked()
	return nil
}

// ResetFilters restores the default filter state.
func (d *Dashboard) ResetFilters() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters = models.DefaultFilterState()
	d.invalidateLocked()
}

func (d *Dashboard) invalidateLocked() {
	d.filteredSig = ""
	d.filtered = nil
}

// Filtered returns the records passing the current filters. The slice is
// shared between callers and must not be mutated; aggregators never do.
func (d *Dashboard) Filtered() []models.TransactionRecord {
	d.mu.RLock()
	sig := filterSignature(d.filters)
	if sig == d.filteredSig && d.filtered != nil {
		f := d.filtered
		d.mu.RUnlock()
		return f
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	sig = filterSignature(d.filters)
	if sig != d.filteredSig || d.filtered == nil {
		d.filtered = analytics.Apply(d.records, d.filters)
		d.filteredSig = sig
	}
	return d.filtered
}

func (d *Dashboard) KPIs() models.KPISummary {
	return analytics.KPIs(d.Filtered())
}

func (d *Dashboard) TimeSeries(frame analytics.Frame) []models.TimeSeriesPoint {
	return analytics.TimeSeries(d.Filtered(), frame)
}

func (d *Dashboard) CategoryRollups() []models.CategoryRollup {
	return analytics.CategoryRollups(d.Filtered())
}

func (d *Dashboard) ProductRollups(limit int) []models.ProductRollup {
	return analytics.ProductRollups(d.Filtered(), limit)
}

func (d *Dashboard) Stream() models.StreamMatrix {
	return analytics.Stream(d.Filtered())
}

func (d *Dashboard) GeoRollups(q analytics.GeoQuery) []models.GeoRollup {
	return analytics.GeoRollups(d.Filtered(), q)
}

func (d *Dashboard) Hierarchy() *models.HierarchyNode {
	return analytics.Hierarchy(d.Filtered())
}

func (d *Dashboard) Graph() models.ProductGraph {
	return analytics.Graph(d.Filtered(), d.graphCfg)
}

func (d *Dashboard) Table(q analytics.TableQuery) models.TablePage {
	return analytics.Table(d.Filtered(), q)
}

// Stats summarizes the loaded dataset for the admin endpoint.
func (d *Dashboard) Stats() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return map[string]any{
		"record_count":   len(d.records),
		"filtered_count": len(d.filtered),
		"loaded_at":      d.loadedAt,
		"regions":        len(d.options.Regions),
		"countries":      len(d.options.Countries),
		"categories":     len(d.options.Categories),
		"statuses":       len(d.options.Statuses),
	}
}

// filterSignature is a cheap value key for memoizing the filtered slice.
func filterSignature(f models.FilterState) string {
	var b strings.Builder
	b.WriteString(f.DateRange.StartDate.Format(time.RFC3339))
	b.WriteByte('|')
	b.WriteString(f.DateRange.EndDate.Format(time.RFC3339))
	for _, set := range [][]string{f.Regions, f.Countries, f.Categories, f.Statuses} {
		b.WriteByte('|')
		for _, v := range set {
			b.WriteString(v)
			b.WriteByte(';')
		}
	}
	return b.String()
}
