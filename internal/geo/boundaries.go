// Package geo fetches the world-boundary polygons used by the map view.
// The aggregation core never depends on this data; a failed fetch only
// degrades the map, it never fails the dashboard.
package geo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// CountryBoundary is one country's polygon plus a precomputed centroid for
// bubble placement.
type CountryBoundary struct {
	Name     string           `json:"name"`
	Centroid [2]float64       `json:"centroid"`
	Feature  *geojson.Feature `json:"feature"`
}

type Boundaries struct {
	url    string
	client *http.Client
	logger *slog.Logger

	mu        sync.RWMutex
	byCountry map[string]CountryBoundary
}

func NewBoundaries(url string, logger *slog.Logger) *Boundaries {
	return &Boundaries{
		url:       url,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
		byCountry: map[string]CountryBoundary{},
	}
}

// Load fetches and indexes the boundary collection. Called fire-and-forget
// at startup, no retries; the caller only logs a failure.
func (b *Boundaries) Load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, nil)
	if err != nil {
		return fmt.Errorf("build boundary request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch boundaries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch boundaries: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read boundaries: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return fmt.Errorf("decode boundaries: %w", err)
	}

	indexed := make(map[string]CountryBoundary, len(fc.Features))
	for _, f := range fc.Features {
		name := featureName(f)
		if name == "" {
			continue
		}
		centroid := centroidOf(f.Geometry)
		indexed[name] = CountryBoundary{
			Name:     name,
			Centroid: [2]float64{centroid.Lon(), centroid.Lat()},
			Feature:  f,
		}
	}

	b.mu.Lock()
	b.byCountry = indexed
	b.mu.Unlock()

	b.logger.Info("boundaries loaded", "countries", len(indexed))
	return nil
}

// Ready reports whether any boundaries are available. False means the map
// renders without polygons.
func (b *Boundaries) Ready() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byCountry) > 0
}

// Lookup joins a country name from the dataset against the boundary index.
func (b *Boundaries) Lookup(name string) (CountryBoundary, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	cb, ok := b.byCountry[name]
	return cb, ok
}

// ForCountries returns the boundaries found for the given names, silently
// skipping names with no polygon.
func (b *Boundaries) ForCountries(names []string) []CountryBoundary {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]CountryBoundary, 0, len(names))
	for _, name := range names {
		if cb, ok := b.byCountry[name]; ok {
			out = append(out, cb)
		}
	}
	return out
}

func featureName(f *geojson.Feature) string {
	for _, key := range []string{"name", "NAME", "admin", "ADMIN"} {
		if v, ok := f.Properties[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func centroidOf(g orb.Geometry) orb.Point {
	if g == nil {
		return orb.Point{}
	}
	centroid, _ := planar.CentroidArea(g)
	return centroid
}
