package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"salesdash/internal/analytics"
	"salesdash/internal/config"
	"salesdash/internal/dataset"
	"salesdash/internal/geo"
	"salesdash/internal/middleware"
	"salesdash/internal/observability"
	"salesdash/internal/prefs"
	"salesdash/internal/server"
	"salesdash/internal/services"
	"salesdash/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application", "version", "1.0.0", "addr", cfg.Address())

	theme := prefs.NewThemeStore(cfg.UI.ThemeFile)

	dashboard := services.NewDashboard(analytics.GraphConfig{
		TopCategories: cfg.Graph.TopCategories,
		TopProducts:   cfg.Graph.TopProducts,
		MinEdgeWeight: cfg.Graph.MinEdgeWeight,
	}, logger)

	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.Dataset.LoadTimeout)
	defer cancel()

	loader := dataset.NewLoader(cfg.Dataset.CSVFile, cfg.Dataset.CacheDir, logger)
	records, err := loader.Load(loadCtx)
	if err != nil {
		// The dashboard still comes up on the synthetic fallback dataset.
		logger.Warn("failed to load CSV dataset, using sample data", "error", err)
		records = dataset.Mock()
	}
	dashboard.SetData(records)

	boundaries := geo.NewBoundaries(cfg.Dataset.BoundaryURL, logger)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Dataset.LoadTimeout)
		defer cancel()
		if err := boundaries.Load(ctx); err != nil {
			logger.Warn("boundary fetch failed, map renders without polygons", "error", err)
		}
	}()

	templateHandlers := &server.TemplateHandlers{
		Dashboard: func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
			defer cancel()
			if err := templates.Dashboard(string(theme.Get())).Render(ctx, w); err != nil {
				http.Error(w, "render error", http.StatusInternalServerError)
			}
		},
	}

	srv := server.NewServer(dashboard, boundaries, theme, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)
	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
		middleware.Compression(logger),
	)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      middlewareChain(srv),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)
	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down dashboard service")
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
