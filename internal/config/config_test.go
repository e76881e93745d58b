package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SALESDASH_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 8084 {
		t.Errorf("Server.Port = %d, want 8084", cfg.Server.Port)
	}
	if cfg.Dataset.CSVFile != "MLDataset.csv" {
		t.Errorf("Dataset.CSVFile = %q, want MLDataset.csv", cfg.Dataset.CSVFile)
	}
	if cfg.Logger.Level != "info" || cfg.Logger.Format != "json" {
		t.Errorf("logger defaults = %s/%s, want info/json", cfg.Logger.Level, cfg.Logger.Format)
	}
	if cfg.Graph.TopCategories != 5 || cfg.Graph.TopProducts != 30 || cfg.Graph.MinEdgeWeight != 1 {
		t.Errorf("graph defaults = %+v, want 5/30/1", cfg.Graph)
	}
	if cfg.Address() != "localhost:8084" {
		t.Errorf("Address() = %q, want localhost:8084", cfg.Address())
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salesdash.toml")
	content := "[server]\nport = 9001\n\n[dataset]\ncsv_file = \"other.csv\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SALESDASH_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want 9001 from file", cfg.Server.Port)
	}
	if cfg.Dataset.CSVFile != "other.csv" {
		t.Errorf("Dataset.CSVFile = %q, want other.csv from file", cfg.Dataset.CSVFile)
	}
	// Untouched sections keep their defaults.
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want default info", cfg.Logger.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salesdash.toml")
	if err := os.WriteFile(path, []byte("[server]\nport = 9001\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SALESDASH_CONFIG", path)
	t.Setenv("SERVER_PORT", "9002")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("CSV_LOAD_TIMEOUT", "45s")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9002 {
		t.Errorf("Server.Port = %d, want env override 9002", cfg.Server.Port)
	}
	if cfg.Logger.Format != "text" {
		t.Errorf("Logger.Format = %q, want text", cfg.Logger.Format)
	}
	if cfg.Dataset.LoadTimeout != 45*time.Second {
		t.Errorf("Dataset.LoadTimeout = %v, want 45s", cfg.Dataset.LoadTimeout)
	}
	if len(cfg.Security.AllowedOrigins) != 2 || cfg.Security.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("AllowedOrigins = %v, want the split env list", cfg.Security.AllowedOrigins)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "SERVER_PORT", "99999"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"zero rate limit", "SECURITY_RATE_LIMIT_RPS", "0"},
		{"zero graph categories", "GRAPH_TOP_CATEGORIES", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SALESDASH_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s succeeded, want validation error", tt.key, tt.value)
			}
		})
	}
}
