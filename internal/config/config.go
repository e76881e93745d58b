package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is assembled in three layers: built-in defaults, an optional TOML
// file (SALESDASH_CONFIG or ./salesdash.toml), then environment overrides.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Dataset  DatasetConfig  `toml:"dataset"`
	Logger   LoggerConfig   `toml:"logger"`
	Security SecurityConfig `toml:"security"`
	Graph    GraphConfig    `toml:"graph"`
	UI       UIConfig       `toml:"ui"`
}

type ServerConfig struct {
	Host            string        `toml:"host"`
	Port            int           `toml:"port"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	IdleTimeout     time.Duration `toml:"idle_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

type DatasetConfig struct {
	CSVFile     string        `toml:"csv_file"`
	CacheDir    string        `toml:"cache_dir"`
	LoadTimeout time.Duration `toml:"load_timeout"`
	BoundaryURL string        `toml:"boundary_url"`
}

type LoggerConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type SecurityConfig struct {
	EnableRateLimit bool     `toml:"rate_limit_enabled"`
	RateLimitRPS    int      `toml:"rate_limit_rps"`
	RateLimitBurst  int      `toml:"rate_limit_burst"`
	AllowedOrigins  []string `toml:"allowed_origins"`
	TrustedProxies  []string `toml:"trusted_proxies"`
}

// GraphConfig tunes the co-purchase graph pruning. Defaults match the
// reference dashboard: 5 categories, 30 products, edges above weight 1.
type GraphConfig struct {
	TopCategories int `toml:"top_categories"`
	TopProducts   int `toml:"top_products"`
	MinEdgeWeight int `toml:"min_edge_weight"`
}

type UIConfig struct {
	ThemeFile string `toml:"theme_file"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8084,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Dataset: DatasetConfig{
			CSVFile:     "MLDataset.csv",
			CacheDir:    ".cache",
			LoadTimeout: 30 * time.Second,
			BoundaryURL: "https://raw.githubusercontent.com/holtzy/D3-graph-gallery/master/DATA/world.geojson",
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			EnableRateLimit: true,
			RateLimitRPS:    100,
			RateLimitBurst:  10,
			AllowedOrigins:  []string{"http://localhost:8084"},
			TrustedProxies:  []string{"127.0.0.1"},
		},
		Graph: GraphConfig{
			TopCategories: 5,
			TopProducts:   30,
			MinEdgeWeight: 1,
		},
		UI: UIConfig{
			ThemeFile: ".cache/theme",
		},
	}
}

// Load builds the configuration and validates it.
func Load() (*Config, error) {
	cfg := defaults()

	path := getEnvString("SALESDASH_CONFIG", "salesdash.toml")
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = getEnvString("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("SERVER_PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", cfg.Server.IdleTimeout)
	cfg.Server.ShutdownTimeout = getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Dataset.CSVFile = getEnvString("CSV_FILE", cfg.Dataset.CSVFile)
	cfg.Dataset.CacheDir = getEnvString("CACHE_DIR", cfg.Dataset.CacheDir)
	cfg.Dataset.LoadTimeout = getEnvDuration("CSV_LOAD_TIMEOUT", cfg.Dataset.LoadTimeout)
	cfg.Dataset.BoundaryURL = getEnvString("BOUNDARY_URL", cfg.Dataset.BoundaryURL)

	cfg.Logger.Level = getEnvString("LOG_LEVEL", cfg.Logger.Level)
	cfg.Logger.Format = getEnvString("LOG_FORMAT", cfg.Logger.Format)

	cfg.Security.EnableRateLimit = getEnvBool("SECURITY_RATE_LIMIT_ENABLED", cfg.Security.EnableRateLimit)
	cfg.Security.RateLimitRPS = getEnvInt("SECURITY_RATE_LIMIT_RPS", cfg.Security.RateLimitRPS)
	cfg.Security.RateLimitBurst = getEnvInt("SECURITY_RATE_LIMIT_BURST", cfg.Security.RateLimitBurst)
	cfg.Security.AllowedOrigins = getEnvStringSlice("SECURITY_ALLOWED_ORIGINS", cfg.Security.AllowedOrigins)
	cfg.Security.TrustedProxies = getEnvStringSlice("SECURITY_TRUSTED_PROXIES", cfg.Security.TrustedProxies)

	cfg.Graph.TopCategories = getEnvInt("GRAPH_TOP_CATEGORIES", cfg.Graph.TopCategories)
	cfg.Graph.TopProducts = getEnvInt("GRAPH_TOP_PRODUCTS", cfg.Graph.TopProducts)
	cfg.Graph.MinEdgeWeight = getEnvInt("GRAPH_MIN_EDGE_WEIGHT", cfg.Graph.MinEdgeWeight)

	cfg.UI.ThemeFile = getEnvString("THEME_FILE", cfg.UI.ThemeFile)
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Dataset.CSVFile == "" {
		return fmt.Errorf("CSV file path cannot be empty")
	}
	if c.Dataset.LoadTimeout <= 0 {
		return fmt.Errorf("dataset load timeout must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}
	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 || c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit settings must be positive")
	}

	if c.Graph.TopCategories <= 0 || c.Graph.TopProducts <= 0 {
		return fmt.Errorf("graph node limits must be positive")
	}
	if c.Graph.MinEdgeWeight < 0 {
		return fmt.Errorf("graph edge weight threshold cannot be negative")
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
