package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Source kinds understood by the API server.
const (
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

// DefaultEndpoint is where the dashboard looks for the inventory when nothing is configured.
const DefaultEndpoint = "http://localhost:8080/api/inventory"

type Config struct {
	Env      string
	LogLevel string

	// API server
	HTTPAddr      string
	CORSOrigin    string
	EnableMetrics bool

	// Inventory source
	Source      string
	File        string
	MappingPath string
	DatabaseURL string
	Table       string
	LoadWorkers int

	// Dashboard
	Endpoint      string
	DashboardAddr string
	FetchTimeout  time.Duration
}

// Load reads the configuration from the environment and, when present, from
// a .env or config.env file in the working directory. Environment variables win.
func Load() *Config {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		Env:      getString(v, "APP_ENV", "development"),
		LogLevel: getString(v, "LOG_LEVEL", "info"),

		HTTPAddr:      getString(v, "HTTP_ADDR", ":8080"),
		CORSOrigin:    getString(v, "CORS_ORIGIN", "http://localhost:5173"),
		EnableMetrics: getBool(v, "ENABLE_METRICS", false),

		Source:      strings.ToLower(getString(v, "INVENTORY_SOURCE", SourceCSV)),
		File:        getString(v, "INVENTORY_FILE", "inventory.csv"),
		MappingPath: getString(v, "INVENTORY_MAPPING", ""),
		DatabaseURL: getString(v, "DATABASE_URL", ""),
		Table:       getString(v, "INVENTORY_TABLE", "inventory"),
		LoadWorkers: getInt(v, "LOAD_WORKERS", 4),

		Endpoint:      getString(v, "DASHBOARD_ENDPOINT", DefaultEndpoint),
		DashboardAddr: getString(v, "DASHBOARD_ADDR", ":5173"),
		FetchTimeout:  getDuration(v, "DASHBOARD_TIMEOUT", 0),
	}

	return cfg
}

// LoadAndValidate loads configuration and validates it
func LoadAndValidate() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that the binaries cannot work without.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("HTTP_ADDR cannot be empty")
	}
	if c.LoadWorkers < 1 {
		return fmt.Errorf("LOAD_WORKERS must be at least 1, got %d", c.LoadWorkers)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("DASHBOARD_TIMEOUT cannot be negative, got %v", c.FetchTimeout)
	}

	switch c.Source {
	case SourceCSV, SourceXLSX:
		if c.File == "" {
			return fmt.Errorf("INVENTORY_FILE is required for source %q", c.Source)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for source \"postgres\"")
		}
		if c.Table == "" {
			return errors.New("INVENTORY_TABLE cannot be empty")
		}
	default:
		return fmt.Errorf("unknown INVENTORY_SOURCE %q (want csv, xlsx or postgres)", c.Source)
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid DASHBOARD_ENDPOINT: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("DASHBOARD_ENDPOINT must be an http(s) URL, got %q", c.Endpoint)
	}

	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		if s := strings.TrimSpace(v.GetString(key)); s != "" {
			return s
		}
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return n
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return d
}
