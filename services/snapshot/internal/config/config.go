package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/02loveslollipop/sisbi-dashboard/internal/sisbi"
)

const (
	defaultMinInterval    = 24 * time.Hour
	defaultRequestTimeout = 60 * time.Second
	defaultValueEpsilon   = 0.01
)

// Config holds runtime configuration for the snapshot job.
type Config struct {
	DatabaseURL    string
	SisbiBaseURL   string
	MinInterval    time.Duration
	RequestTimeout time.Duration
	ValueEpsilon   float64
	DryRun         bool
	LogMode        string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{LogMode: "prod"}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	cfg.SisbiBaseURL = strings.TrimSpace(os.Getenv("SISBI_BASE_URL"))
	if cfg.SisbiBaseURL == "" {
		cfg.SisbiBaseURL = sisbi.DefaultBaseURL
	}

	cfg.MinInterval = defaultMinInterval
	if v := strings.TrimSpace(os.Getenv("SNAPSHOT_MIN_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid SNAPSHOT_MIN_INTERVAL: %w", err)
		}
		cfg.MinInterval = d
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if v := strings.TrimSpace(os.Getenv("SISBI_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid SISBI_REQUEST_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("invalid SISBI_REQUEST_TIMEOUT: %s", v)
		}
		cfg.RequestTimeout = d
	}

	cfg.ValueEpsilon = defaultValueEpsilon
	if v := strings.TrimSpace(os.Getenv("SNAPSHOT_VALUE_EPSILON")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid SNAPSHOT_VALUE_EPSILON: %w", err)
		}
		cfg.ValueEpsilon = f
	}

	dryRun := strings.TrimSpace(os.Getenv("DRY_RUN"))
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")

	if v := strings.TrimSpace(os.Getenv("LOG_MODE")); v != "" {
		cfg.LogMode = v
	}

	return cfg, nil
}
