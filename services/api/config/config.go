package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/02loveslollipop/sisbi-dashboard/internal/pipeline"
	"github.com/02loveslollipop/sisbi-dashboard/internal/sisbi"
)

const (
	defaultPort           = 8080
	defaultRequestTimeout = 30 * time.Second
	defaultCacheTTL       = 5 * time.Minute
	defaultHistoryLimit   = 50
	maxHistoryLimit       = 1000
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	Port           int
	BearerToken    string
	DatabaseURL    string
	SisbiBaseURL   string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	Policies       pipeline.Policies
	HistoryLimit   int
	LogMode        string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:           defaultPort,
		SisbiBaseURL:   sisbi.DefaultBaseURL,
		RequestTimeout: defaultRequestTimeout,
		CacheTTL:       defaultCacheTTL,
		Policies:       pipeline.DefaultPolicies(),
		HistoryLimit:   defaultHistoryLimit,
		LogMode:        "dev",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if v := strings.TrimSpace(os.Getenv("SISBI_BASE_URL")); v != "" {
		cfg.SisbiBaseURL = v
	}

	if v := strings.TrimSpace(os.Getenv("SISBI_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid SISBI_REQUEST_TIMEOUT: %s", v)
		}
		cfg.RequestTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("SISBI_CACHE_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("invalid SISBI_CACHE_TTL: %s", v)
		}
		cfg.CacheTTL = d
	}

	policies := []struct {
		key string
		dst *pipeline.FailurePolicy
	}{
		{"ESTABLISHMENTS_FAILURE_POLICY", &cfg.Policies.Establishments},
		{"CAPACITIES_FAILURE_POLICY", &cfg.Policies.Capacities},
		{"DETAIL_FAILURE_POLICY", &cfg.Policies.Detail},
	}
	for _, p := range policies {
		v := os.Getenv(p.key)
		if v == "" {
			continue
		}
		policy, err := pipeline.ParseFailurePolicy(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", p.key, err)
		}
		*p.dst = policy
	}

	if limitStr := os.Getenv("API_HISTORY_LIMIT"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= maxHistoryLimit {
			cfg.HistoryLimit = limit
		} else {
			return cfg, fmt.Errorf("invalid API_HISTORY_LIMIT: %s", limitStr)
		}
	}

	if v := strings.TrimSpace(os.Getenv("LOG_MODE")); v != "" {
		cfg.LogMode = v
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// HandlerTimeout bounds a request that may wait on upstream calls.
func (c Config) HandlerTimeout() time.Duration {
	return c.RequestTimeout + 5*time.Second
}

// MaxHistoryLimit caps the history page size a client may ask for.
func (c Config) MaxHistoryLimit() int {
	return maxHistoryLimit
}
