package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02loveslollipop/sisbi-dashboard/internal/sisbi"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "SISBI_BASE_URL", "SNAPSHOT_MIN_INTERVAL", "SISBI_REQUEST_TIMEOUT",
		"SNAPSHOT_VALUE_EPSILON", "DRY_RUN", "LOG_MODE",
	} {
		t.Setenv(key, kv[key])
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	setEnv(t, nil)

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, map[string]string{"DATABASE_URL": "postgres://localhost/sisbi"})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, sisbi.DefaultBaseURL, cfg.SisbiBaseURL)
	assert.Equal(t, 24*time.Hour, cfg.MinInterval)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.InDelta(t, 0.01, cfg.ValueEpsilon, 1e-12)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "prod", cfg.LogMode)
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL":           "postgres://localhost/sisbi",
		"SISBI_BASE_URL":         "http://localhost:9000",
		"SNAPSHOT_MIN_INTERVAL":  "6h",
		"SISBI_REQUEST_TIMEOUT":  "10s",
		"SNAPSHOT_VALUE_EPSILON": "0",
		"DRY_RUN":                "TRUE",
		"LOG_MODE":               "dev",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.SisbiBaseURL)
	assert.Equal(t, 6*time.Hour, cfg.MinInterval)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Zero(t, cfg.ValueEpsilon)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "dev", cfg.LogMode)
}

func TestLoad_InvalidValues(t *testing.T) {
	for _, key := range []string{"SNAPSHOT_MIN_INTERVAL", "SISBI_REQUEST_TIMEOUT", "SNAPSHOT_VALUE_EPSILON"} {
		t.Run(key, func(t *testing.T) {
			setEnv(t, map[string]string{"DATABASE_URL": "postgres://localhost/sisbi", key: "nope"})

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
