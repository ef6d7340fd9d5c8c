package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, int64(4900), cfg.ShippingFee)
	assert.Equal(t, 0.05, cfg.TaxRate)
	assert.Equal(t, 15*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, "file", cfg.StorageDriver)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TAX_RATE", "0.18")
	t.Setenv("SUBMIT_TIMEOUT", "5s")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("STORAGE_PATH", "/tmp/state.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 0.18, cfg.TaxRate)
	assert.Equal(t, 5*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "/tmp/state.db", cfg.StoragePath)
}
