package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", cfg.App.Addr)
	assert.Equal(t, "portfolio_data.json", cfg.Paths.Draft)
	assert.Equal(t, "portfolios_registrados.json", cfg.Paths.Registry)
	assert.Equal(t, "templates", cfg.Paths.Templates)
	assert.Equal(t, "output", cfg.Paths.Output)
	assert.Equal(t, "uploads", cfg.Paths.Uploads)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("PORTFOLIO_ADDR", "127.0.0.1:8080")
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")
	t.Setenv("PORTFOLIO_DATABASE_URL", "postgres://localhost/portfolio")
	t.Setenv("PORTFOLIO_PATHS_OUTPUT", "/tmp/out")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.App.Addr)
	assert.Equal(t, "/usr/bin/chromium", cfg.Chrome.Path)
	assert.Equal(t, "postgres://localhost/portfolio", cfg.DB.DSN)
	assert.Equal(t, "/tmp/out", cfg.Paths.Output)
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "warn")
	log.Info("hidden")
	log.Warn("shown", "key", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown key=v")

	buf.Reset()
	NewLogger(&buf, "loud").Info("fallback")
	assert.Contains(t, buf.String(), "level=INFO")
}
