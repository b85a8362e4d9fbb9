package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CATALOGUE_API_URL", "http://catalogue.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.Catalogue.Timeout)
	assert.Equal(t, "0 */15 * * * *", cfg.Refresh.Cron)
	assert.Equal(t, "development", cfg.App.Environment)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CATALOGUE_API_URL", "http://catalogue.local")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DEPENDENCY_CACHE_TTL", "5m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CATALOGUE_API_URL", "http://catalogue.local")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("CATALOGUE_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Catalogue.Timeout)
}

func TestLoad_RequiresCatalogueURL(t *testing.T) {
	t.Setenv("CATALOGUE_API_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "CATALOGUE_API_URL")
}
