package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "READ_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "CATALOG_DB_PATH", "CORS_ORIGINS", "PLANNER_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10, cfg.ReadTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "data/db/catalog.db", cfg.CatalogDBPath)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, "http://localhost:3003", cfg.PlannerURL)
	assert.Equal(t, "3003", PortOr("3003"))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("READ_TIMEOUT", "oops")
	t.Setenv("WRITE_TIMEOUT", "30")
	t.Setenv("CORS_ORIGINS", " http://a.test, ,http://b.test ")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.ReadTimeout, "invalid ints fall back to default")
	assert.Equal(t, 30, cfg.WriteTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowOrigins)
	assert.Equal(t, "8080", PortOr("3003"))
}
