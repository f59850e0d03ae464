package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadServer_Defaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("DATABASE_DRIVER", "")

	cfg := LoadServer()

	assert.Equal(t, "5000", cfg.APIPort)
	assert.Equal(t, "sqlite3", cfg.DatabaseDriver)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.Equal(t, "admin@example.com", cfg.DemoEmail)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadServer_FromEnv(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("SEED_COUNT", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")

	cfg := LoadServer()

	assert.Equal(t, "9090", cfg.APIPort)
	assert.Equal(t, 25, cfg.SeedCount)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 24, cfg.JWTExpirationHours, "invalid ints fall back to the default")
}

func TestLoadClient(t *testing.T) {
	t.Setenv("LEADS_API_URL", "http://leads.test/api")
	t.Setenv("LEADS_REQUEST_TIMEOUT", "3s")
	t.Setenv("LEADS_LATEST_ONLY", "true")
	t.Setenv("LEADS_PAGE_SIZE", "")

	cfg := LoadClient()

	assert.Equal(t, "http://leads.test/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.LatestOnly)
	assert.False(t, cfg.SearchResetsPage)
	assert.Equal(t, 10, cfg.PageSize)
}

func TestGetEnvAsDuration_Invalid(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_TIMEOUT", time.Minute))
}
