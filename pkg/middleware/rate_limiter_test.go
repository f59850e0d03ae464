package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Burst(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	defer rl.Stop()

	limiter := rl.GetLimiter("192.168.1.1")
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow(), "burst exhausted")

	assert.True(t, rl.GetLimiter("192.168.1.2").Allow(), "other IPs have their own bucket")
	assert.Equal(t, 2, rl.Visitors())
}

func TestRateLimiter_Prune(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	defer rl.Stop()

	rl.GetLimiter("10.0.0.1")
	rl.GetLimiter("10.0.0.2").Allow()

	rl.prune()
	assert.Equal(t, 1, rl.Visitors(), "only the untouched bucket is forgotten")
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(60, 3)
	defer rl.Stop()

	e := echo.New()
	e.Use(rl.RateLimitMiddleware())
	e.GET("/api/leads", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 200, 429, 429}, codes)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
