package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/config"
	"github.com/framelight/studio-api/internal/http/middleware"
)

func doRequests(handler http.Handler, path, ip string, count int) []int {
	codes := make([]int, count)
	for i := 0; i < count; i++ {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = ip + ":12345"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}
	return codes
}

func TestRateLimiter_Limit(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 3,
	}, zap.NewNop())

	handler := rl.Limit(okHandler())

	codes := doRequests(handler, "/api/v1/customers", "10.0.0.1", 5)
	assert.Equal(t, []int{200, 200, 200, 429, 429}, codes)

	// A different client IP has its own budget
	codes = doRequests(handler, "/api/v1/customers", "10.0.0.2", 1)
	assert.Equal(t, []int{200}, codes)
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           false,
		RequestsPerMinute: 1,
	}, zap.NewNop())

	codes := doRequests(rl.Limit(okHandler()), "/", "10.0.0.3", 10)
	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
}

func TestRateLimiter_Whitelists(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistIPs:      []string{"10.0.0.9"},
		WhitelistPaths:    []string{"/health", "/swagger/*"},
	}, zap.NewNop())

	handler := rl.Limit(okHandler())

	t.Run("whitelisted path", func(t *testing.T) {
		codes := doRequests(handler, "/health", "10.0.1.1", 5)
		for _, code := range codes {
			assert.Equal(t, http.StatusOK, code)
		}
	})

	t.Run("wildcard path", func(t *testing.T) {
		codes := doRequests(handler, "/swagger/index.html", "10.0.1.2", 5)
		for _, code := range codes {
			assert.Equal(t, http.StatusOK, code)
		}
	})

	t.Run("whitelisted ip", func(t *testing.T) {
		codes := doRequests(handler, "/api/v1/tasks", "10.0.0.9", 5)
		for _, code := range codes {
			assert.Equal(t, http.StatusOK, code)
		}
	})
}

func TestRateLimiter_LimitPortal(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:                 true,
		RequestsPerMinute:       100,
		PortalRequestsPerMinute: 2,
		WhitelistPaths:          []string{"/portal/*"},
	}, zap.NewNop())

	handler := rl.LimitPortal(okHandler())

	// Path whitelists do not apply on the portal limiter
	codes := doRequests(handler, "/portal/some-token", "10.0.2.1", 4)
	assert.Equal(t, []int{200, 200, 429, 429}, codes)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portal/some-token", nil)
	req.RemoteAddr = "10.0.2.1:12345"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
