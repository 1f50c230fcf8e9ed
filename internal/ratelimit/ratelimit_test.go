// File: internal/ratelimit/ratelimit_test.go
package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(maxAttempts int) *MemoryRateLimiter {
	return NewMemoryRateLimiter(&Config{
		WindowSize:    time.Minute,
		MaxAttempts:   maxAttempts,
		CleanupPeriod: time.Hour,
		BanDuration:   time.Minute,
	})
}

func TestAllow_WithinLimit(t *testing.T) {
	limiter := newTestLimiter(3)
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("10.0.0.1")
		assert.True(t, allowed, "attempt %d should pass", i+1)
		assert.Equal(t, 3-(i+1), info.Remaining)
	}
}

func TestAllow_BansAfterLimit(t *testing.T) {
	limiter := newTestLimiter(2)
	defer limiter.Close()

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.1")

	allowed, info := limiter.Allow("10.0.0.1")

	assert.False(t, allowed)
	assert.True(t, info.Banned)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestAllow_TracksIdentifiersIndependently(t *testing.T) {
	limiter := newTestLimiter(1)
	defer limiter.Close()

	limiter.Allow("10.0.0.1")
	allowed, _ := limiter.Allow("10.0.0.1")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("10.0.0.2")
	assert.True(t, allowed, "a different client keeps its own window")
}

func TestRecordSuccess_ResetsWindow(t *testing.T) {
	limiter := newTestLimiter(2)
	defer limiter.Close()

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.1")
	limiter.RecordSuccess("10.0.0.1")

	allowed, info := limiter.Allow("10.0.0.1")

	assert.True(t, allowed)
	assert.Equal(t, 1, info.Remaining)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(r *http.Request)
		remote string
		want   string
	}{
		{
			name:   "x-forwarded-for takes precedence",
			setup:  func(r *http.Request) { r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1") },
			remote: "10.0.0.9:1234",
			want:   "203.0.113.7",
		},
		{
			name:   "x-real-ip fallback",
			setup:  func(r *http.Request) { r.Header.Set("X-Real-IP", "203.0.113.8") },
			remote: "10.0.0.9:1234",
			want:   "203.0.113.8",
		},
		{
			name:   "remote addr host only",
			setup:  func(r *http.Request) {},
			remote: "10.0.0.9:1234",
			want:   "10.0.0.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			tt.setup(r)
			assert.Equal(t, tt.want, GetClientIP(r))
		})
	}
}
