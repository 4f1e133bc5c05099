package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTokenBucketRefill(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	tb := newTokenBucket(2, 1, func() time.Time { return now })

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	now = now.Add(1500 * time.Millisecond)
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestRateLimitPerIP(t *testing.T) {
	rl := NewRateLimiter(1, 0)
	defer rl.Stop()
	h := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(path, addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, do("/v1/sessions", "10.0.0.1:1111").Code)
	// same IP, different port
	rec := do("/v1/sessions", "10.0.0.1:2222")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rate_limited", body.Code)

	assert.Equal(t, http.StatusNoContent, do("/v1/sessions", "10.0.0.2:1111").Code)
	assert.Equal(t, http.StatusNoContent, do("/health", "10.0.0.1:3333").Code)
}

func TestHealthHandler(t *testing.T) {
	h := HealthHandler(map[string]HealthChecker{
		"redis": CheckFunc(func(context.Context) error { return nil }),
		"db":    CheckFunc(func(context.Context) error { return errors.New("down") }),
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var st HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "unhealthy", st.Status)
	assert.Equal(t, "healthy", st.Checks["redis"].Status)
	assert.Equal(t, "down", st.Checks["db"].Message)
}

func TestLoggingAndMetrics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := Logging(zap.New(core))(MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("hi"))
	})))

	before := GetMetrics()["requests_failed"].(uint64)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/sessions", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/v1/sessions", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, int64(2), fields["bytes"])
	assert.Equal(t, before+1, GetMetrics()["requests_failed"].(uint64))
}

func TestValidateSessionID(t *testing.T) {
	assert.NoError(t, ValidateSessionID("3f2b8c1e-4d5a-4b6c-8d7e-9f0a1b2c3d4e"))
	assert.Error(t, ValidateSessionID(""))
	assert.Error(t, ValidateSessionID("not-a-uuid"))
	assert.Error(t, ValidateSessionID("{3f2b8c1e-4d5a-4b6c-8d7e-9f0a1b2c3d4e}"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Acme\tCorp", SanitizeString("  Acme\x00\tCorp\x07 "))
	assert.Equal(t, " line1\nline2 ", SanitizeText(" line1\nline2\x1b "))
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 100, ValidateLimit(500))
	assert.Equal(t, 7, ValidateLimit(7))
}
