// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/comiking/internal/platform/ctxutil"
	"github.com/taibuivan/comiking/internal/platform/middleware"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (limiter *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	limiter.keys = append(limiter.keys, key)
	return limiter.allowed, limiter.err
}

type stubConfig struct {
	development bool
	origins     []string
}

func (cfg stubConfig) IsDevelopment() bool      { return cfg.development }
func (cfg stubConfig) AllowedOrigins() []string { return cfg.origins }

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func TestRequestID_GeneratesAndKeeps(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/catalog", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	request.Header.Set("X-Request-ID", "abc")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "abc", seen)
}

func TestRateLimit(t *testing.T) {
	t.Run("rejects exhausted clients", func(tt *testing.T) {
		limiter := &stubLimiter{allowed: false}
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/catalog", nil)
		request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

		middleware.RateLimit(limiter)(okHandler).ServeHTTP(recorder, request)

		assert.Equal(tt, http.StatusTooManyRequests, recorder.Code)
		assert.Equal(tt, []string{"203.0.113.7"}, limiter.keys)
	})

	t.Run("fails open when the limiter is down", func(tt *testing.T) {
		limiter := &stubLimiter{err: errors.New("redis: connection refused")}
		recorder := httptest.NewRecorder()

		middleware.RateLimit(limiter)(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/catalog", nil))

		assert.Equal(tt, http.StatusOK, recorder.Code)
	})
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "boom")
}

func TestCORS(t *testing.T) {
	cfg := stubConfig{origins: []string{"https://comics.example"}}

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://comics.example", true},
		{"https://evil.example", false},
	}

	for _, tt := range tests {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodOptions, "/catalog/genre/create", nil)
		request.Header.Set("Origin", tt.origin)

		middleware.CORS(cfg)(okHandler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		if tt.allowed {
			assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
		} else {
			assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
		}
	}
}
