// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/comiking/internal/api"
	"github.com/taibuivan/comiking/internal/core/catalog"
	"github.com/taibuivan/comiking/internal/core/catalog/memstore"
	"github.com/taibuivan/comiking/internal/platform/config"
	"github.com/taibuivan/comiking/internal/platform/ratelimit"
	requestutil "github.com/taibuivan/comiking/internal/platform/request"
)

func newServer(t *testing.T, checkStorage func(context.Context) error) http.Handler {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	service := catalog.NewService(memstore.New().Store(), logger)
	if checkStorage == nil {
		checkStorage = service.Ping
	}

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		StorageName:  config.StorageMemory,
		CheckStorage: checkStorage,
	}, logger)

	cfg := &config.Config{ServerPort: "0", Environment: "test", StorageDriver: config.StorageMemory}
	limiter := ratelimit.NewMemory(t.Context(), 1000, 1000)

	server := api.NewServer(cfg, logger, limiter, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(service, requestutil.NewBinder()),
	})
	return server.Handler()
}

func TestServer_Health(t *testing.T) {
	handler := newServer(t, nil)

	for _, path := range []string{"/health", "/ready"} {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}
}

func TestServer_ReadyDegraded(t *testing.T) {
	handler := newServer(t, func(context.Context) error { return errors.New("connection refused") })

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
}

func TestServer_CatalogMounted(t *testing.T) {
	handler := newServer(t, nil)

	create := httptest.NewRequest(http.MethodPost, "/catalog/genre/create", strings.NewReader("name=Action"))
	create.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, create)

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/catalog/genre/1", recorder.Header().Get("Location"))
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/catalog/genre/1", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"Action"`)
}

func TestServer_UnknownRoute(t *testing.T) {
	handler := newServer(t, nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "NOT_FOUND")
}
