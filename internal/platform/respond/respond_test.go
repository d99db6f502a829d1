// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/comiking/internal/platform/apperr"
	"github.com/taibuivan/comiking/internal/platform/respond"
)

func TestRedirect(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Redirect(recorder, "/catalog/genre/4")

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/catalog/genre/4", recorder.Header().Get("Location"))

	var body respond.RedirectEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "/catalog/genre/4", body.URL)
}

func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Comic"), http.StatusNotFound, apperr.CodeNotFound},
		{"conflict", apperr.Conflict("Genre already exists"), http.StatusConflict, apperr.CodeConflict},
		{"unavailable", apperr.ServiceUnavailable("Storage unavailable"), http.StatusServiceUnavailable, apperr.CodeServiceUnavailable},
		{"plain", errors.New("boom"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/catalog", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.status, recorder.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Error, "boom")
		})
	}
}
