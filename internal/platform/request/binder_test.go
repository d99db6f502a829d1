// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/comiking/internal/platform/apperr"
)

type params struct {
	Name        string `json:"name"         form:"name"         mod:"trim" validate:"required,max=9"`
	ReleaseDate string `json:"release_date" form:"release_date" mod:"trim" validate:"date"`
	Genres      []int  `json:"genres"       form:"genres"       default:"[]" validate:"dive,gt=0"`
}

func newRequest(payload, mime string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	request.Header.Set("Content-Type", mime)
	return request
}

func TestBinder_Bind(t *testing.T) {
	t.Parallel()
	binder := NewBinder()

	t.Run("trims and defaults json", func(tt *testing.T) {
		p := params{}
		err := binder.Bind(newRequest(`{"name":"  Action  "}`, "application/json"), &p)
		require.NoError(tt, err)
		assert.Equal(tt, "Action", p.Name)
		assert.NotNil(tt, p.Genres)
		assert.Empty(tt, p.Genres)
	})

	t.Run("decodes repeated form keys", func(tt *testing.T) {
		form := url.Values{"name": {"Comedy"}, "genres": {"2", "5"}, "submit": {"Save"}}
		p := params{}
		err := binder.Bind(newRequest(form.Encode(), "application/x-www-form-urlencoded"), &p)
		require.NoError(tt, err)
		assert.Equal(tt, []int{2, 5}, p.Genres)
	})

	t.Run("rejects unsupported media", func(tt *testing.T) {
		err := binder.Bind(newRequest(`<name/>`, "application/xml"), &params{})
		ae := apperr.As(err)
		require.NotNil(tt, ae)
		assert.Equal(tt, http.StatusUnsupportedMediaType, ae.HTTPStatus)
	})

	t.Run("rejects unknown json fields", func(tt *testing.T) {
		err := binder.Bind(newRequest(`{"name":"Drama","foo":"bar"}`, "application/json"), &params{})
		require.Error(tt, err)
		assert.Equal(tt, "foo", apperr.As(err).Details[0].Field)
	})

	t.Run("reports type errors", func(tt *testing.T) {
		err := binder.Bind(newRequest(`{"name":123}`, "application/json"), &params{})
		require.Error(tt, err)
		assert.Contains(tt, apperr.As(err).Details[0].Message, `"name" should be of type string`)
	})

	t.Run("uses json names in validation details", func(tt *testing.T) {
		err := binder.Bind(newRequest(`{"name":"0123456789","release_date":"24-12-1997"}`, "application/json"), &params{})
		ae := apperr.As(err)
		require.NotNil(tt, ae)
		require.Len(tt, ae.Details, 2)
		assert.Equal(tt, "name", ae.Details[0].Field)
		assert.Contains(tt, ae.Details[0].Message, "less than or equal to 9 characters")
		assert.Equal(tt, "release_date", ae.Details[1].Field)
	})

	t.Run("requires a body", func(tt *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", nil)
		err := binder.Bind(request, &params{})
		assert.True(tt, apperr.HasCode(err, apperr.CodeValidation))
	})
}

func TestNewBinder_RegistersDate(t *testing.T) {
	var binder *Binder
	require.NotPanics(t, func() { binder = NewBinder() })

	assert.NoError(t, binder.validate.Var("1997-12-24", "date"))
	assert.NoError(t, binder.validate.Var("", "date"))
	assert.Error(t, binder.validate.Var("24-12-1997", "date"))
}

func TestID(t *testing.T) {
	tests := []struct {
		value string
		id    int
		ok    bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		routeContext := chi.NewRouteContext()
		routeContext.URLParams.Add("id", tt.value)
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request = request.WithContext(contextWithRoute(request, routeContext))

		id, err := ID(request, "id", "Genre")
		if tt.ok {
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
		} else {
			assert.True(t, apperr.IsNotFound(err))
		}
	}
}

func contextWithRoute(request *http.Request, routeContext *chi.Context) context.Context {
	return context.WithValue(request.Context(), chi.RouteCtxKey, routeContext)
}
