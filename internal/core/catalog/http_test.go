// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/comiking/internal/core/catalog"
	"github.com/taibuivan/comiking/internal/platform/apperr"
	requestutil "github.com/taibuivan/comiking/internal/platform/request"
	"github.com/taibuivan/comiking/internal/platform/respond"
)

func newRouter(f *fixture) http.Handler {
	router := chi.NewRouter()
	router.Route("/catalog", catalog.NewHandler(f.service, requestutil.NewBinder()).RegisterRoutes)
	return router
}

func serve(router http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, body)
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func postForm(router http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	return serve(router, http.MethodPost, target, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func postJSON(router http.Handler, target, body string) *httptest.ResponseRecorder {
	return serve(router, http.MethodPost, target, strings.NewReader(body), "application/json")
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func TestHandler_CreateGenreRedirects(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	first := postForm(router, "/catalog/genre/create", url.Values{"name": {"  Sports  "}})
	require.Equal(t, http.StatusSeeOther, first.Code)

	location := first.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/catalog/genre/"))

	var body respond.RedirectEnvelope
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &body))
	assert.Equal(t, location, body.URL)

	second := postJSON(router, "/catalog/genre/create", `{"name":"sports"}`)
	require.Equal(t, http.StatusSeeOther, second.Code)
	assert.Equal(t, location, second.Header().Get("Location"))

	genres, err := f.service.ListGenres(context.Background())
	require.NoError(t, err)
	assert.Len(t, genres, len(f.genres)+1)
}

func TestHandler_ValidationError(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder := postForm(router, "/catalog/genre/create", url.Values{"name": {"   "}})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := decodeError(t, recorder)
	assert.Equal(t, apperr.CodeValidation, envelope.Code)
	require.NotEmpty(t, envelope.Details)
	assert.Equal(t, "name", envelope.Details[0].Field)
}

func TestHandler_UnsupportedMediaType(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder := serve(router, http.MethodPost, "/catalog/genre/create", strings.NewReader("name=Sports"), "text/plain")

	assert.Equal(t, http.StatusUnsupportedMediaType, recorder.Code)
}

func TestHandler_NotFound(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	tests := []struct {
		name    string
		target  string
		message string
	}{
		{"unknown comic", "/catalog/comic/999", "Comic not found"},
		{"malformed id", "/catalog/genre/abc", "Genre not found"},
		{"unknown volume", "/catalog/volume/7", "Volume not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(router, http.MethodGet, tt.target, nil, "")

			assert.Equal(t, http.StatusNotFound, recorder.Code)
			envelope := decodeError(t, recorder)
			assert.Equal(t, apperr.CodeNotFound, envelope.Code)
			assert.Equal(t, tt.message, envelope.Error)
		})
	}
}

func TestHandler_ComicLifecycle(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	form := url.Values{
		"title":        {"One Piece"},
		"summary":      {"Pirates."},
		"release_date": {"1997-12-24"},
		"author":       {strconv.Itoa(f.author.ID)},
		"publisher":    {strconv.Itoa(f.publisher.ID)},
		"genres":       {strconv.Itoa(f.genres[1].ID), strconv.Itoa(f.genres[4].ID)},
	}

	created := postForm(router, "/catalog/comic/create", form)
	require.Equal(t, http.StatusSeeOther, created.Code)
	comicURL := created.Header().Get("Location")

	// Same genres in a different order: nothing is written.
	writes := f.engine.Writes()
	form["genres"] = []string{strconv.Itoa(f.genres[4].ID), strconv.Itoa(f.genres[1].ID)}
	unchanged := postForm(router, comicURL+"/update", form)
	require.Equal(t, http.StatusSeeOther, unchanged.Code)
	assert.Equal(t, comicURL, unchanged.Header().Get("Location"))
	assert.Equal(t, writes, f.engine.Writes())

	volume := postJSON(router, comicURL+"/volume/create", `{"volume_number":1,"title":"Romance Dawn","release_date":"1997-12-24"}`)
	require.Equal(t, http.StatusSeeOther, volume.Code)
	volumeURL := volume.Header().Get("Location")

	detail := serve(router, http.MethodGet, comicURL, nil, "")
	require.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), `"release_date_formatted":"Dec 24, 1997"`)
	assert.Contains(t, detail.Body.String(), `"release_date_day_first":"24-12-1997"`)
	assert.Contains(t, detail.Body.String(), `"title":"Romance Dawn"`)

	blocked := postForm(router, comicURL+"/delete", url.Values{})
	assert.Equal(t, http.StatusConflict, blocked.Code)

	deletedVolume := serve(router, http.MethodPost, volumeURL+"/delete", nil, "")
	require.Equal(t, http.StatusSeeOther, deletedVolume.Code)
	assert.Equal(t, comicURL, deletedVolume.Header().Get("Location"))

	deletedComic := serve(router, http.MethodPost, comicURL+"/delete", nil, "")
	require.Equal(t, http.StatusSeeOther, deletedComic.Code)
	assert.Equal(t, "/catalog/comics", deletedComic.Header().Get("Location"))
}

func TestHandler_VolumeForm(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)
	comic := f.createComic(t, "One Piece")

	recorder := serve(router, http.MethodGet, comic.URL+"/volume/create", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data catalog.VolumeForm `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Data.NextVolumeNumber)
}

func TestHandler_Index(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder := serve(router, http.MethodGet, "/catalog/", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data catalog.Index `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, 8, envelope.Data.Genres)
	assert.Equal(t, 1, envelope.Data.Authors)
}
