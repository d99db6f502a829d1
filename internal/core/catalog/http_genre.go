// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/taibuivan/comiking/internal/platform/constants"
	requestutil "github.com/taibuivan/comiking/internal/platform/request"
	"github.com/taibuivan/comiking/internal/platform/respond"
)

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.ID(request, "id", ResourceGenre)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.GenreDetail(request.Context(), genreID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input GenreInput
	if err := handler.binder.Bind(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, _, err := handler.service.CreateGenre(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, genre.URL)
}

func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.ID(request, "id", ResourceGenre)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input GenreInput
	if err := handler.binder.Bind(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, _, err := handler.service.UpdateGenre(request.Context(), genreID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, genre.URL)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.ID(request, "id", ResourceGenre)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.DeleteGenre(request.Context(), genreID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, constants.GenreListURL)
}
