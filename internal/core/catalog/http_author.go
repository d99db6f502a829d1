// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/taibuivan/comiking/internal/platform/constants"
	requestutil "github.com/taibuivan/comiking/internal/platform/request"
	"github.com/taibuivan/comiking/internal/platform/respond"
)

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	authors, err := handler.service.ListAuthors(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, authors)
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ID(request, "id", ResourceAuthor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.AuthorDetail(request.Context(), authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	var input AuthorInput
	if err := handler.binder.Bind(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, _, err := handler.service.CreateAuthor(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, author.URL)
}

func (handler *Handler) updateAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ID(request, "id", ResourceAuthor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AuthorInput
	if err := handler.binder.Bind(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, _, err := handler.service.UpdateAuthor(request.Context(), authorID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, author.URL)
}

func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ID(request, "id", ResourceAuthor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.DeleteAuthor(request.Context(), authorID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, constants.AuthorListURL)
}
