// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/taibuivan/comiking/internal/platform/constants"
	requestutil "github.com/taibuivan/comiking/internal/platform/request"
	"github.com/taibuivan/comiking/internal/platform/respond"
)

func (handler *Handler) listPublishers(writer http.ResponseWriter, request *http.Request) {
	publishers, err := handler.service.ListPublishers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, publishers)
}

func (handler *Handler) getPublisher(writer http.ResponseWriter, request *http.Request) {
	publisherID, err := requestutil.ID(request, "id", ResourcePublisher)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.PublisherDetail(request.Context(), publisherID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) createPublisher(writer http.ResponseWriter, request *http.Request) {
	var input PublisherInput
	if err := handler.binder.Bind(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	publisher, _, err := handler.service.CreatePublisher(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, publisher.URL)
}

func (handler *Handler) updatePublisher(writer http.ResponseWriter, request *http.Request) {
	publisherID, err := requestutil.ID(request, "id", ResourcePublisher)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PublisherInput
	if err := handler.binder.Bind(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	publisher, _, err := handler.service.UpdatePublisher(request.Context(), publisherID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, publisher.URL)
}

func (handler *Handler) deletePublisher(writer http.ResponseWriter, request *http.Request) {
	publisherID, err := requestutil.ID(request, "id", ResourcePublisher)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.DeletePublisher(request.Context(), publisherID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, constants.PublisherListURL)
}
