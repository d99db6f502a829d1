// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/comiking/internal/platform/request"
	"github.com/taibuivan/comiking/internal/platform/respond"
)

// # HTTP Delivery

// Handler exposes the catalog over HTTP.
//
// Reads answer with JSON view models. Writes answer with 303 See Other and the
// canonical URL of the affected entity, whether or not anything was written.
type Handler struct {
	service *Service
	binder  *requestutil.Binder
}

// NewHandler constructs a catalog [Handler].
func NewHandler(service *Service, binder *requestutil.Binder) *Handler {
	return &Handler{service: service, binder: binder}
}

// RegisterRoutes mounts every catalog route on router, which is expected to
// sit at /catalog.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.index)

	// Genres
	router.Get("/genres", handler.listGenres)
	router.Post("/genre/create", handler.createGenre)
	router.Get("/genre/{id}", handler.getGenre)
	router.Get("/genre/{id}/update", handler.getGenre)
	router.Post("/genre/{id}/update", handler.updateGenre)
	router.Get("/genre/{id}/delete", handler.getGenre)
	router.Post("/genre/{id}/delete", handler.deleteGenre)

	// Publishers
	router.Get("/publishers", handler.listPublishers)
	router.Post("/publisher/create", handler.createPublisher)
	router.Get("/publisher/{id}", handler.getPublisher)
	router.Get("/publisher/{id}/update", handler.getPublisher)
	router.Post("/publisher/{id}/update", handler.updatePublisher)
	router.Get("/publisher/{id}/delete", handler.getPublisher)
	router.Post("/publisher/{id}/delete", handler.deletePublisher)

	// Authors
	router.Get("/authors", handler.listAuthors)
	router.Post("/author/create", handler.createAuthor)
	router.Get("/author/{id}", handler.getAuthor)
	router.Get("/author/{id}/update", handler.getAuthor)
	router.Post("/author/{id}/update", handler.updateAuthor)
	router.Get("/author/{id}/delete", handler.getAuthor)
	router.Post("/author/{id}/delete", handler.deleteAuthor)

	// Comics
	router.Get("/comics", handler.listComics)
	router.Get("/comic/create", handler.getComicForm)
	router.Post("/comic/create", handler.createComic)
	router.Get("/comic/{id}", handler.getComic)
	router.Get("/comic/{id}/update", handler.getComicUpdateForm)
	router.Post("/comic/{id}/update", handler.updateComic)
	router.Get("/comic/{id}/delete", handler.getComic)
	router.Post("/comic/{id}/delete", handler.deleteComic)

	// Volumes, created within their comic
	router.Get("/comic/{id}/volume/create", handler.getVolumeForm)
	router.Post("/comic/{id}/volume/create", handler.createVolume)
	router.Get("/volume/{id}", handler.getVolume)
	router.Get("/volume/{id}/update", handler.getVolume)
	router.Post("/volume/{id}/update", handler.updateVolume)
	router.Get("/volume/{id}/delete", handler.getVolume)
	router.Post("/volume/{id}/delete", handler.deleteVolume)
}

func (handler *Handler) index(writer http.ResponseWriter, request *http.Request) {
	index, err := handler.service.Index(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, index)
}
