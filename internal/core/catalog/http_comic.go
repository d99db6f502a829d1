// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/taibuivan/comiking/internal/platform/constants"
	requestutil "github.com/taibuivan/comiking/internal/platform/request"
	"github.com/taibuivan/comiking/internal/platform/respond"
)

// # Comics

func (handler *Handler) listComics(writer http.ResponseWriter, request *http.Request) {
	comics, err := handler.service.ListComics(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comics)
}

func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.ID(request, "id", ResourceComic)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.ComicDetail(request.Context(), comicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) getComicForm(writer http.ResponseWriter, request *http.Request) {
	form, err := handler.service.ComicForm(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, form)
}

func (handler *Handler) getComicUpdateForm(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.ID(request, "id", ResourceComic)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, err := handler.service.ComicUpdateForm(request.Context(), comicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, form)
}

func (handler *Handler) createComic(writer http.ResponseWriter, request *http.Request) {
	var input ComicInput
	if err := handler.binder.Bind(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, _, err := handler.service.CreateComic(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, comic.URL)
}

func (handler *Handler) updateComic(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.ID(request, "id", ResourceComic)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ComicInput
	if err := handler.binder.Bind(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, _, err := handler.service.UpdateComic(request.Context(), comicID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, comic.URL)
}

func (handler *Handler) deleteComic(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.ID(request, "id", ResourceComic)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.DeleteComic(request.Context(), comicID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, constants.ComicListURL)
}

// # Volumes

func (handler *Handler) getVolume(writer http.ResponseWriter, request *http.Request) {
	volumeID, err := requestutil.ID(request, "id", ResourceVolume)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.VolumeDetail(request.Context(), volumeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) getVolumeForm(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.ID(request, "id", ResourceComic)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, err := handler.service.VolumeForm(request.Context(), comicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, form)
}

func (handler *Handler) createVolume(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.ID(request, "id", ResourceComic)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input VolumeInput
	if err := handler.binder.Bind(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume, err := handler.service.CreateVolume(request.Context(), comicID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, volume.URL)
}

func (handler *Handler) updateVolume(writer http.ResponseWriter, request *http.Request) {
	volumeID, err := requestutil.ID(request, "id", ResourceVolume)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input VolumeInput
	if err := handler.binder.Bind(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume, _, err := handler.service.UpdateVolume(request.Context(), volumeID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, volume.URL)
}

func (handler *Handler) deleteVolume(writer http.ResponseWriter, request *http.Request) {
	volumeID, err := requestutil.ID(request, "id", ResourceVolume)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume, err := handler.service.DeleteVolume(request.Context(), volumeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, ComicURL(volume.ComicID))
}
