// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/comiking/internal/platform/apperr"
	"github.com/taibuivan/comiking/internal/platform/validate"
	"github.com/taibuivan/comiking/pkg/calendar"
	"github.com/taibuivan/comiking/pkg/slice"
)

// # Comic Views

// ComicDetail is everything the comic page shows.
type ComicDetail struct {
	Comic     *Comic     `json:"comic"`
	Author    *Author    `json:"author"`
	Publisher *Publisher `json:"publisher"`
	Genres    []*Genre   `json:"genres"`
	Volumes   []*Volume  `json:"volumes"`
}

// ComicForm holds the choices of the comic create and update forms.
//
// Comic and SelectedGenreIDs are set for the update form only.
type ComicForm struct {
	Authors          []*Author    `json:"authors"`
	Publishers       []*Publisher `json:"publishers"`
	Genres           []*Genre     `json:"genres"`
	Comic            *Comic       `json:"comic,omitempty"`
	SelectedGenreIDs []int        `json:"selected_genre_ids,omitempty"`
}

// ListComics returns every comic ordered by title.
func (service *Service) ListComics(context context.Context) ([]*Comic, error) {
	return service.store.Comics().List(context)
}

/*
ComicDetail assembles the comic page.

Description: The comic itself is resolved first so a missing id reports
"Comic not found". Its author, publisher, genres and volumes are then fetched
concurrently; the first failure cancels the remaining reads.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *ComicDetail: Fully populated view, never partial
  - error: NOT_FOUND or a storage failure
*/
func (service *Service) ComicDetail(context context.Context, id int) (*ComicDetail, error) {
	comic, err := service.store.Comics().FindByID(context, id)
	if err != nil {
		return nil, err
	}

	detail := &ComicDetail{Comic: comic}
	group, groupContext := errgroup.WithContext(context)

	group.Go(func() (err error) {
		detail.Author, err = service.store.Authors().FindByComic(groupContext, id)
		return err
	})
	group.Go(func() (err error) {
		detail.Publisher, err = service.store.Publishers().FindByComic(groupContext, id)
		return err
	})
	group.Go(func() (err error) {
		detail.Genres, err = service.store.Genres().ListByComic(groupContext, id)
		return err
	})
	group.Go(func() (err error) {
		detail.Volumes, err = service.store.Volumes().ListByComic(groupContext, id)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// ComicForm fetches the authors, publishers and genres offered by the create form.
func (service *Service) ComicForm(context context.Context) (*ComicForm, error) {
	return service.comicForm(context, 0)
}

// ComicUpdateForm is [Service.ComicForm] plus the comic being edited and its genre ids.
func (service *Service) ComicUpdateForm(context context.Context, id int) (*ComicForm, error) {
	return service.comicForm(context, id)
}

func (service *Service) comicForm(context context.Context, comicID int) (*ComicForm, error) {
	form := &ComicForm{}
	group, groupContext := errgroup.WithContext(context)

	group.Go(func() (err error) {
		form.Authors, err = service.store.Authors().List(groupContext)
		return err
	})
	group.Go(func() (err error) {
		form.Publishers, err = service.store.Publishers().List(groupContext)
		return err
	})
	group.Go(func() (err error) {
		form.Genres, err = service.store.Genres().List(groupContext)
		return err
	})
	if comicID > 0 {
		group.Go(func() (err error) {
			form.Comic, err = service.store.Comics().FindByID(groupContext, comicID)
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if form.Comic != nil {
		form.SelectedGenreIDs = form.Comic.GenreIDs
	}
	return form, nil
}

// # Comic Writes

/*
CreateComic registers a comic with its genre set.

Description: A comic with the same title (ignoring case) by the same author is
returned instead of inserting a second one. Otherwise the comic row and its
genre rows are written in one transaction. An empty release date takes the
storage default (now).

Returns:
  - *Comic: The new or the matching comic
  - bool: true when a row was inserted
  - error: VALIDATION_ERROR (including unknown author, publisher or genre ids)
    or a storage failure
*/
func (service *Service) CreateComic(context context.Context, input ComicInput) (*Comic, bool, error) {
	releaseDate, err := input.validate()
	if err != nil {
		return nil, false, err
	}

	var comic *Comic
	created := false

	err = service.store.InTx(context, func(tx Store) error {
		existing, err := tx.Comics().FindByTitleAndAuthor(context, input.Title, input.Author)
		if err = ignoreNotFound(err); err != nil || existing != nil {
			comic = existing
			return err
		}

		if err := checkComicReferences(context, tx, input); err != nil {
			return err
		}

		comic = &Comic{
			Title:       input.Title,
			Summary:     input.Summary,
			ReleaseDate: releaseDate,
			AuthorID:    input.Author,
			PublisherID: input.Publisher,
		}
		created = true
		if err := tx.Comics().Create(context, comic); err != nil {
			return err
		}

		comic.GenreIDs = genreSet(input.Genres)
		if len(comic.GenreIDs) == 0 {
			return nil
		}
		return tx.Comics().ReplaceGenres(context, comic.ID, comic.GenreIDs)
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		service.logger.Info("comic_created",
			slog.Int("comic_id", comic.ID),
			slog.String("title", comic.Title),
			slog.Any("genre_ids", comic.GenreIDs),
		)
	} else {
		service.logger.Debug("comic_create_skipped", slog.Int("comic_id", comic.ID))
	}
	return comic, created, nil
}

/*
UpdateComic overwrites a comic and replaces its genre set.

Description: The stored comic is compared field by field first. The genre sets
are compared ignoring order and repeats, and release dates by calendar day. If
nothing differs no statement is written. Otherwise the row is updated and the
genre set replaced wholesale, both in the same transaction.

An empty release date keeps the stored one.

Returns:
  - *Comic: The stored comic after the call, GenreIDs included
  - bool: true when anything was written
  - error: NOT_FOUND, CONFLICT, VALIDATION_ERROR, or a storage failure
*/
func (service *Service) UpdateComic(context context.Context, id int, input ComicInput) (*Comic, bool, error) {
	releaseDate, err := input.validate()
	if err != nil {
		return nil, false, err
	}

	var comic *Comic
	updated := false

	err = service.store.InTx(context, func(tx Store) error {
		current, err := tx.Comics().FindByID(context, id)
		if err != nil {
			return err
		}

		// Same day keeps the stored clock time.
		if releaseDate.IsZero() || calendar.SameDay(releaseDate, current.ReleaseDate) {
			releaseDate = current.ReleaseDate
		}

		comic = current
		if comicUnchanged(current, input, releaseDate) {
			return nil
		}

		other, err := tx.Comics().FindByTitleAndAuthor(context, input.Title, input.Author)
		if err = ignoreNotFound(err); err != nil {
			return err
		}
		if other != nil && other.ID != id {
			return apperr.Conflict(fmt.Sprintf("A comic titled %q by this author already exists", other.Title))
		}

		if err := checkComicReferences(context, tx, input); err != nil {
			return err
		}

		comic = &Comic{
			ID:          id,
			Title:       input.Title,
			Summary:     input.Summary,
			ReleaseDate: releaseDate,
			AuthorID:    input.Author,
			PublisherID: input.Publisher,
			GenreIDs:    genreSet(input.Genres),
		}
		updated = true
		if err := tx.Comics().Update(context, comic); err != nil {
			return err
		}
		return tx.Comics().ReplaceGenres(context, id, comic.GenreIDs)
	})
	if err != nil {
		return nil, false, err
	}

	if updated {
		service.logger.Info("comic_updated", slog.Int("comic_id", id), slog.Any("genre_ids", comic.GenreIDs))
	} else {
		service.logger.Debug("comic_update_skipped", slog.Int("comic_id", id))
	}
	return comic, updated, nil
}

// DeleteComic removes a comic and its genre rows. CONFLICT while it still has volumes.
func (service *Service) DeleteComic(context context.Context, id int) (*Comic, error) {
	var comic *Comic

	err := service.store.InTx(context, func(tx Store) (err error) {
		if comic, err = tx.Comics().FindByID(context, id); err != nil {
			return err
		}
		return tx.Comics().Delete(context, id)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Warn("comic_deleted", slog.Int("comic_id", id))
	return comic, nil
}

// comicUnchanged reports whether input describes current exactly. releaseDate
// is the already resolved date.
func comicUnchanged(current *Comic, input ComicInput, releaseDate time.Time) bool {
	return current.Title == input.Title &&
		current.Summary == input.Summary &&
		current.AuthorID == input.Author &&
		current.PublisherID == input.Publisher &&
		calendar.SameDay(current.ReleaseDate, releaseDate) &&
		slice.SameSet(current.GenreIDs, input.Genres)
}

// checkComicReferences turns unknown author, publisher or genre ids into field
// errors before the foreign keys would reject them.
func checkComicReferences(context context.Context, tx Store, input ComicInput) error {
	validator := &validate.Validator{}

	missing, err := isMissing(tx.Authors().FindByID(context, input.Author))
	if err != nil {
		return err
	}
	validator.Custom(FieldAuthor, missing, "Author does not exist")

	missing, err = isMissing(tx.Publishers().FindByID(context, input.Publisher))
	if err != nil {
		return err
	}
	validator.Custom(FieldPublisher, missing, "Publisher does not exist")

	for _, genreID := range slice.Unique(input.Genres) {
		missing, err = isMissing(tx.Genres().FindByID(context, genreID))
		if err != nil {
			return err
		}
		validator.Custom(FieldGenres, missing, fmt.Sprintf("Genre %d does not exist", genreID))
	}

	return validator.Err()
}

// isMissing reports NOT_FOUND as true and passes any other error through.
func isMissing(_ any, err error) (bool, error) {
	if apperr.IsNotFound(err) {
		return true, nil
	}
	return false, err
}

// genreSet returns the distinct genre ids in ascending order.
func genreSet(genreIDs []int) []int {
	distinct := slice.Unique(genreIDs)
	if distinct == nil {
		distinct = []int{}
	}
	slices.Sort(distinct)
	return distinct
}
