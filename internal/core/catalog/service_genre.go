// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/comiking/internal/platform/apperr"
)

// # Genre Lookups

// GenreDetail is a genre with the comics filed under it.
type GenreDetail struct {
	Genre  *Genre   `json:"genre"`
	Comics []*Comic `json:"comics"`
}

// ListGenres returns every genre ordered by name.
func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	return service.store.Genres().List(context)
}

// GenreDetail fetches a genre and its comics concurrently.
func (service *Service) GenreDetail(context context.Context, id int) (*GenreDetail, error) {
	detail := &GenreDetail{}
	group, groupContext := errgroup.WithContext(context)

	group.Go(func() (err error) {
		detail.Genre, err = service.store.Genres().FindByID(groupContext, id)
		return err
	})
	group.Go(func() (err error) {
		detail.Comics, err = service.store.Comics().ListByGenre(groupContext, id)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// # Genre Writes

/*
CreateGenre registers a genre unless one with the same name exists.

Description: Names are compared case-insensitively. When a match is found the
stored genre is returned and nothing is written, so resubmitting the form lands
on the existing record.

Parameters:
  - context: context.Context
  - input: GenreInput

Returns:
  - *Genre: The new or the matching genre
  - bool: true when a row was inserted
  - error: VALIDATION_ERROR or a storage failure
*/
func (service *Service) CreateGenre(context context.Context, input GenreInput) (*Genre, bool, error) {
	if err := input.validate(); err != nil {
		return nil, false, err
	}

	var genre *Genre
	created := false

	err := service.store.InTx(context, func(tx Store) error {
		existing, err := tx.Genres().FindByName(context, input.Name)
		if err = ignoreNotFound(err); err != nil || existing != nil {
			genre = existing
			return err
		}

		genre = &Genre{Name: input.Name}
		created = true
		return tx.Genres().Create(context, genre)
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		service.logger.Info("genre_created", slog.Int("genre_id", genre.ID), slog.String("name", genre.Name))
	} else {
		service.logger.Debug("genre_create_skipped", slog.Int("genre_id", genre.ID))
	}
	return genre, created, nil
}

/*
UpdateGenre renames a genre.

Description: An unchanged name issues no write. A name already held by another
genre (ignoring case) is rejected with CONFLICT.

Returns:
  - *Genre: The stored genre after the call
  - bool: true when the row was written
  - error: NOT_FOUND, CONFLICT, VALIDATION_ERROR, or a storage failure
*/
func (service *Service) UpdateGenre(context context.Context, id int, input GenreInput) (*Genre, bool, error) {
	if err := input.validate(); err != nil {
		return nil, false, err
	}

	var genre *Genre
	updated := false

	err := service.store.InTx(context, func(tx Store) error {
		current, err := tx.Genres().FindByID(context, id)
		if err != nil {
			return err
		}

		genre = current
		if current.Name == input.Name {
			return nil
		}

		other, err := tx.Genres().FindByName(context, input.Name)
		if err = ignoreNotFound(err); err != nil {
			return err
		}
		if other != nil && other.ID != id {
			return apperr.Conflict(fmt.Sprintf("A genre named %q already exists", other.Name))
		}

		genre = &Genre{ID: id, Name: input.Name}
		updated = true
		return tx.Genres().Update(context, genre)
	})
	if err != nil {
		return nil, false, err
	}

	if updated {
		service.logger.Info("genre_updated", slog.Int("genre_id", id))
	} else {
		service.logger.Debug("genre_update_skipped", slog.Int("genre_id", id))
	}
	return genre, updated, nil
}

// DeleteGenre removes a genre. Its comic associations are dropped with it.
func (service *Service) DeleteGenre(context context.Context, id int) (*Genre, error) {
	var genre *Genre

	err := service.store.InTx(context, func(tx Store) (err error) {
		if genre, err = tx.Genres().FindByID(context, id); err != nil {
			return err
		}
		return tx.Genres().Delete(context, id)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Warn("genre_deleted", slog.Int("genre_id", id))
	return genre, nil
}
