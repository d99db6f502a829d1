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

// AuthorDetail is an author with the comics they wrote.
type AuthorDetail struct {
	Author *Author  `json:"author"`
	Comics []*Comic `json:"comics"`
}

// ListAuthors returns every author ordered by first name, then last name.
func (service *Service) ListAuthors(context context.Context) ([]*Author, error) {
	return service.store.Authors().List(context)
}

// AuthorDetail fetches an author and their comics concurrently.
func (service *Service) AuthorDetail(context context.Context, id int) (*AuthorDetail, error) {
	detail := &AuthorDetail{}
	group, groupContext := errgroup.WithContext(context)

	group.Go(func() (err error) {
		detail.Author, err = service.store.Authors().FindByID(groupContext, id)
		return err
	})
	group.Go(func() (err error) {
		detail.Comics, err = service.store.Comics().ListByAuthor(groupContext, id)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

/*
CreateAuthor registers an author unless one with the same first and last name
exists (ignoring case).

Returns:
  - *Author: The new or the matching author, Name filled in
  - bool: true when a row was inserted
  - error: VALIDATION_ERROR or a storage failure
*/
func (service *Service) CreateAuthor(context context.Context, input AuthorInput) (*Author, bool, error) {
	if err := input.validate(); err != nil {
		return nil, false, err
	}

	var author *Author
	created := false

	err := service.store.InTx(context, func(tx Store) error {
		existing, err := tx.Authors().FindByName(context, input.FirstName, input.LastName)
		if err = ignoreNotFound(err); err != nil || existing != nil {
			author = existing
			return err
		}

		author = &Author{FirstName: input.FirstName, LastName: input.LastName}
		created = true
		return tx.Authors().Create(context, author)
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		service.logger.Info("author_created", slog.Int("author_id", author.ID), slog.String("name", author.Name))
	} else {
		service.logger.Debug("author_create_skipped", slog.Int("author_id", author.ID))
	}
	return author, created, nil
}

// UpdateAuthor overwrites both name parts. Unchanged parts issue no write; a
// name held by another author is a CONFLICT.
func (service *Service) UpdateAuthor(context context.Context, id int, input AuthorInput) (*Author, bool, error) {
	if err := input.validate(); err != nil {
		return nil, false, err
	}

	var author *Author
	updated := false

	err := service.store.InTx(context, func(tx Store) error {
		current, err := tx.Authors().FindByID(context, id)
		if err != nil {
			return err
		}

		author = current
		if current.FirstName == input.FirstName && current.LastName == input.LastName {
			return nil
		}

		other, err := tx.Authors().FindByName(context, input.FirstName, input.LastName)
		if err = ignoreNotFound(err); err != nil {
			return err
		}
		if other != nil && other.ID != id {
			return apperr.Conflict(fmt.Sprintf("An author named %q already exists", other.Name))
		}

		author = &Author{ID: id, FirstName: input.FirstName, LastName: input.LastName}
		updated = true
		return tx.Authors().Update(context, author)
	})
	if err != nil {
		return nil, false, err
	}

	if updated {
		service.logger.Info("author_updated", slog.Int("author_id", id))
	} else {
		service.logger.Debug("author_update_skipped", slog.Int("author_id", id))
	}
	return author, updated, nil
}

// DeleteAuthor removes an author. CONFLICT while any comic references it.
func (service *Service) DeleteAuthor(context context.Context, id int) (*Author, error) {
	var author *Author

	err := service.store.InTx(context, func(tx Store) (err error) {
		if author, err = tx.Authors().FindByID(context, id); err != nil {
			return err
		}
		return tx.Authors().Delete(context, id)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Warn("author_deleted", slog.Int("author_id", id))
	return author, nil
}
