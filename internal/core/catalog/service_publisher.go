// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/comiking/internal/platform/apperr"
	"github.com/taibuivan/comiking/pkg/pointer"
)

// PublisherDetail is a publisher with the comics it released.
type PublisherDetail struct {
	Publisher *Publisher `json:"publisher"`
	Comics    []*Comic   `json:"comics"`
}

// ListPublishers returns every publisher ordered by name.
func (service *Service) ListPublishers(context context.Context) ([]*Publisher, error) {
	return service.store.Publishers().List(context)
}

// PublisherDetail fetches a publisher and its comics concurrently.
func (service *Service) PublisherDetail(context context.Context, id int) (*PublisherDetail, error) {
	detail := &PublisherDetail{}
	group, groupContext := errgroup.WithContext(context)

	group.Go(func() (err error) {
		detail.Publisher, err = service.store.Publishers().FindByID(groupContext, id)
		return err
	})
	group.Go(func() (err error) {
		detail.Comics, err = service.store.Comics().ListByPublisher(groupContext, id)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// CreatePublisher registers a publisher unless one with the same name exists.
// The bool result is true when a row was inserted.
func (service *Service) CreatePublisher(context context.Context, input PublisherInput) (*Publisher, bool, error) {
	if err := input.validate(); err != nil {
		return nil, false, err
	}

	var publisher *Publisher
	created := false

	err := service.store.InTx(context, func(tx Store) error {
		existing, err := tx.Publishers().FindByName(context, input.Name)
		if err = ignoreNotFound(err); err != nil || existing != nil {
			publisher = existing
			return err
		}

		publisher = &Publisher{Name: input.Name, Headquarters: input.headquarters()}
		created = true
		return tx.Publishers().Create(context, publisher)
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		service.logger.Info("publisher_created", slog.Int("publisher_id", publisher.ID), slog.String("name", publisher.Name))
	} else {
		service.logger.Debug("publisher_create_skipped", slog.Int("publisher_id", publisher.ID))
	}
	return publisher, created, nil
}

// UpdatePublisher overwrites the name and headquarters of a publisher. Nothing
// is written when both are unchanged; a name held by another publisher is a CONFLICT.
func (service *Service) UpdatePublisher(context context.Context, id int, input PublisherInput) (*Publisher, bool, error) {
	if err := input.validate(); err != nil {
		return nil, false, err
	}

	var publisher *Publisher
	updated := false

	err := service.store.InTx(context, func(tx Store) error {
		current, err := tx.Publishers().FindByID(context, id)
		if err != nil {
			return err
		}

		publisher = current
		headquarters := input.headquarters()
		if current.Name == input.Name && pointer.Equal(current.Headquarters, headquarters) {
			return nil
		}

		other, err := tx.Publishers().FindByName(context, input.Name)
		if err = ignoreNotFound(err); err != nil {
			return err
		}
		if other != nil && other.ID != id {
			return apperr.Conflict(fmt.Sprintf("A publisher named %q already exists", other.Name))
		}

		publisher = &Publisher{ID: id, Name: input.Name, Headquarters: headquarters}
		updated = true
		return tx.Publishers().Update(context, publisher)
	})
	if err != nil {
		return nil, false, err
	}

	if updated {
		service.logger.Info("publisher_updated", slog.Int("publisher_id", id))
	} else {
		service.logger.Debug("publisher_update_skipped", slog.Int("publisher_id", id))
	}
	return publisher, updated, nil
}

// DeletePublisher removes a publisher. CONFLICT while any comic references it.
func (service *Service) DeletePublisher(context context.Context, id int) (*Publisher, error) {
	var publisher *Publisher

	err := service.store.InTx(context, func(tx Store) (err error) {
		if publisher, err = tx.Publishers().FindByID(context, id); err != nil {
			return err
		}
		return tx.Publishers().Delete(context, id)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Warn("publisher_deleted", slog.Int("publisher_id", id))
	return publisher, nil
}
