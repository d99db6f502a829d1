// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/comiking/internal/platform/apperr"
)

// # Service Layer

// Service orchestrates the catalog: duplicate avoidance on writes, genre set
// synchronization, and the multi-entity reads behind every page.
//
// Every multi-step write runs inside [Store.InTx]. Reads that do not depend on
// each other are issued concurrently.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a new [Service] on top of a storage engine.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Ping reports whether the storage engine is reachable.
func (service *Service) Ping(context context.Context) error {
	return service.store.Ping(context)
}

// # Home

// Index holds the record counts shown on the catalog home page.
type Index struct {
	Comics     int `json:"comics"`
	Volumes    int `json:"volumes"`
	Authors    int `json:"authors"`
	Publishers int `json:"publishers"`
	Genres     int `json:"genres"`
}

// Index counts every entity kind concurrently.
func (service *Service) Index(context context.Context) (*Index, error) {
	index := &Index{}
	group, groupContext := errgroup.WithContext(context)

	group.Go(func() (err error) {
		index.Comics, err = service.store.Comics().Count(groupContext)
		return err
	})
	group.Go(func() (err error) {
		index.Volumes, err = service.store.Volumes().Count(groupContext)
		return err
	})
	group.Go(func() (err error) {
		index.Authors, err = service.store.Authors().Count(groupContext)
		return err
	})
	group.Go(func() (err error) {
		index.Publishers, err = service.store.Publishers().Count(groupContext)
		return err
	})
	group.Go(func() (err error) {
		index.Genres, err = service.store.Genres().Count(groupContext)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return index, nil
}

// # Helpers

// ignoreNotFound clears NOT_FOUND so duplicate checks read as a plain
// "is there one already". Lookups return a nil entity alongside any error.
func ignoreNotFound(err error) error {
	if apperr.IsNotFound(err) {
		return nil
	}
	return err
}
