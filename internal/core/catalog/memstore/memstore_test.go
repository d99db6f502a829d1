// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/comiking/internal/core/catalog"
	"github.com/taibuivan/comiking/internal/core/catalog/memstore"
	"github.com/taibuivan/comiking/internal/platform/apperr"
)

var errAbort = errors.New("abort")

func seedComic(t *testing.T, store catalog.Store) *catalog.Comic {
	t.Helper()
	ctx := context.Background()

	author := &catalog.Author{FirstName: "Tite", LastName: "Kubo"}
	require.NoError(t, store.Authors().Create(ctx, author))

	publisher := &catalog.Publisher{Name: "Shueisha"}
	require.NoError(t, store.Publishers().Create(ctx, publisher))

	comic := &catalog.Comic{Title: "Bleach", Summary: "Soul reapers.", AuthorID: author.ID, PublisherID: publisher.ID}
	require.NoError(t, store.Comics().Create(ctx, comic))
	return comic
}

func TestCreate_GeneratesDerivedColumns(t *testing.T) {
	store := memstore.New().Store()
	comic := seedComic(t, store)
	ctx := context.Background()

	assert.Equal(t, 1, comic.ID)
	assert.Equal(t, "/catalog/comic/1", comic.URL)
	assert.False(t, comic.ReleaseDate.IsZero())

	author, err := store.Authors().FindByComic(ctx, comic.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tite Kubo", author.Name)
	assert.Equal(t, catalog.AuthorURL(author.ID), author.URL)
}

func TestInTx_RollbackDiscardsWrites(t *testing.T) {
	engine := memstore.New()
	store := engine.Store()
	ctx := context.Background()

	err := store.InTx(ctx, func(tx catalog.Store) error {
		require.NoError(t, tx.Genres().Create(ctx, &catalog.Genre{Name: "Action"}))

		// Visible inside the transaction.
		total, err := tx.Genres().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	total, err := store.Genres().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	genre := &catalog.Genre{Name: "Action"}
	require.NoError(t, store.Genres().Create(ctx, genre))
	assert.Equal(t, 2, genre.ID, "sequences are not rolled back")
}

func TestInTx_NestedSavepoint(t *testing.T) {
	store := memstore.New().Store()
	ctx := context.Background()

	err := store.InTx(ctx, func(tx catalog.Store) error {
		require.NoError(t, tx.Genres().Create(ctx, &catalog.Genre{Name: "Action"}))

		nested := tx.InTx(ctx, func(inner catalog.Store) error {
			require.NoError(t, inner.Genres().Create(ctx, &catalog.Genre{Name: "Drama"}))
			return errAbort
		})
		assert.ErrorIs(t, nested, errAbort)
		return nil
	})
	require.NoError(t, err)

	genres, err := store.Genres().List(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Action", genres[0].Name)
}

func TestWrite_FailedStatementIsAtomic(t *testing.T) {
	store := memstore.New().Store()
	comic := seedComic(t, store)
	ctx := context.Background()

	genre := &catalog.Genre{Name: "Action"}
	require.NoError(t, store.Genres().Create(ctx, genre))

	err := store.Comics().ReplaceGenres(ctx, comic.ID, []int{genre.ID, 42})
	assert.True(t, apperr.IsConflict(err))

	stored, err := store.Comics().FindByID(ctx, comic.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.GenreIDs)
}

func TestConstraints(t *testing.T) {
	ctx := context.Background()

	t.Run("unique genre name ignores case", func(t *testing.T) {
		store := memstore.New().Store()
		require.NoError(t, store.Genres().Create(ctx, &catalog.Genre{Name: "Action"}))

		err := store.Genres().Create(ctx, &catalog.Genre{Name: "ACTION"})
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("name too long", func(t *testing.T) {
		store := memstore.New().Store()

		err := store.Genres().Create(ctx, &catalog.Genre{Name: "A genre name that is far too long"})
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})

	t.Run("unique volume number per comic", func(t *testing.T) {
		store := memstore.New().Store()
		comic := seedComic(t, store)

		require.NoError(t, store.Volumes().Create(ctx, &catalog.Volume{ComicID: comic.ID, Number: 1, Title: "The Death and the Strawberry"}))
		err := store.Volumes().Create(ctx, &catalog.Volume{ComicID: comic.ID, Number: 1, Title: "Goodbye Parakeet"})
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("comic references unknown author", func(t *testing.T) {
		store := memstore.New().Store()

		err := store.Comics().Create(ctx, &catalog.Comic{Title: "Orphan", Summary: "None.", AuthorID: 9, PublisherID: 9})
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("publisher restricted by comic", func(t *testing.T) {
		store := memstore.New().Store()
		comic := seedComic(t, store)

		err := store.Publishers().Delete(ctx, comic.PublisherID)
		assert.True(t, apperr.IsConflict(err))
	})
}

func TestDeleteGenre_CascadesAssociation(t *testing.T) {
	store := memstore.New().Store()
	comic := seedComic(t, store)
	ctx := context.Background()

	action := &catalog.Genre{Name: "Action"}
	drama := &catalog.Genre{Name: "Drama"}
	require.NoError(t, store.Genres().Create(ctx, action))
	require.NoError(t, store.Genres().Create(ctx, drama))
	require.NoError(t, store.Comics().ReplaceGenres(ctx, comic.ID, []int{drama.ID, action.ID, drama.ID}))

	require.NoError(t, store.Genres().Delete(ctx, action.ID))

	stored, err := store.Comics().FindByID(ctx, comic.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{drama.ID}, stored.GenreIDs)
}

func TestVolumes_MaxNumber(t *testing.T) {
	store := memstore.New().Store()
	comic := seedComic(t, store)
	ctx := context.Background()

	_, ok, err := store.Volumes().MaxNumber(ctx, comic.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	for _, number := range []int{3, 0, 5} {
		require.NoError(t, store.Volumes().Create(ctx, &catalog.Volume{ComicID: comic.ID, Number: number, Title: "Volume"}))
	}

	number, ok, err := store.Volumes().MaxNumber(ctx, comic.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, number)
}

func TestWrites_CountsStatements(t *testing.T) {
	engine := memstore.New()
	store := engine.Store()
	ctx := context.Background()

	_, _ = store.Genres().List(ctx)
	assert.Zero(t, engine.Writes())

	require.NoError(t, store.Genres().Create(ctx, &catalog.Genre{Name: "Action"}))
	assert.Equal(t, int64(1), engine.Writes())
}

func TestCancelledContext_Unavailable(t *testing.T) {
	store := memstore.New().Store()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Genres().List(ctx)
	assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable))
	assert.ErrorIs(t, err, context.Canceled)

	assert.True(t, apperr.HasCode(store.Ping(ctx), apperr.CodeServiceUnavailable))
}

func TestConcurrentAccess(t *testing.T) {
	store := memstore.New().Store()
	comic := seedComic(t, store)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var group sync.WaitGroup
	for i := range 20 {
		group.Add(1)
		go func() {
			defer group.Done()
			if i%2 == 0 {
				_, _ = store.Comics().FindByID(ctx, comic.ID)
				return
			}
			_ = store.InTx(ctx, func(tx catalog.Store) error {
				return tx.Volumes().Create(ctx, &catalog.Volume{ComicID: comic.ID, Number: i, Title: "Volume"})
			})
		}()
	}
	group.Wait()

	total, err := store.Volumes().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, total)
}
