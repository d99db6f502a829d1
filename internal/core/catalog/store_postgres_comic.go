// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/comiking/internal/platform/database/schema"
	"github.com/taibuivan/comiking/internal/platform/dberr"
	"github.com/taibuivan/comiking/internal/platform/postgres"
	"github.com/taibuivan/comiking/pkg/slice"
)

// comicRepository implements the [ComicRepository] interface using pgx.
type comicRepository struct {
	db postgres.DBTX
}

var comicColumns = schema.Select("c", schema.CatalogComic.Columns())

func scanComic(row pgx.CollectableRow) (*Comic, error) {
	comic := &Comic{}
	err := row.Scan(
		&comic.ID, &comic.Title, &comic.Summary, &comic.ReleaseDate,
		&comic.AuthorID, &comic.PublisherID, &comic.URL,
	)
	return comic, err
}

func (repository *comicRepository) List(context context.Context) ([]*Comic, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s c ORDER BY c.%s, c.%s`,
		comicColumns, schema.CatalogComic.Table, schema.CatalogComic.Title, schema.CatalogComic.ID)

	rows, err := repository.db.Query(context, query)
	return collect(rows, err, ResourceComic, scanComic)
}

func (repository *comicRepository) Count(context context.Context) (int, error) {
	return count(context, repository.db, schema.CatalogComic.Table, ResourceComic)
}

/*
FindByID retrieves a comic together with its genre id set.

Description: The genre ids are folded into the same round-trip with an ARRAY
subquery over the association table, ordered by id.
*/
func (repository *comicRepository) FindByID(context context.Context, id int) (*Comic, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			ARRAY(SELECT cg.%s FROM %s cg WHERE cg.%s = c.%s ORDER BY cg.%s)
		FROM %s c
		WHERE c.%s = $1`,
		comicColumns,
		schema.CatalogComicGenre.GenreID, schema.CatalogComicGenre.Table,
		schema.CatalogComicGenre.ComicID, schema.CatalogComic.ID, schema.CatalogComicGenre.GenreID,
		schema.CatalogComic.Table,
		schema.CatalogComic.ID,
	)

	comic := &Comic{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&comic.ID, &comic.Title, &comic.Summary, &comic.ReleaseDate,
		&comic.AuthorID, &comic.PublisherID, &comic.URL, &comic.GenreIDs,
	)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: find comic %d: %w", id, err), ResourceComic)
	}
	return comic, nil
}

func (repository *comicRepository) FindByTitleAndAuthor(context context.Context, title string, authorID int) (*Comic, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s c
		WHERE lower(c.%s) = lower($1) AND c.%s = $2
		ORDER BY c.%s
		LIMIT 1`,
		comicColumns, schema.CatalogComic.Table,
		schema.CatalogComic.Title, schema.CatalogComic.AuthorID,
		schema.CatalogComic.ID,
	)

	rows, err := repository.db.Query(context, query, title, authorID)
	if err != nil {
		return nil, dberr.Wrap(err, ResourceComic)
	}

	comic, err := pgx.CollectExactlyOneRow(rows, scanComic)
	if err != nil {
		return nil, dberr.Wrap(err, ResourceComic)
	}
	return comic, nil
}

func (repository *comicRepository) ListByGenre(context context.Context, genreID int) ([]*Comic, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s c
		JOIN %s cg ON cg.%s = c.%s
		WHERE cg.%s = $1
		ORDER BY c.%s, c.%s`,
		comicColumns,
		schema.CatalogComic.Table,
		schema.CatalogComicGenre.Table, schema.CatalogComicGenre.ComicID, schema.CatalogComic.ID,
		schema.CatalogComicGenre.GenreID,
		schema.CatalogComic.Title, schema.CatalogComic.ID,
	)

	rows, err := repository.db.Query(context, query, genreID)
	return collect(rows, err, ResourceComic, scanComic)
}

func (repository *comicRepository) ListByAuthor(context context.Context, authorID int) ([]*Comic, error) {
	return repository.listWhere(context, schema.CatalogComic.AuthorID, authorID)
}

func (repository *comicRepository) ListByPublisher(context context.Context, publisherID int) ([]*Comic, error) {
	return repository.listWhere(context, schema.CatalogComic.PublisherID, publisherID)
}

func (repository *comicRepository) listWhere(context context.Context, column string, id int) ([]*Comic, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s c WHERE c.%s = $1 ORDER BY c.%s, c.%s`,
		comicColumns, schema.CatalogComic.Table, column,
		schema.CatalogComic.Title, schema.CatalogComic.ID)

	rows, err := repository.db.Query(context, query, id)
	return collect(rows, err, ResourceComic, scanComic)
}

func (repository *comicRepository) Create(context context.Context, comic *Comic) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, COALESCE($3::timestamp, CURRENT_TIMESTAMP), $4, $5)
		RETURNING %s, %s, %s`,
		schema.CatalogComic.Table,
		schema.CatalogComic.Title, schema.CatalogComic.Summary, schema.CatalogComic.ReleaseDate,
		schema.CatalogComic.AuthorID, schema.CatalogComic.PublisherID,
		schema.CatalogComic.ID, schema.CatalogComic.ReleaseDate, schema.CatalogComic.URL,
	)

	err := repository.db.QueryRow(context, query,
		comic.Title, comic.Summary, nullableTime(comic.ReleaseDate), comic.AuthorID, comic.PublisherID,
	).Scan(&comic.ID, &comic.ReleaseDate, &comic.URL)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: insert comic: %w", err), ResourceComic)
	}
	return nil
}

func (repository *comicRepository) Update(context context.Context, comic *Comic) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1
		RETURNING %s`,
		schema.CatalogComic.Table,
		schema.CatalogComic.Title, schema.CatalogComic.Summary, schema.CatalogComic.ReleaseDate,
		schema.CatalogComic.AuthorID, schema.CatalogComic.PublisherID,
		schema.CatalogComic.ID,
		schema.CatalogComic.URL,
	)

	err := repository.db.QueryRow(context, query,
		comic.ID, comic.Title, comic.Summary, comic.ReleaseDate, comic.AuthorID, comic.PublisherID,
	).Scan(&comic.URL)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: update comic: %w", err), ResourceComic)
	}
	return nil
}

/*
ReplaceGenres rewrites the genre set of a comic.

Description: Clears the association rows of the comic, then queues one INSERT
per distinct genre id on a single [pgx.Batch]. An empty set leaves the comic
without genres. A genre id that does not exist fails the batch with CONFLICT.

Parameters:
  - context: context.Context
  - comicID: int
  - genreIDs: []int (duplicates are ignored)

Returns:
  - error: Storage failure
*/
func (repository *comicRepository) ReplaceGenres(context context.Context, comicID int, genreIDs []int) error {
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogComicGenre.Table, schema.CatalogComicGenre.ComicID)
	if _, err := repository.db.Exec(context, deleteQuery, comicID); err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: clear comic genres: %w", err), ResourceComic)
	}

	distinct := slice.Unique(genreIDs)
	if len(distinct) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.CatalogComicGenre.Table, schema.CatalogComicGenre.ComicID, schema.CatalogComicGenre.GenreID)

	batch := &pgx.Batch{}
	for _, genreID := range distinct {
		batch.Queue(insertQuery, comicID, genreID)
	}

	results := repository.db.SendBatch(context, batch)
	if err := results.Close(); err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: insert comic genres: %w", err), ResourceComic)
	}
	return nil
}

func (repository *comicRepository) Delete(context context.Context, id int) error {
	return deleteByID(context, repository.db, schema.CatalogComic.Table, schema.CatalogComic.ID, ResourceComic, id)
}
