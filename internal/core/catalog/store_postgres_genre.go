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
)

// genreRepository implements the [GenreRepository] interface using pgx.
type genreRepository struct {
	db postgres.DBTX
}

var genreColumns = schema.Select("g", schema.CatalogGenre.Columns())

func scanGenre(row pgx.CollectableRow) (*Genre, error) {
	genre := &Genre{}
	err := row.Scan(&genre.ID, &genre.Name, &genre.URL)
	return genre, err
}

func (repository *genreRepository) List(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s g ORDER BY g.%s, g.%s`,
		genreColumns, schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.ID)

	rows, err := repository.db.Query(context, query)
	return collect(rows, err, ResourceGenre, scanGenre)
}

func (repository *genreRepository) Count(context context.Context) (int, error) {
	return count(context, repository.db, schema.CatalogGenre.Table, ResourceGenre)
}

func (repository *genreRepository) FindByID(context context.Context, id int) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s g WHERE g.%s = $1`,
		genreColumns, schema.CatalogGenre.Table, schema.CatalogGenre.ID)

	return repository.findOne(context, query, id)
}

/*
FindByName resolves a genre by name, ignoring case.

Description: Compares lower(name) = lower($1) instead of ILIKE so that a name
holding '%' or '_' is matched literally. The expression is backed by the unique
index on lower(name).
*/
func (repository *genreRepository) FindByName(context context.Context, name string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s g WHERE lower(g.%s) = lower($1)`,
		genreColumns, schema.CatalogGenre.Table, schema.CatalogGenre.Name)

	return repository.findOne(context, query, name)
}

func (repository *genreRepository) ListByComic(context context.Context, comicID int) ([]*Genre, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s g
		JOIN %s cg ON cg.%s = g.%s
		WHERE cg.%s = $1
		ORDER BY g.%s`,
		genreColumns,
		schema.CatalogGenre.Table,
		schema.CatalogComicGenre.Table, schema.CatalogComicGenre.GenreID, schema.CatalogGenre.ID,
		schema.CatalogComicGenre.ComicID,
		schema.CatalogGenre.Name,
	)

	rows, err := repository.db.Query(context, query, comicID)
	return collect(rows, err, ResourceGenre, scanGenre)
}

func (repository *genreRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s, %s`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name,
		schema.CatalogGenre.ID, schema.CatalogGenre.URL)

	if err := repository.db.QueryRow(context, query, genre.Name).Scan(&genre.ID, &genre.URL); err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: insert genre: %w", err), ResourceGenre)
	}
	return nil
}

func (repository *genreRepository) Update(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1 RETURNING %s`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name,
		schema.CatalogGenre.ID, schema.CatalogGenre.URL)

	if err := repository.db.QueryRow(context, query, genre.ID, genre.Name).Scan(&genre.URL); err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: update genre: %w", err), ResourceGenre)
	}
	return nil
}

func (repository *genreRepository) Delete(context context.Context, id int) error {
	return deleteByID(context, repository.db, schema.CatalogGenre.Table, schema.CatalogGenre.ID, ResourceGenre, id)
}

func (repository *genreRepository) findOne(context context.Context, query string, args ...any) (*Genre, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, ResourceGenre)
	}

	genre, err := pgx.CollectExactlyOneRow(rows, scanGenre)
	if err != nil {
		return nil, dberr.Wrap(err, ResourceGenre)
	}
	return genre, nil
}
