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

// authorRepository implements the [AuthorRepository] interface using pgx.
type authorRepository struct {
	db postgres.DBTX
}

var authorColumns = schema.Select("a", schema.CatalogAuthor.Columns())

func scanAuthor(row pgx.CollectableRow) (*Author, error) {
	author := &Author{}
	err := row.Scan(&author.ID, &author.FirstName, &author.LastName, &author.Name, &author.URL)
	return author, err
}

func (repository *authorRepository) List(context context.Context) ([]*Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s a ORDER BY a.%s, a.%s, a.%s`,
		authorColumns, schema.CatalogAuthor.Table,
		schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName, schema.CatalogAuthor.ID)

	rows, err := repository.db.Query(context, query)
	return collect(rows, err, ResourceAuthor, scanAuthor)
}

func (repository *authorRepository) Count(context context.Context) (int, error) {
	return count(context, repository.db, schema.CatalogAuthor.Table, ResourceAuthor)
}

func (repository *authorRepository) FindByID(context context.Context, id int) (*Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s a WHERE a.%s = $1`,
		authorColumns, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID)

	return repository.findOne(context, query, id)
}

func (repository *authorRepository) FindByName(context context.Context, firstName, lastName string) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s a
		WHERE lower(a.%s) = lower($1) AND lower(a.%s) = lower($2)
		ORDER BY a.%s
		LIMIT 1`,
		authorColumns, schema.CatalogAuthor.Table,
		schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
		schema.CatalogAuthor.ID,
	)

	return repository.findOne(context, query, firstName, lastName)
}

func (repository *authorRepository) FindByComic(context context.Context, comicID int) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		JOIN %s c ON c.%s = a.%s
		WHERE c.%s = $1`,
		authorColumns,
		schema.CatalogAuthor.Table,
		schema.CatalogComic.Table, schema.CatalogComic.AuthorID, schema.CatalogAuthor.ID,
		schema.CatalogComic.ID,
	)

	return repository.findOne(context, query, comicID)
}

func (repository *authorRepository) Create(context context.Context, author *Author) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s, %s, %s`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name, schema.CatalogAuthor.URL)

	err := repository.db.QueryRow(context, query, author.FirstName, author.LastName).
		Scan(&author.ID, &author.Name, &author.URL)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: insert author: %w", err), ResourceAuthor)
	}
	return nil
}

func (repository *authorRepository) Update(context context.Context, author *Author) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1 RETURNING %s, %s`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name, schema.CatalogAuthor.URL)

	err := repository.db.QueryRow(context, query, author.ID, author.FirstName, author.LastName).
		Scan(&author.Name, &author.URL)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: update author: %w", err), ResourceAuthor)
	}
	return nil
}

func (repository *authorRepository) Delete(context context.Context, id int) error {
	return deleteByID(context, repository.db, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, ResourceAuthor, id)
}

func (repository *authorRepository) findOne(context context.Context, query string, args ...any) (*Author, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, ResourceAuthor)
	}

	author, err := pgx.CollectExactlyOneRow(rows, scanAuthor)
	if err != nil {
		return nil, dberr.Wrap(err, ResourceAuthor)
	}
	return author, nil
}
