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

// publisherRepository implements the [PublisherRepository] interface using pgx.
type publisherRepository struct {
	db postgres.DBTX
}

var publisherColumns = schema.Select("p", schema.CatalogPublisher.Columns())

func scanPublisher(row pgx.CollectableRow) (*Publisher, error) {
	publisher := &Publisher{}
	err := row.Scan(&publisher.ID, &publisher.Name, &publisher.Headquarters, &publisher.URL)
	return publisher, err
}

func (repository *publisherRepository) List(context context.Context) ([]*Publisher, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s p ORDER BY p.%s, p.%s`,
		publisherColumns, schema.CatalogPublisher.Table, schema.CatalogPublisher.Name, schema.CatalogPublisher.ID)

	rows, err := repository.db.Query(context, query)
	return collect(rows, err, ResourcePublisher, scanPublisher)
}

func (repository *publisherRepository) Count(context context.Context) (int, error) {
	return count(context, repository.db, schema.CatalogPublisher.Table, ResourcePublisher)
}

func (repository *publisherRepository) FindByID(context context.Context, id int) (*Publisher, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s p WHERE p.%s = $1`,
		publisherColumns, schema.CatalogPublisher.Table, schema.CatalogPublisher.ID)

	return repository.findOne(context, query, id)
}

func (repository *publisherRepository) FindByName(context context.Context, name string) (*Publisher, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s p WHERE lower(p.%s) = lower($1)`,
		publisherColumns, schema.CatalogPublisher.Table, schema.CatalogPublisher.Name)

	return repository.findOne(context, query, name)
}

func (repository *publisherRepository) FindByComic(context context.Context, comicID int) (*Publisher, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		JOIN %s c ON c.%s = p.%s
		WHERE c.%s = $1`,
		publisherColumns,
		schema.CatalogPublisher.Table,
		schema.CatalogComic.Table, schema.CatalogComic.PublisherID, schema.CatalogPublisher.ID,
		schema.CatalogComic.ID,
	)

	return repository.findOne(context, query, comicID)
}

func (repository *publisherRepository) Create(context context.Context, publisher *Publisher) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s, %s`,
		schema.CatalogPublisher.Table, schema.CatalogPublisher.Name, schema.CatalogPublisher.Headquarters,
		schema.CatalogPublisher.ID, schema.CatalogPublisher.URL)

	err := repository.db.QueryRow(context, query, publisher.Name, publisher.Headquarters).
		Scan(&publisher.ID, &publisher.URL)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: insert publisher: %w", err), ResourcePublisher)
	}
	return nil
}

func (repository *publisherRepository) Update(context context.Context, publisher *Publisher) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1 RETURNING %s`,
		schema.CatalogPublisher.Table, schema.CatalogPublisher.Name, schema.CatalogPublisher.Headquarters,
		schema.CatalogPublisher.ID, schema.CatalogPublisher.URL)

	err := repository.db.QueryRow(context, query, publisher.ID, publisher.Name, publisher.Headquarters).
		Scan(&publisher.URL)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: update publisher: %w", err), ResourcePublisher)
	}
	return nil
}

func (repository *publisherRepository) Delete(context context.Context, id int) error {
	return deleteByID(context, repository.db, schema.CatalogPublisher.Table, schema.CatalogPublisher.ID, ResourcePublisher, id)
}

func (repository *publisherRepository) findOne(context context.Context, query string, args ...any) (*Publisher, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, ResourcePublisher)
	}

	publisher, err := pgx.CollectExactlyOneRow(rows, scanPublisher)
	if err != nil {
		return nil, dberr.Wrap(err, ResourcePublisher)
	}
	return publisher, nil
}
