// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog provides the PostgreSQL implementation of the catalog data access.

It relies on a few PostgreSQL features the schema was designed around:
  - Generated Columns: url and the author's full name are computed by the engine.
  - RETURNING: every insert hands back its generated id in the same round-trip.
  - Restrict Foreign Keys: deletes of referenced rows fail and surface as CONFLICT.
  - Batches: the comic genre set is rewritten in a single pipelined batch.

All repositories run on a [postgres.DBTX], so the same SQL serves the pool and
an open transaction.
*/
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/comiking/internal/platform/dberr"
	"github.com/taibuivan/comiking/internal/platform/postgres"
)

// # PostgreSQL Store

// postgresStore implements [Store] on a pool or a transaction.
type postgresStore struct {
	db postgres.DBTX
}

// NewPostgresStore constructs a PostgreSQL backed catalog store.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{db: pool}
}

func (store *postgresStore) Genres() GenreRepository         { return &genreRepository{db: store.db} }
func (store *postgresStore) Publishers() PublisherRepository { return &publisherRepository{db: store.db} }
func (store *postgresStore) Authors() AuthorRepository       { return &authorRepository{db: store.db} }
func (store *postgresStore) Comics() ComicRepository         { return &comicRepository{db: store.db} }
func (store *postgresStore) Volumes() VolumeRepository       { return &volumeRepository{db: store.db} }

// InTx implements [Store]. Nested calls open a savepoint.
//
// Begin and commit failures are classified like statement failures; errors
// returned by fn are already classified and pass through unchanged.
func (store *postgresStore) InTx(context context.Context, fn func(tx Store) error) error {
	err := postgres.WithTx(context, store.db, func(transaction pgx.Tx) error {
		return fn(&postgresStore{db: transaction})
	})
	return dberr.Wrap(err, "Storage")
}

// Ping implements [Store].
func (store *postgresStore) Ping(context context.Context) error {
	if _, err := store.db.Exec(context, "SELECT 1"); err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: ping: %w", err), "Storage")
	}
	return nil
}

// # Shared Helpers

// count runs SELECT COUNT(*) against table.
func count(context context.Context, db postgres.DBTX, table, resource string) (int, error) {
	var total int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := db.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(fmt.Errorf("postgres: count %s: %w", table, err), resource)
	}
	return total, nil
}

// deleteByID removes one row and reports NOT_FOUND when nothing matched.
func deleteByID(context context.Context, db postgres.DBTX, table, idColumn, resource string, id int) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, idColumn)

	tag, err := db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: delete from %s: %w", table, err), resource)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resource)
	}
	return nil
}

// collect scans every row with scan, wrapping failures for resource.
func collect[T any](rows pgx.Rows, queryErr error, resource string, scan pgx.RowToFunc[*T]) ([]*T, error) {
	if queryErr != nil {
		return nil, dberr.Wrap(queryErr, resource)
	}

	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: scan %s rows: %w", resource, err), resource)
	}
	return items, nil
}

// nullableTime lets a zero release date fall back to the column default.
func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value
}
