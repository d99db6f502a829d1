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

// volumeRepository implements the [VolumeRepository] interface using pgx.
type volumeRepository struct {
	db postgres.DBTX
}

var volumeColumns = schema.Select("v", schema.CatalogVolume.Columns())

func scanVolume(row pgx.CollectableRow) (*Volume, error) {
	volume := &Volume{}
	err := row.Scan(
		&volume.ID, &volume.ComicID, &volume.Number, &volume.Title,
		&volume.Description, &volume.ReleaseDate, &volume.URL,
	)
	return volume, err
}

func (repository *volumeRepository) ListByComic(context context.Context, comicID int) ([]*Volume, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s v WHERE v.%s = $1 ORDER BY v.%s`,
		volumeColumns, schema.CatalogVolume.Table,
		schema.CatalogVolume.ComicID, schema.CatalogVolume.VolumeNumber)

	rows, err := repository.db.Query(context, query, comicID)
	return collect(rows, err, ResourceVolume, scanVolume)
}

func (repository *volumeRepository) Count(context context.Context) (int, error) {
	return count(context, repository.db, schema.CatalogVolume.Table, ResourceVolume)
}

func (repository *volumeRepository) FindByID(context context.Context, id int) (*Volume, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s v WHERE v.%s = $1`,
		volumeColumns, schema.CatalogVolume.Table, schema.CatalogVolume.ID)

	return repository.findOne(context, query, id)
}

func (repository *volumeRepository) FindByNumber(context context.Context, comicID, number int) (*Volume, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s v WHERE v.%s = $1 AND v.%s = $2`,
		volumeColumns, schema.CatalogVolume.Table,
		schema.CatalogVolume.ComicID, schema.CatalogVolume.VolumeNumber)

	return repository.findOne(context, query, comicID, number)
}

// MaxNumber reads MAX(volume_number), which is NULL for a comic without volumes.
func (repository *volumeRepository) MaxNumber(context context.Context, comicID int) (number int, ok bool, err error) {
	query := fmt.Sprintf(`SELECT MAX(%s) FROM %s WHERE %s = $1`,
		schema.CatalogVolume.VolumeNumber, schema.CatalogVolume.Table, schema.CatalogVolume.ComicID)

	var highest *int
	if err := repository.db.QueryRow(context, query, comicID).Scan(&highest); err != nil {
		return 0, false, dberr.Wrap(fmt.Errorf("postgres: max volume number: %w", err), ResourceVolume)
	}
	if highest == nil {
		return 0, false, nil
	}
	return *highest, true, nil
}

func (repository *volumeRepository) Create(context context.Context, volume *Volume) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, COALESCE($5::timestamp, CURRENT_TIMESTAMP))
		RETURNING %s, %s, %s`,
		schema.CatalogVolume.Table,
		schema.CatalogVolume.ComicID, schema.CatalogVolume.VolumeNumber, schema.CatalogVolume.Title,
		schema.CatalogVolume.Description, schema.CatalogVolume.ReleaseDate,
		schema.CatalogVolume.ID, schema.CatalogVolume.ReleaseDate, schema.CatalogVolume.URL,
	)

	err := repository.db.QueryRow(context, query,
		volume.ComicID, volume.Number, volume.Title, volume.Description, nullableTime(volume.ReleaseDate),
	).Scan(&volume.ID, &volume.ReleaseDate, &volume.URL)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: insert volume: %w", err), ResourceVolume)
	}
	return nil
}

func (repository *volumeRepository) Update(context context.Context, volume *Volume) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1
		RETURNING %s`,
		schema.CatalogVolume.Table,
		schema.CatalogVolume.ComicID, schema.CatalogVolume.VolumeNumber, schema.CatalogVolume.Title,
		schema.CatalogVolume.Description, schema.CatalogVolume.ReleaseDate,
		schema.CatalogVolume.ID,
		schema.CatalogVolume.URL,
	)

	err := repository.db.QueryRow(context, query,
		volume.ID, volume.ComicID, volume.Number, volume.Title, volume.Description, volume.ReleaseDate,
	).Scan(&volume.URL)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: update volume: %w", err), ResourceVolume)
	}
	return nil
}

func (repository *volumeRepository) Delete(context context.Context, id int) error {
	return deleteByID(context, repository.db, schema.CatalogVolume.Table, schema.CatalogVolume.ID, ResourceVolume, id)
}

func (repository *volumeRepository) findOne(context context.Context, query string, args ...any) (*Volume, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, ResourceVolume)
	}

	volume, err := pgx.CollectExactlyOneRow(rows, scanVolume)
	if err != nil {
		return nil, dberr.Wrap(err, ResourceVolume)
	}
	return volume, nil
}
