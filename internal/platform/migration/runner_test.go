// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/comiking":   "pgx5://u:p@localhost:5432/comiking",
		"postgresql://u:p@localhost:5432/comiking": "pgx5://u:p@localhost:5432/comiking",
		"pgx5://u:p@localhost:5432/comiking":       "pgx5://u:p@localhost:5432/comiking",
		"host=localhost dbname=comiking":           "host=localhost dbname=comiking",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, convertToPgx5DSN(input), input)
	}
}

/*
TestEmbeddedMigrations_Paired ensures every up file ships with its down file.
*/
func TestEmbeddedMigrations_Paired(t *testing.T) {
	ups, err := fs.Glob(files, "sql/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(files, "sql/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

/*
TestEmbeddedMigrations_VolumeNumberUnique keeps the per-comic volume constraint in the schema.
*/
func TestEmbeddedMigrations_VolumeNumberUnique(t *testing.T) {
	body, err := fs.ReadFile(files, "sql/000001_catalog.up.sql")
	require.NoError(t, err)

	assert.Contains(t, string(body), "ON volumes (comic_id, volume_number)")
	assert.Contains(t, string(body), "ON genres (lower(name))")
	assert.Contains(t, string(body), "ON publishers (lower(name))")
}
