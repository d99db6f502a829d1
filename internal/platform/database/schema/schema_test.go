package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/comiking/internal/platform/database/schema"
)

func TestSelect(t *testing.T) {
	assert.Equal(t, "g.id, g.name, g.url", schema.Select("g", schema.CatalogGenre.Columns()))
	assert.Equal(t, "id, name, url", schema.Select("", schema.CatalogGenre.Columns()))
}
