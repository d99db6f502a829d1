package schema

// CatalogGenreTable represents the 'genres' table
type CatalogGenreTable struct {
	Table string
	ID    string
	Name  string
	URL   string
}

// CatalogGenre is the schema definition for genres
var CatalogGenre = CatalogGenreTable{
	Table: "genres",
	ID:    "id",
	Name:  "name",
	URL:   "url",
}

func (t CatalogGenreTable) Columns() []string {
	return []string{t.ID, t.Name, t.URL}
}
