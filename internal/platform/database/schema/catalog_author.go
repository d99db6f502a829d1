package schema

// CatalogAuthorTable represents the 'authors' table
type CatalogAuthorTable struct {
	Table     string
	ID        string
	FirstName string
	LastName  string
	// Name is generated: first_name || ' ' || last_name
	Name string
	URL  string
}

// CatalogAuthor is the schema definition for authors
var CatalogAuthor = CatalogAuthorTable{
	Table:     "authors",
	ID:        "id",
	FirstName: "first_name",
	LastName:  "last_name",
	Name:      "name",
	URL:       "url",
}

func (t CatalogAuthorTable) Columns() []string {
	return []string{t.ID, t.FirstName, t.LastName, t.Name, t.URL}
}
