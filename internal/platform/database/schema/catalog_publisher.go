package schema

// CatalogPublisherTable represents the 'publishers' table
type CatalogPublisherTable struct {
	Table        string
	ID           string
	Name         string
	Headquarters string
	URL          string
}

// CatalogPublisher is the schema definition for publishers
var CatalogPublisher = CatalogPublisherTable{
	Table:        "publishers",
	ID:           "id",
	Name:         "name",
	Headquarters: "headquarters",
	URL:          "url",
}

func (t CatalogPublisherTable) Columns() []string {
	return []string{t.ID, t.Name, t.Headquarters, t.URL}
}
