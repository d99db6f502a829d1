package schema

// CatalogComicTable represents the 'comics' table
type CatalogComicTable struct {
	Table       string
	ID          string
	Title       string
	Summary     string
	ReleaseDate string
	AuthorID    string
	PublisherID string
	URL         string
}

// CatalogComic is the schema definition for comics
var CatalogComic = CatalogComicTable{
	Table:       "comics",
	ID:          "id",
	Title:       "title",
	Summary:     "summary",
	ReleaseDate: "release_date",
	AuthorID:    "author_id",
	PublisherID: "publisher_id",
	URL:         "url",
}

func (t CatalogComicTable) Columns() []string {
	return []string{t.ID, t.Title, t.Summary, t.ReleaseDate, t.AuthorID, t.PublisherID, t.URL}
}
