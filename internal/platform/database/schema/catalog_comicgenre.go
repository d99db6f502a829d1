package schema

// CatalogComicGenreTable represents the 'comics_genres' association table
type CatalogComicGenreTable struct {
	Table   string
	ComicID string
	GenreID string
}

// CatalogComicGenre is the schema definition for comics_genres
var CatalogComicGenre = CatalogComicGenreTable{
	Table:   "comics_genres",
	ComicID: "comic_id",
	GenreID: "genre_id",
}
