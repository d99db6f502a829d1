package schema

// CatalogVolumeTable represents the 'volumes' table
type CatalogVolumeTable struct {
	Table        string
	ID           string
	ComicID      string
	VolumeNumber string
	Title        string
	Description  string
	ReleaseDate  string
	URL          string
}

// CatalogVolume is the schema definition for volumes
var CatalogVolume = CatalogVolumeTable{
	Table:        "volumes",
	ID:           "id",
	ComicID:      "comic_id",
	VolumeNumber: "volume_number",
	Title:        "title",
	Description:  "description",
	ReleaseDate:  "release_date",
	URL:          "url",
}

func (t CatalogVolumeTable) Columns() []string {
	return []string{t.ID, t.ComicID, t.VolumeNumber, t.Title, t.Description, t.ReleaseDate, t.URL}
}
