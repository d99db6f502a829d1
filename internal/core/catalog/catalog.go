// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the entities of the Comiking catalog and the rules that
keep them consistent.

It manages five entity kinds (Genre, Publisher, Author, Comic, Volume) and the
comic-genre association.

Core Responsibility:

  - Storage: Repository contracts per entity, with a PostgreSQL implementation.
  - Consistency: Duplicate avoidance on writes and transactional genre sync.
  - Views: Multi-entity reads assembled concurrently for detail pages.

Every entity exposes a canonical URL ("/catalog/comic/3") that doubles as the
redirect target after a write.
*/
package catalog

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/taibuivan/comiking/internal/platform/constants"
	"github.com/taibuivan/comiking/pkg/calendar"
	"github.com/taibuivan/comiking/pkg/pointer"
)

// # Display Names

// Resource names used in error messages ("Comic not found").
const (
	ResourceGenre     = "Genre"
	ResourcePublisher = "Publisher"
	ResourceAuthor    = "Author"
	ResourceComic     = "Comic"
	ResourceVolume    = "Volume"
)

// # Field Names

// Input field names, shared by request binding and service validation.
const (
	FieldName         = "name"
	FieldHeadquarters = "headquarters"
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldTitle        = "title"
	FieldSummary      = "summary"
	FieldReleaseDate  = "release_date"
	FieldAuthor       = "author"
	FieldPublisher    = "publisher"
	FieldGenres       = "genres"
	FieldVolumeNumber = "volume_number"
	FieldDescription  = "description"
)

// Column limits of the catalog schema.
const (
	MaxGenreNameLen      = 20
	MaxPublisherNameLen  = 40
	MaxHeadquartersLen   = 40
	MaxAuthorNameLen     = 40
	MaxComicTitleLen     = 100
	MaxComicSummaryLen   = 200
	MaxVolumeTitleLen    = 100
	MaxVolumeDescription = 200
)

// # Entities

// Genre is a category a comic can belong to ("Action", "Slice of Life").
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Publisher is the company releasing a comic.
type Publisher struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Headquarters *string `json:"headquarters"`
	URL          string  `json:"url"`
}

// Info renders the publisher for display: "Shueisha, Tokyo, Japan".
func (publisher Publisher) Info() string {
	if pointer.Val(publisher.Headquarters) == "" {
		return publisher.Name
	}
	return publisher.Name + ", " + *publisher.Headquarters
}

// MarshalJSON adds the display string to the stored fields.
func (publisher Publisher) MarshalJSON() ([]byte, error) {
	type stored Publisher
	return json.Marshal(struct {
		stored
		Info string `json:"info"`
	}{stored(publisher), publisher.Info()})
}

// Author writes comics. Name is derived from the first and last names.
type Author struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
	URL       string `json:"url"`
}

// Comic is a series with exactly one author and one publisher.
type Comic struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	ReleaseDate time.Time `json:"release_date"`
	AuthorID    int       `json:"author_id"`
	PublisherID int       `json:"publisher_id"`
	URL         string    `json:"url"`

	// GenreIDs is filled by single-comic lookups only.
	GenreIDs []int `json:"genre_ids,omitempty"`
}

// MarshalJSON adds the display and form renderings of the release date.
func (comic Comic) MarshalJSON() ([]byte, error) {
	type stored Comic
	return json.Marshal(struct {
		stored
		ReleaseDates
	}{stored(comic), newReleaseDates(comic.ReleaseDate)})
}

// Volume is one numbered book of a comic.
type Volume struct {
	ID          int       `json:"id"`
	ComicID     int       `json:"comic_id"`
	Number      int       `json:"volume_number"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"release_date"`
	URL         string    `json:"url"`
}

// MarshalJSON adds the display and form renderings of the release date.
func (volume Volume) MarshalJSON() ([]byte, error) {
	type stored Volume
	return json.Marshal(struct {
		stored
		ReleaseDates
	}{stored(volume), newReleaseDates(volume.ReleaseDate)})
}

// ReleaseDates carries the renderings of a release date that templates need.
type ReleaseDates struct {
	// Formatted is the display value ("Dec 24, 1997").
	Formatted string `json:"release_date_formatted"`
	// Input is the form value ("1997-12-24").
	Input string `json:"release_date_input"`
	// DayFirst is the compact list rendering ("24-12-1997").
	DayFirst string `json:"release_date_day_first"`
}

func newReleaseDates(day time.Time) ReleaseDates {
	return ReleaseDates{
		Formatted: calendar.FormatMedium(day),
		Input:     calendar.Day(day),
		DayFirst:  calendar.FormatDayFirst(day),
	}
}

// # Canonical URLs

// GenreURL returns the canonical URL of the genre with id.
func GenreURL(id int) string { return constants.GenreURLPrefix + strconv.Itoa(id) }

// PublisherURL returns the canonical URL of the publisher with id.
func PublisherURL(id int) string { return constants.PublisherURLPrefix + strconv.Itoa(id) }

// AuthorURL returns the canonical URL of the author with id.
func AuthorURL(id int) string { return constants.AuthorURLPrefix + strconv.Itoa(id) }

// ComicURL returns the canonical URL of the comic with id.
func ComicURL(id int) string { return constants.ComicURLPrefix + strconv.Itoa(id) }

// VolumeURL returns the canonical URL of the volume with id.
func VolumeURL(id int) string { return constants.VolumeURLPrefix + strconv.Itoa(id) }

// AuthorName derives the display name stored alongside the name parts.
func AuthorName(firstName, lastName string) string {
	return firstName + " " + lastName
}
