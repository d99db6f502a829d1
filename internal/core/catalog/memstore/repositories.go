// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore

import (
	"cmp"
	"context"
	"slices"

	"github.com/taibuivan/comiking/internal/core/catalog"
	"github.com/taibuivan/comiking/internal/platform/apperr"
	"github.com/taibuivan/comiking/pkg/slice"
	"github.com/taibuivan/comiking/pkg/textutil"
)

const (
	tableGenres     = "genres"
	tablePublishers = "publishers"
	tableAuthors    = "authors"
	tableComics     = "comics"
	tableVolumes    = "volumes"
)

// byText orders by a folded display key, then by id.
func byText[T any](key func(T) string, id func(T) int) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Or(cmp.Compare(textutil.Fold(key(a)), textutil.Fold(key(b))), cmp.Compare(id(a), id(b)))
	}
}

// sorted copies the rows matching keep into a slice ordered by compare.
func sorted[T any](rows map[int]T, keep func(T) bool, compare func(a, b T) int) []*T {
	items := make([]*T, 0, len(rows))
	for _, row := range rows {
		if keep == nil || keep(row) {
			item := row
			items = append(items, &item)
		}
	}
	slices.SortFunc(items, func(a, b *T) int { return compare(*a, *b) })
	return items
}

// find copies the first row matching keep in id order.
func find[T any](rows map[int]T, resource string, keep func(T) bool) (*T, error) {
	ids := make([]int, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if row := rows[id]; keep(row) {
			return &row, nil
		}
	}
	return nil, apperr.NotFound(resource)
}

// # Genres

type genreRepository struct {
	session *session
}

var genreOrder = byText(func(g catalog.Genre) string { return g.Name }, func(g catalog.Genre) int { return g.ID })

func (repository *genreRepository) List(context context.Context) (genres []*catalog.Genre, err error) {
	err = repository.session.read(context, func(t *tables) error {
		genres = sorted(t.genres, nil, genreOrder)
		return nil
	})
	return genres, err
}

func (repository *genreRepository) Count(context context.Context) (total int, err error) {
	err = repository.session.read(context, func(t *tables) error {
		total = len(t.genres)
		return nil
	})
	return total, err
}

func (repository *genreRepository) FindByID(context context.Context, id int) (genre *catalog.Genre, err error) {
	err = repository.session.read(context, func(t *tables) error {
		genre, err = find(t.genres, catalog.ResourceGenre, func(g catalog.Genre) bool { return g.ID == id })
		return err
	})
	return genre, err
}

func (repository *genreRepository) FindByName(context context.Context, name string) (genre *catalog.Genre, err error) {
	err = repository.session.read(context, func(t *tables) error {
		genre, err = find(t.genres, catalog.ResourceGenre, func(g catalog.Genre) bool { return textutil.EqualFold(g.Name, name) })
		return err
	})
	return genre, err
}

func (repository *genreRepository) ListByComic(context context.Context, comicID int) (genres []*catalog.Genre, err error) {
	err = repository.session.read(context, func(t *tables) error {
		genres = sorted(t.genres, func(g catalog.Genre) bool {
			_, ok := t.comicGenres[association{comicID: comicID, genreID: g.ID}]
			return ok
		}, genreOrder)
		return nil
	})
	return genres, err
}

func (repository *genreRepository) Create(context context.Context, genre *catalog.Genre) error {
	return repository.session.write(context, func(t *tables) error {
		genre.ID = t.nextID(tableGenres)
		if err := checkGenre(t, genre); err != nil {
			return err
		}
		genre.URL = catalog.GenreURL(genre.ID)
		t.genres[genre.ID] = *genre
		return nil
	})
}

func (repository *genreRepository) Update(context context.Context, genre *catalog.Genre) error {
	return repository.session.write(context, func(t *tables) error {
		if _, ok := t.genres[genre.ID]; !ok {
			return apperr.NotFound(catalog.ResourceGenre)
		}
		if err := checkGenre(t, genre); err != nil {
			return err
		}
		genre.URL = catalog.GenreURL(genre.ID)
		t.genres[genre.ID] = *genre
		return nil
	})
}

func (repository *genreRepository) Delete(context context.Context, id int) error {
	return repository.session.write(context, func(t *tables) error {
		if _, ok := t.genres[id]; !ok {
			return apperr.NotFound(catalog.ResourceGenre)
		}
		delete(t.genres, id)
		for key := range t.comicGenres {
			if key.genreID == id {
				delete(t.comicGenres, key)
			}
		}
		return nil
	})
}

func checkGenre(t *tables, genre *catalog.Genre) error {
	if genre.Name == "" || len([]rune(genre.Name)) > catalog.MaxGenreNameLen {
		return checkViolation(catalog.ResourceGenre)
	}
	for id, other := range t.genres {
		if id != genre.ID && textutil.EqualFold(other.Name, genre.Name) {
			return uniqueViolation(catalog.ResourceGenre)
		}
	}
	return nil
}

// # Publishers

type publisherRepository struct {
	session *session
}

var publisherOrder = byText(func(p catalog.Publisher) string { return p.Name }, func(p catalog.Publisher) int { return p.ID })

func (repository *publisherRepository) List(context context.Context) (publishers []*catalog.Publisher, err error) {
	err = repository.session.read(context, func(t *tables) error {
		publishers = sorted(t.publishers, nil, publisherOrder)
		return nil
	})
	return publishers, err
}

func (repository *publisherRepository) Count(context context.Context) (total int, err error) {
	err = repository.session.read(context, func(t *tables) error {
		total = len(t.publishers)
		return nil
	})
	return total, err
}

func (repository *publisherRepository) FindByID(context context.Context, id int) (publisher *catalog.Publisher, err error) {
	err = repository.session.read(context, func(t *tables) error {
		publisher, err = find(t.publishers, catalog.ResourcePublisher, func(p catalog.Publisher) bool { return p.ID == id })
		return err
	})
	return publisher, err
}

func (repository *publisherRepository) FindByName(context context.Context, name string) (publisher *catalog.Publisher, err error) {
	err = repository.session.read(context, func(t *tables) error {
		publisher, err = find(t.publishers, catalog.ResourcePublisher, func(p catalog.Publisher) bool { return textutil.EqualFold(p.Name, name) })
		return err
	})
	return publisher, err
}

func (repository *publisherRepository) FindByComic(context context.Context, comicID int) (publisher *catalog.Publisher, err error) {
	err = repository.session.read(context, func(t *tables) error {
		comic, ok := t.comics[comicID]
		if !ok {
			return apperr.NotFound(catalog.ResourcePublisher)
		}
		publisher, err = find(t.publishers, catalog.ResourcePublisher, func(p catalog.Publisher) bool { return p.ID == comic.PublisherID })
		return err
	})
	return publisher, err
}

func (repository *publisherRepository) Create(context context.Context, publisher *catalog.Publisher) error {
	return repository.session.write(context, func(t *tables) error {
		publisher.ID = t.nextID(tablePublishers)
		if err := checkPublisher(t, publisher); err != nil {
			return err
		}
		publisher.URL = catalog.PublisherURL(publisher.ID)
		t.publishers[publisher.ID] = *publisher
		return nil
	})
}

func (repository *publisherRepository) Update(context context.Context, publisher *catalog.Publisher) error {
	return repository.session.write(context, func(t *tables) error {
		if _, ok := t.publishers[publisher.ID]; !ok {
			return apperr.NotFound(catalog.ResourcePublisher)
		}
		if err := checkPublisher(t, publisher); err != nil {
			return err
		}
		publisher.URL = catalog.PublisherURL(publisher.ID)
		t.publishers[publisher.ID] = *publisher
		return nil
	})
}

func (repository *publisherRepository) Delete(context context.Context, id int) error {
	return repository.session.write(context, func(t *tables) error {
		if _, ok := t.publishers[id]; !ok {
			return apperr.NotFound(catalog.ResourcePublisher)
		}
		for _, comic := range t.comics {
			if comic.PublisherID == id {
				return stillReferenced(catalog.ResourcePublisher)
			}
		}
		delete(t.publishers, id)
		return nil
	})
}

func checkPublisher(t *tables, publisher *catalog.Publisher) error {
	if publisher.Name == "" || len([]rune(publisher.Name)) > catalog.MaxPublisherNameLen {
		return checkViolation(catalog.ResourcePublisher)
	}
	if publisher.Headquarters != nil && len([]rune(*publisher.Headquarters)) > catalog.MaxHeadquartersLen {
		return checkViolation(catalog.ResourcePublisher)
	}
	for id, other := range t.publishers {
		if id != publisher.ID && textutil.EqualFold(other.Name, publisher.Name) {
			return uniqueViolation(catalog.ResourcePublisher)
		}
	}
	return nil
}

// # Authors

type authorRepository struct {
	session *session
}

func authorOrder(a, b catalog.Author) int {
	return cmp.Or(
		cmp.Compare(textutil.Fold(a.FirstName), textutil.Fold(b.FirstName)),
		cmp.Compare(textutil.Fold(a.LastName), textutil.Fold(b.LastName)),
		cmp.Compare(a.ID, b.ID),
	)
}

func (repository *authorRepository) List(context context.Context) (authors []*catalog.Author, err error) {
	err = repository.session.read(context, func(t *tables) error {
		authors = sorted(t.authors, nil, authorOrder)
		return nil
	})
	return authors, err
}

func (repository *authorRepository) Count(context context.Context) (total int, err error) {
	err = repository.session.read(context, func(t *tables) error {
		total = len(t.authors)
		return nil
	})
	return total, err
}

func (repository *authorRepository) FindByID(context context.Context, id int) (author *catalog.Author, err error) {
	err = repository.session.read(context, func(t *tables) error {
		author, err = find(t.authors, catalog.ResourceAuthor, func(a catalog.Author) bool { return a.ID == id })
		return err
	})
	return author, err
}

func (repository *authorRepository) FindByName(context context.Context, firstName, lastName string) (author *catalog.Author, err error) {
	err = repository.session.read(context, func(t *tables) error {
		author, err = find(t.authors, catalog.ResourceAuthor, func(a catalog.Author) bool {
			return textutil.EqualFold(a.FirstName, firstName) && textutil.EqualFold(a.LastName, lastName)
		})
		return err
	})
	return author, err
}

func (repository *authorRepository) FindByComic(context context.Context, comicID int) (author *catalog.Author, err error) {
	err = repository.session.read(context, func(t *tables) error {
		comic, ok := t.comics[comicID]
		if !ok {
			return apperr.NotFound(catalog.ResourceAuthor)
		}
		author, err = find(t.authors, catalog.ResourceAuthor, func(a catalog.Author) bool { return a.ID == comic.AuthorID })
		return err
	})
	return author, err
}

func (repository *authorRepository) Create(context context.Context, author *catalog.Author) error {
	return repository.session.write(context, func(t *tables) error {
		author.ID = t.nextID(tableAuthors)
		if err := checkAuthor(author); err != nil {
			return err
		}
		author.Name = catalog.AuthorName(author.FirstName, author.LastName)
		author.URL = catalog.AuthorURL(author.ID)
		t.authors[author.ID] = *author
		return nil
	})
}

func (repository *authorRepository) Update(context context.Context, author *catalog.Author) error {
	return repository.session.write(context, func(t *tables) error {
		if _, ok := t.authors[author.ID]; !ok {
			return apperr.NotFound(catalog.ResourceAuthor)
		}
		if err := checkAuthor(author); err != nil {
			return err
		}
		author.Name = catalog.AuthorName(author.FirstName, author.LastName)
		author.URL = catalog.AuthorURL(author.ID)
		t.authors[author.ID] = *author
		return nil
	})
}

func (repository *authorRepository) Delete(context context.Context, id int) error {
	return repository.session.write(context, func(t *tables) error {
		if _, ok := t.authors[id]; !ok {
			return apperr.NotFound(catalog.ResourceAuthor)
		}
		for _, comic := range t.comics {
			if comic.AuthorID == id {
				return stillReferenced(catalog.ResourceAuthor)
			}
		}
		delete(t.authors, id)
		return nil
	})
}

func checkAuthor(author *catalog.Author) error {
	if len([]rune(author.FirstName)) > catalog.MaxAuthorNameLen || len([]rune(author.LastName)) > catalog.MaxAuthorNameLen {
		return checkViolation(catalog.ResourceAuthor)
	}
	return nil
}

// # Comics

type comicRepository struct {
	session *session
}

var comicOrder = byText(func(c catalog.Comic) string { return c.Title }, func(c catalog.Comic) int { return c.ID })

func (repository *comicRepository) List(context context.Context) (comics []*catalog.Comic, err error) {
	err = repository.session.read(context, func(t *tables) error {
		comics = sorted(t.comics, nil, comicOrder)
		return nil
	})
	return comics, err
}

func (repository *comicRepository) Count(context context.Context) (total int, err error) {
	err = repository.session.read(context, func(t *tables) error {
		total = len(t.comics)
		return nil
	})
	return total, err
}

func (repository *comicRepository) FindByID(context context.Context, id int) (comic *catalog.Comic, err error) {
	err = repository.session.read(context, func(t *tables) error {
		comic, err = find(t.comics, catalog.ResourceComic, func(c catalog.Comic) bool { return c.ID == id })
		if err != nil {
			return err
		}

		comic.GenreIDs = []int{}
		for key := range t.comicGenres {
			if key.comicID == id {
				comic.GenreIDs = append(comic.GenreIDs, key.genreID)
			}
		}
		slices.Sort(comic.GenreIDs)
		return nil
	})
	return comic, err
}

func (repository *comicRepository) FindByTitleAndAuthor(context context.Context, title string, authorID int) (comic *catalog.Comic, err error) {
	err = repository.session.read(context, func(t *tables) error {
		comic, err = find(t.comics, catalog.ResourceComic, func(c catalog.Comic) bool {
			return c.AuthorID == authorID && textutil.EqualFold(c.Title, title)
		})
		return err
	})
	return comic, err
}

func (repository *comicRepository) ListByGenre(context context.Context, genreID int) (comics []*catalog.Comic, err error) {
	err = repository.session.read(context, func(t *tables) error {
		comics = sorted(t.comics, func(c catalog.Comic) bool {
			_, ok := t.comicGenres[association{comicID: c.ID, genreID: genreID}]
			return ok
		}, comicOrder)
		return nil
	})
	return comics, err
}

func (repository *comicRepository) ListByAuthor(context context.Context, authorID int) (comics []*catalog.Comic, err error) {
	err = repository.session.read(context, func(t *tables) error {
		comics = sorted(t.comics, func(c catalog.Comic) bool { return c.AuthorID == authorID }, comicOrder)
		return nil
	})
	return comics, err
}

func (repository *comicRepository) ListByPublisher(context context.Context, publisherID int) (comics []*catalog.Comic, err error) {
	err = repository.session.read(context, func(t *tables) error {
		comics = sorted(t.comics, func(c catalog.Comic) bool { return c.PublisherID == publisherID }, comicOrder)
		return nil
	})
	return comics, err
}

func (repository *comicRepository) Create(context context.Context, comic *catalog.Comic) error {
	return repository.session.write(context, func(t *tables) error {
		comic.ID = t.nextID(tableComics)
		if err := checkComic(t, comic); err != nil {
			return err
		}
		if comic.ReleaseDate.IsZero() {
			comic.ReleaseDate = repository.session.engine.now()
		}
		comic.URL = catalog.ComicURL(comic.ID)
		t.comics[comic.ID] = storedComic(comic)
		return nil
	})
}

func (repository *comicRepository) Update(context context.Context, comic *catalog.Comic) error {
	return repository.session.write(context, func(t *tables) error {
		if _, ok := t.comics[comic.ID]; !ok {
			return apperr.NotFound(catalog.ResourceComic)
		}
		if err := checkComic(t, comic); err != nil {
			return err
		}
		if comic.ReleaseDate.IsZero() {
			return checkViolation(catalog.ResourceComic)
		}
		comic.URL = catalog.ComicURL(comic.ID)
		t.comics[comic.ID] = storedComic(comic)
		return nil
	})
}

// ReplaceGenres runs as two statements, like the DELETE and the batched INSERT.
func (repository *comicRepository) ReplaceGenres(context context.Context, comicID int, genreIDs []int) error {
	err := repository.session.write(context, func(t *tables) error {
		for key := range t.comicGenres {
			if key.comicID == comicID {
				delete(t.comicGenres, key)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	distinct := slice.Unique(genreIDs)
	if len(distinct) == 0 {
		return nil
	}

	return repository.session.write(context, func(t *tables) error {
		if _, ok := t.comics[comicID]; !ok {
			return danglingReference(catalog.ResourceComic)
		}
		for _, genreID := range distinct {
			if _, ok := t.genres[genreID]; !ok {
				return danglingReference(catalog.ResourceComic)
			}
			t.comicGenres[association{comicID: comicID, genreID: genreID}] = struct{}{}
		}
		return nil
	})
}

func (repository *comicRepository) Delete(context context.Context, id int) error {
	return repository.session.write(context, func(t *tables) error {
		if _, ok := t.comics[id]; !ok {
			return apperr.NotFound(catalog.ResourceComic)
		}
		for _, volume := range t.volumes {
			if volume.ComicID == id {
				return stillReferenced(catalog.ResourceComic)
			}
		}
		delete(t.comics, id)
		for key := range t.comicGenres {
			if key.comicID == id {
				delete(t.comicGenres, key)
			}
		}
		return nil
	})
}

func checkComic(t *tables, comic *catalog.Comic) error {
	if len([]rune(comic.Title)) > catalog.MaxComicTitleLen || len([]rune(comic.Summary)) > catalog.MaxComicSummaryLen {
		return checkViolation(catalog.ResourceComic)
	}
	if _, ok := t.authors[comic.AuthorID]; !ok {
		return danglingReference(catalog.ResourceComic)
	}
	if _, ok := t.publishers[comic.PublisherID]; !ok {
		return danglingReference(catalog.ResourceComic)
	}
	return nil
}

// storedComic drops the genre set, which lives in the association table.
func storedComic(comic *catalog.Comic) catalog.Comic {
	stored := *comic
	stored.GenreIDs = nil
	return stored
}

// # Volumes

type volumeRepository struct {
	session *session
}

func volumeOrder(a, b catalog.Volume) int {
	return cmp.Or(cmp.Compare(a.Number, b.Number), cmp.Compare(a.ID, b.ID))
}

func (repository *volumeRepository) ListByComic(context context.Context, comicID int) (volumes []*catalog.Volume, err error) {
	err = repository.session.read(context, func(t *tables) error {
		volumes = sorted(t.volumes, func(v catalog.Volume) bool { return v.ComicID == comicID }, volumeOrder)
		return nil
	})
	return volumes, err
}

func (repository *volumeRepository) Count(context context.Context) (total int, err error) {
	err = repository.session.read(context, func(t *tables) error {
		total = len(t.volumes)
		return nil
	})
	return total, err
}

func (repository *volumeRepository) FindByID(context context.Context, id int) (volume *catalog.Volume, err error) {
	err = repository.session.read(context, func(t *tables) error {
		volume, err = find(t.volumes, catalog.ResourceVolume, func(v catalog.Volume) bool { return v.ID == id })
		return err
	})
	return volume, err
}

func (repository *volumeRepository) FindByNumber(context context.Context, comicID, number int) (volume *catalog.Volume, err error) {
	err = repository.session.read(context, func(t *tables) error {
		volume, err = find(t.volumes, catalog.ResourceVolume, func(v catalog.Volume) bool {
			return v.ComicID == comicID && v.Number == number
		})
		return err
	})
	return volume, err
}

func (repository *volumeRepository) MaxNumber(context context.Context, comicID int) (number int, ok bool, err error) {
	err = repository.session.read(context, func(t *tables) error {
		for _, volume := range t.volumes {
			if volume.ComicID != comicID {
				continue
			}
			if !ok || volume.Number > number {
				number, ok = volume.Number, true
			}
		}
		return nil
	})
	return number, ok, err
}

func (repository *volumeRepository) Create(context context.Context, volume *catalog.Volume) error {
	return repository.session.write(context, func(t *tables) error {
		volume.ID = t.nextID(tableVolumes)
		if err := checkVolume(t, volume); err != nil {
			return err
		}
		if volume.ReleaseDate.IsZero() {
			volume.ReleaseDate = repository.session.engine.now()
		}
		volume.URL = catalog.VolumeURL(volume.ID)
		t.volumes[volume.ID] = *volume
		return nil
	})
}

func (repository *volumeRepository) Update(context context.Context, volume *catalog.Volume) error {
	return repository.session.write(context, func(t *tables) error {
		if _, ok := t.volumes[volume.ID]; !ok {
			return apperr.NotFound(catalog.ResourceVolume)
		}
		if err := checkVolume(t, volume); err != nil {
			return err
		}
		if volume.ReleaseDate.IsZero() {
			return checkViolation(catalog.ResourceVolume)
		}
		volume.URL = catalog.VolumeURL(volume.ID)
		t.volumes[volume.ID] = *volume
		return nil
	})
}

func (repository *volumeRepository) Delete(context context.Context, id int) error {
	return repository.session.write(context, func(t *tables) error {
		if _, ok := t.volumes[id]; !ok {
			return apperr.NotFound(catalog.ResourceVolume)
		}
		delete(t.volumes, id)
		return nil
	})
}

func checkVolume(t *tables, volume *catalog.Volume) error {
	if volume.Number < 0 ||
		len([]rune(volume.Title)) > catalog.MaxVolumeTitleLen ||
		len([]rune(volume.Description)) > catalog.MaxVolumeDescription {
		return checkViolation(catalog.ResourceVolume)
	}
	if _, ok := t.comics[volume.ComicID]; !ok {
		return danglingReference(catalog.ResourceVolume)
	}
	for id, other := range t.volumes {
		if id != volume.ID && other.ComicID == volume.ComicID && other.Number == volume.Number {
			return uniqueViolation(catalog.ResourceVolume)
		}
	}
	return nil
}
