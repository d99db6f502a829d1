// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// # Catalog Data Access

// Lookups that find nothing return an apperr NOT_FOUND error naming the entity.
// Writes that violate a storage constraint return CONFLICT or VALIDATION_ERROR,
// and an unreachable engine returns SERVICE_UNAVAILABLE.

// GenreRepository defines the data access contract for genres.
type GenreRepository interface {

	// List returns every genre ordered by name.
	List(context context.Context) ([]*Genre, error)

	// Count returns the number of genres.
	Count(context context.Context) (int, error)

	// FindByID returns the genre with the given id.
	FindByID(context context.Context, id int) (*Genre, error)

	// FindByName matches name exactly, ignoring case. No wildcards apply.
	FindByName(context context.Context, name string) (*Genre, error)

	// ListByComic returns the genres associated with a comic, ordered by name.
	ListByComic(context context.Context, comicID int) ([]*Genre, error)

	/*
		Create inserts a genre and fills its generated ID and URL.

		Parameters:
		  - context: context.Context
		  - genre: *Genre (Name set by the caller)

		Returns:
		  - error: CONFLICT when the name is already taken
	*/
	Create(context context.Context, genre *Genre) error

	// Update overwrites the mutable fields of the genre with genre.ID.
	Update(context context.Context, genre *Genre) error

	// Delete removes a genre. Its comic associations cascade.
	Delete(context context.Context, id int) error
}

// PublisherRepository defines the data access contract for publishers.
type PublisherRepository interface {

	// List returns every publisher ordered by name.
	List(context context.Context) ([]*Publisher, error)

	// Count returns the number of publishers.
	Count(context context.Context) (int, error)

	// FindByID returns the publisher with the given id.
	FindByID(context context.Context, id int) (*Publisher, error)

	// FindByName matches name exactly, ignoring case.
	FindByName(context context.Context, name string) (*Publisher, error)

	// FindByComic returns the publisher of a comic.
	FindByComic(context context.Context, comicID int) (*Publisher, error)

	// Create inserts a publisher and fills its generated ID and URL.
	Create(context context.Context, publisher *Publisher) error

	// Update overwrites the name and headquarters of publisher.ID.
	Update(context context.Context, publisher *Publisher) error

	/*
		Delete removes a publisher.

		Returns:
		  - error: CONFLICT while any comic still references the publisher
	*/
	Delete(context context.Context, id int) error
}

// AuthorRepository defines the data access contract for authors.
type AuthorRepository interface {

	// List returns every author ordered by first name, then last name.
	List(context context.Context) ([]*Author, error)

	// Count returns the number of authors.
	Count(context context.Context) (int, error)

	// FindByID returns the author with the given id.
	FindByID(context context.Context, id int) (*Author, error)

	// FindByName matches both name parts exactly, ignoring case.
	FindByName(context context.Context, firstName, lastName string) (*Author, error)

	// FindByComic returns the author of a comic.
	FindByComic(context context.Context, comicID int) (*Author, error)

	// Create inserts an author and fills its generated ID, Name and URL.
	Create(context context.Context, author *Author) error

	// Update overwrites the name parts of author.ID and refreshes Name.
	Update(context context.Context, author *Author) error

	// Delete removes an author. CONFLICT while any comic references it.
	Delete(context context.Context, id int) error
}

// ComicRepository defines the data access contract for comics and their genre set.
type ComicRepository interface {

	// List returns every comic ordered by title.
	List(context context.Context) ([]*Comic, error)

	// Count returns the number of comics.
	Count(context context.Context) (int, error)

	// FindByID returns the comic with the given id, GenreIDs included.
	FindByID(context context.Context, id int) (*Comic, error)

	// FindByTitleAndAuthor matches the title exactly (ignoring case) for one author.
	FindByTitleAndAuthor(context context.Context, title string, authorID int) (*Comic, error)

	// ListByGenre returns the comics associated with a genre, ordered by title.
	ListByGenre(context context.Context, genreID int) ([]*Comic, error)

	// ListByAuthor returns the comics of an author, ordered by title.
	ListByAuthor(context context.Context, authorID int) ([]*Comic, error)

	// ListByPublisher returns the comics of a publisher, ordered by title.
	ListByPublisher(context context.Context, publisherID int) ([]*Comic, error)

	/*
		Create inserts a comic and fills its generated ID and URL.

		A zero ReleaseDate takes the storage default (the current time), which is
		written back into comic.

		Returns:
		  - error: CONFLICT when the author or publisher does not exist
	*/
	Create(context context.Context, comic *Comic) error

	// Update overwrites every mutable column of comic.ID. GenreIDs is ignored.
	Update(context context.Context, comic *Comic) error

	/*
		ReplaceGenres makes genreIDs the exact genre set of a comic.

		Description: Deletes every association row of the comic, then inserts one
		row per distinct id. Run it inside [Store.InTx] together with the comic
		write so readers never observe the empty intermediate set.
	*/
	ReplaceGenres(context context.Context, comicID int, genreIDs []int) error

	// Delete removes a comic. CONFLICT while volumes reference it; genre rows cascade.
	Delete(context context.Context, id int) error
}

// VolumeRepository defines the data access contract for volumes.
type VolumeRepository interface {

	// ListByComic returns the volumes of a comic ordered by volume number.
	ListByComic(context context.Context, comicID int) ([]*Volume, error)

	// Count returns the number of volumes across all comics.
	Count(context context.Context) (int, error)

	// FindByID returns the volume with the given id.
	FindByID(context context.Context, id int) (*Volume, error)

	// FindByNumber returns the volume of a comic carrying number.
	FindByNumber(context context.Context, comicID, number int) (*Volume, error)

	// MaxNumber returns the highest volume number of a comic; ok is false when it has none.
	MaxNumber(context context.Context, comicID int) (number int, ok bool, err error)

	// Create inserts a volume and fills its generated ID and URL.
	// CONFLICT when the comic already has a volume with the same number.
	Create(context context.Context, volume *Volume) error

	// Update overwrites every mutable column of volume.ID.
	Update(context context.Context, volume *Volume) error

	// Delete removes a volume.
	Delete(context context.Context, id int) error
}

// # Storage Engine

// Store groups the repositories of one storage engine.
//
// Repositories obtained from the Store passed to an [Store.InTx] callback run
// inside that transaction.
type Store interface {
	Genres() GenreRepository
	Publishers() PublisherRepository
	Authors() AuthorRepository
	Comics() ComicRepository
	Volumes() VolumeRepository

	/*
		InTx runs fn inside a transaction.

		Description: The transaction commits when fn returns nil and rolls back on
		any error, so each multi-step write (duplicate check, insert, genre sync)
		appears atomic to concurrent readers.
	*/
	InTx(context context.Context, fn func(tx Store) error) error

	// Ping reports whether the engine can serve statements.
	Ping(context context.Context) error
}
