// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"

	"github.com/taibuivan/comiking/internal/platform/apperr"
	"github.com/taibuivan/comiking/pkg/slice"
)

// # Sample Data

type seedComic struct {
	title       string
	summary     string
	releaseDate string
	author      int // index into seedAuthors
	publisher   int // index into seedPublishers
	genres      []int
	volumes     []seedVolume
}

type seedVolume struct {
	number      int
	title       string
	description string
	releaseDate string
}

var seedGenres = []string{
	"Action", "Adventure", "Comedy", "Drama", "Fantasy", "Horror", "Mystery",
	"Romance", "Sci-Fi", "Slice of Life", "Sports", "Supernatural", "Thriller",
}

var seedPublishers = []string{
	"Shueisha", "Kodansha", "Shogakukan", "Hakusensha", "Kadokawa Shoten",
	"Square Enix", "Akita Shoten", "Futabasha", "Shonen Gahosha", "Tokuma Shoten",
	"ASCII Media Works", "Houbunsha", "Media Factory",
}

const seedHeadquarters = "Tokyo, Japan"

var seedAuthors = [][2]string{
	{"Eiichiro", "Oda"}, {"Masashi", "Kishimoto"}, {"Hajime", "Isayama"},
	{"Akira", "Toriyama"}, {"Yoshihiro", "Togashi"}, {"Takehiko", "Inoue"},
	{"Naoko", "Takeuchi"}, {"Tite", "Kubo"}, {"Kentaro", "Miura"},
	{"Rumiko", "Takahashi"}, {"Hiromu", "Arakawa"}, {"Clamp", "Clamp"},
	{"Osamu", "Tezuka"},
}

// Genre indexes below are 1-based, matching the order of seedGenres.
var seedComics = []seedComic{
	{"One Piece", "A story of a young pirate’s quest to become the Pirate King.", "1997-12-24", 0, 0, []int{1, 2, 6, 9}, []seedVolume{
		{1, "One Piece Vol. 1", "The beginning of Luffy’s journey", "1997-12-24"},
		{2, "One Piece Vol. 2", "Luffy continues his adventure.", "1997-12-25"},
		{3, "One Piece Vol. 3", "The Straw Hat crew grows.", "1998-03-24"},
	}},
	{"Naruto", "The journey of a young ninja seeking recognition and belonging.", "1999-09-21", 1, 1, []int{1, 2, 6, 9}, []seedVolume{
		{1, "Naruto Vol. 1", "Naruto’s early adventures", "1999-09-21"},
		{2, "Naruto Vol. 2", "Naruto’s first mission.", "1999-11-21"},
		{3, "Naruto Vol. 3", "The Chunin Exams begin.", "2000-01-21"},
	}},
	{"Attack on Titan", "Humanity’s fight against giant creatures known as Titans.", "2009-03-17", 2, 2, []int{6, 9, 12}, []seedVolume{
		{1, "Attack on Titan Vol. 1", "The story of humanity’s fight against the Titans", "2009-03-17"},
		{2, "Attack on Titan Vol. 2", "The battle against the Titans continues.", "2009-06-17"},
		{3, "Attack on Titan Vol. 3", "Eren’s Titan powers revealed.", "2009-09-17"},
	}},
	{"Dragon Ball", "A boy’s quest for powerful orbs and his battles to protect the Earth.", "1984-09-10", 3, 3, []int{1, 2, 9, 12}, []seedVolume{
		{1, "Dragon Ball Vol. 1", "Goku’s introduction and early training", "1984-09-10"},
		{2, "Dragon Ball Vol. 2", "Goku’s first tournament.", "1984-11-10"},
		{3, "Dragon Ball Vol. 3", "The battle against the Red Ribbon Army.", "1985-02-10"},
	}},
	{"Yu Yu Hakusho", "A delinquent’s afterlife adventures as a Spirit Detective.", "1990-12-10", 4, 4, []int{1, 2, 12}, []seedVolume{
		{1, "Yu Yu Hakusho Vol. 1", "Yusuke’s unexpected death and revival", "1990-12-10"},
		{2, "Yu Yu Hakusho Vol. 2", "Yusuke’s first case as Spirit Detective.", "1991-02-10"},
		{3, "Yu Yu Hakusho Vol. 3", "The Dark Tournament begins.", "1991-05-10"},
	}},
	{"Slam Dunk", "A high school delinquent joins the basketball team and discovers his love for the sport.", "1990-10-01", 5, 5, []int{1, 9, 12}, []seedVolume{
		{1, "Slam Dunk Vol. 1", "Hanamichi Sakuragi’s start in basketball", "1990-10-01"},
		{2, "Slam Dunk Vol. 2", "Sakuragi’s basketball skills improve.", "1990-12-01"},
		{3, "Slam Dunk Vol. 3", "Shohoku’s first match.", "1991-02-01"},
	}},
	{"Sailor Moon", "A teenage girl transforms into a magical warrior to protect the Earth.", "1992-07-06", 6, 6, []int{2, 6, 12}, []seedVolume{
		{1, "Sailor Moon Vol. 1", "The awakening of Sailor Moon", "1992-07-06"},
		{2, "Sailor Moon Vol. 2", "The awakening of more Sailor Scouts.", "1992-10-06"},
		{3, "Sailor Moon Vol. 3", "The battle against the Dark Kingdom.", "1993-01-06"},
	}},
	{"Bleach", "A teenager gains the powers of a Soul Reaper and battles evil spirits.", "2001-08-07", 7, 7, []int{1, 9, 12}, []seedVolume{
		{1, "Bleach Vol. 1", "Ichigo becomes a Soul Reaper", "2001-08-07"},
		{2, "Bleach Vol. 2", "Ichigo’s first real battle as a Soul Reaper.", "2001-11-07"},
		{3, "Bleach Vol. 3", "The Soul Society arc begins.", "2002-02-07"},
	}},
	{"Berserk", "The dark journey of a mercenary seeking revenge and battling evil forces.", "1990-11-26", 8, 8, []int{1, 12, 13}, []seedVolume{
		{1, "Berserk Vol. 1", "Guts’ dark journey begins", "1990-11-26"},
		{2, "Berserk Vol. 2", "Guts joins the Band of the Hawk.", "1991-02-26"},
		{3, "Berserk Vol. 3", "The Eclipse event.", "1991-05-26"},
	}},
	{"Inuyasha", "A modern-day girl is transported to the Sengoku period and teams up with a half-demon.", "1996-11-18", 9, 9, []int{2, 12, 13}, []seedVolume{
		{1, "Inuyasha Vol. 1", "Kagome is transported to the Sengoku period", "1996-11-18"},
		{2, "Inuyasha Vol. 2", "Kagome and Inuyasha’s journey begins.", "1997-01-18"},
		{3, "Inuyasha Vol. 3", "The Shikon Jewel’s shards are scattered.", "1997-03-18"},
	}},
}

// SeedReport counts the rows a [Service.Seed] run inserted.
type SeedReport struct {
	Genres     int `json:"genres"`
	Publishers int `json:"publishers"`
	Authors    int `json:"authors"`
	Comics     int `json:"comics"`
	Volumes    int `json:"volumes"`
}

/*
Seed loads the sample catalog in a single transaction.

Description: Every record goes through the regular create path, so running
Seed twice inserts nothing the second time. Existing volumes are left alone.

Returns:
  - *SeedReport: Rows inserted by this run
  - error: Any failure; nothing is kept in that case
*/
func (service *Service) Seed(context context.Context) (*SeedReport, error) {
	report := &SeedReport{}

	err := service.store.InTx(context, func(tx Store) error {
		seeder := &Service{store: tx, logger: service.logger}

		genreIDs := make([]int, len(seedGenres))
		for i, name := range seedGenres {
			genre, created, err := seeder.CreateGenre(context, GenreInput{Name: name})
			if err != nil {
				return err
			}
			genreIDs[i] = genre.ID
			report.Genres += tally(created)
		}

		publisherIDs := make([]int, len(seedPublishers))
		for i, name := range seedPublishers {
			publisher, created, err := seeder.CreatePublisher(context, PublisherInput{Name: name, Headquarters: seedHeadquarters})
			if err != nil {
				return err
			}
			publisherIDs[i] = publisher.ID
			report.Publishers += tally(created)
		}

		authorIDs := make([]int, len(seedAuthors))
		for i, name := range seedAuthors {
			author, created, err := seeder.CreateAuthor(context, AuthorInput{FirstName: name[0], LastName: name[1]})
			if err != nil {
				return err
			}
			authorIDs[i] = author.ID
			report.Authors += tally(created)
		}

		for _, entry := range seedComics {
			genres := slice.Map(entry.genres, func(position int) int { return genreIDs[position-1] })

			comic, created, err := seeder.CreateComic(context, ComicInput{
				Title:       entry.title,
				Summary:     entry.summary,
				ReleaseDate: entry.releaseDate,
				Author:      authorIDs[entry.author],
				Publisher:   publisherIDs[entry.publisher],
				Genres:      genres,
			})
			if err != nil {
				return err
			}
			report.Comics += tally(created)

			for _, volume := range entry.volumes {
				number := volume.number
				_, err := seeder.CreateVolume(context, comic.ID, VolumeInput{
					Number:      &number,
					Title:       volume.title,
					Description: volume.description,
					ReleaseDate: volume.releaseDate,
				})
				if apperr.IsConflict(err) {
					continue
				}
				if err != nil {
					return err
				}
				report.Volumes++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("catalog_seeded",
		slog.Int("genres", report.Genres),
		slog.Int("publishers", report.Publishers),
		slog.Int("authors", report.Authors),
		slog.Int("comics", report.Comics),
		slog.Int("volumes", report.Volumes),
	)
	return report, nil
}

func tally(created bool) int {
	if created {
		return 1
	}
	return 0
}
