// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/comiking/internal/platform/apperr"
	"github.com/taibuivan/comiking/pkg/calendar"
)

// # Volume Views

// VolumeDetail is a volume with its owning comic.
type VolumeDetail struct {
	Volume *Volume `json:"volume"`
	Comic  *Comic  `json:"comic"`
}

// VolumeForm holds the defaults of the volume create form.
type VolumeForm struct {
	Comic            *Comic `json:"comic"`
	NextVolumeNumber int    `json:"next_volume_number"`
}

// VolumeDetail fetches a volume and then its comic.
func (service *Service) VolumeDetail(context context.Context, id int) (*VolumeDetail, error) {
	volume, err := service.store.Volumes().FindByID(context, id)
	if err != nil {
		return nil, err
	}

	comic, err := service.store.Comics().FindByID(context, volume.ComicID)
	if err != nil {
		return nil, err
	}
	return &VolumeDetail{Volume: volume, Comic: comic}, nil
}

/*
VolumeForm resolves the comic a new volume is added to and suggests its number.

Description: The suggestion is the highest existing number plus one, or 1 for a
comic without volumes. It is not reserved: two concurrent submissions with the
same number are settled by the (comic, number) unique key.
*/
func (service *Service) VolumeForm(context context.Context, comicID int) (*VolumeForm, error) {
	form := &VolumeForm{}
	group, groupContext := errgroup.WithContext(context)

	group.Go(func() (err error) {
		form.Comic, err = service.store.Comics().FindByID(groupContext, comicID)
		return err
	})
	group.Go(func() (err error) {
		form.NextVolumeNumber, err = service.NextVolumeNumber(groupContext, comicID)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return form, nil
}

// NextVolumeNumber returns the number suggested for the next volume of a comic.
func (service *Service) NextVolumeNumber(context context.Context, comicID int) (int, error) {
	highest, ok, err := service.store.Volumes().MaxNumber(context, comicID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 1, nil
	}
	return highest + 1, nil
}

// # Volume Writes

/*
CreateVolume adds a volume to a comic.

Description: Unlike the other entities a resubmitted volume is not merged into
the existing one: a number already used within the comic is a CONFLICT. The
pre-flight lookup gives the friendly message; the unique key closes the race.

Returns:
  - *Volume: The inserted volume
  - error: NOT_FOUND (comic), CONFLICT, VALIDATION_ERROR, or a storage failure
*/
func (service *Service) CreateVolume(context context.Context, comicID int, input VolumeInput) (*Volume, error) {
	releaseDate, err := input.validate()
	if err != nil {
		return nil, err
	}

	var volume *Volume

	err = service.store.InTx(context, func(tx Store) error {
		if _, err := tx.Comics().FindByID(context, comicID); err != nil {
			return err
		}

		if err := checkVolumeNumber(context, tx, comicID, *input.Number, 0); err != nil {
			return err
		}

		volume = &Volume{
			ComicID:     comicID,
			Number:      *input.Number,
			Title:       input.Title,
			Description: input.Description,
			ReleaseDate: releaseDate,
		}
		return tx.Volumes().Create(context, volume)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("volume_created",
		slog.Int("volume_id", volume.ID),
		slog.Int("comic_id", comicID),
		slog.Int("volume_number", volume.Number),
	)
	return volume, nil
}

// UpdateVolume overwrites a volume within its comic. Nothing is written when
// every field matches (release date by calendar day); an empty release date
// keeps the stored one.
func (service *Service) UpdateVolume(context context.Context, id int, input VolumeInput) (*Volume, bool, error) {
	releaseDate, err := input.validate()
	if err != nil {
		return nil, false, err
	}

	var volume *Volume
	updated := false

	err = service.store.InTx(context, func(tx Store) error {
		current, err := tx.Volumes().FindByID(context, id)
		if err != nil {
			return err
		}

		if releaseDate.IsZero() || calendar.SameDay(releaseDate, current.ReleaseDate) {
			releaseDate = current.ReleaseDate
		}

		volume = current
		if current.Number == *input.Number &&
			current.Title == input.Title &&
			current.Description == input.Description &&
			calendar.SameDay(current.ReleaseDate, releaseDate) {
			return nil
		}

		if current.Number != *input.Number {
			if err := checkVolumeNumber(context, tx, current.ComicID, *input.Number, id); err != nil {
				return err
			}
		}

		volume = &Volume{
			ID:          id,
			ComicID:     current.ComicID,
			Number:      *input.Number,
			Title:       input.Title,
			Description: input.Description,
			ReleaseDate: releaseDate,
		}
		updated = true
		return tx.Volumes().Update(context, volume)
	})
	if err != nil {
		return nil, false, err
	}

	if updated {
		service.logger.Info("volume_updated", slog.Int("volume_id", id))
	} else {
		service.logger.Debug("volume_update_skipped", slog.Int("volume_id", id))
	}
	return volume, updated, nil
}

// DeleteVolume removes a volume. Callers redirect to the owning comic.
func (service *Service) DeleteVolume(context context.Context, id int) (*Volume, error) {
	var volume *Volume

	err := service.store.InTx(context, func(tx Store) (err error) {
		if volume, err = tx.Volumes().FindByID(context, id); err != nil {
			return err
		}
		return tx.Volumes().Delete(context, id)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Warn("volume_deleted", slog.Int("volume_id", id), slog.Int("comic_id", volume.ComicID))
	return volume, nil
}

// checkVolumeNumber rejects a number held by another volume of the comic.
// selfID excludes the volume being updated.
func checkVolumeNumber(context context.Context, tx Store, comicID, number, selfID int) error {
	existing, err := tx.Volumes().FindByNumber(context, comicID, number)
	if err = ignoreNotFound(err); err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return apperr.Conflict(fmt.Sprintf("Volume %d already exists for this comic", number))
	}
	return nil
}
