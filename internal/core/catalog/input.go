// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"time"

	"github.com/taibuivan/comiking/internal/platform/validate"
	"github.com/taibuivan/comiking/pkg/calendar"
	"github.com/taibuivan/comiking/pkg/pointer"
	"github.com/taibuivan/comiking/pkg/textutil"
)

// # Write Inputs

// Inputs are bound from JSON or HTML form bodies. Tags drive the request
// binder (trim, defaults, validation); the service re-checks the same rules
// so it stays safe for callers that skip the binder. validate also normalizes
// text fields in place so every store compares the same bytes.

// GenreInput is the body of the genre create and update forms.
type GenreInput struct {
	Name string `json:"name" form:"name" mod:"trim" validate:"required,max=20"`
}

func (input *GenreInput) validate() error {
	input.Name = textutil.Normalize(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, MaxGenreNameLen)
	return validator.Err()
}

// PublisherInput is the body of the publisher create and update forms.
type PublisherInput struct {
	Name         string `json:"name" form:"name" mod:"trim" validate:"required,max=40"`
	Headquarters string `json:"headquarters" form:"headquarters" mod:"trim" validate:"max=40"`
}

func (input *PublisherInput) validate() error {
	input.Name = textutil.Normalize(input.Name)
	input.Headquarters = textutil.Normalize(input.Headquarters)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, MaxPublisherNameLen)
	validator.MaxLen(FieldHeadquarters, input.Headquarters, MaxHeadquartersLen)
	return validator.Err()
}

// headquarters maps the empty form value to NULL.
func (input *PublisherInput) headquarters() *string {
	value := textutil.Normalize(input.Headquarters)
	if value == "" {
		return nil
	}
	return pointer.To(value)
}

// AuthorInput is the body of the author create and update forms.
type AuthorInput struct {
	FirstName string `json:"first_name" form:"first_name" mod:"trim" validate:"required,max=40"`
	LastName  string `json:"last_name" form:"last_name" mod:"trim" validate:"required,max=40"`
}

func (input *AuthorInput) validate() error {
	input.FirstName = textutil.Normalize(input.FirstName)
	input.LastName = textutil.Normalize(input.LastName)

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).MaxLen(FieldFirstName, input.FirstName, MaxAuthorNameLen)
	validator.Required(FieldLastName, input.LastName).MaxLen(FieldLastName, input.LastName, MaxAuthorNameLen)
	return validator.Err()
}

/*
ComicInput is the body of the comic create and update forms.

ReleaseDate is a calendar day ("1997-12-24"). Empty means "now" on create and
"unchanged" on update. Genres may repeat in a form post; repeats are ignored.
*/
type ComicInput struct {
	Title       string `json:"title" form:"title" mod:"trim" validate:"required,max=100"`
	Summary     string `json:"summary" form:"summary" mod:"trim" validate:"required,max=200"`
	ReleaseDate string `json:"release_date" form:"release_date" mod:"trim" validate:"date"`
	Author      int    `json:"author" form:"author" validate:"required,gt=0"`
	Publisher   int    `json:"publisher" form:"publisher" validate:"required,gt=0"`
	Genres      []int  `json:"genres" form:"genres" default:"[]" validate:"dive,gt=0"`
}

func (input *ComicInput) validate() (time.Time, error) {
	input.Title = textutil.Normalize(input.Title)
	input.Summary = textutil.Normalize(input.Summary)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, MaxComicTitleLen)
	validator.Required(FieldSummary, input.Summary).MaxLen(FieldSummary, input.Summary, MaxComicSummaryLen)
	validator.Date(FieldReleaseDate, input.ReleaseDate, calendar.Input)
	validator.ID(FieldAuthor, input.Author).ID(FieldPublisher, input.Publisher)
	validator.IDs(FieldGenres, input.Genres)
	if err := validator.Err(); err != nil {
		return time.Time{}, err
	}

	return calendar.Parse(input.ReleaseDate)
}

// VolumeInput is the body of the volume create and update forms.
type VolumeInput struct {
	Number      *int   `json:"volume_number" form:"volume_number" validate:"required,gte=0"`
	Title       string `json:"title" form:"title" mod:"trim" validate:"required,max=100"`
	Description string `json:"description" form:"description" mod:"trim" validate:"max=200"`
	ReleaseDate string `json:"release_date" form:"release_date" mod:"trim" validate:"date"`
}

func (input *VolumeInput) validate() (time.Time, error) {
	input.Title = textutil.Normalize(input.Title)
	input.Description = textutil.Normalize(input.Description)

	validator := &validate.Validator{}
	validator.Custom(FieldVolumeNumber, input.Number == nil, "This field is required")
	if input.Number != nil {
		validator.Min(FieldVolumeNumber, *input.Number, 0)
	}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, MaxVolumeTitleLen)
	validator.MaxLen(FieldDescription, input.Description, MaxVolumeDescription)
	validator.Date(FieldReleaseDate, input.ReleaseDate, calendar.Input)
	if err := validator.Err(); err != nil {
		return time.Time{}, err
	}

	return calendar.Parse(input.ReleaseDate)
}
