// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/taibuivan/comiking/internal/platform/apperr"
	"github.com/taibuivan/comiking/internal/platform/constants"
	"github.com/taibuivan/comiking/internal/platform/ctxutil"
	"github.com/taibuivan/comiking/internal/platform/validate"
)

// DateLayout is the calendar-day format accepted by the `date` validation tag.
const DateLayout = "2006-01-02"

// maxFormMemory bounds multipart parsing; catalog forms carry no files.
const maxFormMemory = 1 << 20

var unknownFieldsRE = regexp.MustCompile(`^json: unknown field "(.*)"$`)

// Binder decodes a request body into a struct, cleans it with mold modifiers,
// fills defaults, and validates it.
//
// Struct tags:
//
//	json:"name" form:"name" mod:"trim" default:"..." validate:"required,max=20"
type Binder struct {
	formDecoder *schema.Decoder
	conform     *mold.Transformer
	validate    *validator.Validate
}

// NewBinder initializes a Binder with the catalog validation functions registered.
func NewBinder() *Binder {
	formDecoder := schema.NewDecoder()
	formDecoder.SetAliasTag("form")
	// HTML forms post their submit button too.
	formDecoder.IgnoreUnknownKeys(true)

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("date", dateValidator); err != nil {
		panic(fmt.Sprintf("binder: register date validation: %v", err))
	}

	return &Binder{
		formDecoder: formDecoder,
		conform:     modifiers.New(),
		validate:    validate,
	}
}

/*
Bind decodes, modifies, and validates the request body into target.

Accepted bodies are application/json (unknown fields rejected) and HTML forms
(application/x-www-form-urlencoded or multipart/form-data).

Returns:
  - error: *apperr.AppError (VALIDATION_ERROR or 415) describing the first
    problem found, with every failed field listed in Details
*/
func (binder *Binder) Bind(request *http.Request, target any) error {
	if request.ContentLength == 0 {
		return validate.ErrInvalidBody
	}

	contentType := request.Header.Get(constants.HeaderContentType)
	switch {
	case strings.HasPrefix(contentType, constants.MIMEApplicationJSON):
		if err := decodeJSON(request, target); err != nil {
			return err
		}
	case strings.HasPrefix(contentType, constants.MIMEApplicationForm),
		strings.HasPrefix(contentType, constants.MIMEMultipartForm):
		if err := binder.decodeForm(request, target); err != nil {
			return err
		}
	default:
		return apperr.UnsupportedMediaType(contentType)
	}

	if err := binder.conform.Struct(request.Context(), target); err != nil {
		return apperr.Internal(fmt.Errorf("binder: conform: %w", err))
	}

	if err := defaults.Set(target); err != nil {
		return apperr.Internal(fmt.Errorf("binder: defaults: %w", err))
	}

	if err := binder.validate.Struct(target); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return apperr.Internal(fmt.Errorf("binder: validate: %w", err))
		}

		details := make([]apperr.FieldError, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			details = append(details, apperr.FieldError{
				Field:   fieldError.Field(),
				Message: formatValidationError(fieldError),
			})
		}
		return apperr.ValidationError(details[0].Message, details...)
	}

	return nil
}

func decodeJSON(request *http.Request, target any) error {
	defer request.Body.Close()

	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		// return better error message when there are unknown fields
		if matches := unknownFieldsRE.FindStringSubmatch(err.Error()); len(matches) > 1 {
			return validate.FieldError(matches[1], fmt.Sprintf("Unknown parameter %q", matches[1]))
		}

		var typeError *json.UnmarshalTypeError
		if errors.As(err, &typeError) {
			field := strings.Trim(typeError.Field, ".")
			return validate.FieldError(field, formatUnmarshalTypeError(typeError))
		}

		ctxutil.GetLogger(request.Context()).Debug("json_decode_failed", slog.Any("error", err))
		return validate.ErrInvalidBody
	}

	return nil
}

func (binder *Binder) decodeForm(request *http.Request, target any) error {
	if err := request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return validate.ErrInvalidBody
	}

	if err := binder.formDecoder.Decode(target, request.PostForm); err != nil {
		var multiError schema.MultiError
		if errors.As(err, &multiError) {
			for key, fieldErr := range multiError {
				var conversionError schema.ConversionError
				if errors.As(fieldErr, &conversionError) {
					return validate.FieldError(key, formatSchemaConversionError(conversionError))
				}
			}
		}
		return validate.ErrInvalidBody
	}

	return nil
}

// dateValidator ensures the value is a calendar day in [DateLayout] or the empty
// string. Empty means "use the default release date".
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}
