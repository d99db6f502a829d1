// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/comiking/internal/platform/apperr"
	"github.com/taibuivan/comiking/internal/platform/dberr"
)

/*
TestWrap_Classification maps storage failures onto the closed error kinds.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{
			name:    "no_rows",
			err:     pgx.ErrNoRows,
			code:    apperr.CodeNotFound,
			message: "Author not found",
		},
		{
			name: "restrict_delete",
			err: &pgconn.PgError{
				Code:   pgerrcode.ForeignKeyViolation,
				Detail: `Key (id)=(3) is still referenced from table "comics".`,
			},
			code:    apperr.CodeConflict,
			message: "Author is still referenced and cannot be deleted",
		},
		{
			name: "dangling_reference",
			err: &pgconn.PgError{
				Code:   pgerrcode.ForeignKeyViolation,
				Detail: `Key (author_id)=(99) is not present in table "authors".`,
			},
			code:    apperr.CodeConflict,
			message: "Author references a record that does not exist",
		},
		{
			name:    "unique",
			err:     &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			code:    apperr.CodeConflict,
			message: "Author already exists",
		},
		{
			name:    "check",
			err:     &pgconn.PgError{Code: pgerrcode.CheckViolation},
			code:    apperr.CodeValidation,
			message: "Author violates a storage constraint",
		},
		{
			name: "deadline",
			err:  fmt.Errorf("query: %w", context.DeadlineExceeded),
			code: apperr.CodeServiceUnavailable,
		},
		{
			name: "cancelled",
			err:  fmt.Errorf("begin: %w", context.Canceled),
			code: apperr.CodeServiceUnavailable,
		},
		{
			name: "unknown",
			err:  &pgconn.PgError{Code: pgerrcode.SyntaxError},
			code: apperr.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "Author")

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, ae.Message)
			}
		})
	}
}

/*
TestWrap_Nil passes success through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Genre"))
}

/*
TestWrap_AlreadyClassified does not re-wrap application errors.
*/
func TestWrap_AlreadyClassified(t *testing.T) {
	original := apperr.NotFound("Volume")
	assert.Same(t, original, dberr.Wrap(original, "Comic"))
}

/*
TestIsUnavailable recognises dial failures.
*/
func TestIsUnavailable(t *testing.T) {
	assert.True(t, dberr.IsUnavailable(context.DeadlineExceeded))
	assert.True(t, dberr.IsUnavailable(fmt.Errorf("acquire: %w", context.Canceled)))
	assert.False(t, dberr.IsUnavailable(errors.New("boom")))
}
