// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/comiking/internal/platform/apperr"
)

/*
TestNotFound_Message names the missing resource.
*/
func TestNotFound_Message(t *testing.T) {
	err := apperr.NotFound("Comic")

	assert.Equal(t, "Comic not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.True(t, apperr.IsNotFound(err))
	assert.False(t, apperr.IsConflict(err))
}

/*
TestAppError_WrappedChain verifies that kinds survive fmt.Errorf wrapping.
*/
func TestAppError_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("catalog: delete author: %w", apperr.Conflict("Author is still referenced"))

	assert.True(t, apperr.IsConflict(wrapped))
	assert.True(t, errors.Is(wrapped, apperr.Conflict("")))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
}

/*
TestAppError_WithCause keeps the original untouched.
*/
func TestAppError_WithCause(t *testing.T) {
	base := apperr.ServiceUnavailable("Storage unavailable")
	cause := errors.New("dial tcp: refused")

	withCause := base.WithCause(cause)

	assert.Nil(t, base.Cause)
	assert.ErrorIs(t, withCause, cause)
	assert.Equal(t, apperr.CodeServiceUnavailable, withCause.Code)
}

/*
TestInternal_HidesCause ensures the client message never leaks the cause.
*/
func TestInternal_HidesCause(t *testing.T) {
	err := apperr.Internal(errors.New("syntax error at or near SELECT"))

	assert.Equal(t, "An unexpected error occurred", err.Error())
	assert.True(t, apperr.IsAppError(err))
}
