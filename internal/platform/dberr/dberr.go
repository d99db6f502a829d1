// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Classification
//
//   - pgx.ErrNoRows: NOT_FOUND for the named resource.
//   - 23503 foreign_key_violation: CONFLICT (restrict-delete or dangling reference).
//   - 23505 unique_violation: CONFLICT (duplicate logical entity).
//   - 23514 check_violation: VALIDATION_ERROR.
//   - connection failures, deadlines and cancellation: SERVICE_UNAVAILABLE.
//   - anything else: INTERNAL_ERROR.
package dberr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/comiking/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// resource is the display name of the entity the statement targeted ("Genre", "Comic").
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations carry a SQLSTATE
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return apperr.Conflict(foreignKeyMessage(resource, pgErr)).WithCause(err)
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(fmt.Sprintf("%s already exists", resource)).WithCause(err)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.StringDataRightTruncationDataException:
			return apperr.ValidationError(fmt.Sprintf("%s violates a storage constraint", resource)).WithCause(err)
		}

		if pgerrcode.IsConnectionException(pgErr.Code) || pgerrcode.IsInsufficientResources(pgErr.Code) {
			return apperr.ServiceUnavailable("Storage unavailable").WithCause(err)
		}
	}

	// 3. The engine could not be reached at all
	if IsUnavailable(err) {
		return apperr.ServiceUnavailable("Storage unavailable").WithCause(err)
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUnavailable reports whether err means the storage engine could not serve the
// statement: a dial or network failure, or a request that was cancelled or ran
// out of time.
func IsUnavailable(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// foreignKeyMessage distinguishes a blocked delete from a dangling insert.
//
// PostgreSQL reports a blocked delete with the detail "Key (id)=(1) is still
// referenced from table ...".
func foreignKeyMessage(resource string, pgErr *pgconn.PgError) string {
	if strings.Contains(pgErr.Detail, "is still referenced") {
		return fmt.Sprintf("%s is still referenced and cannot be deleted", resource)
	}
	return fmt.Sprintf("%s references a record that does not exist", resource)
}
