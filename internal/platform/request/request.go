// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and body decoding,
ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/comiking/internal/platform/apperr"
)

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID parses a named URL parameter as a catalog surrogate key.

Parameters:
  - request: *http.Request
  - name: string (Route parameter, usually "id")
  - resource: string (Display name used in the not-found message)

Returns:
  - int: The positive identifier
  - error: apperr.NotFound when the segment is not a positive integer, since no
    entity can live at that URL
*/
func ID(request *http.Request, name, resource string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(request, name))
	if err != nil || id <= 0 {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}
