// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/juju/errors"

	"github.com/danielhkuo/labdesk/middleware"
)

// writeError maps an error kind to a status code and writes the failure
// envelope. Anything that is not a client error is logged and reported as
// a 500 with failure as the message.
func writeError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	switch {
	case errors.Is(err, errors.NotValid):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errors.NotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errors.AlreadyExists):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error(failure,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, failure)
	}
}
