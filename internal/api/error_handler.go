package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/oncallhq/user-directory/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// fieldErrorResponse carries aggregated per-field validation messages for the
// profile-update flow.
type fieldErrorResponse struct {
	Success bool              `json:"success"`
	Errors  map[string]string `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}, or
//     {"success": false, "errors": {...}} for aggregated field errors.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var fieldErrs domain.FieldErrors
		if errors.As(err, &fieldErrs) {
			_ = c.JSON(http.StatusBadRequest, fieldErrorResponse{Success: false, Errors: fieldErrs})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. The messages are
	// contract strings; they pass through verbatim.
	var forbidden *domain.ForbiddenError
	if errors.As(err, &forbidden) {
		return http.StatusForbidden, forbidden.Reason
	}
	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, invalid.Message
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, domain.ErrNotAuthenticated.Error()
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusBadRequest, domain.ErrEmailExists.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, domain.ErrUserNotFound.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
