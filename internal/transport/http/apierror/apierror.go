// Package apierror maps domain errors to HTTP responses.
package apierror

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
)

// Error codes returned in the "code" field.
const (
	CodeNotFound          = "not_found"
	CodeForbidden         = "forbidden"
	CodeUnsupportedFormat = "unsupported_format"
	CodeInvalidInput      = "invalid_input"
	CodeUnauthorized      = "unauthorized"
	CodeInternal          = "internal"
)

// Status returns the HTTP status and error code for err.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, CodeUnsupportedFormat
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// JSON writes err as {"error": ..., "code": ...}. Storage failures are not
// echoed to the client; they go to the request's zerolog logger instead.
func JSON(c echo.Context, err error) error {
	status, code := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		zerolog.Ctx(c.Request().Context()).Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
		msg = "internal error"
	}
	return c.JSON(status, map[string]string{"error": msg, "code": code})
}

// Message writes a fixed error message with the given status and code.
func Message(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, map[string]string{"error": msg, "code": code})
}
