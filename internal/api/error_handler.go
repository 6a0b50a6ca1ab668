package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound && he.Message == http.StatusText(http.StatusNotFound) {
			return http.StatusNotFound, "API endpoint not found"
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. The documented contract
	// reports validation problems, conflicts, and bad credentials all as 400.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrGoogleAccount):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrCodeNotFound):
		return http.StatusBadRequest, "Verification code not found. Please request a new one."
	case errors.Is(err, domain.ErrCodeExpired):
		return http.StatusBadRequest, "Verification code has expired. Please request a new one."
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusBadRequest, "Too many verification attempts. Please request a new code."
	case errors.Is(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, "Invalid verification code"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrStoryNotFound):
		return http.StatusNotFound, "Story not found"
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "Comment not found"
	case errors.Is(err, domain.ErrUploadNotFound):
		return http.StatusNotFound, "Story not found"
	case errors.Is(err, domain.ErrGoogleAuthFailed):
		return http.StatusInternalServerError, "Google authentication failed"
	case errors.Is(err, domain.ErrMailDelivery):
		return http.StatusInternalServerError, "Failed to send verification code"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
