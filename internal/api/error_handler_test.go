package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp.Message
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", fmt.Errorf("%w: title is required", domain.ErrValidation), http.StatusBadRequest, "validation failed: title is required"},
		{"user exists", domain.ErrUserExists, http.StatusBadRequest, "user already exists with this email"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, "invalid credentials"},
		{"google account", domain.ErrGoogleAccount, http.StatusBadRequest, "please sign in with Google"},
		{"code not found", domain.ErrCodeNotFound, http.StatusBadRequest, "Verification code not found. Please request a new one."},
		{"code expired", domain.ErrCodeExpired, http.StatusBadRequest, "Verification code has expired. Please request a new one."},
		{"too many attempts", domain.ErrTooManyAttempts, http.StatusBadRequest, "Too many verification attempts. Please request a new code."},
		{"code mismatch", domain.ErrCodeInvalid, http.StatusBadRequest, "Invalid verification code"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"story not found", domain.ErrStoryNotFound, http.StatusNotFound, "Story not found"},
		{"comment not found", domain.ErrCommentNotFound, http.StatusNotFound, "Comment not found"},
		{"google auth failed", domain.ErrGoogleAuthFailed, http.StatusInternalServerError, "Google authentication failed"},
		{"mail delivery", domain.ErrMailDelivery, http.StatusInternalServerError, "Failed to send verification code"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if msg != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, msg)
			}
		})
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "Access token required"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if msg != "Access token required" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestHTTPErrorHandler_UnknownRoute(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusNotFound))
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if msg != "API endpoint not found" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	// The real cause stays in the log, never in the response.
	if msg != "Internal server error" {
		t.Fatalf("unexpected message: %q", msg)
	}
}
