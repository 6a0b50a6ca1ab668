package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmailOrGoogleID(_ context.Context, _, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, _, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) LinkGoogle(_ context.Context, _, _, _ string) error { return nil }

func (r *stubUserRepo) TouchLastLogin(_ context.Context, _ string, _ time.Time) error { return nil }

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authMessage(t *testing.T, err error) string {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", httpErr.Code)
	}
	msg, ok := httpErr.Message.(string)
	if !ok {
		t.Fatalf("expected string message, got %T", httpErr.Message)
	}
	return msg
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Name: "Alice", Email: "alice@example.com"},
	}}
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":   "user-1",
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret", repo)(func(c echo.Context) error {
		called = true
		user, ok := c.Get(ContextKeyUser).(*domain.User)
		if !ok || user.ID != "user-1" {
			t.Fatalf("user not set in context")
		}
		if c.Get(ContextKeyUserID) != "user-1" {
			t.Fatalf("user id not set in context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth("secret", &stubUserRepo{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if msg := authMessage(t, err); msg != "Access token required" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth("secret", &stubUserRepo{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if msg := authMessage(t, err); msg != "Access token required" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth("secret", &stubUserRepo{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if msg := authMessage(t, err); msg != "Token has expired" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth("secret", &stubUserRepo{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if msg := authMessage(t, err); msg != "Invalid token" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuth_DeletedUser(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub": "user-gone",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth("secret", repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if msg := authMessage(t, err); msg != "Token is not valid - user not found" {
		t.Fatalf("unexpected message: %q", msg)
	}
}
