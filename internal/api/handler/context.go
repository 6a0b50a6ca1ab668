package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sthaniya/sthaniya-api/internal/api/middleware"
	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// ctxUser extracts the resolved user injected by the Auth middleware. Its
// presence proves the middleware ran; a protected route registered without it
// fails fast here instead of acting on a zero identity.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextKeyUser).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}
	return user, nil
}
