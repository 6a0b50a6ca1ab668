package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sthaniya/sthaniya-api/internal/api/metrics"
	"github.com/sthaniya/sthaniya-api/internal/core/domain"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
)

// AuthHandler exposes the credential and verification endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SendVerification mails a registration code to a new address.
//
// @Summary      Send an email verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sendVerificationRequest  true  "Target email"
// @Success      200   {object}  sendVerificationResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/send-verification [post]
func (h *AuthHandler) SendVerification(c echo.Context) error {
	var req sendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.SendVerification(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.VerificationCodesSentTotal.WithLabelValues("local").Inc()
	return c.JSON(http.StatusOK, sendVerificationResponse{
		Message: "Verification code sent successfully",
		Email:   req.Email,
	})
}

// Register creates a local account once the emailed code is confirmed.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details including the emailed code"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		VerificationCode: req.VerificationCode,
	})
	if err != nil {
		observeVerificationFailure(err)
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(domain.ProviderLocal).Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	})
}

// Login authenticates a local account and returns a fresh token.
//
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues(domain.ProviderLocal).Inc()
	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// GoogleRegister starts a federated registration: the ID token is verified
// and a confirmation code is mailed before any account is created.
//
// @Summary      Start a Google registration
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleTokenRequest  true  "Google ID token"
// @Success      200   {object}  googleRegisterResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/google-register [post]
func (h *AuthHandler) GoogleRegister(c echo.Context) error {
	var req googleTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	email, err := h.authService.GoogleRegister(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}

	metrics.VerificationCodesSentTotal.WithLabelValues("google").Inc()
	return c.JSON(http.StatusOK, googleRegisterResponse{
		Message:          "Verification code sent to your email",
		Email:            email,
		RegistrationType: "google",
	})
}

// VerifyGoogleRegistration completes a staged federated registration.
//
// @Summary      Confirm a Google registration code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyGoogleRequest  true  "Email and emailed code"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/verify-google-registration [post]
func (h *AuthHandler) VerifyGoogleRegistration(c echo.Context) error {
	var req verifyGoogleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.VerifyGoogleRegistration(c.Request().Context(), req.Email, req.VerificationCode)
	if err != nil {
		observeVerificationFailure(err)
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(domain.ProviderGoogle).Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully with Google",
		Token:   token,
		User:    user,
	})
}

// GoogleLogin signs in an existing account with a Google ID token. A missing
// account is a 404 carrying shouldRegister so the client can switch flows.
//
// @Summary      Login with a Google ID token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleTokenRequest  true  "Google ID token"
// @Success      200   {object}  authResponse
// @Failure      404   {object}  googleLoginNotFoundResponse
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/google-login [post]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.GoogleLogin(c.Request().Context(), req.Token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, googleLoginNotFoundResponse{
				Message:        "No account found. Please register first.",
				ShouldRegister: true,
			})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues(domain.ProviderGoogle).Inc()
	return c.JSON(http.StatusOK, authResponse{
		Message: "Google login successful",
		Token:   token,
		User:    user,
	})
}

// Profile returns the authenticated user's sanitized record.
//
// @Summary      Get the authenticated profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	fresh, err := h.authService.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: fresh})
}

// UpdateRole records the authenticated user's chosen role.
//
// @Summary      Choose a role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateRoleRequest  true  "Role to set"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/auth/update-role [put]
func (h *AuthHandler) UpdateRole(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.authService.UpdateRole(c.Request().Context(), user.ID, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: updated})
}

// observeVerificationFailure maps code-gate errors onto the failure counter.
func observeVerificationFailure(err error) {
	switch {
	case errors.Is(err, domain.ErrCodeNotFound):
		metrics.VerificationFailuresTotal.WithLabelValues("not_found").Inc()
	case errors.Is(err, domain.ErrCodeExpired):
		metrics.VerificationFailuresTotal.WithLabelValues("expired").Inc()
	case errors.Is(err, domain.ErrTooManyAttempts):
		metrics.VerificationFailuresTotal.WithLabelValues("too_many_attempts").Inc()
	case errors.Is(err, domain.ErrCodeInvalid):
		metrics.VerificationFailuresTotal.WithLabelValues("mismatch").Inc()
	}
}
