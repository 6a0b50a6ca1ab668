package handler

import "github.com/sthaniya/sthaniya-api/internal/core/domain"

type sendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type sendVerificationResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type registerRequest struct {
	Name             string `json:"name"             validate:"required"`
	Email            string `json:"email"            validate:"required,email"`
	Password         string `json:"password"         validate:"required,min=6"`
	VerificationCode string `json:"verificationCode" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// googleTokenRequest carries a Google-issued ID token.
type googleTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type verifyGoogleRequest struct {
	Email            string `json:"email"            validate:"required,email"`
	VerificationCode string `json:"verificationCode" validate:"required"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user contributor"`
}

// authResponse is the envelope returned by every credential operation. The
// user projection never includes the password hash or the raw google id.
type authResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// googleRegisterResponse acknowledges that a code was mailed; account creation
// happens on verify-google-registration.
type googleRegisterResponse struct {
	Message          string `json:"message"`
	Email            string `json:"email"`
	RegistrationType string `json:"registrationType"`
}

// googleLoginNotFoundResponse tells the client to run the registration flow.
type googleLoginNotFoundResponse struct {
	Message        string `json:"message"`
	ShouldRegister bool   `json:"shouldRegister"`
}

type profileResponse struct {
	User *domain.User `json:"user"`
}
