package domain

import "errors"

// Sentinel errors shared by services, repositories, and the HTTP error handler.
// Keeping a single taxonomy here is what guarantees equivalent failures produce
// equivalent responses on every route.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrGoogleAccount is returned when a password login targets an account
	// that only has a federated identity.
	ErrGoogleAccount = errors.New("please sign in with Google")

	ErrCodeNotFound     = errors.New("verification code not found")
	ErrCodeExpired      = errors.New("verification code has expired")
	ErrCodeInvalid      = errors.New("invalid verification code")
	ErrTooManyAttempts  = errors.New("too many verification attempts")
	ErrMailDelivery     = errors.New("failed to send verification code")
	ErrGoogleAuthFailed = errors.New("google authentication failed")

	// ErrStoryNotFound deliberately covers both "does not exist" and "exists
	// but is owned by someone else" so a caller cannot probe for resources it
	// may not touch.
	ErrStoryNotFound   = errors.New("story not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUploadNotFound  = errors.New("upload not found")
)
