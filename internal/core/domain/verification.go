package domain

import "time"

// MaxVerificationAttempts is the number of wrong codes tolerated before the
// entry is discarded and the user must request a new one.
const MaxVerificationAttempts = 3

// GoogleProfile is the identity payload extracted from a verified Google ID
// token, held in a VerificationEntry until the emailed code is confirmed.
type GoogleProfile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	GoogleID       string `json:"googleId"`
	ProfilePicture string `json:"profilePicture"`
}

// VerificationEntry is a pending email verification, keyed by email address.
// Entries are short-lived and single-use; they never touch the database.
type VerificationEntry struct {
	Code      string         `json:"code"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Attempts  int            `json:"attempts"`
	Google    *GoogleProfile `json:"google,omitempty"`
}

// Expired reports whether the entry's expiry instant has passed.
func (e VerificationEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
