package domain

import "time"

// Upload is the flat, unauthenticated story variant: a name/email pair, a
// description, and a single image filename under the uploads directory. It has
// no owner reference and is intentionally kept separate from Story.
type Upload struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
