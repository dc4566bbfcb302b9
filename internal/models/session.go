package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record of an issued token (keyed by the token's
// jti claim). Deleting it revokes the token before its natural expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
