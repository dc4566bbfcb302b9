package models

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// Conversation is the durable record of a direct-message thread between
// exactly two users. The pair is stored normalized (ParticipantA < ParticipantB
// by byte order) so the unique index on the pair makes get-or-create idempotent.
type Conversation struct {
	ID            uuid.UUID  `json:"id"`
	ParticipantA  uuid.UUID  `json:"participant_a"`
	ParticipantB  uuid.UUID  `json:"participant_b"`
	LastMessageID *uuid.UUID `json:"last_message_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NormalizePair orders two user IDs into the canonical stored order.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// OtherParticipant returns the participant that is not userID. The caller is
// expected to have checked membership first.
func (c *Conversation) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}
