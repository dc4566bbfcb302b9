package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationFollow           NotificationType = "follow"
	NotificationLike             NotificationType = "like"
	NotificationComment          NotificationType = "comment"
	NotificationMessage          NotificationType = "message"
	NotificationProfileView      NotificationType = "profile_view"
	NotificationInvestorInterest NotificationType = "investor_interest"
	NotificationPostShare        NotificationType = "post_share"
)

func ValidNotificationType(t string) bool {
	switch NotificationType(t) {
	case NotificationFollow, NotificationLike, NotificationComment,
		NotificationMessage, NotificationProfileView,
		NotificationInvestorInterest, NotificationPostShare:
		return true
	}
	return false
}

// Notification is durably created by the action that triggered it (like,
// comment, follow, ...) and then best-effort pushed to the recipient's live
// connection. Never created when recipient == sender.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	RecipientID uuid.UUID        `json:"recipient_id"`
	SenderID    uuid.UUID        `json:"sender_id"`
	Type        NotificationType `json:"type"`
	Message     string           `json:"message"`
	Link        string           `json:"link,omitempty"`
	Read        bool             `json:"read"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
