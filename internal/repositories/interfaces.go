package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/innovatex/hub/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type ConversationRepository interface {
	// GetOrCreate returns the single conversation for the unordered pair,
	// creating it on first use. Idempotent.
	GetOrCreate(ctx context.Context, userA, userB uuid.UUID) (*models.Conversation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error)
	SetLastMessage(ctx context.Context, conversationID, messageID uuid.UUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error)
	// ListByConversation pages newest-first through storage but returns the
	// page oldest-first, ready for display.
	ListByConversation(ctx context.Context, conversationID uuid.UUID, page, limit int) ([]*models.Message, error)
	CountByConversation(ctx context.Context, conversationID uuid.UUID) (int, error)
	// MarkSeen flips seen false->true and stamps seen_at once. Calling it on
	// an already-seen message is a no-op.
	MarkSeen(ctx context.Context, messageID uuid.UUID) error
	MarkConversationSeen(ctx context.Context, conversationID, receiverID uuid.UUID) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListForRecipient(ctx context.Context, recipientID uuid.UUID, page, limit int) ([]*models.Notification, error)
	CountForRecipient(ctx context.Context, recipientID uuid.UUID) (int, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type LastSeenRepository interface {
	Set(ctx context.Context, presence *models.Presence) error
	Get(ctx context.Context, userID uuid.UUID) (*models.Presence, error)
}
