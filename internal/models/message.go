package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
)

// Message belongs to a conversation; ReceiverID is always the conversation
// participant who is not SenderID. Seen flips false->true exactly once.
type Message struct {
	ID             uuid.UUID   `json:"id"`
	ConversationID uuid.UUID   `json:"conversation_id"`
	SenderID       uuid.UUID   `json:"sender_id"`
	ReceiverID     uuid.UUID   `json:"receiver_id"`
	Content        string      `json:"content"`
	MessageType    MessageType `json:"message_type"`
	ImageURL       string      `json:"image_url,omitempty"`
	Seen           bool        `json:"seen"`
	SeenAt         *time.Time  `json:"seen_at,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}
