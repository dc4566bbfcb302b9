package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/innovatex/hub/internal/models"
	"github.com/innovatex/hub/internal/repositories"
)

var (
	ErrNotAuthorized    = errors.New("not authorized")
	ErrSelfConversation = errors.New("cannot start a conversation with yourself")
	ErrEmptyMessage     = errors.New("message content is required")
)

const DefaultMessagePageSize = 50

// MessagingService owns the durable conversation/message workflow the
// realtime layer relays from: get-or-create threads, paginated history,
// sending, and the one-way seen transition.
type MessagingService struct {
	conversationRepo repositories.ConversationRepository
	messageRepo      repositories.MessageRepository
	userRepo         repositories.UserRepository
}

func NewMessagingService(
	conversationRepo repositories.ConversationRepository,
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
) *MessagingService {
	return &MessagingService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
	}
}

type SendMessageRequest struct {
	ConversationID uuid.UUID
	Content        string
	MessageType    string
	ImageURL       string
}

type MessagePage struct {
	Messages    []*models.Message `json:"messages"`
	CurrentPage int               `json:"current_page"`
	TotalPages  int               `json:"total_pages"`
	Total       int               `json:"total"`
}

// GetOrCreateConversation returns the single thread between userID and
// peerID, creating it on first contact. Idempotent on the unordered pair.
func (s *MessagingService) GetOrCreateConversation(ctx context.Context, userID, peerID uuid.UUID) (*models.Conversation, error) {
	if userID == peerID {
		return nil, ErrSelfConversation
	}

	// The peer must be a real user before a thread is created for them.
	if _, err := s.userRepo.GetByID(ctx, peerID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check peer: %w", err)
	}

	return s.conversationRepo.GetOrCreate(ctx, userID, peerID)
}

func (s *MessagingService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error) {
	return s.conversationRepo.ListForUser(ctx, userID)
}

func (s *MessagingService) ListMessages(ctx context.Context, userID, conversationID uuid.UUID, page, limit int) (*MessagePage, error) {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotAuthorized
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultMessagePageSize
	}

	messages, err := s.messageRepo.ListByConversation(ctx, conversationID, page, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.messageRepo.CountByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &MessagePage{
		Messages:    messages,
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
	}, nil
}

// SendMessage persists the message and updates the conversation's lastMessage
// back-reference. It does not touch the realtime layer: the relay runs only
// after this durable write has completed, driven by the sender's connection.
func (s *MessagingService) SendMessage(ctx context.Context, senderID uuid.UUID, req SendMessageRequest) (*models.Message, error) {
	conv, err := s.conversationRepo.GetByID(ctx, req.ConversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(senderID) {
		return nil, ErrNotAuthorized
	}

	messageType := models.MessageType(req.MessageType)
	if messageType == "" {
		messageType = models.MessageTypeText
	}
	if messageType != models.MessageTypeText && messageType != models.MessageTypeImage {
		return nil, fmt.Errorf("unsupported message type %q", req.MessageType)
	}
	if req.Content == "" && messageType == models.MessageTypeText {
		return nil, ErrEmptyMessage
	}

	message := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     conv.OtherParticipant(senderID),
		Content:        req.Content,
		MessageType:    messageType,
		ImageURL:       req.ImageURL,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := s.conversationRepo.SetLastMessage(ctx, conv.ID, message.ID); err != nil {
		return nil, fmt.Errorf("failed to update conversation: %w", err)
	}
	return message, nil
}

// MarkMessageSeen flips the receiver's seen flag. One-way and idempotent: a
// repeat call returns the message unchanged, seen_at keeps its first value.
func (s *MessagingService) MarkMessageSeen(ctx context.Context, userID, messageID uuid.UUID) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.ReceiverID != userID {
		return nil, ErrNotAuthorized
	}
	if message.Seen {
		return message, nil
	}

	if err := s.messageRepo.MarkSeen(ctx, messageID); err != nil {
		return nil, err
	}
	return s.messageRepo.GetByID(ctx, messageID)
}

func (s *MessagingService) MarkConversationSeen(ctx context.Context, userID, conversationID uuid.UUID) error {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conv.HasParticipant(userID) {
		return ErrNotAuthorized
	}
	return s.messageRepo.MarkConversationSeen(ctx, conversationID, userID)
}
