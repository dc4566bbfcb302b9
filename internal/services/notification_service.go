package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/innovatex/hub/internal/models"
	"github.com/innovatex/hub/internal/repositories"
)

// NotificationPusher is the live-fanout side of notifications, implemented by
// realtime.Relay. The push is best-effort and never reports failure upward.
type NotificationPusher interface {
	PushNotification(notification *models.Notification)
}

// NotificationService is the seam the post/comment/follow/application
// controllers call after their own action succeeds. Persistence happens here;
// the live push runs only after the record exists, and its failure never
// rolls back the originating action.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	pusher           NotificationPusher
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, pusher NotificationPusher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		pusher:           pusher,
	}
}

type CreateNotificationRequest struct {
	RecipientID uuid.UUID
	SenderID    uuid.UUID
	Type        string
	Message     string
	Link        string
}

type NotificationPage struct {
	Notifications []*models.Notification `json:"notifications"`
	CurrentPage   int                    `json:"current_page"`
	TotalPages    int                    `json:"total_pages"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
}

const DefaultNotificationPageSize = 20

// Create persists and fans out one notification. Self-notifications are
// suppressed: acting on your own content makes no record and no push, and
// that is a success, not an error. Returns nil when suppressed.
func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) (*models.Notification, error) {
	if req.RecipientID == req.SenderID {
		return nil, nil
	}
	if !models.ValidNotificationType(req.Type) {
		return nil, fmt.Errorf("invalid notification type %q", req.Type)
	}

	notification := &models.Notification{
		RecipientID: req.RecipientID,
		SenderID:    req.SenderID,
		Type:        models.NotificationType(req.Type),
		Message:     req.Message,
		Link:        req.Link,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	if s.pusher != nil {
		s.pusher.PushNotification(notification)
	}
	return notification, nil
}

func (s *NotificationService) List(ctx context.Context, recipientID uuid.UUID, page, limit int) (*NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultNotificationPageSize
	}

	notifications, err := s.notificationRepo.ListForRecipient(ctx, recipientID, page, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.notificationRepo.CountForRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.UnreadCount(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	return &NotificationPage{
		Notifications: notifications,
		CurrentPage:   page,
		TotalPages:    (total + limit - 1) / limit,
		Total:         total,
		UnreadCount:   unread,
	}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, id, recipientID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}
