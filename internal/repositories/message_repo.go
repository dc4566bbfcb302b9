package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/innovatex/hub/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresMessageRepository(pool *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `INSERT INTO messages (conversation_id, sender_id, receiver_id, content, message_type, image_url)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		message.ConversationID,
		message.SenderID,
		message.ReceiverID,
		message.Content,
		message.MessageType,
		message.ImageURL,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	query := `SELECT id, conversation_id, sender_id, receiver_id, content, message_type, image_url, seen, seen_at, created_at
              FROM messages WHERE id = $1`

	var msg models.Message
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.ConversationID,
		&msg.SenderID,
		&msg.ReceiverID,
		&msg.Content,
		&msg.MessageType,
		&msg.ImageURL,
		&msg.Seen,
		&msg.SeenAt,
		&msg.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &msg, nil
}

func (r *PostgresMessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID, page, limit int) ([]*models.Message, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `SELECT id, conversation_id, sender_id, receiver_id, content, message_type, image_url, seen, seen_at, created_at
              FROM messages
              WHERE conversation_id = $1
              ORDER BY created_at DESC
              OFFSET $2 LIMIT $3`

	rows, err := r.pool.Query(ctx, query, conversationID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var msg models.Message
		err := rows.Scan(
			&msg.ID,
			&msg.ConversationID,
			&msg.SenderID,
			&msg.ReceiverID,
			&msg.Content,
			&msg.MessageType,
			&msg.ImageURL,
			&msg.Seen,
			&msg.SeenAt,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	// The query pages newest-first; callers want the page oldest-first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *PostgresMessageRepository) CountByConversation(ctx context.Context, conversationID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE conversation_id = $1`, conversationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// MarkSeen only touches unseen rows, so seen_at is written exactly once and
// repeated calls are no-ops.
func (r *PostgresMessageRepository) MarkSeen(ctx context.Context, messageID uuid.UUID) error {
	query := `UPDATE messages SET seen = TRUE, seen_at = NOW() WHERE id = $1 AND seen = FALSE`

	_, err := r.pool.Exec(ctx, query, messageID)
	if err != nil {
		return fmt.Errorf("failed to mark message seen: %w", err)
	}
	return nil
}

func (r *PostgresMessageRepository) MarkConversationSeen(ctx context.Context, conversationID, receiverID uuid.UUID) error {
	query := `UPDATE messages SET seen = TRUE, seen_at = NOW()
              WHERE conversation_id = $1 AND receiver_id = $2 AND seen = FALSE`

	_, err := r.pool.Exec(ctx, query, conversationID, receiverID)
	if err != nil {
		return fmt.Errorf("failed to mark conversation seen: %w", err)
	}
	return nil
}
