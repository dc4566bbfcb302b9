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

type PostgresConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresConversationRepository(pool *pgxpool.Pool) *PostgresConversationRepository {
	return &PostgresConversationRepository{pool: pool}
}

// GetOrCreate relies on the unique index over (participant_a, participant_b);
// the pair is normalized before insert so both orderings hit the same row.
// The no-op DO UPDATE makes the insert return the existing row on conflict.
func (r *PostgresConversationRepository) GetOrCreate(ctx context.Context, userA, userB uuid.UUID) (*models.Conversation, error) {
	if userA == userB {
		return nil, errors.New("conversation requires two distinct participants")
	}
	a, b := models.NormalizePair(userA, userB)

	query := `INSERT INTO conversations (participant_a, participant_b)
              VALUES ($1, $2)
              ON CONFLICT (participant_a, participant_b)
              DO UPDATE SET participant_a = conversations.participant_a
              RETURNING id, participant_a, participant_b, last_message_id, created_at, updated_at`

	var conv models.Conversation
	err := r.pool.QueryRow(ctx, query, a, b).Scan(
		&conv.ID,
		&conv.ParticipantA,
		&conv.ParticipantB,
		&conv.LastMessageID,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create conversation: %w", err)
	}
	return &conv, nil
}

func (r *PostgresConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	query := `SELECT id, participant_a, participant_b, last_message_id, created_at, updated_at
              FROM conversations WHERE id = $1`

	var conv models.Conversation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&conv.ID,
		&conv.ParticipantA,
		&conv.ParticipantB,
		&conv.LastMessageID,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

func (r *PostgresConversationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Conversation, error) {
	query := `SELECT id, participant_a, participant_b, last_message_id, created_at, updated_at
              FROM conversations
              WHERE participant_a = $1 OR participant_b = $1
              ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		var conv models.Conversation
		err := rows.Scan(
			&conv.ID,
			&conv.ParticipantA,
			&conv.ParticipantB,
			&conv.LastMessageID,
			&conv.CreatedAt,
			&conv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, &conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversations: %w", err)
	}
	return conversations, nil
}

func (r *PostgresConversationRepository) SetLastMessage(ctx context.Context, conversationID, messageID uuid.UUID) error {
	query := `UPDATE conversations SET last_message_id = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, conversationID, messageID)
	if err != nil {
		return fmt.Errorf("failed to set last message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
