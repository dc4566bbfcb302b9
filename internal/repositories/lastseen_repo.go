package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/innovatex/hub/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	lastSeenKeyPrefix = "lastseen:"
	lastSeenTTL       = 30 * 24 * time.Hour // Profiles stop showing "last seen" after a month away
)

// RedisLastSeenRepository keeps a TTL'd snapshot of when a user was last
// connected. The realtime layer writes it on disconnect; profile and presence
// endpoints read it for users with no live connection.
type RedisLastSeenRepository struct {
	client *redis.Client
}

func NewRedisLastSeenRepository(client *redis.Client) *RedisLastSeenRepository {
	return &RedisLastSeenRepository{client: client}
}

func (r *RedisLastSeenRepository) Set(ctx context.Context, presence *models.Presence) error {
	presence.LastSeen = time.Now()

	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("failed to marshal presence: %w", err)
	}

	key := lastSeenKey(presence.UserID)
	err = r.client.Set(ctx, key, data, lastSeenTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to set last seen: %w", err)
	}
	return nil
}

func (r *RedisLastSeenRepository) Get(ctx context.Context, userID uuid.UUID) (*models.Presence, error) {
	key := lastSeenKey(userID)

	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		// No snapshot = never seen (or long gone)
		return &models.Presence{
			UserID:   userID,
			Status:   string(models.StatusOffline),
			LastSeen: time.Time{}, // Zero time indicates unknown
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last seen: %w", err)
	}

	var presence models.Presence
	if err := json.Unmarshal([]byte(data), &presence); err != nil {
		return nil, fmt.Errorf("failed to unmarshal presence: %w", err)
	}
	return &presence, nil
}

// Helper: build Redis key for last-seen snapshots
func lastSeenKey(userID uuid.UUID) string {
	return lastSeenKeyPrefix + userID.String()
}
