package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pendingActionKeyPrefix = "user:pending_action:"
	pendingActionTTL       = 24 * time.Hour
)

// PendingActionRepository keeps the one-shot "next expected action" per
// user in Redis. A slot is overwritten, never appended, and disappears
// once consumed or after the TTL.
type PendingActionRepository struct {
	client *redis.Client
}

func NewPendingActionRepository(client *redis.Client) *PendingActionRepository {
	return &PendingActionRepository{client: client}
}

func (r *PendingActionRepository) Set(ctx context.Context, userID, action string) error {
	key := pendingActionKeyPrefix + userID
	if err := r.client.Set(ctx, key, action, pendingActionTTL).Err(); err != nil {
		return fmt.Errorf("set pending action for %s: %w", userID, err)
	}
	return nil
}

// Consume returns and clears the stored action in one round trip.
func (r *PendingActionRepository) Consume(ctx context.Context, userID string) (string, bool, error) {
	key := pendingActionKeyPrefix + userID
	action, err := r.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("consume pending action for %s: %w", userID, err)
	}
	return action, true, nil
}

func (r *PendingActionRepository) Clear(ctx context.Context, userID string) error {
	key := pendingActionKeyPrefix + userID
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clear pending action for %s: %w", userID, err)
	}
	return nil
}
