package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/recipe-api/internal/logger"
)

// TokenBlacklistRepository keeps revoked token ids in Redis until the token
// would have expired anyway.
type TokenBlacklistRepository struct {
	client *redis.Client
}

// NewTokenBlacklistRepository creates a new repository instance
func NewTokenBlacklistRepository(client *redis.Client) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{client: client}
}

func blacklistKey(tokenID string) string {
	return fmt.Sprintf("token_blacklist:%s", tokenID)
}

// Add revokes tokenID for ttl. Tokens that are already expired need no entry.
func (r *TokenBlacklistRepository) Add(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := blacklistKey(tokenID)
	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.Log.Infow("redis",
		"op", "SET",
		"key", key,
		"ttl", ttl,
		"error", err,
	)
	return err
}

// Contains reports whether tokenID has been revoked.
func (r *TokenBlacklistRepository) Contains(ctx context.Context, tokenID string) (bool, error) {
	key := blacklistKey(tokenID)
	n, err := r.client.Exists(ctx, key).Result()

	logger.Log.Infow("redis",
		"op", "EXISTS",
		"key", key,
		"result", n,
		"error", err,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
