package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenRepository defines the interface for refresh token persistence.
type TokenRepository interface {
	// SaveRefreshToken stores a refresh token until its expiry.
	SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error

	// IsRefreshTokenValid checks if a refresh token exists and has not been invalidated.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)

	// InvalidateRefreshToken removes a refresh token.
	InvalidateRefreshToken(ctx context.Context, token string) error
}

const refreshTokenKeyPrefix = "auth:refresh:"

// redisTokenRepository implements TokenRepository on Redis, one key per token
// with a TTL matching the token expiry.
type redisTokenRepository struct {
	client *redis.Client
}

// NewRedisTokenRepository creates a Redis-backed token repository.
func NewRedisTokenRepository(client *redis.Client) TokenRepository {
	return &redisTokenRepository{client: client}
}

// SaveRefreshToken stores a refresh token until its expiry.
func (r *redisTokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, refreshTokenKeyPrefix+token, userID.String(), ttl).Err()
}

// IsRefreshTokenValid checks if a refresh token exists and has not been invalidated.
func (r *redisTokenRepository) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	count, err := r.client.Exists(ctx, refreshTokenKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InvalidateRefreshToken removes a refresh token.
func (r *redisTokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	return r.client.Del(ctx, refreshTokenKeyPrefix+token).Err()
}

// memoryTokenRepository implements TokenRepository in process memory for the
// no-Redis fallback mode.
type memoryTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
}

// NewMemoryTokenRepository creates an in-memory token repository.
func NewMemoryTokenRepository() TokenRepository {
	return &memoryTokenRepository{tokens: make(map[string]time.Time)}
}

// SaveRefreshToken stores a refresh token until its expiry.
func (r *memoryTokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = expiresAt
	return nil
}

// IsRefreshTokenValid checks if a refresh token exists and has not expired.
func (r *memoryTokenRepository) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expiresAt, ok := r.tokens[token]
	if !ok {
		return false, nil
	}
	if time.Now().UTC().After(expiresAt) {
		delete(r.tokens, token)
		return false, nil
	}
	return true, nil
}

// InvalidateRefreshToken removes a refresh token.
func (r *memoryTokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}
