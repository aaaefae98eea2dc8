package service

import (
	"context"
	"errors"
	"time"

	"student-records-api/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionService holds the browser transport for tokens: the signed token
// lives server-side in Redis, the cookie carries only an opaque session ID.
// Entries expire together with the token they hold.
type SessionService struct {
	cache ICacheClient
	ttl   time.Duration
}

func NewSessionService(cache ICacheClient) *SessionService {
	return &SessionService{cache: cache, ttl: TokenTTL}
}

// Create stores the token under a fresh session ID and returns the ID.
func (s *SessionService) Create(ctx context.Context, token string) (string, error) {
	id := uuid.NewString()
	if err := s.cache.Set(ctx, sessionKeyPrefix+id, token, s.ttl).Err(); err != nil {
		logger.Log.WithError(err).Error("Failed to store session")
		return "", err
	}
	return id, nil
}

// Token resolves a session ID back to its stored token. A missing or
// expired session yields an empty token, which the auth gate then treats
// as no token supplied.
func (s *SessionService) Token(ctx context.Context, id string) (string, error) {
	val, err := s.cache.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		logger.Log.WithError(err).Error("Failed to load session")
		return "", err
	}
	return val, nil
}

// Destroy removes a session. Logging out an already-dead session is a no-op.
func (s *SessionService) Destroy(ctx context.Context, id string) error {
	if err := s.cache.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		logger.Log.WithError(err).Error("Failed to delete session")
		return err
	}
	return nil
}
