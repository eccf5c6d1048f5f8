package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/paddyguard/paddyguard-backend/internal/models"
)

const (
	// SessionDuration is 7 days.
	SessionDuration = 7 * 24 * time.Hour
	// sessionKeyPrefix is the Redis key prefix for token -> identity.
	sessionKeyPrefix = "session:"
	// userSessionKeyPrefix is the Redis key prefix for user -> token.
	userSessionKeyPrefix = "user_session:"
)

// SessionService stores sanitized identities in Redis keyed by opaque
// tokens. A user has at most one active session: a fresh login replaces
// the previous one.
type SessionService struct {
	rdb *redis.Client
}

func NewSessionService(rdb *redis.Client) *SessionService {
	return &SessionService{rdb: rdb}
}

// Create establishes a session for identity and returns the token.
// Only the sanitized identity is stored; the secret never reaches
// Redis.
func (s *SessionService) Create(ctx context.Context, identity models.Identity) (string, error) {
	// Replace any existing session so the expiry timer restarts at the
	// current login.
	if err := s.InvalidateUser(ctx, identity.ID); err != nil {
		return "", err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	payload, err := json.Marshal(identity)
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, sessionKeyPrefix+token, payload, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, userSessionKeyPrefix+identity.ID, token, SessionDuration).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Validate resolves a token to its sanitized identity. A missing token
// or a malformed stored value yields an unauthenticated result, never
// an error the caller has to distinguish from a crash.
func (s *SessionService) Validate(ctx context.Context, token string) (models.Identity, bool) {
	if token == "" {
		return models.Identity{}, false
	}

	payload, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return models.Identity{}, false
	}

	var identity models.Identity
	if err := json.Unmarshal([]byte(payload), &identity); err != nil || identity.ID == "" {
		return models.Identity{}, false
	}
	return identity, true
}

// Invalidate removes a session. Idempotent: unknown tokens are a no-op.
func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	payload, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err == nil {
		var identity models.Identity
		if json.Unmarshal([]byte(payload), &identity) == nil && identity.ID != "" {
			s.rdb.Del(ctx, userSessionKeyPrefix+identity.ID)
		}
	}

	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}

// InvalidateUser removes any session belonging to a user; called on
// login (session replacement) and after a password reset.
func (s *SessionService) InvalidateUser(ctx context.Context, userID string) error {
	token, err := s.rdb.Get(ctx, userSessionKeyPrefix+userID).Result()
	if err == nil && token != "" {
		if err := s.rdb.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			return err
		}
	}
	return s.rdb.Del(ctx, userSessionKeyPrefix+userID).Err()
}
