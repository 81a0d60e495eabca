package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/grandvia/hotel-system/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps session payloads in Redis under store-generated opaque
// ids. Reads go through GETEX so every successful lookup pushes the entry's
// expiry out again (rolling TTL); untouched sessions expire on their own.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Create mints an unguessable session id, serialises the payload, and stores
// it with the given TTL.
func (s *SessionStore) Create(ctx context.Context, payload domain.SessionUser, ttl time.Duration) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal session payload: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+id, raw, ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

// Get fetches the payload and refreshes its TTL in one round trip. A missing
// or expired session returns (nil, nil).
func (s *SessionStore) Get(ctx context.Context, sessionID string, ttl time.Duration) (*domain.SessionUser, error) {
	raw, err := s.client.GetEx(ctx, sessionKeyPrefix+sessionID, ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var payload domain.SessionUser
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal session payload: %w", err)
	}
	return &payload, nil
}

// Delete removes the session. Deleting a non-existent key is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// newSessionID returns 32 bytes of crypto/rand entropy, hex encoded.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
