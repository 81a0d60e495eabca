package ports

import (
	"context"
	"time"

	"github.com/grandvia/hotel-system/internal/core/domain"
)

// SessionStore maps opaque, store-generated identifiers to session payloads.
// Get refreshes the entry's TTL on every hit (rolling expiry) and returns
// (nil, nil) on a miss; only infrastructure failures surface as errors.
type SessionStore interface {
	Create(ctx context.Context, payload domain.SessionUser, ttl time.Duration) (string, error)
	Get(ctx context.Context, sessionID string, ttl time.Duration) (*domain.SessionUser, error)
	Delete(ctx context.Context, sessionID string) error
}
