package ports

import (
	"context"

	"github.com/grandvia/hotel-system/internal/core/domain"
)

// SessionService owns the session lifecycle: login, logout, and the
// per-request re-validation that backs instant revocation.
type SessionService interface {
	// Login authenticates email+password and mints a new session.
	Login(ctx context.Context, email, password string, client domain.ClientContext) (*domain.SessionUser, string, error)

	// Logout deletes the session. Idempotent: unknown ids are not an error.
	Logout(ctx context.Context, sessionID string, client domain.ClientContext) error

	// ActiveUser resolves a session id to a live user record. It always
	// re-fetches the user from the authoritative store and returns nil when
	// the session is missing or the account no longer exists or is inactive.
	// The store read refreshes the session TTL as a side effect.
	ActiveUser(ctx context.Context, sessionID string) (*domain.User, error)

	// RevokeAllSessions records an advisory revocation for the target user.
	// Sessions are keyed by opaque store ids with no user index, so entries
	// are not purged; the active-flag re-check in ActiveUser is what cuts
	// off access on the next request.
	RevokeAllSessions(ctx context.Context, targetUserID, performedBy string, client domain.ClientContext) error
}
