package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/grandvia/hotel-system/internal/api/metrics"
	"github.com/grandvia/hotel-system/internal/core/domain"
	"github.com/grandvia/hotel-system/internal/core/ports"
)

const defaultSessionTTL = 8 * time.Hour

// SessionService implements login, logout, and per-request session
// re-validation. Every ActiveUser call re-fetches the user record from the
// authoritative store, which is what makes revocation instant: deactivating
// an account takes effect on the very next request, regardless of how much
// TTL the session blob has left.
type SessionService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	verifier ports.CredentialVerifier
	audit    ports.AuditSink
	ttl      time.Duration
	log      zerolog.Logger
}

// NewSessionService returns a SessionService. A non-positive ttl falls back
// to the 8-hour default.
func NewSessionService(
	users ports.UserRepository,
	sessions ports.SessionStore,
	verifier ports.CredentialVerifier,
	audit ports.AuditSink,
	ttl time.Duration,
	log zerolog.Logger,
) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{
		users:    users,
		sessions: sessions,
		verifier: verifier,
		audit:    audit,
		ttl:      ttl,
		log:      log,
	}
}

// Login authenticates email+password and mints a new session.
func (s *SessionService) Login(ctx context.Context, email, password string, client domain.ClientContext) (*domain.SessionUser, string, error) {
	normalized := domain.NormalizeEmail(email)

	// 1. Lookup. On a miss, still burn one hash verification against the
	// placeholder so the response time matches a wrong-password attempt
	// (account enumeration resistance).
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if _, verr := s.verifier.Verify(password, s.verifier.Placeholder()); verr != nil {
			s.log.Warn().Err(verr).Msg("placeholder verification failed")
		}
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	// 2. Deactivated accounts are rejected before password verification with
	// a distinct error. This leaks account existence, deliberately: operators
	// need to tell lockouts apart from typos.
	if !user.Active {
		metrics.LoginsTotal.WithLabelValues("deactivated").Inc()
		return nil, "", domain.ErrAccountDeactivated
	}

	// 3. Verify the password.
	ok, err := s.verifier.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.audit.Record(&domain.AuditEvent{
			Action:       domain.AuditUserLoginFailed,
			ResourceType: "user",
			ResourceID:   user.ID,
			ActorID:      user.ID,
			IP:           client.IP,
			UserAgent:    client.UserAgent,
			Timestamp:    time.Now().UTC(),
		})
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	// 4. Mint the session: a projection of the user record at login time.
	payload := domain.SessionUser{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	sessionID, err := s.sessions.Create(ctx, payload, s.ttl)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	// 5. Best-effort last-login touch; a failure does not void the login.
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to touch last login")
	}

	s.audit.Record(&domain.AuditEvent{
		Action:       domain.AuditUserLogin,
		ResourceType: "user",
		ResourceID:   user.ID,
		ActorID:      user.ID,
		IP:           client.IP,
		UserAgent:    client.UserAgent,
		Timestamp:    time.Now().UTC(),
	})
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return &payload, sessionID, nil
}

// Logout deletes the session unconditionally. Unknown ids are not an error.
func (s *SessionService) Logout(ctx context.Context, sessionID string, client domain.ClientContext) error {
	if sessionID == "" {
		return nil
	}

	// Peek first so the audit record can name the former occupant. The TTL
	// refresh this causes is irrelevant: the delete lands right after.
	payload, err := s.sessions.Get(ctx, sessionID, s.ttl)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if payload != nil {
		s.audit.Record(&domain.AuditEvent{
			Action:       domain.AuditUserLogout,
			ResourceType: "user",
			ResourceID:   payload.UserID,
			ActorID:      payload.UserID,
			IP:           client.IP,
			UserAgent:    client.UserAgent,
			Timestamp:    time.Now().UTC(),
		})
		s.log.Info().Str("user_id", payload.UserID).Msg("user logged out")
	}
	return nil
}

// ActiveUser resolves a session id to a live user record, refreshing the
// session TTL as a side effect of the read. The re-fetch against the user
// store on every call is the revocation mechanism; it must not be cached.
func (s *SessionService) ActiveUser(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		metrics.SessionReadsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	payload, err := s.sessions.Get(ctx, sessionID, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if payload == nil {
		metrics.SessionReadsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, payload.UserID)
	if err != nil || user == nil || !user.Active {
		metrics.SessionReadsTotal.WithLabelValues("revoked").Inc()
		return nil, nil
	}

	metrics.SessionReadsTotal.WithLabelValues("hit").Inc()
	return user, nil
}

// RevokeAllSessions records an advisory revocation for the target user.
//
// Sessions are keyed by opaque store-generated ids with no user→session
// index, so this cannot enumerate and purge the store entries. The approved
// mitigation is the active-flag re-check in ActiveUser: once the account is
// deactivated, every one of its sessions dies on the next request. The only
// observable effect here is the audit record.
func (s *SessionService) RevokeAllSessions(ctx context.Context, targetUserID, performedBy string, client domain.ClientContext) error {
	s.audit.Record(&domain.AuditEvent{
		Action:       domain.AuditSessionsRevoked,
		ResourceType: "user",
		ResourceID:   targetUserID,
		ActorID:      performedBy,
		IP:           client.IP,
		UserAgent:    client.UserAgent,
		Timestamp:    time.Now().UTC(),
	})
	s.log.Info().
		Str("target_user_id", targetUserID).
		Str("performed_by", performedBy).
		Msg("session revocation recorded")
	return nil
}
