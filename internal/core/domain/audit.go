package domain

import (
	"encoding/json"
	"time"
)

// Audit action tags. The set is append-only: renaming a tag orphans the
// historical records written under the old name.
const (
	AuditUserLogin        = "USER_LOGIN"
	AuditUserLoginFailed  = "USER_LOGIN_FAILED"
	AuditUserLogout       = "USER_LOGOUT"
	AuditSessionsRevoked  = "USER_SESSIONS_REVOKED"
	AuditWebsiteUpdate    = "WEBSITE_UPDATE"
	AuditWebsiteUpdateErr = "WEBSITE_UPDATE_FAILED"
)

// AuditEvent is an immutable, append-only record of a security-relevant
// action. Writing one must never block or fail the operation that emitted it.
type AuditEvent struct {
	Action       string          `json:"action"`
	ResourceType string          `json:"resource_type"`
	ResourceID   string          `json:"resource_id,omitempty"`
	Before       json.RawMessage `json:"before,omitempty"`
	After        json.RawMessage `json:"after,omitempty"`
	ActorID      string          `json:"actor_id,omitempty"`
	IP           string          `json:"ip,omitempty"`
	UserAgent    string          `json:"user_agent,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}
