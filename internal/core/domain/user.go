package domain

import (
	"strings"
	"time"
)

// Role is the closed set of staff roles. Authorization is strict set
// membership: OWNER is not implicitly granted access to MANAGER-only routes.
type Role string

const (
	RoleOwner        Role = "OWNER"
	RoleManager      Role = "MANAGER"
	RoleFrontDesk    Role = "FRONT_DESK"
	RoleHousekeeping Role = "HOUSEKEEPING"
	RoleKitchen      Role = "KITCHEN"
	RoleMaintenance  Role = "MAINTENANCE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleFrontDesk, RoleHousekeeping, RoleKitchen, RoleMaintenance:
		return true
	}
	return false
}

// User models a staff member account. The user store is the sole authority
// on login eligibility: email uniqueness and the Active flag live there, and
// the core never caches this record beyond a single request.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PasswordHash string     `json:"-"`
	PinHash      string     `json:"-"`
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NormalizeEmail canonicalises an email address for lookup: trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ClientContext carries request metadata (origin IP, user agent) from the
// transport layer into audit records.
type ClientContext struct {
	IP        string
	UserAgent string
}
