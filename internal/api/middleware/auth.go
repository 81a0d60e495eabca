package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/grandvia/hotel-system/internal/core/domain"
	"github.com/grandvia/hotel-system/internal/core/ports"
)

// ContextUserKey is the echo context key under which Authorize stores the
// resolved user. It is the only place a fresh, DB-verified User becomes
// available to downstream handlers.
const ContextUserKey = "current_user"

// Access is the per-route authorization descriptor, attached at registration
// time and inspected by Authorize.
//
//	Public        → allow unconditionally, no session lookup at all.
//	empty Roles   → any authenticated user.
//	non-empty     → caller's role must be in the set (no hierarchy).
type Access struct {
	Public bool
	Roles  []domain.Role
}

// Authorize is the single authorization middleware. For non-public routes it
// resolves the session cookie through the session service, which re-checks
// the account against the user store on every request, and attaches the
// verified user to the context.
func Authorize(sessions ports.SessionService, cookieName string, access Access) echo.MiddlewareFunc {
	required := make(map[domain.Role]struct{}, len(access.Roles))
	for _, r := range access.Roles {
		required[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if access.Public {
				return next(c)
			}

			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return domain.ErrUnauthenticated
			}

			user, err := sessions.ActiveUser(c.Request().Context(), cookie.Value)
			if err != nil {
				return err
			}
			if user == nil {
				return domain.ErrUnauthenticated
			}

			if len(required) > 0 {
				if _, ok := required[user.Role]; !ok {
					// The role list is a fixed enum, safe to expose.
					return fmt.Errorf("%w: requires one of %s", domain.ErrForbidden, roleList(access.Roles))
				}
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

func roleList(roles []domain.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
