package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grandvia/hotel-system/internal/api/middleware"
	"github.com/grandvia/hotel-system/internal/core/domain"
)

// currentUser extracts the DB-verified user the Authorize middleware
// attached to the context. Absence means the route was registered without
// authorization; fail closed rather than trusting the request.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return user, nil
}

// clientContext captures the request's origin metadata for audit records.
func clientContext(c echo.Context) domain.ClientContext {
	return domain.ClientContext{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
