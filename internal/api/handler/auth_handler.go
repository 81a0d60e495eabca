package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grandvia/hotel-system/internal/core/domain"
	"github.com/grandvia/hotel-system/internal/core/ports"
)

// CookieSettings controls how the session cookie is issued.
type CookieSettings struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

type AuthHandler struct {
	sessions ports.SessionService
	cookie   CookieSettings
}

func NewAuthHandler(sessions ports.SessionService, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookie: cookie}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User *domain.SessionUser `json:"user"`
}

// Login authenticates a user and issues the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload, sessionID, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password, clientContext(c))
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(sessionID, h.cookie.MaxAge))
	return c.JSON(http.StatusOK, loginResponse{User: payload})
}

// Logout deletes the caller's session and expires the cookie. Safe to call
// without a live session.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookie.Name); err == nil && cookie.Value != "" {
		if err := h.sessions.Logout(c.Request().Context(), cookie.Value, clientContext(c)); err != nil {
			return err
		}
	}

	c.SetCookie(h.sessionCookie("", -time.Second))
	return c.NoContent(http.StatusNoContent)
}

// Me returns the fresh, DB-verified user for the current session.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// RevokeSessions records an advisory session revocation for the target user.
//
// @Summary      Revoke a user's sessions
// @Tags         auth
// @Param        id  path  string  true  "Target user id"
// @Success      202
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /auth/users/{id}/revoke-sessions [post]
func (h *AuthHandler) RevokeSessions(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	targetID := c.Param("id")
	if targetID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing user id")
	}

	if err := h.sessions.RevokeAllSessions(c.Request().Context(), targetID, actor.ID, clientContext(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *AuthHandler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}
