package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grandvia/hotel-system/internal/api/middleware"
	"github.com/grandvia/hotel-system/internal/core/domain"
)

// stubSessionService drives the handlers without redis or mongo.
type stubSessionService struct {
	loginPayload *domain.SessionUser
	loginErr     error
	loggedOut    []string
	revoked      [][2]string // {target, actor}
}

func (s *stubSessionService) Login(_ context.Context, email, password string, _ domain.ClientContext) (*domain.SessionUser, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.loginPayload, "sess-abc", nil
}

func (s *stubSessionService) Logout(_ context.Context, sessionID string, _ domain.ClientContext) error {
	s.loggedOut = append(s.loggedOut, sessionID)
	return nil
}

func (s *stubSessionService) ActiveUser(context.Context, string) (*domain.User, error) {
	return nil, nil
}

func (s *stubSessionService) RevokeAllSessions(_ context.Context, targetUserID, performedBy string, _ domain.ClientContext) error {
	s.revoked = append(s.revoked, [2]string{targetUserID, performedBy})
	return nil
}

func testCookieSettings() CookieSettings {
	return CookieSettings{Name: "hotel_session", MaxAge: 8 * time.Hour, Secure: true}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	svc := &stubSessionService{
		loginPayload: &domain.SessionUser{UserID: "u1", Email: "owner@hotel.com", Role: domain.RoleOwner},
	}
	h := NewAuthHandler(svc, testCookieSettings())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"owner@hotel.com","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("login handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "hotel_session" || cookie.Value != "sess-abc" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie missing hardening attributes: %+v", cookie)
	}
	if cookie.MaxAge != int((8 * time.Hour).Seconds()) {
		t.Fatalf("expected 8h max age, got %d", cookie.MaxAge)
	}
}

func TestAuthHandler_Login_RejectsMalformedPayload(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{}, testCookieSettings())

	e := newTestEcho()
	for _, body := range []string{`not-json`, `{"email":"","password":""}`, `{"email":"not-an-email","password":"pw"}`} {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.Login(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_PropagatesAuthFailure(t *testing.T) {
	svc := &stubSessionService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, testCookieSettings())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"owner@hotel.com","password":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie may be set on a failed login")
	}
}

func TestAuthHandler_Logout_DeletesSessionAndExpiresCookie(t *testing.T) {
	svc := &stubSessionService{}
	h := NewAuthHandler(svc, testCookieSettings())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "hotel_session", Value: "sess-abc"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "sess-abc" {
		t.Fatalf("session not deleted: %v", svc.loggedOut)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected an expiring cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Logout_WithoutCookie(t *testing.T) {
	svc := &stubSessionService{}
	h := NewAuthHandler(svc, testCookieSettings())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout without a session must succeed, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.loggedOut) != 0 {
		t.Fatalf("no session delete expected, got %v", svc.loggedOut)
	}
}

func TestAuthHandler_Me_ReturnsVerifiedUser(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{}, testCookieSettings())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserKey, &domain.User{ID: "u1", Email: "owner@hotel.com", Role: domain.RoleOwner, Active: true})

	if err := h.Me(c); err != nil {
		t.Fatalf("me handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"owner@hotel.com"`) {
		t.Fatalf("response missing user email: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not leak hashes: %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_WithoutAuthContext(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{}, testCookieSettings())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_RevokeSessions(t *testing.T) {
	svc := &stubSessionService{}
	h := NewAuthHandler(svc, testCookieSettings())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth/users/u9/revoke-sessions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("u9")
	c.Set(middleware.ContextUserKey, &domain.User{ID: "u1", Role: domain.RoleManager, Active: true})

	if err := h.RevokeSessions(c); err != nil {
		t.Fatalf("revoke handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(svc.revoked) != 1 || svc.revoked[0] != [2]string{"u9", "u1"} {
		t.Fatalf("unexpected revocation call: %v", svc.revoked)
	}
}
