package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/grandvia/hotel-system/internal/core/domain"
)

// stubSessions resolves a single known session id to a fixed user and counts
// lookups so tests can assert public routes skip the session store entirely.
type stubSessions struct {
	sessionID string
	user      *domain.User
	lookups   int
}

func (s *stubSessions) Login(context.Context, string, string, domain.ClientContext) (*domain.SessionUser, string, error) {
	return nil, "", errors.New("not implemented")
}

func (s *stubSessions) Logout(context.Context, string, domain.ClientContext) error {
	return nil
}

func (s *stubSessions) ActiveUser(_ context.Context, sessionID string) (*domain.User, error) {
	s.lookups++
	if sessionID == s.sessionID {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubSessions) RevokeAllSessions(context.Context, string, string, domain.ClientContext) error {
	return nil
}

func frontDeskUser() *domain.User {
	return &domain.User{ID: "u1", Email: "desk@hotel.com", Role: domain.RoleFrontDesk, Active: true}
}

func newAuthContext(e *echo.Echo, sessionID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "hotel_session", Value: sessionID})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthorize_PublicSkipsSessionLookup(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{}
	c, rec := newAuthContext(e, "")

	called := false
	handler := Authorize(sessions, "hotel_session", Access{Public: true})(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if sessions.lookups != 0 {
		t.Fatalf("public route must not touch the session store, saw %d lookups", sessions.lookups)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthorize_MissingCookie(t *testing.T) {
	e := echo.New()
	c, _ := newAuthContext(e, "")

	handler := Authorize(&stubSessions{}, "hotel_session", Access{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorize_UnknownSession(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{sessionID: "valid", user: frontDeskUser()}
	c, _ := newAuthContext(e, "stale")

	handler := Authorize(sessions, "hotel_session", Access{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorize_AnyAuthenticatedRole(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{sessionID: "valid", user: frontDeskUser()}
	c, _ := newAuthContext(e, "valid")

	called := false
	handler := Authorize(sessions, "hotel_session", Access{})(func(c echo.Context) error {
		called = true
		user, _ := c.Get(ContextUserKey).(*domain.User)
		if user == nil || user.ID != "u1" {
			t.Fatalf("verified user not attached to context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestAuthorize_RoleMismatch(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{sessionID: "valid", user: frontDeskUser()}
	c, _ := newAuthContext(e, "valid")

	handler := Authorize(sessions, "hotel_session", Access{Roles: []domain.Role{domain.RoleManager}})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if !strings.Contains(err.Error(), "MANAGER") {
		t.Fatalf("error should name the required roles, got %q", err.Error())
	}
}

func TestAuthorize_RoleMatch(t *testing.T) {
	e := echo.New()
	manager := &domain.User{ID: "u2", Role: domain.RoleManager, Active: true}
	sessions := &stubSessions{sessionID: "valid", user: manager}
	c, _ := newAuthContext(e, "valid")

	called := false
	handler := Authorize(sessions, "hotel_session", Access{Roles: []domain.Role{domain.RoleOwner, domain.RoleManager}})(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}
