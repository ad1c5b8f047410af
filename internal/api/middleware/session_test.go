package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tasko-app/tasko-api/internal/core/domain"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

type stubAccountService struct {
	ports.AccountService
	authenticateFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAccountService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return s.authenticateFn(ctx, token)
}

func runSession(t *testing.T, svc ports.AccountService, cookie *http.Cookie) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return nil }
	err := Session(svc)(next)(c)
	return c, err
}

func TestSession_ValidCookieInjectsUser(t *testing.T) {
	svc := &stubAccountService{
		authenticateFn: func(_ context.Context, token string) (*domain.User, error) {
			if token != "tok-1" {
				t.Fatalf("unexpected token: %q", token)
			}
			return &domain.User{ID: "u1", Email: "ada@example.com"}, nil
		},
	}

	c, err := runSession(t, svc, &http.Cookie{Name: SessionCookie, Value: "tok-1"})
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	user, _ := c.Get("user").(*domain.User)
	if user == nil || user.ID != "u1" {
		t.Fatalf("expected user in context, got %+v", user)
	}
	if token, _ := c.Get("session_token").(string); token != "tok-1" {
		t.Fatalf("expected token in context, got %q", token)
	}
}

func TestSession_MissingCookiePassesThrough(t *testing.T) {
	svc := &stubAccountService{
		authenticateFn: func(context.Context, string) (*domain.User, error) {
			t.Fatal("Authenticate must not be called without a cookie")
			return nil, nil
		},
	}

	c, err := runSession(t, svc, nil)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if user := c.Get("user"); user != nil {
		t.Fatalf("expected no user, got %+v", user)
	}
}

func TestSession_UnknownTokenPassesThrough(t *testing.T) {
	svc := &stubAccountService{
		authenticateFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrSessionNotFound
		},
	}

	c, err := runSession(t, svc, &http.Cookie{Name: SessionCookie, Value: "expired"})
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if user := c.Get("user"); user != nil {
		t.Fatalf("expected no user, got %+v", user)
	}
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user", &domain.User{ID: "u1"})

		if err := RequireAuth(next)(c); err != nil {
			t.Fatalf("expected pass-through, got %v", err)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireAuth(next)(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %v", err)
		}
	})
}
