package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/seon98/Trip-Backend/internal/core/domain"
)

// stubAuthenticator accepts exactly one token.
type stubAuthenticator struct {
	token string
	user  *domain.User
	err   error // returned for every token when set
}

func (s *stubAuthenticator) Authenticate(_ context.Context, raw string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if raw != s.token {
		return nil, domain.ErrTokenRejected
	}
	return s.user, nil
}

var alice = &domain.User{ID: 1, Email: "alice@example.com", Role: domain.RoleUser}

func TestBearerAuth_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := BearerAuth(&stubAuthenticator{token: "good-token", user: alice})(func(c echo.Context) error {
		called = true
		if CurrentUser(c) != alice {
			t.Fatalf("principal not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBearerAuth_SchemeIsCaseInsensitive(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bEaReR good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := BearerAuth(&stubAuthenticator{token: "good-token", user: alice})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBearerAuth_FailuresAreUniform(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token good-token"},
		{"basic auth", "Basic YWxpY2U6cHc="},
		{"scheme only", "Bearer "},
		{"rejected token", "Bearer forged"},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := BearerAuth(&stubAuthenticator{token: "good-token", user: alice})(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Fatalf("expected WWW-Authenticate: Bearer, got %q", got)
			}
			bodies = append(bodies, rec.Body.String())
		})
	}

	for _, b := range bodies[1:] {
		if b != bodies[0] {
			t.Errorf("401 bodies differ: %q vs %q", bodies[0], b)
		}
	}
}

func TestBearerAuth_StoreFailureIsNot401(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	storeErr := errors.New("connection refused")
	handler := BearerAuth(&stubAuthenticator{err: storeErr})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestCookieAuth(t *testing.T) {
	auth := &stubAuthenticator{token: "good-token", user: alice}

	tests := []struct {
		name     string
		cookie   string
		wantUser *domain.User
	}{
		{"no cookie", "", nil},
		{"bearer prefixed", "Bearer good-token", alice},
		{"bare token", "good-token", alice},
		{"rejected token", "Bearer forged", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			called := false
			handler := CookieAuth(auth, zerolog.Nop())(func(c echo.Context) error {
				called = true
				if got := CurrentUser(c); got != tt.wantUser {
					t.Fatalf("expected principal %v, got %v", tt.wantUser, got)
				}
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !called || rec.Code != http.StatusOK {
				t.Fatalf("cookie gate must never block: called=%v code=%d", called, rec.Code)
			}
		})
	}
}

func TestCookieAuth_StoreFailureFailsOpen(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "Bearer good-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CookieAuth(&stubAuthenticator{err: errors.New("db down")}, zerolog.Nop())(func(c echo.Context) error {
		if CurrentUser(c) != nil {
			t.Fatalf("expected anonymous request")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		in    string
		token string
		ok    bool
	}{
		{"Bearer abc", "abc", true},
		{"BEARER abc", "abc", true},
		{"Bearer   abc  ", "abc", true},
		{"Bearer", "", false},
		{"Bearerabc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := bearerToken(tt.in)
		if token != tt.token || ok != tt.ok {
			t.Errorf("bearerToken(%q) = %q, %v; want %q, %v", tt.in, token, ok, tt.token, tt.ok)
		}
	}
}
