package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/pkg/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.New(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token.New: %v", err)
	}
	return codec
}

func TestAuthenticate_ValidToken(t *testing.T) {
	e := echo.New()
	codec := newTestCodec(t)

	signed, err := codec.Issue("alice@example.com", "u-1", []string{domain.RoleUser}, time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Authenticate(codec, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		p, ok := PrincipalFrom(c)
		if !ok {
			t.Fatalf("principal not bound")
		}
		if p.Email != "alice@example.com" || p.SubjectID != "u-1" {
			t.Fatalf("unexpected principal: %+v", p)
		}
		if len(p.Roles) != 1 || p.Roles[0] != domain.RoleUser {
			t.Fatalf("unexpected roles: %v", p.Roles)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthenticate_MissingHeaderIsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Authenticate(newTestCodec(t), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if _, ok := PrincipalFrom(c); ok {
			t.Fatalf("no principal expected without a header")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("anonymous request must continue down the chain")
	}
}

func TestAuthenticate_GarbageTokenIsAnonymous(t *testing.T) {
	e := echo.New()

	for _, header := range []string{"Bearer not-a-token", "Token abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		mw := Authenticate(newTestCodec(t), zerolog.Nop())
		handler := mw(func(c echo.Context) error {
			called = true
			if _, ok := PrincipalFrom(c); ok {
				t.Fatalf("no principal expected for header %q", header)
			}
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("handler error for %q: %v", header, err)
		}
		if !called {
			t.Fatalf("request with %q must not be aborted by the gate", header)
		}
	}
}

func TestAuthenticate_ExpiredTokenIsAnonymous(t *testing.T) {
	e := echo.New()
	codec := newTestCodec(t)

	expired, _ := codec.Issue("alice@example.com", "u-1", []string{domain.RoleUser}, time.Now().Add(-2*time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Authenticate(codec, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		if _, ok := PrincipalFrom(c); ok {
			t.Fatalf("expired token must not bind a principal")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthenticate_DoesNotOverwriteBoundPrincipal(t *testing.T) {
	e := echo.New()
	codec := newTestCodec(t)

	signed, _ := codec.Issue("mallory@example.com", "u-666", []string{domain.RoleAdmin}, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	existing := domain.Principal{SubjectID: "u-1", Email: "alice@example.com", Roles: []string{domain.RoleUser}}
	BindPrincipal(c, existing)

	mw := Authenticate(codec, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		p, _ := PrincipalFrom(c)
		if p.Email != existing.Email || p.SubjectID != existing.SubjectID {
			t.Fatalf("bound principal was overwritten: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
