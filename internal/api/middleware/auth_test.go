package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
	"github.com/weekly-exercises/catalog-api/internal/infrastructure/security"
)

func newVerifier(t *testing.T) *security.JWTService {
	t.Helper()
	svc, err := security.NewJWTService("secret", time.Hour)
	if err != nil {
		t.Fatalf("jwt service: %v", err)
	}
	return svc
}

func runAuth(t *testing.T, header string, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Auth(newVerifier(t))(next)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	signed, err := newVerifier(t).Issue(domain.Claims{UserID: "1", Username: "alice", Role: "admin"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	called := false
	rec, err := runAuth(t, "Bearer "+signed, func(c echo.Context) error {
		called = true
		claims, ok := domain.ClaimsFrom(c.Request().Context())
		if !ok {
			t.Fatalf("claims not set")
		}
		if claims.Username != "alice" || claims.Role != "admin" || claims.UserID != "1" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
		return c.NoContent(http.StatusOK)
	})

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ErrorMessages(t *testing.T) {
	if got := domain.ErrUnauthorized.Error(); got != "missing or invalid token" {
		t.Fatalf("unexpected missing-token message %q", got)
	}
	if got := domain.ErrInvalidToken.Error(); got != "token expired or invalid" {
		t.Fatalf("unexpected invalid-token message %q", got)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	other, err := security.NewJWTService("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("jwt service: %v", err)
	}
	foreign, err := other.Issue(domain.Claims{UserID: "1", Username: "alice", Role: "admin"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing header", "", domain.ErrUnauthorized.Error()},
		{"wrong scheme", "Token abc", domain.ErrUnauthorized.Error()},
		{"lowercase scheme", "bearer abc", domain.ErrUnauthorized.Error()},
		{"empty token", "Bearer ", domain.ErrUnauthorized.Error()},
		{"garbage token", "Bearer not-a-token", domain.ErrInvalidToken.Error()},
		{"foreign signature", "Bearer " + foreign, domain.ErrInvalidToken.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := runAuth(t, tt.header, func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			he, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected HTTPError, got %v", err)
			}
			if he.Message != tt.wantMsg {
				t.Fatalf("expected %q, got %v", tt.wantMsg, he.Message)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
