package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/weekly-exercises/catalog-api/internal/core/ports"
	"github.com/weekly-exercises/catalog-api/internal/core/service"
	"github.com/weekly-exercises/catalog-api/internal/infrastructure/db/memory"
	"github.com/weekly-exercises/catalog-api/internal/infrastructure/security"
)

const testSecret = "router-test-secret"

type testServer struct {
	e          *echo.Echo
	adminToken string
	userToken  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()

	tokens, err := security.NewJWTService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("jwt service: %v", err)
	}
	auth := service.NewAuthService(memory.NewUserRepository(), security.NewBcryptHasher(bcrypt.MinCost), tokens, log)

	ctx := context.Background()
	for _, in := range []ports.RegisterInput{
		{Username: "admin", Password: "admin123", Role: "admin"},
		{Username: "john", Password: "user123"},
	} {
		if _, err := auth.Register(ctx, in); err != nil {
			t.Fatalf("register %s: %v", in.Username, err)
		}
	}

	s := &testServer{e: NewRouter(Deps{
		Logger:   log,
		Tokens:   tokens,
		Auth:     auth,
		Movies:   service.NewMovieService(memory.NewMovieRepository(), nil, log),
		Events:   service.NewEventService(memory.NewEventRepository(), nil, log),
		Registry: prometheus.NewRegistry(),
	})}
	s.adminToken = s.login(t, "admin", "admin123")
	s.userToken = s.login(t, "john", "user123")
	return s
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	rec, body := s.do(t, http.MethodPost, "/auth/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", username, rec.Code, rec.Body.String())
	}
	return body["token"].(string)
}

func TestRouter_MovieLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec, created := s.do(t, http.MethodPost, "/movies", s.adminToken, `{"title":"Dune","director":"Denis Villeneuve","year":2021}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	id := created["id"].(string)

	rec, got := s.do(t, http.MethodGet, "/movies/"+id, "", "")
	if rec.Code != http.StatusOK || got["title"] != "Dune" || got["year"] != float64(2021) {
		t.Fatalf("get: %d %v", rec.Code, got)
	}

	rec, patched := s.do(t, http.MethodPatch, "/movies/"+id, s.adminToken, `{"director":"D. Villeneuve"}`)
	if rec.Code != http.StatusOK || patched["director"] != "D. Villeneuve" || patched["title"] != "Dune" {
		t.Fatalf("patch: %d %v", rec.Code, patched)
	}

	rec, _ = s.do(t, http.MethodGet, "/movies?title=dune", "", "")
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("list: %v %s", err, rec.Body.String())
	}

	if rec, _ = s.do(t, http.MethodDelete, "/movies/"+id, s.adminToken, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	if rec, body := s.do(t, http.MethodGet, "/movies/"+id, "", ""); rec.Code != http.StatusNotFound || body["error"] != "movie not found" {
		t.Fatalf("get after delete: %d %v", rec.Code, body)
	}
}

func TestRouter_ValidationFailure(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodPost, "/movies", s.adminToken, `{"title":"X","director":"Y","year":1700}`)
	if rec.Code != http.StatusBadRequest || body["error"] != "Validation failed" {
		t.Fatalf("expected 400 Validation failed, got %d %v", rec.Code, body)
	}
	details := body["details"].([]any)
	if len(details) != 1 || !strings.HasPrefix(details[0].(string), "year must be between 1888 and ") {
		t.Fatalf("unexpected details: %v", details)
	}

	rec, body = s.do(t, http.MethodPost, "/movies", s.adminToken, `{"title":"X","year":1700}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %v", rec.Code, body)
	}
	details = body["details"].([]any)
	if len(details) != 2 || details[0] != "director is required" || !strings.HasPrefix(details[1].(string), "year must be between 1888") {
		t.Fatalf("expected every violation in field order, got %v", details)
	}

	rec, body = s.do(t, http.MethodPost, "/movies", s.adminToken, `{"title":`)
	if rec.Code != http.StatusBadRequest || body["error"] != "invalid payload" {
		t.Fatalf("expected invalid payload, got %d %v", rec.Code, body)
	}
}

func TestRouter_Auth(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodPost, "/auth/login", "", `{"username":"admin","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized || body["error"] != "invalid credentials" {
		t.Fatalf("wrong password: %d %v", rec.Code, body)
	}

	rec, body = s.do(t, http.MethodPost, "/auth/signup", "", `{"username":"admin","password":"another1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: %d %v", rec.Code, body)
	}

	for _, password := range []string{strings.Repeat("a", 100), strings.Repeat("€", 30)} {
		rec, body = s.do(t, http.MethodPost, "/auth/register", "", fmt.Sprintf(`{"username":"longpw","password":%q}`, password))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("long password: expected 400, got %d %v", rec.Code, body)
		}
		if details := body["details"].([]any); len(details) != 1 || details[0] != "password must be at most 72 bytes" {
			t.Fatalf("long password: unexpected details %v", details)
		}
	}

	rec, body = s.do(t, http.MethodGet, "/auth/me", s.userToken, "")
	if rec.Code != http.StatusOK || body["username"] != "john" || body["role"] != "user" {
		t.Fatalf("me: %d %v", rec.Code, body)
	}
}

func TestRouter_AccessControl(t *testing.T) {
	s := newTestServer(t)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       "1",
		"username": "admin",
		"role":     "admin",
		"exp":      time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	// user payload under the admin signature
	adminParts, userParts := strings.Split(s.adminToken, "."), strings.Split(s.userToken, ".")
	tampered := adminParts[0] + "." + userParts[1] + "." + adminParts[2]
	movie := `{"title":"Dune","director":"Denis Villeneuve","year":2021}`

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		body     string
		wantCode int
	}{
		{"public movie list", http.MethodGet, "/movies", "", "", http.StatusOK},
		{"create without token", http.MethodPost, "/movies", "", movie, http.StatusUnauthorized},
		{"create as user", http.MethodPost, "/movies", s.userToken, movie, http.StatusForbidden},
		{"create with expired token", http.MethodPost, "/movies", expired, movie, http.StatusUnauthorized},
		{"create with tampered token", http.MethodPost, "/movies", tampered, movie, http.StatusUnauthorized},
		{"events need a token", http.MethodGet, "/events", "", "", http.StatusUnauthorized},
		{"events readable by user", http.MethodGet, "/events", s.userToken, "", http.StatusOK},
		{"items alias", http.MethodGet, "/items", s.userToken, "", http.StatusOK},
		{"event write as user", http.MethodDelete, "/events/1", s.userToken, "", http.StatusForbidden},
		{"delete missing movie", http.MethodDelete, "/movies/999", s.adminToken, "", http.StatusNotFound},
		{"delete non-numeric id", http.MethodDelete, "/movies/abc", s.adminToken, "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec, body := s.do(t, tt.method, tt.path, tt.token, tt.body); rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d %v", tt.wantCode, rec.Code, body)
			}
		})
	}
}

func TestRouter_EventLifecycle(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{
		`{"title":"Exam","date":"2025-02-10","location":"Hall","type":"exam"}`,
		`{"title":"Kickoff","date":"2025-01-05T09:00:00Z","location":"Room 1","type":"meeting"}`,
	} {
		if rec, _ := s.do(t, http.MethodPost, "/items", s.adminToken, body); rec.Code != http.StatusCreated {
			t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec, _ := s.do(t, http.MethodGet, "/events", s.userToken, "")
	var events []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil || len(events) != 2 {
		t.Fatalf("list: %v %s", err, rec.Body.String())
	}
	if events[0]["title"] != "Kickoff" {
		t.Fatalf("expected date ordering, got %v", events)
	}

	rec, _ = s.do(t, http.MethodGet, "/events?date=2025-02-10", s.userToken, "")
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil || len(events) != 1 || events[0]["title"] != "Exam" {
		t.Fatalf("day filter: %v %s", err, rec.Body.String())
	}

	rec, body := s.do(t, http.MethodGet, "/events?type=party", s.userToken, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad type filter: %d %v", rec.Code, body)
	}
}

func TestRouter_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound || body["error"] != "Route not found" {
		t.Fatalf("expected Route not found, got %d %v", rec.Code, body)
	}

	rec, body = s.do(t, http.MethodPut, "/health", "", "")
	if rec.Code != http.StatusNotFound || body["error"] != "Route not found" {
		t.Fatalf("expected Route not found for wrong method, got %d %v", rec.Code, body)
	}
}

func TestRouter_HealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/", "/health", "/health/ready", "/metrics"} {
		if rec, _ := s.do(t, http.MethodGet, path, "", ""); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
