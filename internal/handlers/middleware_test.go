package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hagxwon/internal/security"
	"hagxwon/internal/service"
)

func newTestMiddleware(t *testing.T) (*Middleware, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	auth := service.NewAuthService(string(hash), "test-secret", time.Hour)

	token, err := auth.Login("hunter2")
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}

	return NewMiddleware(auth, security.NewRateLimiter(2, time.Hour)), token
}

func TestRequireAdmin(t *testing.T) {
	m, token := newTestMiddleware(t)

	handler := m.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", header: "", want: 401},
		{name: "not bearer", header: "Basic abc", want: 401},
		{name: "bad token", header: "Bearer nope", want: 401},
		{name: "valid token", header: "Bearer " + token, want: 204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/admin/dashboard", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			handler(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	m, _ := newTestMiddleware(t)

	handler := m.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/admin/login", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		handler(rec, req)
		if rec.Code != 204 {
			t.Fatalf("request %d status = %d, want 204", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/login", nil)
	req.RemoteAddr = "10.1.1.1:5000"
	handler(rec, req)
	if rec.Code != 429 {
		t.Errorf("status = %d, want 429 once the budget is spent", rec.Code)
	}
}
