package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/streakly/streakly/internal/ctxkeys"
	"github.com/streakly/streakly/internal/model"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(ok)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/app/habits", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/app/habits", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"}))
	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected handler to run, got %d", rec.Code)
	}
}

func TestRequireGuestRedirectsSignedInUsers(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"}))
	rec := httptest.NewRecorder()

	RequireGuest(ok)(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/app/habits" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestCSRFProtection(t *testing.T) {
	h := CSRFProtection(false)(http.HandlerFunc(ok))

	// A safe request issues the cookie.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app/todos", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != csrfCookieName {
		t.Fatalf("expected csrf cookie, got %v", cookies)
	}
	token := cookies[0].Value

	tests := []struct {
		name   string
		header string
		form   string
		want   int
	}{
		{"missing token", "", "", http.StatusForbidden},
		{"wrong token", "nope", "", http.StatusForbidden},
		{"header token", token, "", http.StatusNoContent},
		{"form token", "", token, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			if tt.form != "" {
				form.Set(csrfFormField, tt.form)
			}
			req := httptest.NewRequest(http.MethodPost, "/app/todos", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
			if tt.header != "" {
				req.Header.Set(csrfHeader, tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRequestIDEchoesOrAssigns(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "abc-123" || rec.Header().Get(requestIDHeader) != "abc-123" {
		t.Fatalf("expected incoming id to be kept, got %q", seen)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || seen == "abc-123" {
		t.Fatalf("expected a fresh id, got %q", seen)
	}
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(2, time.Minute, func() time.Time { return now })

	for i := range 2 {
		allowed, _ := limiter.Allow("1.2.3.4")
		if !allowed {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	allowed, retry := limiter.Allow("1.2.3.4")
	if allowed {
		t.Fatal("third request should be limited")
	}
	if retry != time.Minute {
		t.Fatalf("expected retry after 1m, got %v", retry)
	}

	if allowed, _ := limiter.Allow("5.6.7.8"); !allowed {
		t.Fatal("other IPs are limited separately")
	}

	now = now.Add(61 * time.Second)
	if allowed, _ := limiter.Allow("1.2.3.4"); !allowed {
		t.Fatal("expected the window to have moved on")
	}
	if limiter.Tracked() != 1 {
		t.Fatalf("expected idle IPs to be dropped, tracking %d", limiter.Tracked())
	}
}

func TestRateLimitResponds429(t *testing.T) {
	now := time.Now()
	h := RateLimit(NewRateLimiter(1, time.Minute, func() time.Time { return now }))(ok)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")

	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected first request through, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("unexpected Retry-After %q", rec.Header().Get("Retry-After"))
	}
}
