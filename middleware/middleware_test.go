package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pathlab/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth struct{ valid string }

func (s stubAuth) Authenticate(_ context.Context, token string) (*utils.AdminClaims, error) {
	if token != s.valid {
		return nil, errors.New("bad token")
	}
	return &utils.AdminClaims{Role: "admin"}, nil
}

func TestJWTAuthAdminMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/admin", JWTAuthAdminMiddleware(stubAuth{valid: "good"}), func(c *gin.Context) {
		if _, ok := c.Get("adminClaims"); !ok {
			t.Error("claims not set on context")
		}
		c.Status(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimitMiddleware(2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v, want [200 200 429]", codes)
	}

	// A different client has its own budget.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("second client status = %d", w.Code)
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	clock := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(5)
	store.now = func() time.Time { return clock }

	store.getLimiter("10.0.0.1")
	store.getLimiter("10.0.0.2")

	clock = clock.Add(5 * time.Minute)
	store.getLimiter("10.0.0.2")

	clock = clock.Add(6 * time.Minute)
	store.getLimiter("10.0.0.3")

	if _, ok := store.limiters["10.0.0.1"]; ok {
		t.Fatal("idle client should have been evicted")
	}
	for _, ip := range []string{"10.0.0.2", "10.0.0.3"} {
		if _, ok := store.limiters[ip]; !ok {
			t.Fatalf("active client %s was evicted", ip)
		}
	}
	if len(store.limiters) != 2 {
		t.Fatalf("limiters = %d, want 2", len(store.limiters))
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		if _, ok := c.Get("logger"); !ok {
			t.Error("logger not set on context")
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc" {
		t.Fatalf("X-Request-ID = %q", got)
	}
}
