package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter(100*time.Millisecond, 2, "slow down")

	if !l.Allow("1.2.3.4") {
		t.Fatalf("expected first call allowed")
	}
	if !l.Allow("1.2.3.4") {
		t.Fatalf("expected second call allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Fatalf("expected third call blocked")
	}
	// other clients have their own bucket
	if !l.Allow("5.6.7.8") {
		t.Fatalf("expected different client allowed")
	}
	// after the window refills, the same client passes again
	time.Sleep(120 * time.Millisecond)
	if !l.Allow("1.2.3.4") {
		t.Fatalf("expected call allowed after refill")
	}
}

func TestLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewLimiter(time.Minute, 1, "too many requests")

	r := gin.New()
	r.GET("/ping", l.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}
