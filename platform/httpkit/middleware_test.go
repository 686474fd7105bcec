package httpkit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const testSecret = "test-access-secret"

type testJWTConfig struct{}

func (testJWTConfig) GetJWTAccessSecret() string { return testSecret }

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret, tokenType string, userID uuid.UUID, roles []string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"type":  tokenType,
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func serve(engine *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2, logger.New("development"))
	engine := gin.New()
	engine.GET("/ping", limiter.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if w := serve(engine, http.MethodGet, "/ping", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}

	w := serve(engine, http.MethodGet, "/ping", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "1" {
		t.Errorf("expected Retry-After 1, got %q", got)
	}
}

func TestRateLimiterDropsIdleClients(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1, nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	limiter.allow("10.0.0.1")
	limiter.allow("10.0.0.2")
	if got := limiter.tracked(); got != 2 {
		t.Fatalf("expected 2 tracked clients, got %d", got)
	}

	now = now.Add(defaultLimiterIdleTTL + time.Second)
	if !limiter.allow("10.0.0.3") {
		t.Fatal("expected a fresh client to be allowed")
	}
	if got := limiter.tracked(); got != 1 {
		t.Errorf("expected idle clients to be dropped, %d tracked", got)
	}
}

func TestRequireRole(t *testing.T) {
	userID := uuid.New()
	engine := gin.New()
	engine.GET("/admin", AuthRequired(testJWTConfig{}), RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name  string
		roles []string
		want  int
	}{
		{name: "admin", roles: []string{"user", "admin"}, want: http.StatusOK},
		{name: "plain user", roles: []string{"user"}, want: http.StatusForbidden},
		{name: "no roles", roles: nil, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signToken(t, testSecret, "access", userID, tt.roles)
			if w := serve(engine, http.MethodGet, "/admin", token); w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestAuthRequiredRejectsBadTokens(t *testing.T) {
	userID := uuid.New()
	engine := gin.New()
	engine.GET("/me", AuthRequired(testJWTConfig{}), func(c *gin.Context) {
		c.String(http.StatusOK, GetIdentity(c).UserID().String())
	})

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{name: "missing", token: "", want: http.StatusUnauthorized},
		{name: "wrong secret", token: signToken(t, "other", "access", userID, nil), want: http.StatusUnauthorized},
		{name: "refresh token", token: signToken(t, testSecret, "refresh", userID, nil), want: http.StatusUnauthorized},
		{name: "garbage", token: "not-a-jwt", want: http.StatusUnauthorized},
		{name: "valid", token: signToken(t, testSecret, "access", userID, nil), want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(engine, http.MethodGet, "/me", tt.token)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			if tt.want == http.StatusOK && w.Body.String() != userID.String() {
				t.Errorf("expected identity %s, got %s", userID, w.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()
	engine := gin.New()
	engine.GET("/chat", OptionalAuth(testJWTConfig{}), func(c *gin.Context) {
		if id := OptionalUserID(c); id != nil {
			c.String(http.StatusOK, id.String())
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	if w := serve(engine, http.MethodGet, "/chat", ""); w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Errorf("expected anonymous pass-through, got %d %q", w.Code, w.Body.String())
	}
	token := signToken(t, testSecret, "access", userID, nil)
	if w := serve(engine, http.MethodGet, "/chat", token); w.Body.String() != userID.String() {
		t.Errorf("expected identity %s, got %q", userID, w.Body.String())
	}
	if w := serve(engine, http.MethodGet, "/chat", "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for an invalid token, got %d", w.Code)
	}
}

func TestHandleErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: apperr.NotFound("lead not found"), want: http.StatusNotFound},
		{name: "forbidden", err: apperr.Forbidden("not your account"), want: http.StatusForbidden},
		{name: "wrapped conflict", err: apperr.Wrap(apperr.KindConflict, "duplicate", errors.New("unique violation")), want: http.StatusConflict},
		{name: "plain error", err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			if !HandleError(c, tt.err) {
				t.Fatal("expected error to be handled")
			}
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}
