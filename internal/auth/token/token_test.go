package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestIssueSignsAccessClaims(t *testing.T) {
	issuer := NewIssuer("test-secret", 15*time.Minute)
	userID := uuid.New()

	raw, expiresAt, err := issuer.Issue(userID, []string{"user", "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("expected a future expiry")
	}

	parsed, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("expected a valid token, got %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != userID.String() || claims["type"] != AccessTokenType {
		t.Errorf("unexpected claims %v", claims)
	}
	if roles, _ := claims["roles"].([]interface{}); len(roles) != 2 {
		t.Errorf("expected two roles, got %v", claims["roles"])
	}
}

func TestIssueRejectedWithOtherSecret(t *testing.T) {
	raw, _, _ := NewIssuer("a", time.Minute).Issue(uuid.New(), nil)
	_, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return []byte("b"), nil })
	if err == nil {
		t.Fatal("expected signature error")
	}
}
