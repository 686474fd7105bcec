// Package token issues signed access tokens.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenType is the "type" claim the auth middleware accepts.
const AccessTokenType = "access"

// Issuer signs HS256 access tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer for secret with the given lifetime.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a token carrying the user id as subject and the roles.
func (i *Issuer) Issue(userID uuid.UUID, roles []string) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  AccessTokenType,
		"roles": roles,
		"exp":   expiresAt.Unix(),
		"iat":   now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
