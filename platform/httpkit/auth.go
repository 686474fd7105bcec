package httpkit

import (
	"errors"
	"net/http"
	"strings"

	"aptivai_backend/platform/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// ContextUserIDKey is the gin context key for the authenticated user ID.
	ContextUserIDKey = "userID"
	// ContextRolesKey is the gin context key for the user's roles.
	ContextRolesKey = "roles"

	accessTokenType = "access"
	bearerPrefix    = "Bearer "

	errMissingToken = "missing token"
	errInvalidToken = "invalid token"
	errForbidden    = "forbidden"
)

// AuthRequired rejects requests without a valid access token.
func AuthRequired(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, errMissingToken)
			return
		}
		if !setIdentity(c, rawToken, cfg) {
			abortUnauthorized(c, errInvalidToken)
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid bearer token is present and
// lets anonymous requests through. A present but invalid token is rejected.
func OptionalAuth(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		if !setIdentity(c, rawToken, cfg) {
			abortUnauthorized(c, errInvalidToken)
			return
		}
		c.Next()
	}
}

// RequireRole allows only authenticated callers holding role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := GetIdentity(c); !id.IsAuthenticated() || !id.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: errForbidden})
			return
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, rawToken string, cfg config.JWTConfig) bool {
	claims, err := parseAccessClaims(rawToken, cfg)
	if err != nil {
		return false
	}

	subject, _ := claims["sub"].(string)
	userID, err := uuid.Parse(subject)
	if err != nil {
		return false
	}

	c.Set(ContextUserIDKey, userID)
	c.Set(ContextRolesKey, extractRoles(claims["roles"]))
	return true
}

func parseAccessClaims(rawToken string, cfg config.JWTConfig) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(rawToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.GetJWTAccessSecret()), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if tokenType, _ := claims["type"].(string); tokenType != accessTokenType {
		return nil, errors.New(errInvalidToken)
	}
	return claims, nil
}

func extractRoles(value interface{}) []string {
	roles := make([]string, 0)
	switch typed := value.(type) {
	case []string:
		roles = append(roles, typed...)
	case []interface{}:
		for _, item := range typed {
			if text, ok := item.(string); ok {
				roles = append(roles, text)
			}
		}
	}
	return roles
}

func extractBearerToken(authHeader string) (string, bool) {
	rawToken, found := strings.CutPrefix(authHeader, bearerPrefix)
	if !found {
		return "", false
	}
	rawToken = strings.TrimSpace(rawToken)
	return rawToken, rawToken != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}
