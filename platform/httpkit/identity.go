package httpkit

import (
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity is the caller as seen by handlers, independent of how the token
// was validated.
type Identity interface {
	UserID() uuid.UUID
	Roles() []string
	HasRole(role string) bool
	IsAuthenticated() bool
}

type identity struct {
	userID uuid.UUID
	roles  []string
	authed bool
}

func (i identity) UserID() uuid.UUID        { return i.userID }
func (i identity) Roles() []string          { return slices.Clone(i.roles) }
func (i identity) HasRole(role string) bool { return slices.Contains(i.roles, role) }
func (i identity) IsAuthenticated() bool    { return i.authed }

var anonymous Identity = identity{}

// GetIdentity reads the identity set by AuthRequired or OptionalAuth. Requests
// without one get an anonymous identity.
func GetIdentity(c *gin.Context) Identity {
	raw, ok := c.Get(ContextUserIDKey)
	if !ok {
		return anonymous
	}
	userID, ok := raw.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return anonymous
	}

	roles, _ := c.Get(ContextRolesKey)
	roleList, _ := roles.([]string)
	return identity{userID: userID, roles: roleList, authed: true}
}

// OptionalUserID returns the caller's user id, or nil for anonymous requests.
func OptionalUserID(c *gin.Context) *uuid.UUID {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		return nil
	}
	userID := id.UserID()
	return &userID
}

// MustGetIdentity returns the authenticated identity, or aborts with 401 and
// returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		abortUnauthorized(c, "unauthorized")
		return nil
	}
	return id
}
