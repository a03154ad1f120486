package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gaur10/taskpilot/internal/identity"
)

// IdentityKey is the gin context key the resolved identity is stored under.
const IdentityKey = "identity"

// Authenticate resolves the request identity and aborts with 401 when it
// cannot. Handlers downstream read the identity via CurrentIdentity.
func Authenticate(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := resolver.Resolve(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": authErrorMessage(err)})
			return
		}
		c.Set(IdentityKey, ident)
		c.Next()
	}
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, identity.ErrNoAuthHeader):
		return "Authorization header is required"
	case errors.Is(err, identity.ErrBadAuthFormat):
		return "Authorization header format must be Bearer {token}"
	default:
		return "Invalid or expired token"
	}
}

// CurrentIdentity returns the identity set by Authenticate.
func CurrentIdentity(c *gin.Context) (*identity.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	ident, ok := v.(*identity.Identity)
	return ident, ok
}

// RequireRole gates a route on one of the identity's roles.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Not authenticated"})
			return
		}
		if !ident.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"ok":           false,
				"error":        "Forbidden",
				"requiredRole": role,
				"rolesPresent": ident.Roles,
			})
			return
		}
		c.Next()
	}
}
