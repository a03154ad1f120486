// Package handler contains the gin HTTP handlers. Responses use the
// {"ok": bool, ...} envelope throughout.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gaur10/taskpilot/internal/identity"
	"github.com/Gaur10/taskpilot/internal/middleware"
)

// requireTenant returns the request identity, aborting with the proper
// client error when authentication or the tenant claim is missing. Missing
// tenant context is a validation error, not an auth error.
func requireTenant(c *gin.Context) (*identity.Identity, bool) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Not authenticated"})
		return nil, false
	}
	if ident.TenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Family context is required"})
		return nil, false
	}
	return ident, true
}
