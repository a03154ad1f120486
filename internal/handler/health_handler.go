package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gaur10/taskpilot/internal/cache"
	"github.com/Gaur10/taskpilot/internal/model"
)

type HealthHandler struct {
	startedAt time.Time
	taskCache *cache.TenantCache[model.Task]
}

func NewHealthHandler(taskCache *cache.TenantCache[model.Task]) *HealthHandler {
	return &HealthHandler{startedAt: time.Now(), taskCache: taskCache}
}

// Health reports liveness. Public, no auth.
func (h *HealthHandler) Health(c *gin.Context) {
	stats := h.taskCache.Stats()
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"service":   "taskpilot-api",
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"cache": gin.H{
			"hits":   stats.Hits,
			"misses": stats.Misses,
			"keys":   stats.Keys,
		},
	})
}

// AdminInfo is the admin-gated variant of TenantInfo, behind RequireRole.
func (h *HealthHandler) AdminInfo(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"message":  "Admin access granted",
		"tenantId": ident.TenantID,
		"roles":    ident.Roles,
	})
}

// TenantInfo echoes what the server resolved from the caller's token. Handy
// for debugging claim mapping.
func (h *HealthHandler) TenantInfo(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"tenantId": ident.TenantID,
		"user": gin.H{
			"sub":   ident.Subject,
			"email": ident.Email,
			"name":  ident.Name,
			"roles": ident.Roles,
		},
	})
}
