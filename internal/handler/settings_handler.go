package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gaur10/taskpilot/internal/model"
	"github.com/Gaur10/taskpilot/internal/repository"
)

type SettingsHandler struct {
	repo repository.SettingsRepositoryInterface
	log  *zap.SugaredLogger
}

func NewSettingsHandler(repo repository.SettingsRepositoryInterface, log *zap.SugaredLogger) *SettingsHandler {
	return &SettingsHandler{repo: repo, log: log}
}

type UpdateSettingsRequest struct {
	Preferences *model.Preferences `json:"preferences"`
}

func settingsPayload(s *model.FamilySettings) gin.H {
	return gin.H{
		"tenantId":    s.TenantID,
		"preferences": s.Preferences,
		"updatedAt":   s.UpdatedAt,
	}
}

// Get returns the family's settings, seeding defaults on first access.
func (h *SettingsHandler) Get(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	settings, err := h.repo.GetOrCreate(c.Request.Context(), ident.TenantID)
	if err != nil {
		h.log.Errorw("failed to fetch settings", "tenant", ident.TenantID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": settingsPayload(settings)})
}

// Update replaces the family's preferences wholesale after validation.
func (h *SettingsHandler) Update(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request"})
		return
	}
	if req.Preferences == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Preferences are required"})
		return
	}

	if errs := req.Preferences.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid preferences", "errors": errs})
		return
	}

	settings, err := h.repo.SetPreferences(c.Request.Context(), ident.TenantID, *req.Preferences)
	if err != nil {
		h.log.Errorw("failed to update settings", "tenant", ident.TenantID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": settingsPayload(settings), "message": "Settings updated successfully"})
}

// Reset restores the family's preferences to the defaults.
func (h *SettingsHandler) Reset(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	settings, err := h.repo.SetPreferences(c.Request.Context(), ident.TenantID, model.DefaultPreferences())
	if err != nil {
		h.log.Errorw("failed to reset settings", "tenant", ident.TenantID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to reset settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": settingsPayload(settings), "message": "Settings reset to defaults"})
}
