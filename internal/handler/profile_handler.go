package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gaur10/taskpilot/internal/identity"
	"github.com/Gaur10/taskpilot/internal/model"
	"github.com/Gaur10/taskpilot/internal/repository"
)

// maxAvatarBytes caps inline base64 avatar uploads at 1MB.
const maxAvatarBytes = 1024 * 1024

type ProfileHandler struct {
	repo repository.ProfileRepositoryInterface
	log  *zap.SugaredLogger
}

func NewProfileHandler(repo repository.ProfileRepositoryInterface, log *zap.SugaredLogger) *ProfileHandler {
	return &ProfileHandler{repo: repo, log: log}
}

type UpdateProfileRequest struct {
	Name        *string                   `json:"name"`
	Avatar      *string                   `json:"avatar"`
	AvatarType  *string                   `json:"avatarType" binding:"omitempty,oneof=emoji base64 url"`
	Preferences *model.ProfilePreferences `json:"preferences"`
}

// seedProfile builds the profile row created on a member's first visit.
// Tokens from some providers omit email and name, so both fall back to
// something derived from the subject.
func seedProfile(ident *identity.Identity) *model.UserProfile {
	email := ident.Email
	if email == "" {
		sub := ident.Subject
		if i := strings.IndexByte(sub, '|'); i >= 0 {
			sub = sub[i+1:]
		}
		if len(sub) > 8 {
			sub = sub[:8]
		}
		email = fmt.Sprintf("user-%s@taskpilot.app", sub)
	}
	name := ident.Name
	if name == "" {
		name = email
	}
	return &model.UserProfile{
		UserID:       ident.Subject,
		TenantID:     ident.TenantID,
		Email:        email,
		Name:         name,
		AvatarType:   model.AvatarEmoji,
		DefaultEmoji: "👤",
		Preferences:  model.DefaultProfilePreferences(),
	}
}

// Get returns the caller's profile, creating it from the token claims on
// first access.
func (h *ProfileHandler) Get(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	profile, err := h.repo.GetOrCreate(c.Request.Context(), seedProfile(ident))
	if err != nil {
		h.log.Errorw("failed to fetch profile", "tenant", ident.TenantID, "user", ident.Subject, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": profile, "displayAvatar": profile.DisplayAvatar()})
}

// Update applies partial edits to the caller's profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request"})
		return
	}

	if req.Avatar != nil && len(*req.Avatar) > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Avatar image too large. Maximum size is 1MB."})
		return
	}

	profile, err := h.repo.GetOrCreate(c.Request.Context(), seedProfile(ident))
	if err != nil {
		h.log.Errorw("failed to fetch profile", "tenant", ident.TenantID, "user", ident.Subject, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to fetch profile"})
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Name cannot be empty"})
			return
		}
		profile.Name = name
	}
	if req.Avatar != nil {
		if *req.Avatar == "" {
			profile.Avatar = nil
			profile.AvatarType = model.AvatarEmoji
		} else {
			profile.Avatar = req.Avatar
		}
	}
	if req.AvatarType != nil {
		profile.AvatarType = model.AvatarType(*req.AvatarType)
	}
	if req.Preferences != nil {
		profile.Preferences = *req.Preferences
	}

	if err := h.repo.Update(c.Request.Context(), profile); err != nil {
		h.log.Errorw("failed to update profile", "tenant", ident.TenantID, "user", ident.Subject, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": profile, "displayAvatar": profile.DisplayAvatar(), "message": "Profile updated successfully"})
}

// Family returns the roster of profiles for everyone in the caller's family.
func (h *ProfileHandler) Family(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	profiles, err := h.repo.ListByTenant(c.Request.Context(), ident.TenantID)
	if err != nil {
		h.log.Errorw("failed to fetch family profiles", "tenant", ident.TenantID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to fetch family members"})
		return
	}

	members := make([]gin.H, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		members[i] = gin.H{
			"userId":        p.UserID,
			"email":         p.Email,
			"name":          p.Name,
			"displayAvatar": p.DisplayAvatar(),
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "members": members, "count": len(members)})
}
