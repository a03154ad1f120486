package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gaur10/taskpilot/internal/cache"
	"github.com/Gaur10/taskpilot/internal/model"
	"github.com/Gaur10/taskpilot/internal/repository"
)

type ProjectHandler struct {
	repo  repository.ProjectRepositoryInterface
	cache *cache.TenantCache[model.Project]
	log   *zap.SugaredLogger
}

func NewProjectHandler(repo repository.ProjectRepositoryInterface, projectCache *cache.TenantCache[model.Project], log *zap.SugaredLogger) *ProjectHandler {
	return &ProjectHandler{repo: repo, cache: projectCache, log: log}
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Project name is required"})
		return
	}

	project := &model.Project{
		TenantID:    ident.TenantID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   ident.Email,
	}

	if err := h.repo.Create(c.Request.Context(), project); err != nil {
		h.log.Errorw("failed to create project", "tenant", ident.TenantID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to create project"})
		return
	}

	h.cache.Invalidate(ident.TenantID)

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": project})
}

func (h *ProjectHandler) List(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	if projects, hit := h.cache.Get(ident.TenantID); hit {
		c.JSON(http.StatusOK, gin.H{"ok": true, "projects": projects, "count": len(projects)})
		return
	}

	projects, err := h.repo.ListByTenant(c.Request.Context(), ident.TenantID)
	if err != nil {
		h.log.Errorw("failed to fetch projects", "tenant", ident.TenantID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to fetch projects"})
		return
	}

	h.cache.Set(ident.TenantID, projects)

	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": projects, "count": len(projects)})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid project ID format"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), ident.TenantID, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Project not found or access denied"})
		} else {
			h.log.Errorw("failed to delete project", "tenant", ident.TenantID, "project", projectID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to delete project"})
		}
		return
	}

	h.cache.Invalidate(ident.TenantID)

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Project deleted successfully", "id": projectID})
}
