package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gaur10/taskpilot/internal/ai"
	"github.com/Gaur10/taskpilot/internal/repository"
)

type AIHandler struct {
	suggester *ai.Suggester
	settings  repository.SettingsRepositoryInterface
	log       *zap.SugaredLogger
}

func NewAIHandler(suggester *ai.Suggester, settings repository.SettingsRepositoryInterface, log *zap.SugaredLogger) *AIHandler {
	return &AIHandler{suggester: suggester, settings: settings, log: log}
}

type SuggestDescriptionRequest struct {
	TaskName       string     `json:"taskName"`
	AssignedToName string     `json:"assignedToName"`
	DueDate        *time.Time `json:"dueDate"`
	Tags           []string   `json:"tags"`
}

// SuggestDescription generates a short task description. The endpoint fails
// open: when the model is disabled or errors, the response is still 200 with
// a null description so the client can fall back to manual entry.
func (h *AIHandler) SuggestDescription(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	var req SuggestDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request"})
		return
	}

	taskName := strings.TrimSpace(req.TaskName)
	if taskName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Task name is required"})
		return
	}

	// Family context is best-effort, a settings failure must not block the
	// suggestion.
	familyContext := ""
	if settings, err := h.settings.GetOrCreate(c.Request.Context(), ident.TenantID); err == nil {
		familyContext = settings.AIContext()
	} else {
		h.log.Warnw("failed to load settings for AI context", "tenant", ident.TenantID, "error", err)
	}

	description := h.suggester.Suggest(c.Request.Context(), ai.SuggestionRequest{
		TaskName:       taskName,
		AssignedToName: strings.TrimSpace(req.AssignedToName),
		DueDate:        req.DueDate,
		Tags:           req.Tags,
		FamilyContext:  familyContext,
	})

	if description == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "description": nil, "message": "AI service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "description": description, "generated": true})
}
