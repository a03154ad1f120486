package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gaur10/taskpilot/internal/activity"
	"github.com/Gaur10/taskpilot/internal/cache"
	"github.com/Gaur10/taskpilot/internal/model"
	"github.com/Gaur10/taskpilot/internal/repository"
)

type TaskHandler struct {
	repo  repository.TaskRepositoryInterface
	cache *cache.TenantCache[model.Task]
	log   *zap.SugaredLogger
}

func NewTaskHandler(repo repository.TaskRepositoryInterface, taskCache *cache.TenantCache[model.Task], log *zap.SugaredLogger) *TaskHandler {
	return &TaskHandler{repo: repo, cache: taskCache, log: log}
}

type CreateTaskRequest struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Status          string     `json:"status" binding:"omitempty,oneof=todo in-progress done"`
	DueDate         *time.Time `json:"dueDate"`
	Tags            []string   `json:"tags"`
	AssignedToEmail string     `json:"assignedToEmail"`
	AssignedToName  string     `json:"assignedToName"`
}

// UpdateTaskRequest uses pointer fields so "not provided" and "set to empty"
// stay distinguishable; a provided empty assignedToEmail means unassign.
type UpdateTaskRequest struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	Status          *string    `json:"status" binding:"omitempty,oneof=todo in-progress done"`
	DueDate         *time.Time `json:"dueDate"`
	Tags            *[]string  `json:"tags"`
	AssignedToEmail *string    `json:"assignedToEmail"`
	AssignedToName  *string    `json:"assignedToName"`
}

// Create adds a task for the family. Anyone in the family can create tasks
// and assign them to others. The first activity entry is written with the
// task itself.
func (h *TaskHandler) Create(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Task name is required"})
		return
	}
	if ident.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "User email is required"})
		return
	}

	status := model.TaskStatus(req.Status)
	if status == "" {
		status = model.StatusTodo
	}

	assigneeEmail := strings.TrimSpace(req.AssignedToEmail)
	assigneeName := strings.TrimSpace(req.AssignedToName)

	task := &model.Task{
		TenantID:       ident.TenantID,
		OwnerSub:       ident.Subject,
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		Status:         status,
		Tags:           req.Tags,
		DueDate:        req.DueDate,
		CreatedByEmail: ident.Email,
		CreatedByName:  ident.Name,
		ActivityLog: activity.Log{
			activity.Created(actorFrom(ident.Email, ident.Name), string(status), assigneeEmail, assigneeName),
		},
	}
	if assigneeEmail != "" {
		task.AssignedToEmail = &assigneeEmail
		task.AssignedToName = &assigneeName
	}

	if err := h.repo.Create(c.Request.Context(), task); err != nil {
		h.log.Errorw("failed to create task", "tenant", ident.TenantID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to create task"})
		return
	}

	h.cache.Invalidate(ident.TenantID)

	c.JSON(http.StatusCreated, gin.H{"ok": true, "task": task})
}

// List returns all tasks for the family (shared calendar view), newest
// first. Reads go through the per-tenant cache.
func (h *TaskHandler) List(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	if tasks, hit := h.cache.Get(ident.TenantID); hit {
		h.log.Debugw("task cache hit", "tenant", ident.TenantID)
		c.JSON(http.StatusOK, gin.H{"ok": true, "tasks": tasks, "count": len(tasks)})
		return
	}
	h.log.Debugw("task cache miss", "tenant", ident.TenantID)

	tasks, err := h.repo.ListByTenant(c.Request.Context(), ident.TenantID)
	if err != nil {
		h.log.Errorw("failed to fetch tasks", "tenant", ident.TenantID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to fetch tasks"})
		return
	}

	h.cache.Set(ident.TenantID, tasks)

	c.JSON(http.StatusOK, gin.H{"ok": true, "tasks": tasks, "count": len(tasks)})
}

// GetByID returns one task, family-scoped. A task belonging to another
// tenant is reported exactly like a missing one.
func (h *TaskHandler) GetByID(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid task ID format"})
		return
	}

	task, err := h.repo.GetByID(c.Request.Context(), ident.TenantID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Task not found or access denied"})
		} else {
			h.log.Errorw("failed to fetch task", "tenant", ident.TenantID, "task", taskID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to fetch task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "task": task})
}

// Update edits a task. Any family member can update any task (shared
// calendar model). The change diff and its ledger entry are committed
// together with the field updates.
func (h *TaskHandler) Update(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid task ID format"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request"})
		return
	}

	task, err := h.repo.GetByID(c.Request.Context(), ident.TenantID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Task not found or access denied"})
		} else {
			h.log.Errorw("failed to fetch task", "tenant", ident.TenantID, "task", taskID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to fetch task"})
		}
		return
	}

	snapshot := activity.TaskSnapshot{
		Status:          string(task.Status),
		AssignedToEmail: deref(task.AssignedToEmail),
		AssignedToName:  deref(task.AssignedToName),
	}

	var assigneeEmail, assigneeName *string
	if req.AssignedToEmail != nil {
		e := strings.TrimSpace(*req.AssignedToEmail)
		assigneeEmail = &e
		n := ""
		if req.AssignedToName != nil {
			n = strings.TrimSpace(*req.AssignedToName)
		}
		assigneeName = &n
	}

	entry := activity.BuildUpdate(actorFrom(ident.Email, ident.Name), snapshot, activity.TaskUpdate{
		Status:          req.Status,
		AssignedToEmail: assigneeEmail,
		AssignedToName:  assigneeName,
	})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Task name is required"})
			return
		}
		task.Name = name
	}
	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		task.Status = model.TaskStatus(*req.Status)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}
	if assigneeEmail != nil {
		if *assigneeEmail == "" {
			task.AssignedToEmail = nil
			task.AssignedToName = nil
		} else {
			task.AssignedToEmail = assigneeEmail
			task.AssignedToName = assigneeName
		}
	}

	task.ActivityLog = append(task.ActivityLog, entry)

	if err := h.repo.Update(c.Request.Context(), task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Task not found or access denied"})
		} else {
			h.log.Errorw("failed to update task", "tenant", ident.TenantID, "task", taskID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to update task"})
		}
		return
	}

	h.cache.Invalidate(ident.TenantID)

	c.JSON(http.StatusOK, gin.H{"ok": true, "task": task})
}

// Delete removes a task, family-scoped.
func (h *TaskHandler) Delete(c *gin.Context) {
	ident, ok := requireTenant(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid task ID format"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), ident.TenantID, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			h.log.Warnw("delete failed, task not found", "tenant", ident.TenantID, "task", taskID)
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Task not found or access denied"})
		} else {
			h.log.Errorw("failed to delete task", "tenant", ident.TenantID, "task", taskID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to delete task"})
		}
		return
	}

	h.cache.Invalidate(ident.TenantID)

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Task deleted successfully", "id": taskID})
}

func actorFrom(email, name string) activity.Actor {
	if name == "" {
		name = email
	}
	return activity.Actor{Email: email, Name: name}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
