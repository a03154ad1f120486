package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Gaur10/taskpilot/internal/activity"
)

// TaskStatus is informational only: any transition is permitted, the
// activity ledger records whatever happens.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is one family-calendar item. TenantID is immutable after creation;
// every lookup is scoped by it.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID    string     `gorm:"not null;index;index:idx_tasks_tenant_status,priority:1;index:idx_tasks_tenant_assignee,priority:1;index:idx_tasks_tenant_due,priority:1" json:"tenantId"`
	OwnerSub    string     `gorm:"not null;index" json:"ownerSub"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Status      TaskStatus `gorm:"not null;default:todo;index:idx_tasks_tenant_status,priority:2" json:"status"`
	Tags        StringList `gorm:"type:jsonb" json:"tags"`
	DueDate     *time.Time `gorm:"index:idx_tasks_tenant_due,priority:2" json:"dueDate,omitempty"`

	AssignedToEmail *string `gorm:"index:idx_tasks_tenant_assignee,priority:2" json:"assignedToEmail"`
	AssignedToName  *string `json:"assignedToName"`
	CreatedByEmail  string  `gorm:"not null" json:"createdByEmail"`
	CreatedByName   string  `gorm:"not null" json:"createdByName"`

	ActivityLog activity.Log `gorm:"type:jsonb" json:"activityLog"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsOverdue reports whether the due date has passed for an unfinished task.
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	return time.Now().After(*t.DueDate)
}

// Clone deep-copies the task so cached copies cannot be mutated through
// shared pointers.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	if t.AssignedToEmail != nil {
		e := *t.AssignedToEmail
		out.AssignedToEmail = &e
	}
	if t.AssignedToName != nil {
		n := *t.AssignedToName
		out.AssignedToName = &n
	}
	if t.Tags != nil {
		out.Tags = append(StringList(nil), t.Tags...)
	}
	out.ActivityLog = t.ActivityLog.Clone()
	return out
}
