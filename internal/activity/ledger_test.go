package activity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Gaur10/taskpilot/internal/activity"
)

var actor = activity.Actor{Email: "mom@example.com", Name: "Mom"}

func strPtr(s string) *string {
	return &s
}

func TestCreated_WithAssignee(t *testing.T) {
	// Act
	entry := activity.Created(actor, "todo", "alice@example.com", "Alice")

	// Assert
	assert.Equal(t, activity.ActionCreated, entry.Action)
	assert.Equal(t, "mom@example.com", entry.PerformedBy)
	assert.Equal(t, "Mom", entry.PerformedByName)
	assert.Equal(t, "todo", entry.Changes["status"])
	assert.Equal(t, "Alice (alice@example.com)", entry.Changes["assignedTo"])
	assert.WithinDuration(t, time.Now(), entry.Timestamp, time.Second)
}

func TestCreated_Unassigned(t *testing.T) {
	entry := activity.Created(actor, "todo", "", "")

	assert.Equal(t, activity.ActionCreated, entry.Action)
	assert.Equal(t, "Unassigned", entry.Changes["assignedTo"])
}

func TestBuildUpdate_StatusToDoneIsCompleted(t *testing.T) {
	old := activity.TaskSnapshot{Status: "todo"}

	entry := activity.BuildUpdate(actor, old, activity.TaskUpdate{Status: strPtr("done")})

	assert.Equal(t, activity.ActionCompleted, entry.Action)
	assert.Equal(t, activity.Change{From: "todo", To: "done"}, entry.Changes["status"])
}

func TestBuildUpdate_StatusChange(t *testing.T) {
	old := activity.TaskSnapshot{Status: "todo"}

	entry := activity.BuildUpdate(actor, old, activity.TaskUpdate{Status: strPtr("in-progress")})

	assert.Equal(t, activity.ActionStatusChanged, entry.Action)
	assert.Equal(t, activity.Change{From: "todo", To: "in-progress"}, entry.Changes["status"])
}

func TestBuildUpdate_SameStatusIsUpdated(t *testing.T) {
	old := activity.TaskSnapshot{Status: "todo"}

	entry := activity.BuildUpdate(actor, old, activity.TaskUpdate{Status: strPtr("todo")})

	assert.Equal(t, activity.ActionUpdated, entry.Action)
	assert.Empty(t, entry.Changes)
}

func TestBuildUpdate_Assigned(t *testing.T) {
	old := activity.TaskSnapshot{Status: "todo"}

	entry := activity.BuildUpdate(actor, old, activity.TaskUpdate{
		AssignedToEmail: strPtr("alice@example.com"),
		AssignedToName:  strPtr("Alice"),
	})

	assert.Equal(t, activity.ActionAssigned, entry.Action)
	assert.Equal(t, activity.Change{To: "Alice (alice@example.com)"}, entry.Changes["assignedTo"])
}

func TestBuildUpdate_Unassigned(t *testing.T) {
	old := activity.TaskSnapshot{
		Status:          "todo",
		AssignedToEmail: "alice@example.com",
		AssignedToName:  "Alice",
	}

	entry := activity.BuildUpdate(actor, old, activity.TaskUpdate{AssignedToEmail: strPtr("")})

	assert.Equal(t, activity.ActionUnassigned, entry.Action)
	assert.Equal(t, activity.Change{From: "Alice (alice@example.com)"}, entry.Changes["assignedTo"])
}

func TestBuildUpdate_Reassigned(t *testing.T) {
	old := activity.TaskSnapshot{
		Status:          "todo",
		AssignedToEmail: "alice@example.com",
		AssignedToName:  "Alice",
	}

	entry := activity.BuildUpdate(actor, old, activity.TaskUpdate{
		AssignedToEmail: strPtr("bob@example.com"),
		AssignedToName:  strPtr("Bob"),
	})

	assert.Equal(t, activity.ActionReassigned, entry.Action)
	assert.Equal(t, activity.Change{
		From: "Alice (alice@example.com)",
		To:   "Bob (bob@example.com)",
	}, entry.Changes["assignedTo"])
}

func TestBuildUpdate_AssignmentWinsActionButBothRecorded(t *testing.T) {
	old := activity.TaskSnapshot{Status: "todo"}

	entry := activity.BuildUpdate(actor, old, activity.TaskUpdate{
		Status:          strPtr("done"),
		AssignedToEmail: strPtr("alice@example.com"),
		AssignedToName:  strPtr("Alice"),
	})

	// Assignment classifies the entry, the status diff is still recorded.
	assert.Equal(t, activity.ActionAssigned, entry.Action)
	assert.Equal(t, activity.Change{From: "todo", To: "done"}, entry.Changes["status"])
	assert.Equal(t, activity.Change{To: "Alice (alice@example.com)"}, entry.Changes["assignedTo"])
}

func TestBuildUpdate_NoTrackedFieldsIsUpdated(t *testing.T) {
	old := activity.TaskSnapshot{Status: "todo"}

	entry := activity.BuildUpdate(actor, old, activity.TaskUpdate{})

	assert.Equal(t, activity.ActionUpdated, entry.Action)
	assert.Empty(t, entry.Changes)
}

func TestLog_CloneIsIndependent(t *testing.T) {
	original := activity.Log{activity.Created(actor, "todo", "", "")}

	clone := original.Clone()
	clone[0].Changes["status"] = "done"
	clone = append(clone, activity.Entry{Action: activity.ActionUpdated})

	assert.Equal(t, "todo", original[0].Changes["status"])
	assert.Len(t, original, 1)
	assert.Len(t, clone, 2)
}
