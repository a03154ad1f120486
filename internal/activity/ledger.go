// Package activity implements the append-only per-task history: every task
// mutation yields exactly one Entry describing who changed what, classified
// by an Action kind for presentation.
package activity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Action classifies a ledger entry.
type Action string

const (
	ActionCreated       Action = "created"
	ActionAssigned      Action = "assigned"
	ActionReassigned    Action = "reassigned"
	ActionUnassigned    Action = "unassigned"
	ActionStatusChanged Action = "status_changed"
	ActionCompleted     Action = "completed"
	ActionUpdated       Action = "updated"
)

const statusDone = "done"

// Actor identifies who performed a mutation.
type Actor struct {
	Email string
	Name  string
}

// Change is an old/new pair recorded under a field key in Changes.
type Change struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Changes maps a trackable field to what happened to it. Values are either
// Change pairs or plain strings (the creation snapshot).
type Changes map[string]any

// Entry is one immutable ledger record. Entries are only ever appended.
type Entry struct {
	Action          Action    `json:"action"`
	PerformedBy     string    `json:"performedBy"`
	PerformedByName string    `json:"performedByName"`
	Timestamp       time.Time `json:"timestamp"`
	Changes         Changes   `json:"changes,omitempty"`
}

// Log is the per-task entry sequence, stored as a jsonb column so an append
// commits in the same UPDATE as the field changes it describes.
type Log []Entry

func (l Log) Value() (driver.Value, error) {
	if l == nil {
		l = Log{}
	}
	return json.Marshal(l)
}

func (l *Log) Scan(src any) error {
	if src == nil {
		*l = Log{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("activity: cannot scan %T into Log", src)
	}
	return json.Unmarshal(data, l)
}

// Clone deep-copies the log, including each entry's changes map.
func (l Log) Clone() Log {
	if l == nil {
		return nil
	}
	out := make(Log, len(l))
	for i, e := range l {
		if e.Changes != nil {
			changes := make(Changes, len(e.Changes))
			for k, v := range e.Changes {
				changes[k] = v
			}
			e.Changes = changes
		}
		out[i] = e
	}
	return out
}

// Created builds the entry appended atomically with task creation.
func Created(actor Actor, status, assigneeEmail, assigneeName string) Entry {
	assignedTo := "Unassigned"
	if assigneeEmail != "" {
		assignedTo = assigneeLabel(assigneeName, assigneeEmail)
	}
	return Entry{
		Action:          ActionCreated,
		PerformedBy:     actor.Email,
		PerformedByName: actor.Name,
		Timestamp:       time.Now().UTC(),
		Changes: Changes{
			"status":     status,
			"assignedTo": assignedTo,
		},
	}
}

// TaskSnapshot is the persisted state an update is diffed against. Empty
// assignee email means unassigned.
type TaskSnapshot struct {
	Status          string
	AssignedToEmail string
	AssignedToName  string
}

// TaskUpdate carries the incoming trackable fields. Nil means the field was
// not provided; a non-nil empty AssignedToEmail means "unassign".
type TaskUpdate struct {
	Status          *string
	AssignedToEmail *string
	AssignedToName  *string
}

// BuildUpdate diffs an update against the stored snapshot and produces the
// ledger entry for it. When both the status and the assignment change in one
// call, the assignment classification wins the action label, but both change
// sets are recorded.
func BuildUpdate(actor Actor, old TaskSnapshot, upd TaskUpdate) Entry {
	action := ActionUpdated
	changes := Changes{}

	if upd.Status != nil && *upd.Status != old.Status {
		changes["status"] = Change{From: old.Status, To: *upd.Status}
		if *upd.Status == statusDone {
			action = ActionCompleted
		} else {
			action = ActionStatusChanged
		}
	}

	if upd.AssignedToEmail != nil {
		oldEmail := old.AssignedToEmail
		newEmail := *upd.AssignedToEmail
		newName := ""
		if upd.AssignedToName != nil {
			newName = *upd.AssignedToName
		}

		if oldEmail != newEmail {
			switch {
			case oldEmail == "" && newEmail != "":
				action = ActionAssigned
				changes["assignedTo"] = Change{To: assigneeLabel(newName, newEmail)}
			case oldEmail != "" && newEmail == "":
				action = ActionUnassigned
				changes["assignedTo"] = Change{From: assigneeLabel(old.AssignedToName, oldEmail)}
			default:
				action = ActionReassigned
				changes["assignedTo"] = Change{
					From: assigneeLabel(old.AssignedToName, oldEmail),
					To:   assigneeLabel(newName, newEmail),
				}
			}
		}
	}

	return Entry{
		Action:          action,
		PerformedBy:     actor.Email,
		PerformedByName: actor.Name,
		Timestamp:       time.Now().UTC(),
		Changes:         changes,
	}
}

func assigneeLabel(name, email string) string {
	return fmt.Sprintf("%s (%s)", name, email)
}
