package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_MinimalRequest(t *testing.T) {
	prompt := BuildPrompt(SuggestionRequest{TaskName: "Buy milk"})

	assert.Contains(t, prompt, `Task: "Buy milk"`)
	assert.Contains(t, prompt, "Keep it under 100 characters")
	assert.NotContains(t, prompt, "Assigned to:")
	assert.NotContains(t, prompt, "Family context:")
}

func TestBuildPrompt_FullRequest(t *testing.T) {
	due := time.Now().AddDate(0, 0, 7)
	prompt := BuildPrompt(SuggestionRequest{
		TaskName:       "Pick up kids",
		AssignedToName: "Dad",
		DueDate:        &due,
		Tags:           []string{"school", "pickup"},
		FamilyContext:  "Schools: Lincoln Elementary pickup at 3:15 PM",
	})

	assert.Contains(t, prompt, "Assigned to: Dad")
	assert.Contains(t, prompt, "Due: "+due.Format("Jan 2"))
	assert.Contains(t, prompt, "Tags: school, pickup")
	assert.Contains(t, prompt, "Family context:\nSchools: Lincoln Elementary pickup at 3:15 PM")
}

func TestDueDatePhrase(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", dueDatePhrase(now.Add(2*time.Hour), now))
	assert.Equal(t, "Tomorrow", dueDatePhrase(now.AddDate(0, 0, 1), now))
	assert.Equal(t, "Mar 15", dueDatePhrase(now.AddDate(0, 0, 5), now))
}
