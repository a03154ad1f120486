package ai

import (
	"strings"
	"time"
)

// BuildPrompt renders the suggestion prompt: the task name, whatever context
// is known, and tight output constraints so the model answers with a single
// short description.
func BuildPrompt(req SuggestionRequest) string {
	var b strings.Builder

	b.WriteString("You are a helpful family task assistant. Generate a concise, actionable description for this task.\n\n")
	b.WriteString(`Task: "`)
	b.WriteString(req.TaskName)
	b.WriteString(`"`)

	if req.AssignedToName != "" {
		b.WriteString("\nAssigned to: ")
		b.WriteString(req.AssignedToName)
	}

	if req.DueDate != nil {
		b.WriteString("\nDue: ")
		b.WriteString(dueDatePhrase(*req.DueDate, time.Now()))
	}

	if len(req.Tags) > 0 {
		b.WriteString("\nTags: ")
		b.WriteString(strings.Join(req.Tags, ", "))
	}

	if req.FamilyContext != "" {
		b.WriteString("\n\nFamily context:\n")
		b.WriteString(req.FamilyContext)
	}

	b.WriteString(`

Requirements:
- Keep it under 100 characters
- Be specific and actionable
- Include helpful tips or reminders if relevant
- Use emojis sparingly (1-2 max)
- Don't repeat the task name
- Focus on HOW or WHEN to do it

Examples:
Task: "Buy milk" → "Pick up 2% from Safeway on the way home"
Task: "Doctor appointment" → "Bring insurance card, arrive 10 min early"
Task: "Pick up kids" → "School dismissal at 3:15 PM, remember jackets"

Your description:`)

	return b.String()
}

// dueDatePhrase renders a due date relative to now: Today, Tomorrow, or a
// short month-day form.
func dueDatePhrase(due, now time.Time) string {
	dueDay := due.Format("2006-01-02")
	switch dueDay {
	case now.Format("2006-01-02"):
		return "Today"
	case now.AddDate(0, 0, 1).Format("2006-01-02"):
		return "Tomorrow"
	}
	return due.Format("Jan 2")
}
