// Package render turns engine summary values into display text. It is a
// thin formatting layer; all selection and ordering happens in the engine.
package render

import (
	"fmt"
	"strings"

	"task-tracker.com/task-tracker/internal/engine"
	"task-tracker.com/task-tracker/pkg/constants"
)

var statusEmoji = map[constants.TaskStatus]string{
	constants.StatusTodo:       "📅",
	constants.StatusInProgress: "🚧",
	constants.StatusDone:       "✅",
}

// MarkdownReport renders a report as a markdown table, one row per task.
func MarkdownReport(r engine.Report) string {
	var b strings.Builder

	b.WriteString("# Task Management Report\n\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	b.WriteString("| Status | Priority | Title | Due Date |\n")
	b.WriteString("| --- | --- | --- | --- |\n")

	for _, group := range r.Groups {
		for _, t := range group.Tasks {
			emoji, ok := statusEmoji[t.Status]
			if !ok {
				emoji = "📝"
			}
			due := "No deadline"
			if t.DueDate != nil {
				due = t.DueDate.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(&b, "| %s %s | %s | %s | %s |\n",
				emoji, t.Status, strings.Repeat("⭐", t.Priority), t.Title, due)
		}
	}

	return b.String()
}

// BriefText renders a daily brief as a short plain-text message listing the
// tasks that are overdue or due within the day.
func BriefText(brief engine.DailyBrief) string {
	attention := brief.OverdueCount + brief.DueSoonCount
	if attention == 0 {
		return "You're all caught up! No tasks due today."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Good morning! You have %d tasks needing attention today:\n", attention)
	for _, t := range brief.Overdue {
		fmt.Fprintf(&b, "- [%d] %s (Overdue!)\n", t.Priority, t.Title)
	}
	for _, t := range brief.DueSoon {
		fmt.Fprintf(&b, "- [%d] %s (Due today)\n", t.Priority, t.Title)
	}

	return b.String()
}
