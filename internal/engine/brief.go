package engine

import (
	"time"

	"task-tracker.com/task-tracker/pkg/constants"
	model "task-tracker.com/task-tracker/pkg/models"
)

// DefaultBriefSize is the number of top tasks a daily brief lists.
const DefaultBriefSize = 5

// DailyBrief is a structured snapshot of what needs attention at a given
// moment. Groups are urgency-ordered; rendering to text is a separate
// concern.
type DailyBrief struct {
	GeneratedAt  time.Time    `json:"generated_at"`
	OpenCount    int          `json:"open_count"`
	OverdueCount int          `json:"overdue_count"`
	DueSoonCount int          `json:"due_soon_count"`
	Overdue      []model.Task `json:"overdue"`
	DueSoon      []model.Task `json:"due_soon"`
	TopTasks     []model.Task `json:"top_tasks"`
}

// Overdue reports whether a task's deadline has passed without the task
// being done.
func Overdue(t model.Task, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != constants.StatusDone
}

// DueSoon reports whether a task is due within the next 24 hours.
func DueSoon(t model.Task, now time.Time) bool {
	if t.DueDate == nil || t.Status == constants.StatusDone {
		return false
	}
	remaining := t.DueDate.Sub(now)
	return remaining >= 0 && remaining <= criticalWindow
}

// BuildDailyBrief summarizes the open (non-done, non-archived) tasks at the
// given reference time. topN <= 0 falls back to DefaultBriefSize.
func BuildDailyBrief(tasks []model.Task, now time.Time, topN int) DailyBrief {
	if topN <= 0 {
		topN = DefaultBriefSize
	}

	open := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Archived || t.Status == constants.StatusDone {
			continue
		}
		open = append(open, t)
	}
	SortByUrgency(open)

	brief := DailyBrief{
		GeneratedAt: now,
		OpenCount:   len(open),
	}

	for _, t := range open {
		switch {
		case Overdue(t, now):
			brief.Overdue = append(brief.Overdue, t)
		case DueSoon(t, now):
			brief.DueSoon = append(brief.DueSoon, t)
		}
	}
	brief.OverdueCount = len(brief.Overdue)
	brief.DueSoonCount = len(brief.DueSoon)

	if topN > len(open) {
		topN = len(open)
	}
	brief.TopTasks = open[:topN]

	return brief
}
