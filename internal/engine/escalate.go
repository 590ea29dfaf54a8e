package engine

import (
	"time"

	"task-tracker.com/task-tracker/pkg/constants"
	model "task-tracker.com/task-tracker/pkg/models"
)

// Escalation windows. A remaining time exactly on a boundary falls into the
// tighter bucket.
const (
	criticalWindow = 24 * time.Hour
	elevatedWindow = 72 * time.Hour

	criticalPriority = constants.PriorityMax
	elevatedPriority = 4
)

// Escalation is an instruction to raise one task's priority.
type Escalation struct {
	TaskID   string `json:"task_id"`
	Priority int    `json:"priority"`
}

// SuggestPriority returns the priority a task should have at the given
// reference time. The rule only ever raises: a task already above the
// suggested tier, a done or archived task, or a task without a due date
// keeps its current priority.
func SuggestPriority(t model.Task, now time.Time) int {
	if t.DueDate == nil || t.Status == constants.StatusDone || t.Archived {
		return t.Priority
	}

	suggested := t.Priority
	switch remaining := t.DueDate.Sub(now); {
	case remaining <= criticalWindow:
		suggested = criticalPriority
	case remaining <= elevatedWindow:
		suggested = elevatedPriority
	}

	if suggested > t.Priority {
		return suggested
	}
	return t.Priority
}

// SuggestPriorities evaluates a batch and returns the set of raises to
// apply. Tasks violating model invariants are reported in the diagnostics
// slice and do not block evaluation of the rest.
func SuggestPriorities(tasks []model.Task, now time.Time) ([]Escalation, []error) {
	var (
		changes     []Escalation
		diagnostics []error
	)

	for _, t := range tasks {
		if err := ValidateTask(t); err != nil {
			diagnostics = append(diagnostics, err)
			continue
		}
		if p := SuggestPriority(t, now); p != t.Priority {
			changes = append(changes, Escalation{TaskID: t.ID, Priority: p})
		}
	}

	return changes, diagnostics
}
