package engine

import (
	"time"

	"task-tracker.com/task-tracker/pkg/constants"
	model "task-tracker.com/task-tracker/pkg/models"
)

// DefaultRetention is how long a completed task stays in active views
// before the archival sweep retires it.
const DefaultRetention = 7 * 24 * time.Hour

// Archivable returns the ids of tasks that should be flagged archived at
// the given reference time: done, completed strictly more than olderThan
// ago, and not already archived. The operation is idempotent; already
// archived tasks are never selected again.
func Archivable(tasks []model.Task, now time.Time, olderThan time.Duration) ([]string, []error) {
	var (
		ids         []string
		diagnostics []error
	)

	for _, t := range tasks {
		if err := ValidateTask(t); err != nil {
			diagnostics = append(diagnostics, err)
			continue
		}
		if t.Archived || t.Status != constants.StatusDone || t.CompletedAt == nil {
			continue
		}
		if now.Sub(*t.CompletedAt) > olderThan {
			ids = append(ids, t.ID)
		}
	}

	return ids, diagnostics
}
