// Package engine holds the task lifecycle automation rules: priority
// escalation, retention, search and summaries. Every function is a pure
// computation over an in-memory task snapshot and an explicit reference
// time; persistence of the returned instructions is the caller's job.
package engine

import (
	"strings"

	errs "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/pkg/constants"
	model "task-tracker.com/task-tracker/pkg/models"
)

// ValidateTask checks the data-model invariants a task must satisfy before
// it is admitted to any engine operation.
func ValidateTask(t model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return errs.InvalidTaskStatef(t.ID, "title must not be blank")
	}
	if !t.Status.Valid() {
		return errs.InvalidTaskStatef(t.ID, "unknown status %q", t.Status)
	}
	if t.Priority < constants.PriorityMin || t.Priority > constants.PriorityMax {
		return errs.InvalidTaskStatef(t.ID, "priority %d outside [%d,%d]",
			t.Priority, constants.PriorityMin, constants.PriorityMax)
	}
	if t.Status == constants.StatusDone && t.CompletedAt == nil {
		return errs.InvalidTaskStatef(t.ID, "status is done but completed_at is unset")
	}
	if t.Status != constants.StatusDone && t.CompletedAt != nil {
		return errs.InvalidTaskStatef(t.ID, "completed_at is set but status is %q", t.Status)
	}
	if t.Archived && t.Status != constants.StatusDone {
		return errs.InvalidTaskStatef(t.ID, "archived task has status %q", t.Status)
	}
	return nil
}
