package engine

import (
	"sort"
	"strings"
	"time"

	errs "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/pkg/constants"
	model "task-tracker.com/task-tracker/pkg/models"
)

// Query is a conjunction of predicates over the task set. Zero values mean
// "no constraint"; an empty query matches every non-archived task.
type Query struct {
	Statuses        []constants.TaskStatus `json:"statuses,omitempty"`
	PriorityMin     *int                   `json:"priority_min,omitempty"`
	PriorityMax     *int                   `json:"priority_max,omitempty"`
	Tags            []string               `json:"tags,omitempty"`
	DueBefore       *time.Time             `json:"due_before,omitempty"`
	DueAfter        *time.Time             `json:"due_after,omitempty"`
	Text            string                 `json:"text,omitempty"`
	IncludeArchived bool                   `json:"include_archived,omitempty"`
}

func (q Query) Validate() error {
	for _, s := range q.Statuses {
		if !s.Valid() {
			return errs.InvalidQueryf("unknown status %q", s)
		}
	}
	if q.PriorityMin != nil && (*q.PriorityMin < constants.PriorityMin || *q.PriorityMin > constants.PriorityMax) {
		return errs.InvalidQueryf("priority_min %d outside [%d,%d]",
			*q.PriorityMin, constants.PriorityMin, constants.PriorityMax)
	}
	if q.PriorityMax != nil && (*q.PriorityMax < constants.PriorityMin || *q.PriorityMax > constants.PriorityMax) {
		return errs.InvalidQueryf("priority_max %d outside [%d,%d]",
			*q.PriorityMax, constants.PriorityMin, constants.PriorityMax)
	}
	if q.PriorityMin != nil && q.PriorityMax != nil && *q.PriorityMin > *q.PriorityMax {
		return errs.InvalidQueryf("priority_min %d greater than priority_max %d",
			*q.PriorityMin, *q.PriorityMax)
	}
	if q.DueBefore != nil && q.DueAfter != nil && q.DueBefore.Before(*q.DueAfter) {
		return errs.InvalidQueryf("due_before %s precedes due_after %s",
			q.DueBefore.Format(time.RFC3339), q.DueAfter.Format(time.RFC3339))
	}
	return nil
}

// Search returns the tasks matching the query in urgency order. A malformed
// query fails whole; no partial result is produced.
func Search(tasks []model.Task, q Query) ([]model.Task, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	matched := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.matches(t) {
			matched = append(matched, t)
		}
	}

	SortByUrgency(matched)
	return matched, nil
}

func (q Query) matches(t model.Task) bool {
	if t.Archived && !q.IncludeArchived {
		return false
	}
	if len(q.Statuses) > 0 && !statusIn(t.Status, q.Statuses) {
		return false
	}
	if q.PriorityMin != nil && t.Priority < *q.PriorityMin {
		return false
	}
	if q.PriorityMax != nil && t.Priority > *q.PriorityMax {
		return false
	}
	for _, tag := range q.Tags {
		if !t.Tags.Has(tag) {
			return false
		}
	}
	// Tasks without a due date never match a due-date bound.
	if q.DueBefore != nil && (t.DueDate == nil || t.DueDate.After(*q.DueBefore)) {
		return false
	}
	if q.DueAfter != nil && (t.DueDate == nil || t.DueDate.Before(*q.DueAfter)) {
		return false
	}
	if q.Text != "" && !matchesText(t, q.Text) {
		return false
	}
	return true
}

func statusIn(s constants.TaskStatus, set []constants.TaskStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func matchesText(t model.Task, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

// SortByUrgency orders tasks most-urgent first: priority descending, due
// date ascending with undated tasks after dated ones, creation time
// ascending, id ascending. The summarizer depends on this exact order.
func SortByUrgency(tasks []model.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return moreUrgent(tasks[i], tasks[j])
	})
}

func moreUrgent(a, b model.Task) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	switch {
	case a.DueDate != nil && b.DueDate == nil:
		return true
	case a.DueDate == nil && b.DueDate != nil:
		return false
	case a.DueDate != nil && b.DueDate != nil:
		if !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
