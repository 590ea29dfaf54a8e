package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker.com/task-tracker/pkg/constants"
	model "task-tracker.com/task-tracker/pkg/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTask(id string, opts ...func(*model.Task)) model.Task {
	t := model.Task{
		ID:        id,
		Title:     "Task " + id,
		Status:    constants.StatusTodo,
		Priority:  1,
		CreatedAt: testNow.Add(-48 * time.Hour),
		UpdatedAt: testNow.Add(-48 * time.Hour),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func withDueIn(d time.Duration) func(*model.Task) {
	return func(t *model.Task) {
		due := testNow.Add(d)
		t.DueDate = &due
	}
}

func withPriority(p int) func(*model.Task) {
	return func(t *model.Task) { t.Priority = p }
}

func withStatus(s constants.TaskStatus) func(*model.Task) {
	return func(t *model.Task) { t.Status = s }
}

func withCompletedAgo(d time.Duration) func(*model.Task) {
	return func(t *model.Task) {
		completed := testNow.Add(-d)
		t.Status = constants.StatusDone
		t.CompletedAt = &completed
	}
}

func withArchived() func(*model.Task) {
	return func(t *model.Task) { t.Archived = true }
}

func TestSuggestPriority(t *testing.T) {
	tests := []struct {
		name string
		task model.Task
		want int
	}{
		{"due in 10h raises to 5", newTask("a", withDueIn(10*time.Hour), withPriority(2)), 5},
		{"due in 48h raises to 4", newTask("a", withDueIn(48*time.Hour), withPriority(3)), 4},
		{"due in 48h keeps higher manual priority", newTask("a", withDueIn(48*time.Hour), withPriority(5)), 5},
		{"due in 5 days unchanged", newTask("a", withDueIn(5*24*time.Hour), withPriority(1)), 1},
		{"overdue raises to 5", newTask("a", withDueIn(-2*time.Hour), withPriority(1)), 5},
		{"exactly 24h falls in critical bucket", newTask("a", withDueIn(24*time.Hour), withPriority(1)), 5},
		{"exactly 72h falls in elevated bucket", newTask("a", withDueIn(72*time.Hour), withPriority(1)), 4},
		{"just past 24h is elevated", newTask("a", withDueIn(24*time.Hour+time.Second), withPriority(1)), 4},
		{"no due date unchanged", newTask("a", withPriority(2)), 2},
		{"done task unchanged", newTask("a", withDueIn(time.Hour), withCompletedAgo(time.Hour), withPriority(2)), 2},
		{"archived task unchanged", newTask("a", withDueIn(time.Hour), withCompletedAgo(time.Hour), withArchived(), withPriority(2)), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestPriority(tt.task, testNow))
		})
	}
}

func TestSuggestPriorityNeverLowers(t *testing.T) {
	for p := constants.PriorityMin; p <= constants.PriorityMax; p++ {
		for _, due := range []time.Duration{-time.Hour, 10 * time.Hour, 48 * time.Hour, 200 * time.Hour} {
			task := newTask("a", withDueIn(due), withPriority(p))
			assert.GreaterOrEqual(t, SuggestPriority(task, testNow), p)
		}
	}
}

func TestSuggestPriorities(t *testing.T) {
	tasks := []model.Task{
		newTask("a", withDueIn(10*time.Hour), withPriority(2)),
		newTask("b", withDueIn(48*time.Hour), withPriority(5)),
		newTask("c", withPriority(3)),
	}

	changes, diagnostics := SuggestPriorities(tasks, testNow)

	require.Empty(t, diagnostics)
	require.Equal(t, []Escalation{{TaskID: "a", Priority: 5}}, changes)
}

func TestSuggestPrioritiesIdempotent(t *testing.T) {
	tasks := []model.Task{
		newTask("a", withDueIn(10*time.Hour), withPriority(2)),
		newTask("b", withDueIn(48*time.Hour), withPriority(1)),
	}

	changes, _ := SuggestPriorities(tasks, testNow)
	require.Len(t, changes, 2)

	byID := map[string]int{}
	for _, c := range changes {
		byID[c.TaskID] = c.Priority
	}
	for i := range tasks {
		tasks[i].Priority = byID[tasks[i].ID]
	}

	again, _ := SuggestPriorities(tasks, testNow)
	assert.Empty(t, again)
}

func TestSuggestPrioritiesReportsInvalidTasks(t *testing.T) {
	broken := newTask("bad", withStatus(constants.StatusDone)) // done without completed_at
	ok := newTask("good", withDueIn(time.Hour), withPriority(1))

	changes, diagnostics := SuggestPriorities([]model.Task{broken, ok}, testNow)

	require.Len(t, diagnostics, 1)
	assert.ErrorContains(t, diagnostics[0], "bad")
	require.Equal(t, []Escalation{{TaskID: "good", Priority: 5}}, changes)
}
