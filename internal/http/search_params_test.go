package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker.com/task-tracker/pkg/constants"
)

func searchContext(t *testing.T, target string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(nethttp.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestParseSearchQuery(t *testing.T) {
	c := searchContext(t, "/tasks/search?status=todo&status=in_progress&priority_min=2&priority_max=4"+
		"&tag=home&tag=errand&q=milk&include_archived=true"+
		"&due_before=2025-06-16T00:00:00Z&due_after=2025-06-10T00:00:00Z")

	q, err := parseSearchQuery(c)
	require.NoError(t, err)

	assert.Equal(t, []constants.TaskStatus{constants.StatusTodo, constants.StatusInProgress}, q.Statuses)
	require.NotNil(t, q.PriorityMin)
	assert.Equal(t, 2, *q.PriorityMin)
	require.NotNil(t, q.PriorityMax)
	assert.Equal(t, 4, *q.PriorityMax)
	assert.Equal(t, []string{"home", "errand"}, q.Tags)
	assert.Equal(t, "milk", q.Text)
	assert.True(t, q.IncludeArchived)
	require.NotNil(t, q.DueBefore)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), q.DueBefore.UTC())
	require.NotNil(t, q.DueAfter)
}

func TestParseSearchQueryExactPriority(t *testing.T) {
	q, err := parseSearchQuery(searchContext(t, "/tasks/search?priority=3"))
	require.NoError(t, err)

	require.NotNil(t, q.PriorityMin)
	require.NotNil(t, q.PriorityMax)
	assert.Equal(t, 3, *q.PriorityMin)
	assert.Equal(t, 3, *q.PriorityMax)
}

func TestParseSearchQueryEmpty(t *testing.T) {
	q, err := parseSearchQuery(searchContext(t, "/tasks/search"))
	require.NoError(t, err)

	assert.Empty(t, q.Statuses)
	assert.Nil(t, q.PriorityMin)
	assert.Nil(t, q.PriorityMax)
	assert.Empty(t, q.Tags)
	assert.Empty(t, q.Text)
	assert.False(t, q.IncludeArchived)
}

func TestParseSearchQueryBadValues(t *testing.T) {
	for _, target := range []string{
		"/tasks/search?priority_min=abc",
		"/tasks/search?due_before=yesterday",
		"/tasks/search?include_archived=maybe",
	} {
		_, err := parseSearchQuery(searchContext(t, target))
		require.Error(t, err, target)

		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, nethttp.StatusBadRequest, httpErr.Code)
	}
}
