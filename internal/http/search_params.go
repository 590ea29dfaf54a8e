package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"task-tracker.com/task-tracker/internal/engine"
	"task-tracker.com/task-tracker/pkg/constants"
)

// parseSearchQuery maps /tasks/search query parameters onto an engine
// query. Repeated status and tag parameters accumulate; timestamps are
// RFC 3339. Semantic validation (bounds, contradictions) stays in the
// engine.
func parseSearchQuery(c echo.Context) (engine.Query, error) {
	var query engine.Query

	for _, raw := range c.QueryParams()["status"] {
		query.Statuses = append(query.Statuses, constants.TaskStatus(raw))
	}
	query.Tags = append(query.Tags, c.QueryParams()["tag"]...)
	query.Text = c.QueryParam("q")

	var err error
	if query.PriorityMin, err = intParam(c, "priority_min"); err != nil {
		return engine.Query{}, err
	}
	if query.PriorityMax, err = intParam(c, "priority_max"); err != nil {
		return engine.Query{}, err
	}
	// An exact priority is expressed as equal bounds.
	if exact, err := intParam(c, "priority"); err != nil {
		return engine.Query{}, err
	} else if exact != nil {
		query.PriorityMin, query.PriorityMax = exact, exact
	}
	if query.DueBefore, err = timeParam(c, "due_before"); err != nil {
		return engine.Query{}, err
	}
	if query.DueAfter, err = timeParam(c, "due_after"); err != nil {
		return engine.Query{}, err
	}

	if raw := c.QueryParam("include_archived"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return engine.Query{}, echo.NewHTTPError(http.StatusBadRequest,
				"include_archived must be a boolean")
		}
		query.IncludeArchived = include
	}

	return query, nil
}

func intParam(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return &value, nil
}

func timeParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be an RFC 3339 timestamp")
	}
	return &value, nil
}
