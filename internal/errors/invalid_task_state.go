package errors

import (
	"fmt"
	"net/http"
)

var ErrInvalidTaskState = &Exception{
	Message:    "invalid task state",
	StatusCode: http.StatusUnprocessableEntity,
}

// InvalidTaskStatef reports which invariant a task violates.
func InvalidTaskStatef(taskID, format string, args ...interface{}) error {
	return fmt.Errorf("%w: task %s: %s", ErrInvalidTaskState, taskID, fmt.Sprintf(format, args...))
}
