package errors

import (
	"fmt"
	"net/http"
)

var ErrInvalidQuery = &Exception{
	Message:    "invalid query",
	StatusCode: http.StatusBadRequest,
}

// InvalidQueryf wraps ErrInvalidQuery with a detail describing the rejected
// predicate, so callers can still match with errors.Is.
func InvalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
