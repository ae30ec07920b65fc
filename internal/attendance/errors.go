package attendance

import (
	"errors"
	"fmt"
)

// Protocol error taxonomy. Handlers map these to status codes; constraint
// violations from storage are re-classified into ErrDuplicateAttendance and
// never leak as raw driver errors.
var (
	ErrTokenInvalidOrExpired = errors.New("invalid or expired QR token")
	ErrDuplicateAttendance   = errors.New("attendance already marked for this session")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
