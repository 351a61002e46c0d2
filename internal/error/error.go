package error

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCronExpression = errors.New("invalid cron expression")
	ErrInvalidField          = errors.New("invalid cron field")
	ErrNoNextRun             = errors.New("no matching run time")
)

var (
	ErrNilJob      = errors.New("job is nil")
	ErrJobExists   = errors.New("job name not unique")
	ErrJobNotFound = errors.New("job not found")

	ErrJobRegistered = errors.New("job already registered")
	ErrInvalidName   = errors.New("invalid job name")
)

var (
	ErrJobFailed    = errors.New("job failed")
	ErrJobPanicked  = errors.New("job panicked")
	ErrOnBeforeHook = errors.New("error in onbefore hook")
	ErrOnFailure    = errors.New("error in onfailure hook")
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrEmptyCommand = errors.New("command is empty")
	ErrInvalidJob   = errors.New("invalid job definition")
)

func New(err error, str string) error {
	return fmt.Errorf("%w: %s", err, str)
}

// ExpressionError reports a cron expression that does not satisfy the grammar.
//
// Error returns the user-facing message, which always quotes the raw text.
// The failing field and reason are kept in Reason for logs.
type ExpressionError struct {
	Raw    string
	Reason error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("Invalid cron expression: '%s'.", e.Raw)
}

func (e *ExpressionError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrInvalidCronExpression}
	}
	return []error{ErrInvalidCronExpression, e.Reason}
}

// NewExpressionError wraps reason into an ExpressionError for raw.
func NewExpressionError(raw string, reason error) error {
	return &ExpressionError{Raw: raw, Reason: reason}
}
