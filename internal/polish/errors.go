package polish

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySelection means there is nothing to polish. It is not a
	// failure: the caller simply does not open a session.
	ErrEmptySelection = errors.New("selection is empty")

	// ErrSessionClosed is returned when a dismissed or committed session is
	// used again.
	ErrSessionClosed = errors.New("session is closed")
)

// RequestError is a failed improvement request. Message is shown to the
// user as-is.
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

// NewRequestError wraps err with a user-facing message.
func NewRequestError(message string, err error) *RequestError {
	return &RequestError{Message: message, Err: err}
}

// FailureMessage extracts the message to surface for a failed request.
func FailureMessage(err error) string {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// PreconditionError reports an operation invoked in a state that does not
// allow it. It indicates a bug in the calling UI, which should have
// disabled the control.
type PreconditionError struct {
	Op    string
	State State
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s not allowed in state %s", e.Op, e.State)
}
