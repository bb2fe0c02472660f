package matchapi

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Kind classifies a failed call to the matching service.
type Kind string

const (
	// KindRequest means the call could not be built (bad input or base URL).
	KindRequest Kind = "request"
	// KindTransport means the service could not be reached.
	KindTransport Kind = "transport"
	// KindStatus means the service answered with a non-2xx status.
	KindStatus Kind = "status"
	// KindDecode means the body was not the JSON shape the service promises.
	KindDecode Kind = "decode"
	// KindService means the service reported an error in an otherwise successful body.
	KindService Kind = "service"
)

// Error represents a failed call to the external search or matching service.
type Error struct {
	Op         string
	URL        string
	Kind       Kind
	StatusCode int
	Message    string
	Cause      error
	Stack      []byte
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// newError builds an Error with a stack captured at the caller.
func newError(op, urlStr string, kind Kind, status int, message string, cause error) *Error {
	var stack []byte
	if cause != nil {
		stack = goerrors.Wrap(cause, 2).Stack()
	} else {
		stack = goerrors.Wrap(message, 2).Stack()
	}
	return &Error{
		Op:         op,
		URL:        urlStr,
		Kind:       kind,
		StatusCode: status,
		Message:    message,
		Cause:      cause,
		Stack:      stack,
	}
}

// Message returns the text to show a user for err.
// Service-reported errors carry the service's own message; status failures name the status.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// KindOf returns the Kind of err, or "" when err did not come from this package.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}
