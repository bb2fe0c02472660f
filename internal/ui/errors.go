package ui

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a unit already has a request in flight.
var ErrBusy = errors.New("a request is already in progress")

// ErrUnknownTab is returned when selecting a tab the shell does not have.
var ErrUnknownTab = errors.New("unknown tab")

// ValidationError indicates a submission was declined before reaching the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}
