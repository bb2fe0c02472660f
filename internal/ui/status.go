// Package ui holds the stateful page components of the resume matcher:
// the job search unit, the resume match unit, the theme toggle and the page shell.
package ui

// Status is the lifecycle of a unit's most recent submission.
type Status int

const (
	// StatusIdle means nothing has been submitted yet.
	StatusIdle Status = iota
	// StatusPending means a request is in flight; further submissions are rejected.
	StatusPending
	// StatusSettledOK means the last request succeeded.
	StatusSettledOK
	// StatusSettledError means the last request failed.
	StatusSettledError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSettledOK:
		return "settled-ok"
	case StatusSettledError:
		return "settled-error"
	default:
		return "unknown"
	}
}

// Busy reports whether the submit control must be disabled.
func (s Status) Busy() bool {
	return s == StatusPending
}
