package ui

// NoticeKind classifies a notice shown after a user action.
type NoticeKind string

const (
	NoticeValidation NoticeKind = "validation"
	NoticeFailure    NoticeKind = "failure"
	NoticeEmpty      NoticeKind = "empty"
	NoticeSuccess    NoticeKind = "success"
)

// Notice is a short message shown once to the user.
type Notice struct {
	Kind        NoticeKind `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

// IsZero reports whether there is nothing to show.
func (n Notice) IsZero() bool {
	return n.Title == "" && n.Description == ""
}

// Destructive reports whether the notice is rendered with the warning style.
// Empty results share the warning style but are not failures.
func (n Notice) Destructive() bool {
	return n.Kind != NoticeSuccess
}
