package appointment

import "fmt"

// PermissionError reports a transition the caller's role or ownership does
// not allow. It is raised locally, before any network call.
type PermissionError struct {
	Action string
	Reason string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s not permitted: %s", e.Action, e.Reason)
}

// TransitionError reports a transition that is illegal from the
// appointment's current status.
type TransitionError struct {
	From   string
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s an appointment in status %q", e.Action, e.From)
}
