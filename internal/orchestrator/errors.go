// Package orchestrator implements the presence verification pipeline: the
// ordered sequence of remote checks that turns "a device in room R claims
// attendee A is here" into exactly one committed attendance record, or a
// typed rejection.
package orchestrator

// Stages at which a presence submission can be rejected on business grounds.
// The stage name is part of the caller-facing contract; devices use it to
// decide what to show on screen.
const (
	StageAttendee        = "attendee"          // secret check failed
	StageNoActiveSession = "no-active-session" // no session running in the room
	StageNotEnrolled     = "not-enrolled"      // attendee not on the class roster
)

// ValidationError is a business-rule rejection from one pipeline stage.  It
// is not a system fault: every service answered, and one of them said no.
// Retrying the same request will not change the outcome.  Transport-level
// failures are reported as *client.UnavailableError instead, which callers
// may retry later.
type ValidationError struct {
	Stage   string // one of the Stage constants
	Message string // human-readable reason, surfaced verbatim to the caller
}

func (e *ValidationError) Error() string { return e.Message }

// rejected builds the stage rejection with its fixed caller-facing wording.
func rejected(stage, message string) *ValidationError {
	return &ValidationError{Stage: stage, Message: message}
}
