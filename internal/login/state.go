package login

// Phase is the submission lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Pending
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	labelIdle    = "Log In"
	labelPending = "Logging In..."
)

// State is what the login screen shows about the current attempt.
// Error is only set in Failed.
type State struct {
	Phase Phase
	Error string
}

// CanSubmit reports whether the submit control is enabled.
func (s State) CanSubmit() bool { return s.Phase != Pending }

// Pending reports whether an attempt is in flight.
func (s State) Pending() bool { return s.Phase == Pending }

// ErrorVisible reports whether the error region is rendered.
func (s State) ErrorVisible() bool { return s.Phase == Failed }

// SubmitLabel is the text of the submit control.
func (s State) SubmitLabel() string {
	if s.Phase == Pending {
		return labelPending
	}
	return labelIdle
}

// EventKind identifies what happened to the screen.
type EventKind int

const (
	EventSubmit EventKind = iota
	EventSucceeded
	EventFailed
)

// Event drives Transition. Reason is only read for EventFailed.
type Event struct {
	Kind   EventKind
	Reason string
}

// Transition returns the state after e. navigate is true when the attempt
// resolved and the screen should move to the landing route. ok is false when e
// is not accepted in s; the returned state is then s.
func Transition(s State, e Event) (next State, navigate bool, ok bool) {
	switch e.Kind {
	case EventSubmit:
		if s.Phase == Pending {
			return s, false, false
		}
		return State{Phase: Pending}, false, true
	case EventSucceeded:
		if s.Phase != Pending {
			return s, false, false
		}
		return State{Phase: Idle}, true, true
	case EventFailed:
		if s.Phase != Pending {
			return s, false, false
		}
		return State{Phase: Failed, Error: e.Reason}, false, true
	}
	return s, false, false
}
