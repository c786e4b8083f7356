package submitter

// State is a step of the submission state machine.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateAwaitingConfirmation
	StateConfirmed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// InFlight reports whether an attempt is running in this state.
func (s State) InFlight() bool {
	return s == StateValidating || s == StateSubmitting || s == StateAwaitingConfirmation
}

// Terminal reports whether the attempt has finished.
func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateFailed
}

// Status is the chain status of a submitted transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)
