package scan

// State is the lifecycle state of a scan.
type State int32

const (
	StateScanning State = iota + 1
	StatePaused
	StateCompleted
	StateCancelled
	StateError
)

var stateNames = [...]string{
	StateScanning:  "Scanning",
	StatePaused:    "Paused",
	StateCompleted: "Completed",
	StateCancelled: "Cancelled",
	StateError:     "Error",
}

func (s State) String() string {
	if s > 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// Terminal reports whether the state is a terminal one.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateCancelled, StateError:
		return true
	default:
		return false
	}
}
