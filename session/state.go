package session

// State is the lifecycle position of the session
type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Settled reports whether initialization has finished
func (s State) Settled() bool {
	return s == StateAuthenticated || s == StateAnonymous
}
