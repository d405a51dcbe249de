package domain

// SessionID identifies one live terminal session.
type SessionID string

// SessionRecord is the tracker's per-session state.
type SessionRecord struct {
	// History holds the most recent commands, oldest first.
	History []string
	// Named is set once a naming attempt fired for the current window.
	Named bool
}
