// Package host implements the routing side of the system: it resolves
// remote agent cards into a registry, dispatches user tasks to a named
// agent over HTTP and serves the chat web UI that drives it.
package host

// SessionState is the per-conversation state threaded through
// dispatches. The router mutates ActiveAgent after every successful
// dispatch and fills SessionID/ContextID on first use; callers own the
// state and must serialize access to it.
type SessionState struct {
	SessionID   string
	ContextID   string
	ActiveAgent string
	// Metadata carries input message metadata; a "messageId" entry
	// overrides the minted message id of the next dispatch.
	Metadata map[string]any
}
