// Package ui provides the user-facing Bubble Tea TUI for tweetsense.
package ui

import "github.com/nisarhm/tweetsense/internal/api"

// SessionResolved is sent once at startup when the silent session probe
// finishes. User is nil when no session exists or the probe failed; the
// probe never surfaces an error.
type SessionResolved struct {
	User *api.User
}

// LoggedOut is sent when the logout call finishes. The session is dropped
// locally regardless of Err.
type LoggedOut struct {
	Err error
}
