// Package adminui provides the operator-facing Bubble Tea TUI: aggregate
// statistics, user and search tables, the paginated activity log, and the
// data export.
package adminui

import "github.com/nisarhm/tweetsense/internal/api"

// SessionResolved is sent once at startup when the silent admin probe
// finishes. Admin is nil when no session exists; probe failures are never
// surfaced.
type SessionResolved struct {
	Admin *api.Admin
}

// LoginDone is sent when an admin login attempt finishes.
type LoginDone struct {
	Admin *api.Admin
	Err   error
}

// LoggedOut is sent when the logout call finishes; the session is dropped
// locally regardless of Err.
type LoggedOut struct {
	Err error
}

// StatsLoaded is sent when the overview statistics fetch finishes.
type StatsLoaded struct {
	Stats *api.Statistics
	Err   error
}

// UsersLoaded is sent when the user table fetch finishes.
type UsersLoaded struct {
	Users []api.AdminUser
	Err   error
}

// SearchesLoaded is sent when the search table fetch finishes.
type SearchesLoaded struct {
	Searches []api.SearchRecord
	Err      error
}

// ActivityLoaded is sent when an activity log page arrives. The page
// replaces, never appends to, whatever was shown before.
type ActivityLoaded struct {
	Activities []api.ActivityRecord
	Total      int
	Offset     int
	Err        error
}

// ExportLoaded is sent when the export bundle fetch finishes. Raw holds the
// exact bytes the server sent, for passthrough persistence.
type ExportLoaded struct {
	Bundle *api.ExportBundle
	Raw    []byte
	Err    error
}

// ExportSaved is sent when the export file write finishes.
type ExportSaved struct {
	Path string
	Err  error
}
