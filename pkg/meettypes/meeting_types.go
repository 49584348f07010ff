package meettypes

import "strings"

// MeetingRecord is one completed meeting in the history log.
// Records are written once on session teardown and never mutated.
type MeetingRecord struct {
	ID   string `json:"id"`
	Room string `json:"room"`
	Date string `json:"date"`
}

// Valid reports whether the record should be retained on load.
// Records with a blank ID are treated as corrupt and dropped.
func (r MeetingRecord) Valid() bool {
	return strings.TrimSpace(r.ID) != ""
}

// SessionParams carries the start parameters for one meeting session.
// They are ephemeral: passed to the conferencing component at construction
// and to the lifecycle controller, never persisted.
type SessionParams struct {
	Room     string
	IsHost   bool
	Password string
}
