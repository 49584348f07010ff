// Package store provides the asynchronous string key-value storage used by
// the meeting history log and theme state. The Store interface mirrors the
// device storage the client sits on: string keys, string values, absence is
// not an error. Three backends exist: in-memory (tests), a JSON file on disk,
// and redis for setups that share state with a backend.
package store

import "context"

// Store keys owned by the client core.
const (
	MeetingHistoryKey = "meetingHistory"
	ThemeKey          = "uiTheme"
)

// Store is the durable key-value adapter. Get reports absence through ok
// rather than an error; errors are reserved for backend failures.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
