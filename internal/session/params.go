package session

import (
	"fmt"
	"strings"
	"time"

	"tianya/pkg/meettypes"
)

// MinPasswordLength is the minimum length the creation flow accepts for a
// host-supplied room password.
const MinPasswordLength = 4

// ValidateParams checks session start parameters at the UI boundary.
// Violations are rejected synchronously here and never reach the controller.
func ValidateParams(p meettypes.SessionParams) error {
	if strings.TrimSpace(p.Room) == "" {
		return fmt.Errorf("room name is required")
	}
	if p.IsHost && p.Password != "" && len([]rune(p.Password)) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// QuickRoomName generates a room name for an instant meeting.
func QuickRoomName() string {
	return fmt.Sprintf("quick-room-%d", time.Now().UnixMilli())
}

// SecureRoomName returns the trimmed requested name, or generates one when
// the user left the field blank.
func SecureRoomName(requested string) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}
	return fmt.Sprintf("secure-room-%d", time.Now().UnixMilli())
}

// ConferenceOptions is the construction payload handed to the embedded
// conferencing component. The core derives it from session parameters and
// never interprets it afterwards.
type ConferenceOptions struct {
	Room                string          `json:"room"`
	ServerURL           string          `json:"serverURL"`
	HideConferenceTimer bool            `json:"hideConferenceTimer"`
	LobbyEnabled        bool            `json:"lobbyEnabled"`
	RecordingEnabled    bool            `json:"recordingEnabled"`
	StartWithAudioMuted bool            `json:"startWithAudioMuted"`
	StartWithVideoMuted bool            `json:"startWithVideoMuted"`
	Flags               map[string]bool `json:"flags"`
}

// BuildConferenceOptions derives the conferencing component's construction
// options. Non-hosts join muted; hosts come in live.
func BuildConferenceOptions(p meettypes.SessionParams, serverURL string) ConferenceOptions {
	return ConferenceOptions{
		Room:                p.Room,
		ServerURL:           serverURL,
		HideConferenceTimer: true,
		LobbyEnabled:        true,
		RecordingEnabled:    true,
		StartWithAudioMuted: !p.IsHost,
		StartWithVideoMuted: !p.IsHost,
		Flags: map[string]bool{
			"audioMute.enabled":        true,
			"fullscreen.enabled":       false,
			"pip.enabled":              true,
			"conference-timer.enabled": true,
			"file-recording.enabled":   true,
			"recording.enabled":        true,
		},
	}
}
