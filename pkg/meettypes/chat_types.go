// Package meettypes defines the shared data types for the Tianya meeting
// client core: meeting records, session parameters, chat messages, and theme
// configuration. It is a leaf package with no internal dependencies.
package meettypes

// Message roles as they appear on the chat completion wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single entry in a conversation transcript.
// Content may be empty while an assistant reply is still in flight.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
