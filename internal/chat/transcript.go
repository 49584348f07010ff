package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"tianya/internal/logger"
	"tianya/pkg/meettypes"
)

// SystemPrompt opens every transcript.
const SystemPrompt = "You are a helpful assistant."

// assistantErrorReply replaces an in-flight placeholder when the transport
// fails. The turn stays in the transcript; nothing silently vanishes.
const assistantErrorReply = "The assistant is unavailable right now. Please try again later."

// Sentinel errors returned by SendTurn. In both cases the transcript is left
// untouched.
var (
	ErrEmptyTurn   = errors.New("chat: message is empty")
	ErrTurnPending = errors.New("chat: a turn is already in flight")
)

// Transcript is the ordered conversation with the assistant. It always starts
// with exactly one system message, and user/assistant messages alternate per
// turn. At most one assistant placeholder is pending at a time: turns are
// serialized, and starting a second turn while one is in flight is rejected.
type Transcript struct {
	mu        sync.Mutex
	transport Transport
	messages  []meettypes.ChatMessage
	pending   bool
}

// NewTranscript creates a transcript seeded with the system message.
func NewTranscript(transport Transport) *Transcript {
	return &Transcript{
		transport: transport,
		messages: []meettypes.ChatMessage{
			{Role: meettypes.RoleSystem, Content: SystemPrompt},
		},
	}
}

// Messages returns a snapshot of the transcript in conversation order.
func (t *Transcript) Messages() []meettypes.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := make([]meettypes.ChatMessage, len(t.messages))
	copy(snapshot, t.messages)
	return snapshot
}

// Pending reports whether an assistant reply is currently in flight.
func (t *Transcript) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// SendTurn runs one conversation turn: it appends the user message and an
// empty assistant placeholder (both observable immediately, so a UI can show
// a loading state), sends the transcript minus the placeholder to the
// transport, and fills the placeholder with the decoded reply. A transport
// failure fills the placeholder with a fixed error message instead; from the
// user's perspective the transcript is append-only either way.
func (t *Transcript) SendTurn(ctx context.Context, userText string) error {
	if strings.TrimSpace(userText) == "" {
		return ErrEmptyTurn
	}

	t.mu.Lock()
	if t.pending {
		t.mu.Unlock()
		return ErrTurnPending
	}
	t.pending = true

	t.messages = append(t.messages,
		meettypes.ChatMessage{Role: meettypes.RoleUser, Content: userText},
		meettypes.ChatMessage{Role: meettypes.RoleAssistant, Content: ""},
	)
	placeholder := len(t.messages) - 1

	outgoing := make([]meettypes.ChatMessage, placeholder)
	copy(outgoing, t.messages[:placeholder])
	t.mu.Unlock()

	payload, err := t.transport.Send(ctx, outgoing)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = false

	if err != nil {
		logger.Warn("Chat transport failed", "error", err)
		t.messages[placeholder].Content = assistantErrorReply
		return nil
	}

	t.messages[placeholder].Content = DecodeStreamPayload(payload)
	return nil
}
