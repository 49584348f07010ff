package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tianya/pkg/meettypes"
)

// fakeTransport records what it was sent and replies with a canned payload.
type fakeTransport struct {
	payload string
	err     error
	sent    [][]meettypes.ChatMessage
	gate    chan struct{}
}

func (f *fakeTransport) Send(_ context.Context, messages []meettypes.ChatMessage) (string, error) {
	f.sent = append(f.sent, messages)
	if f.gate != nil {
		<-f.gate
	}
	return f.payload, f.err
}

func streamPayload(fragments ...string) string {
	payload := ""
	for _, fragment := range fragments {
		payload += "data: {\"choices\":[{\"delta\":{\"content\":\"" + fragment + "\"}}]}\n"
	}
	return payload + "data: [DONE]\n"
}

func TestNewTranscript_StartsWithSystemMessage(t *testing.T) {
	tr := NewTranscript(&fakeTransport{})

	messages := tr.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, meettypes.RoleSystem, messages[0].Role)
	assert.Equal(t, SystemPrompt, messages[0].Content)
}

func TestTranscript_SendTurn_Success(t *testing.T) {
	transport := &fakeTransport{payload: streamPayload("Hi", " there")}
	tr := NewTranscript(transport)

	require.NoError(t, tr.SendTurn(context.Background(), "hello"))

	messages := tr.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, meettypes.RoleUser, messages[1].Role)
	assert.Equal(t, "hello", messages[1].Content)
	assert.Equal(t, meettypes.RoleAssistant, messages[2].Role)
	assert.Equal(t, "Hi there", messages[2].Content)
	assert.False(t, tr.Pending())
}

func TestTranscript_SendTurn_PlaceholderExcludedFromRequest(t *testing.T) {
	transport := &fakeTransport{payload: streamPayload("ok")}
	tr := NewTranscript(transport)

	require.NoError(t, tr.SendTurn(context.Background(), "question"))

	require.Len(t, transport.sent, 1)
	outgoing := transport.sent[0]
	require.Len(t, outgoing, 2)
	assert.Equal(t, meettypes.RoleSystem, outgoing[0].Role)
	assert.Equal(t, meettypes.RoleUser, outgoing[1].Role)
}

func TestTranscript_SendTurn_WhitespaceOnlyLeavesTranscriptUnchanged(t *testing.T) {
	tr := NewTranscript(&fakeTransport{})

	err := tr.SendTurn(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrEmptyTurn)
	assert.Len(t, tr.Messages(), 1)
}

func TestTranscript_SendTurn_TransportFailureFillsPlaceholder(t *testing.T) {
	transport := &fakeTransport{err: errors.New("connection refused")}
	tr := NewTranscript(transport)

	require.NoError(t, tr.SendTurn(context.Background(), "hello"))

	messages := tr.Messages()
	// Same message count as the success path: user plus placeholder, no more.
	require.Len(t, messages, 3)
	assert.Equal(t, meettypes.RoleAssistant, messages[2].Role)
	assert.Equal(t, assistantErrorReply, messages[2].Content)
	assert.False(t, tr.Pending())
}

func TestTranscript_SendTurn_SecondTurnWhilePendingIsRejected(t *testing.T) {
	transport := &fakeTransport{payload: streamPayload("slow"), gate: make(chan struct{})}
	tr := NewTranscript(transport)

	done := make(chan error, 1)
	go func() {
		done <- tr.SendTurn(context.Background(), "first")
	}()

	// Wait for the placeholder to appear, which marks the turn in flight.
	require.Eventually(t, tr.Pending, time.Second, time.Millisecond)

	err := tr.SendTurn(context.Background(), "second")
	assert.ErrorIs(t, err, ErrTurnPending)

	close(transport.gate)
	require.NoError(t, <-done)

	messages := tr.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[1].Content)
}

func TestTranscript_SendTurn_AlternatingTurns(t *testing.T) {
	transport := &fakeTransport{payload: streamPayload("reply")}
	tr := NewTranscript(transport)

	require.NoError(t, tr.SendTurn(context.Background(), "one"))
	require.NoError(t, tr.SendTurn(context.Background(), "two"))

	messages := tr.Messages()
	require.Len(t, messages, 5)
	roles := []string{}
	for _, msg := range messages {
		roles = append(roles, msg.Role)
	}
	assert.Equal(t, []string{
		meettypes.RoleSystem,
		meettypes.RoleUser,
		meettypes.RoleAssistant,
		meettypes.RoleUser,
		meettypes.RoleAssistant,
	}, roles)
}
