package chat

import (
	"encoding/json"
	"strings"

	"tianya/internal/logger"
)

const (
	// dataPrefix is the server-sent-events framing prefix on payload lines.
	dataPrefix = "data:"
	// doneSentinel marks end-of-stream inside the payload.
	doneSentinel = "[DONE]"
)

// streamChunk mirrors one line of the chat completion stream. Only the
// incremental content fragment matters here.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// DecodeStreamPayload reconstructs the assistant's full reply from a buffered
// streaming response body. The payload interleaves "data:"-framed JSON lines
// with the [DONE] sentinel; fragments are concatenated strictly in line
// order. A malformed line is logged and skipped without discarding what has
// already accumulated, so one bad chunk never eats the reply.
func DecodeStreamPayload(raw string) string {
	var content strings.Builder

	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, dataPrefix) {
			line = line[len(dataPrefix):]
		}
		line = strings.TrimSpace(line)

		if line == doneSentinel {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			logger.Warn("Skipping malformed stream line", "line", line, "error", err)
			continue
		}

		if len(chunk.Choices) > 0 {
			content.WriteString(chunk.Choices[0].Delta.Content)
		}
	}

	return content.String()
}
