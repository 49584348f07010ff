package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeStreamPayload_ConcatenatesFragmentsInOrder(t *testing.T) {
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"A\"}}]}\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"B\"}}]}\n" +
		"data: [DONE]"

	assert.Equal(t, "AB", DecodeStreamPayload(payload))
}

func TestDecodeStreamPayload_SkipsMalformedLineWithoutLosingContent(t *testing.T) {
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n" +
		"data: {this is not json\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\" world\"}}]}\n" +
		"data: [DONE]"

	assert.Equal(t, "Hello world", DecodeStreamPayload(payload))
}

func TestDecodeStreamPayload_EmptyInput(t *testing.T) {
	assert.Equal(t, "", DecodeStreamPayload(""))
}

func TestDecodeStreamPayload_SentinelOnly(t *testing.T) {
	assert.Equal(t, "", DecodeStreamPayload("data: [DONE]\n"))
	assert.Equal(t, "", DecodeStreamPayload("[DONE]"))
}

func TestDecodeStreamPayload_PrefixWithoutSpace(t *testing.T) {
	payload := "data:{\"choices\":[{\"delta\":{\"content\":\"tight\"}}]}"

	assert.Equal(t, "tight", DecodeStreamPayload(payload))
}

func TestDecodeStreamPayload_LineWithoutFramePrefix(t *testing.T) {
	payload := "{\"choices\":[{\"delta\":{\"content\":\"bare\"}}]}"

	assert.Equal(t, "bare", DecodeStreamPayload(payload))
}

func TestDecodeStreamPayload_IgnoresChunksWithoutFragments(t *testing.T) {
	// Usage-only chunks carry no choices and must not contribute content.
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"text\"}}]}\n" +
		"data: {\"usage\":{\"total_tokens\":12},\"choices\":[]}\n" +
		"data: [DONE]"

	assert.Equal(t, "text", DecodeStreamPayload(payload))
}

func TestDecodeStreamPayload_SkipsBlankLines(t *testing.T) {
	payload := "\n\ndata: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\n\n"

	assert.Equal(t, "x", DecodeStreamPayload(payload))
}
