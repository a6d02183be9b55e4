package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePayload(t *testing.T) {
	out, err := EncodePayload(map[string]any{"name": "AT&T <Inc>", "price": 17.5})
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"name\": \"AT&T <Inc>\",\n  \"price\": 17.5\n}", out)
}

func TestEncodePayloadEmptyList(t *testing.T) {
	out, err := EncodePayload([]string{})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestToolResultEnvelope(t *testing.T) {
	ok, err := json.Marshal(TextResult("{}"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":[{"type":"text","text":"{}"}]}`, string(ok))

	failed, err := json.Marshal(ErrorResult("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":[{"type":"text","text":"boom"}],"isError":true}`, string(failed))

	assert.Equal(t, "boom", ErrorResult("boom").Text())
	assert.Empty(t, ToolResult{}.Text())
}
