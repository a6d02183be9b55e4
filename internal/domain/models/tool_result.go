package models

import (
	"bytes"
	"encoding/json"
)

const ContentTypeText = "text"

type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the envelope every tool returns. IsError is serialized only
// when true.
type ToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Text returns the text of the first content block.
func (r ToolResult) Text() string {
	if len(r.Content) == 0 {
		return ""
	}
	return r.Content[0].Text
}

// TextResult wraps an already rendered document.
func TextResult(text string) ToolResult {
	return ToolResult{Content: []Content{{Type: ContentTypeText, Text: text}}}
}

// ErrorResult wraps a human readable failure.
func ErrorResult(text string) ToolResult {
	return ToolResult{Content: []Content{{Type: ContentTypeText, Text: text}}, IsError: true}
}

// EncodePayload renders v as two-space indented JSON without HTML escaping
// and without a trailing newline.
func EncodePayload(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
