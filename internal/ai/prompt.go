package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// defaultConfidence is used when the model reply carries no parseable
// confidence score.
const defaultConfidence = 0.5

// systemPrompt instructs the model to answer with a strict JSON object so
// the reply can be rendered as suggestion/explanation/confidence.
func systemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a code assistant embedded in an editor. ")
	sb.WriteString("You review the user's code and answer their request.\n\n")
	sb.WriteString("Respond with a single JSON object and nothing else:\n")
	sb.WriteString(`{"suggestion": "<replacement or modified code>", `)
	sb.WriteString(`"explanation": "<what you changed or found and why>", `)
	sb.WriteString(`"confidence": <number between 0 and 1>}`)
	sb.WriteString("\n\nThe suggestion must be code only, with no markdown fences.")

	return sb.String()
}

// userPrompt renders the request payload into a single user message.
func userPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString(req.Prompt)
	sb.WriteString("\n\n")

	if req.Context != "" {
		sb.WriteString(fmt.Sprintf("Context: %s\n", req.Context))
	}
	if req.FileName != "" {
		sb.WriteString(fmt.Sprintf("File: %s\n", req.FileName))
	}
	sb.WriteString(fmt.Sprintf("Language: %s\n\n", req.Language))

	sb.WriteString("Code:\n")
	sb.WriteString(req.Code)

	return sb.String()
}

// parseResponse extracts a Response from the raw model reply. Replies that
// are not the requested JSON object are treated as a bare suggestion with
// a default confidence.
func parseResponse(content string) *Response {
	text := stripFences(strings.TrimSpace(content))

	var resp Response
	if err := json.Unmarshal([]byte(text), &resp); err == nil && resp.Suggestion != "" {
		resp.Confidence = clampConfidence(resp.Confidence)
		return &resp
	}

	return &Response{
		Suggestion: text,
		Confidence: defaultConfidence,
	}
}

// stripFences removes a surrounding markdown code fence, with or without
// a language tag on the opening line.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}

	// Drop the opening fence line and a trailing fence line if present.
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// clampConfidence bounds a confidence score to [0,1], substituting the
// default for values that make no sense.
func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	case c == 0:
		return defaultConfidence
	default:
		return c
	}
}
