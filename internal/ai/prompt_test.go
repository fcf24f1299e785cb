package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseJSON(t *testing.T) {
	content := `{"suggestion": "<a-box></a-box>", "explanation": "added a box", "confidence": 0.9}`

	resp := parseResponse(content)

	require.NotNil(t, resp)
	assert.Equal(t, "<a-box></a-box>", resp.Suggestion)
	assert.Equal(t, "added a box", resp.Explanation)
	assert.Equal(t, 0.9, resp.Confidence)
}

func TestParseResponseFencedJSON(t *testing.T) {
	content := "```json\n" +
		`{"suggestion": "fixed", "explanation": "", "confidence": 0.7}` +
		"\n```"

	resp := parseResponse(content)

	assert.Equal(t, "fixed", resp.Suggestion)
	assert.Equal(t, 0.7, resp.Confidence)
}

func TestParseResponsePlainTextFallback(t *testing.T) {
	resp := parseResponse("just use a smaller texture")

	assert.Equal(t, "just use a smaller texture", resp.Suggestion)
	assert.Empty(t, resp.Explanation)
	assert.Equal(t, defaultConfidence, resp.Confidence)
}

func TestParseResponseClampsConfidence(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    float64
	}{
		{"above one", `{"suggestion": "x", "confidence": 3.2}`, 1},
		{"negative", `{"suggestion": "x", "confidence": -1}`, 0},
		{"missing", `{"suggestion": "x"}`, defaultConfidence},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseResponse(tc.content).Confidence)
		})
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", "plain", "plain"},
		{"fence with tag", "```html\n<a-box>\n```", "<a-box>"},
		{"fence without tag", "```\ncode\n```", "code"},
		{"unterminated fence", "```\ncode", "code"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripFences(tc.in))
		})
	}
}

func TestUserPromptIncludesPayloadFields(t *testing.T) {
	req := Request{
		Code:        "<a-scene></a-scene>",
		Language:    "html",
		FileName:    "scene.html",
		Prompt:      "fix it",
		Context:     "A-Frame WebXR scene running in a browser",
		Temperature: 0.1,
	}

	prompt := userPrompt(req)

	assert.Contains(t, prompt, "fix it")
	assert.Contains(t, prompt, "Language: html")
	assert.Contains(t, prompt, "File: scene.html")
	assert.Contains(t, prompt, "A-Frame WebXR scene")
	assert.Contains(t, prompt, "<a-scene></a-scene>")
}

func TestUserPromptOmitsEmptyOptionalFields(t *testing.T) {
	prompt := userPrompt(Request{Code: "x", Language: "text", Prompt: "explain"})

	assert.NotContains(t, prompt, "File:")
	assert.NotContains(t, prompt, "Context:")
}

func TestSystemPromptDemandsJSON(t *testing.T) {
	prompt := systemPrompt()

	assert.Contains(t, prompt, `"suggestion"`)
	assert.Contains(t, prompt, `"explanation"`)
	assert.Contains(t, prompt, `"confidence"`)
}
