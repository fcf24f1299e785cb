package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnguyen/codeassist/internal/ai"
	"github.com/hnguyen/codeassist/internal/keys"
)

// stubSuggester records requests and returns a canned response.
type stubSuggester struct {
	resp  *ai.Response
	err   error
	calls int
	last  ai.Request
}

func (s *stubSuggester) Suggest(_ context.Context, req ai.Request) (*ai.Response, error) {
	s.calls++
	s.last = req
	return s.resp, s.err
}

func newTestModel(t *testing.T, stub *stubSuggester) Model {
	t.Helper()

	m := New(stub, keys.DefaultKeyMap(), 100, 40)
	m.SetTarget("<a-scene></a-scene>", "HTML", "scene.html")
	m.SetCanApply(true)
	m.Focus()
	return m
}

// drain executes a command tree and returns every message it produces.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()

	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, sub := range batch {
			out = append(out, drain(t, sub)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findResult pulls the ResultMsg out of a drained message list.
func findResult(t *testing.T, msgs []tea.Msg) ResultMsg {
	t.Helper()

	for _, msg := range msgs {
		if rm, ok := msg.(ResultMsg); ok {
			return rm
		}
	}
	t.Fatal("no ResultMsg produced")
	return ResultMsg{}
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runeMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEscapeEmitsClose(t *testing.T) {
	m := newTestModel(t, &stubSuggester{})

	_, cmd := m.Update(keyMsg(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, CloseMsg{}, cmd())
}

func TestExplicitCloseControlEmitsClose(t *testing.T) {
	m := newTestModel(t, &stubSuggester{})

	_, cmd := m.Update(keyMsg(tea.KeyCtrlQ))
	require.NotNil(t, cmd)
	assert.IsType(t, CloseMsg{}, cmd())
}

func TestBackdropClickEmitsClose(t *testing.T) {
	m := newTestModel(t, &stubSuggester{})

	_, cmd := m.Update(tea.MouseMsg{
		X: 0, Y: 0,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	require.NotNil(t, cmd)
	assert.IsType(t, CloseMsg{}, cmd())
}

func TestClickInsideDialogDoesNotClose(t *testing.T) {
	m := newTestModel(t, &stubSuggester{})

	_, cmd := m.Update(tea.MouseMsg{
		X: 50, Y: 20,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.Nil(t, cmd)
}

func TestIntentionCyclingKeys(t *testing.T) {
	m := newTestModel(t, &stubSuggester{})

	m, _ = m.Update(keyMsg(tea.KeyTab))
	assert.Equal(t, IntentionOptimize, m.State().Intention)

	m, _ = m.Update(keyMsg(tea.KeyShiftTab))
	assert.Equal(t, IntentionFix, m.State().Intention)
}

func TestEmptyQuerySubmitIsNoOp(t *testing.T) {
	stub := &stubSuggester{}
	m := newTestModel(t, stub)

	m, cmd := m.Update(keyMsg(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, PhaseIdle, m.State().Phase())
	assert.Zero(t, stub.calls)
}

func TestTypedQuerySubmission(t *testing.T) {
	stub := &stubSuggester{
		resp: &ai.Response{Suggestion: "fixed", Explanation: "done", Confidence: 0.8},
	}
	m := newTestModel(t, stub)

	for _, r := range "why is this broken" {
		m, _ = m.Update(runeMsg(string(r)))
	}

	m, cmd := m.Update(keyMsg(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, PhaseLoading, m.State().Phase())

	result := findResult(t, drain(t, cmd))
	assert.Equal(t, "why is this broken", result.Request.Prompt)
	assert.Equal(t, "html", result.Request.Language,
		"language must be lower-cased for transmission")
	assert.Equal(t, "scene.html", result.Request.FileName)
	assert.Equal(t, RequestContext, result.Request.Context)

	m, _ = m.Update(result)
	assert.Equal(t, PhaseResponse, m.State().Phase())
	assert.Equal(t, "fixed", m.State().Response.Suggestion)
}

func TestQuickPromptActivation(t *testing.T) {
	stub := &stubSuggester{
		resp: &ai.Response{Suggestion: "ideas", Confidence: 0.6},
	}
	m := newTestModel(t, stub)

	m, cmd := m.Update(keyMsg(tea.KeyF4))
	require.NotNil(t, cmd)

	assert.Equal(t, IntentionBrainstorm, m.State().Intention)

	result := findResult(t, drain(t, cmd))
	assert.Equal(t, QuickPrompts()[3].Prompt, result.Request.Prompt)
	assert.Equal(t, 0.7, result.Request.Temperature)
	assert.Equal(t, IntentionBrainstorm, result.Intention)
}

func TestSubmissionRejectedWhileLoading(t *testing.T) {
	stub := &stubSuggester{resp: &ai.Response{Suggestion: "x", Confidence: 0.5}}
	m := newTestModel(t, stub)

	m, cmd := m.Update(keyMsg(tea.KeyF1))
	require.NotNil(t, cmd)
	require.Equal(t, PhaseLoading, m.State().Phase())

	// A quick prompt pressed while loading is a full no-op: no request,
	// no intention change, no query overwrite.
	m, second := m.Update(keyMsg(tea.KeyF2))
	assert.Nil(t, second)
	assert.Equal(t, IntentionFix, m.State().Intention,
		"rejected quick prompt must not change the intention")
	assert.Equal(t, QuickPrompts()[0].Prompt, m.input.Value(),
		"rejected quick prompt must not overwrite the query")
	assert.Equal(t, uint64(1), m.State().Seq)

	// A plain submission while loading is rejected the same way.
	m, third := m.Update(keyMsg(tea.KeyEnter))
	assert.Nil(t, third)
	assert.Equal(t, uint64(1), m.State().Seq)

	drain(t, cmd)
	assert.Equal(t, 1, stub.calls, "only the first submission may reach the backend")
}

func TestFailureStoresMessageAndClears(t *testing.T) {
	stub := &stubSuggester{err: errors.New("connection refused")}
	m := newTestModel(t, stub)

	m, cmd := m.Update(keyMsg(tea.KeyF1))
	result := findResult(t, drain(t, cmd))
	require.Error(t, result.Err)

	m, _ = m.Update(result)
	assert.Equal(t, PhaseError, m.State().Phase())
	assert.Contains(t, m.State().Err, "connection refused")
	assert.Nil(t, m.State().Response)
	assert.False(t, m.State().Loading)
}

func TestLateCompletionAfterResetIgnored(t *testing.T) {
	stub := &stubSuggester{resp: &ai.Response{Suggestion: "late", Confidence: 0.5}}
	m := newTestModel(t, stub)

	m, cmd := m.Update(keyMsg(tea.KeyF1))
	result := findResult(t, drain(t, cmd))

	// Dialog closed before the completion arrived.
	m.Reset()

	m, _ = m.Update(result)
	assert.Equal(t, PhaseIdle, m.State().Phase())
	assert.Nil(t, m.State().Response)
}

func respondedModel(t *testing.T, suggestion string) Model {
	t.Helper()

	stub := &stubSuggester{
		resp: &ai.Response{Suggestion: suggestion, Explanation: "because", Confidence: 0.9},
	}
	m := newTestModel(t, stub)

	m, cmd := m.Update(keyMsg(tea.KeyF1))
	m, _ = m.Update(findResult(t, drain(t, cmd)))
	require.Equal(t, PhaseResponse, m.State().Phase())
	return m
}

func TestApplyPartialSuggestionSkipsConfirmation(t *testing.T) {
	m := respondedModel(t, "<a-scene><a-box></a-box></a-scene>")

	m, cmd := m.Update(keyMsg(tea.KeyCtrlY))
	require.NotNil(t, cmd)

	apply, ok := cmd().(ApplyMsg)
	require.True(t, ok)
	assert.Equal(t, "<a-scene><a-box></a-box></a-scene>", apply.Suggestion)
}

func TestApplyFullDocumentRequiresConfirmation(t *testing.T) {
	m := respondedModel(t, "<!DOCTYPE html><html><body></body></html>")

	m, cmd := m.Update(keyMsg(tea.KeyCtrlY))
	assert.Nil(t, cmd, "apply must wait for confirmation")

	// Declining leaves the response untouched and the dialog open.
	m, cmd = m.Update(runeMsg("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, PhaseResponse, m.State().Phase())

	// Confirming hands over the exact suggestion text.
	m, _ = m.Update(keyMsg(tea.KeyCtrlY))
	_, cmd = m.Update(runeMsg("y"))
	require.NotNil(t, cmd)

	apply, ok := cmd().(ApplyMsg)
	require.True(t, ok)
	assert.Equal(t, "<!DOCTYPE html><html><body></body></html>", apply.Suggestion)
}

func TestApplyDisabledWithoutResponse(t *testing.T) {
	m := newTestModel(t, &stubSuggester{})

	_, cmd := m.Update(keyMsg(tea.KeyCtrlY))
	assert.Nil(t, cmd)
}

func TestApplyDisabledWithoutApplyHook(t *testing.T) {
	m := respondedModel(t, "<a-box></a-box>")
	m.SetCanApply(false)

	_, cmd := m.Update(keyMsg(tea.KeyCtrlY))
	assert.Nil(t, cmd)
}

func TestNoSuggesterDisablesSubmission(t *testing.T) {
	m := New(nil, keys.DefaultKeyMap(), 100, 40)
	m.SetTarget("code", "html", "a.html")

	m, cmd := m.Update(keyMsg(tea.KeyF1))
	assert.Nil(t, cmd)
	assert.Equal(t, IntentionFix, m.State().Intention)
	assert.Empty(t, m.input.Value())

	assert.Contains(t, m.View(), "API key")
}

func TestScenarioFixQuickPrompt(t *testing.T) {
	stub := &stubSuggester{
		resp: &ai.Response{
			Suggestion:  "<a-scene><a-box></a-box></a-scene>",
			Explanation: "added a box",
			Confidence:  0.9,
		},
	}
	m := newTestModel(t, stub)

	m, cmd := m.Update(keyMsg(tea.KeyF1))
	require.NotNil(t, cmd)
	assert.Equal(t, IntentionFix, m.State().Intention)

	result := findResult(t, drain(t, cmd))
	assert.Equal(t,
		"Please review this code and identify any bugs, errors, "+
			"or potential issues. Provide fixes and explanations.",
		result.Request.Prompt,
	)
	assert.Equal(t, 0.1, result.Request.Temperature)

	m, _ = m.Update(result)
	view := m.View()
	assert.Contains(t, view, "90%")
	assert.True(t, strings.Contains(view, "a-box") ||
		strings.Contains(m.State().Response.Suggestion, "a-box"))

	m, applyCmd := m.Update(keyMsg(tea.KeyCtrlY))
	require.NotNil(t, applyCmd)
	apply, ok := applyCmd().(ApplyMsg)
	require.True(t, ok)
	assert.Equal(t, "<a-scene><a-box></a-box></a-scene>", apply.Suggestion)
}
