package assist

import (
	"strings"

	"github.com/hnguyen/codeassist/internal/ai"
)

// fallbackErrMsg is shown when a failure carries no message of its own.
const fallbackErrMsg = "AI request failed. Please try again."

// Phase is the derived lifecycle view over the dialog state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseResponse
	PhaseError
)

// State holds the dialog's interaction state. All transitions are pure:
// they return a new snapshot and never mutate the receiver, so every UI
// event maps to one transition that can be unit tested without a
// rendering harness.
//
// Invariant: at most one of {Loading, Response, Err} is populated.
type State struct {
	Intention Intention
	Query     string
	Loading   bool
	Response  *ai.Response
	Err       string

	// Seq identifies the most recent request. Completions carrying an
	// older sequence number are discarded so a stale result can never
	// overwrite newer state.
	Seq uint64
}

// NewState returns the initial dialog state with the fix intention
// selected.
func NewState() State {
	return State{Intention: IntentionFix}
}

// Phase reports which of the four mutually exclusive views applies.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Err != "":
		return PhaseError
	case s.Response != nil:
		return PhaseResponse
	default:
		return PhaseIdle
	}
}

// WithIntention selects an intention. Selection has no other effect; it
// only changes the temperature of the next submission.
func (s State) WithIntention(i Intention) State {
	s.Intention = i
	return s
}

// WithQuery replaces the free-text query.
func (s State) WithQuery(q string) State {
	s.Query = q
	return s
}

// BeginRequest starts a new submission for the given prompt. It returns
// the trimmed effective prompt and false when the submission is rejected:
// either the prompt is blank or a request is already pending.
func (s State) BeginRequest(prompt string) (State, string, bool) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" || s.Loading {
		return s, "", false
	}

	s.Seq++
	s.Loading = true
	s.Response = nil
	s.Err = ""
	return s, trimmed, true
}

// Complete stores a successful response for the request identified by seq.
// Completions for anything but the pending request are ignored.
func (s State) Complete(seq uint64, resp *ai.Response) State {
	if !s.Loading || seq != s.Seq || resp == nil {
		return s
	}

	s.Loading = false
	s.Response = resp
	s.Err = ""
	return s
}

// Fail stores a failure for the request identified by seq, substituting a
// generic message when the failure carries none.
func (s State) Fail(seq uint64, msg string) State {
	if !s.Loading || seq != s.Seq {
		return s
	}

	if strings.TrimSpace(msg) == "" {
		msg = fallbackErrMsg
	}

	s.Loading = false
	s.Response = nil
	s.Err = msg
	return s
}

// Reset returns the state to its initial value while keeping the sequence
// counter, so completions that raced a close are still recognised as
// stale.
func (s State) Reset() State {
	next := NewState()
	next.Seq = s.Seq
	return next
}

// NeedsConfirmation reports whether a suggestion looks like a full-document
// replacement: a doctype declaration or an opening root-markup tag.
func NeedsConfirmation(suggestion string) bool {
	lower := strings.ToLower(suggestion)
	return strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html")
}
