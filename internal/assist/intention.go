package assist

// Intention is a named preset controlling the creativity of the next
// suggestion request.
type Intention string

const (
	IntentionFix        Intention = "fix"
	IntentionOptimize   Intention = "optimize"
	IntentionExplain    Intention = "explain"
	IntentionBrainstorm Intention = "brainstorm"
)

// RequestContext is the fixed descriptive string identifying the target
// runtime domain, carried on every outgoing request.
const RequestContext = "A-Frame WebXR scene running in a browser"

// IntentionSpec is the immutable configuration behind an intention.
type IntentionSpec struct {
	// Temperature is the sampling temperature used for requests issued
	// while this intention is selected.
	Temperature float64

	// Label is the short button text.
	Label string

	// Description explains what the intention asks for.
	Description string
}

var intentionSpecs = map[Intention]IntentionSpec{
	IntentionFix: {
		Temperature: 0.1,
		Label:       "Fix",
		Description: "Find and correct bugs with precise, conservative edits",
	},
	IntentionOptimize: {
		Temperature: 0.2,
		Label:       "Optimize",
		Description: "Improve performance and tighten up the code",
	},
	IntentionExplain: {
		Temperature: 0.3,
		Label:       "Explain",
		Description: "Describe what the code does and how it works",
	},
	IntentionBrainstorm: {
		Temperature: 0.7,
		Label:       "Brainstorm",
		Description: "Explore creative ideas and enhancements",
	},
}

// intentionOrder fixes the display and cycling order of the presets.
var intentionOrder = []Intention{
	IntentionFix,
	IntentionOptimize,
	IntentionExplain,
	IntentionBrainstorm,
}

// Intentions returns all intentions in display order.
func Intentions() []Intention {
	out := make([]Intention, len(intentionOrder))
	copy(out, intentionOrder)
	return out
}

// Spec returns the immutable configuration for the intention. Unknown
// values resolve to the fix preset.
func (i Intention) Spec() IntentionSpec {
	if spec, ok := intentionSpecs[i]; ok {
		return spec
	}
	return intentionSpecs[IntentionFix]
}

// Next returns the intention after i in display order, wrapping around.
func (i Intention) Next() Intention {
	for idx, cur := range intentionOrder {
		if cur == i {
			return intentionOrder[(idx+1)%len(intentionOrder)]
		}
	}
	return intentionOrder[0]
}

// Prev returns the intention before i in display order, wrapping around.
func (i Intention) Prev() Intention {
	for idx, cur := range intentionOrder {
		if cur == i {
			return intentionOrder[(idx+len(intentionOrder)-1)%len(intentionOrder)]
		}
	}
	return intentionOrder[0]
}

// QuickPrompt pairs a one-click action with its full instructional prompt
// and target intention.
type QuickPrompt struct {
	Icon      string
	Label     string
	Prompt    string
	Intention Intention
}

// quickPrompts is the static catalog of one-click actions, never mutated
// at runtime.
var quickPrompts = []QuickPrompt{
	{
		Icon:  "🔧",
		Label: "Fix bugs and errors",
		Prompt: "Please review this code and identify any bugs, errors, " +
			"or potential issues. Provide fixes and explanations.",
		Intention: IntentionFix,
	},
	{
		Icon:  "⚡",
		Label: "Optimize performance",
		Prompt: "Please analyze this code for performance problems and " +
			"suggest optimizations. Explain each improvement.",
		Intention: IntentionOptimize,
	},
	{
		Icon:  "📖",
		Label: "Explain this code",
		Prompt: "Please explain what this code does, how it is structured, " +
			"and how the pieces work together.",
		Intention: IntentionExplain,
	},
	{
		Icon:  "💡",
		Label: "Suggest ideas",
		Prompt: "Please suggest creative improvements and new features " +
			"that would enhance this code.",
		Intention: IntentionBrainstorm,
	},
}

// QuickPrompts returns the ordered quick prompt catalog.
func QuickPrompts() []QuickPrompt {
	out := make([]QuickPrompt, len(quickPrompts))
	copy(out, quickPrompts)
	return out
}
