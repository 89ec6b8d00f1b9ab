// Package hybridrouter implements the request-dispatch layer that decides,
// for every model call an agent makes, whether the call goes to the local
// tool-calling model, the local text-only model, or the cloud model.
package hybridrouter

import (
	"regexp"

	"github.com/flynn-ai/hybridrouter/internal/model"
)

// Target is the backend kind a Decision selects.
type Target string

const (
	TargetLocal     Target = "local"
	TargetLocalText Target = "local-text"
	TargetCloud     Target = "cloud"
)

// Preference is the operator's global routing bias.
type Preference string

const (
	PreferLocal Preference = "prefer-local"
	PreferCloud Preference = "prefer-cloud"
	LocalOnly   Preference = "local-only"
	CloudOnly   Preference = "cloud-only"
)

// CloudFallback governs degradation when the cloud model cannot be used.
type CloudFallback string

const (
	FallbackLocalText CloudFallback = "local-text"
	FallbackLocal     CloudFallback = "local"
	FallbackError     CloudFallback = "error"
)

// LocalFallback governs degradation when a local-side call errors out.
type LocalFallback string

const (
	LocalFallbackCloud LocalFallback = "cloud"
	LocalFallbackError LocalFallback = "error"
)

// ModelRef identifies a backend (provider, id) pair.
type ModelRef struct {
	Provider string `mapstructure:"provider" json:"provider"`
	ID       string `mapstructure:"id" json:"id"`
}

// IsZero reports whether the reference is unset.
func (m ModelRef) IsZero() bool {
	return m.Provider == "" && m.ID == ""
}

// RoutingParams is the `routing.*` knob block (spec §3).
type RoutingParams struct {
	ComplexityThreshold   float64  `mapstructure:"complexity_threshold"`
	ForceCloudPatterns    []string `mapstructure:"force_cloud_patterns"`
	ForceLocalPatterns    []string `mapstructure:"force_local_patterns"`
	MaxLocalResponseTokens int     `mapstructure:"max_local_response_tokens"`
}

// FallbackParams is the `fallback.*` knob block.
type FallbackParams struct {
	OnCloudUnavailable CloudFallback `mapstructure:"on_cloud_unavailable"`
	OnLocalError       LocalFallback `mapstructure:"on_local_error"`
}

// RouterConfig is the router's immutable, fully resolved configuration.
// Constructed once at wrapper construction time by ResolveConfig.
type RouterConfig struct {
	Enabled        bool
	Preference     Preference
	LocalModel     ModelRef
	LocalTextModel *ModelRef
	CloudModel     *ModelRef
	Routing        RoutingParams
	Fallback       FallbackParams

	forceCloud []*compiledPattern
	forceLocal []*compiledPattern
}

// compiledPattern pairs a successfully compiled operator regex with its
// original source string, which is surfaced verbatim as a Decision tag.
type compiledPattern struct {
	source string
	re     *regexp.Regexp
}

// ContentPart is one piece of a Message's content.
type ContentPart struct {
	Type string `json:"type"` // text | tool-call | tool-result

	// type == text
	Text string `json:"text,omitempty"`

	// type == tool-call
	Name string         `json:"name,omitempty"`
	Args map[string]any `json:"args,omitempty"`

	// type == tool-result
	ToolCallID string `json:"tool_call_id,omitempty"`
	Result     any    `json:"result,omitempty"`
}

// Role is a Message's speaker.
type Role string

const (
	RoleUser       Role = "user"
	RoleAssistant  Role = "assistant"
	RoleToolResult Role = "tool-result"
	RoleSystem     Role = "system"
)

// Message is one turn of a conversation. Content is either a plain string
// or a slice of ContentPart; Parts is populated when the message was built
// from structured content, Text when it was built from a plain string.
type Message struct {
	Role     Role
	Text     string
	Parts    []ContentPart
	Provider string // which backend produced this message, if Role == assistant
	Model    string
}

// textParts joins the text ContentParts of the message with single spaces,
// falling back to Text when there are no structured parts.
func (m Message) textParts() string {
	if len(m.Parts) == 0 {
		return m.Text
	}
	var out []string
	for _, p := range m.Parts {
		if p.Type == "text" && p.Text != "" {
			out = append(out, p.Text)
		}
	}
	return joinSpace(out)
}

func joinSpace(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	total := len(parts) - 1
	for _, p := range parts {
		total += len(p)
	}
	buf := make([]byte, 0, total)
	for i, p := range parts {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, p...)
	}
	return string(buf)
}

// ToolSchema describes one tool offered to the model.
type ToolSchema struct {
	Name        string
	Description string
	Parameters  map[string]any
	InputSchema map[string]any // Anthropic-style alias of Parameters
	Execute     any            // opaque; preserved by the adapter untouched
}

// Context is the full bundle handed to a single inference call.
type Context struct {
	Messages     []Message
	Tools        []ToolSchema
	SystemPrompt string
}

// Decision is the router's verdict for one call.
type Decision struct {
	Target Target
	Model  model.Model // always non-nil; see RouterConfig.LocalModel invariant
	Score  float64
	Reason string
	Tags   []string

	// EstimatedCostTier is purely additive telemetry (SPEC_FULL.md
	// "Cost/Tier annotation on Decisions"): never read back by the
	// Decision Engine, only surfaced to an optional CostRecorder.
	EstimatedCostTier model.Tier
}

// costTierFor maps a Target to the teacher's model.Tier scale.
func costTierFor(target Target) model.Tier {
	switch target {
	case TargetLocalText:
		return model.TierLocal3B
	case TargetLocal:
		return model.TierLocal7B
	case TargetCloud:
		return model.TierCloud
	default:
		return model.TierLocal7B
	}
}
