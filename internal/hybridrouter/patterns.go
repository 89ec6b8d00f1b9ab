package hybridrouter

import "regexp"

// keywordPattern is one weighted regex family in the scoring table.
type keywordPattern struct {
	re     *regexp.Regexp
	weight float64
	tag    string
}

// complexPatterns are the "genuine complexity" signal families (§4.3).
// Order does not affect scoring: every matching family contributes its
// weight and tag independently.
var complexPatterns = []keywordPattern{
	{regexp.MustCompile(`(?i)explain|describe|elaborate`), 0.15, "explanation"},
	{regexp.MustCompile(`(?i)implement|create|build|develop`), 0.20, "implementation"},
	{regexp.MustCompile(`(?i)refactor|optimize|improve|restructure`), 0.20, "refactoring"},
	{regexp.MustCompile(`(?i)debug|fix|solve|troubleshoot`), 0.15, "debugging"},
	{regexp.MustCompile(`(?i)analyze|compare|evaluate|review`), 0.15, "analysis"},
	{regexp.MustCompile(`(?i)\bwhy\b|how does|what causes`), 0.10, "reasoning"},
	{regexp.MustCompile(`(?i)step by step|in detail|thoroughly`), 0.15, "detail-request"},
	{regexp.MustCompile(`(?i)\b(write|generate|compose)\b\s+\w+`), 0.15, "generation"},
	{regexp.MustCompile(`(?i)find|search|look up|google|browse`), 0.35, "search"},
	{regexp.MustCompile(`(?i)recommend|suggest|best|top|highest rated`), 0.30, "recommendation"},
	{regexp.MustCompile(`(?i)latest|recent|current|today|news|price`), 0.30, "real-time"},
	{regexp.MustCompile(`(?i)buy|purchase|order|shop|deal|discount`), 0.25, "shopping"},
	{regexp.MustCompile(`(?i)summarize|plan|design|architect`), 0.20, "planning"},
	{regexp.MustCompile(`(?i)help me|assist|guide`), 0.10, "assistance"},
}

// simplePatterns are the negative-weight "this is a small, tool-like ask"
// signal families (§4.3).
var simplePatterns = []keywordPattern{
	{regexp.MustCompile(`(?i)(read|cat|show|display|print)\s+the\s+file`), -0.25, "file-read"},
	{regexp.MustCompile(`(?i)\b(list|ls|dir)\b`), -0.20, "directory"},
	{regexp.MustCompile(`(?i)\b(run|execute|exec)\b`), -0.10, "command"},
	{regexp.MustCompile(`(?i)^(yes|no|ok|okay|sure|confirm|yep|nah)\s*[.!?]?$`), -0.35, "confirmation"},
	{regexp.MustCompile(`(?i)^(hello|hi|hey|thanks|thank you)\s*[.!?]?$`), -0.30, "greeting"},
}

// cloudProviders are the recognised cloud backends used for cloud session
// affinity (§4.4) and the credential env-var table (§4.7).
var cloudProviders = map[string]bool{
	"anthropic":  true,
	"openai":     true,
	"google":     true,
	"openrouter": true,
	"xai":        true,
	"groq":       true,
	"mistral":    true,
}

// toolLikeTags is the set from Decision Engine step 7.
var toolLikeTags = map[string]bool{
	"file-read":     true,
	"directory":     true,
	"command":       true,
	"tool-heavy-ctx": true,
	"post-tool":     true,
	"confirmation":  true,
}

// cloudCapabilityTags is the set from Decision Engine step 5.
var cloudCapabilityTags = map[string]bool{
	"search":         true,
	"recommendation": true,
	"real-time":      true,
	"shopping":       true,
}

func hasTag(tags []string, set map[string]bool) bool {
	for _, t := range tags {
		if set[t] {
			return true
		}
	}
	return false
}
