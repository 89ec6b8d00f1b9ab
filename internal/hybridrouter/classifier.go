package hybridrouter

import "strings"

// Classify scores a context in [0, 1] and returns the tags that fired.
// It inspects only the last user message text plus lightweight
// conversation features (§4.3).
func Classify(ctx *Context, cfg *RouterConfig) (score float64, reason string, tags []string) {
	text := lastUserText(ctx)

	// Shortcut rules, evaluated in order; first match wins.
	for _, p := range cfg.forceCloud {
		if p.re.MatchString(text) {
			return 1.0, "force-cloud", []string{p.source}
		}
	}
	for _, p := range cfg.forceLocal {
		if p.re.MatchString(text) {
			return 0.0, "force-local", []string{p.source}
		}
	}
	if isPostToolTurn(ctx) {
		// Cloud session affinity: a tool result that follows a cloud-
		// provider turn is treated as force-cloud rather than the generic
		// post-tool-turn shortcut, so the Decision Engine's step 3 (not
		// step 4) handles it and the conversation stays on cloud.
		if provider := lastAssistantProvider(ctx); cloudProviders[provider] {
			return 1.0, "force-cloud", []string{"cloud-session-affinity"}
		}
		return 0.0, "post-tool-turn", []string{"post-tool"}
	}

	return classifyHeuristic(ctx, text)
}

// lastUserText walks the message list from the end and returns the text
// of the most recent user message, joining its text parts with single
// spaces. If none exists, the classifier sees the empty string.
func lastUserText(ctx *Context) string {
	if ctx == nil {
		return ""
	}
	for i := len(ctx.Messages) - 1; i >= 0; i-- {
		if ctx.Messages[i].Role == RoleUser {
			return ctx.Messages[i].textParts()
		}
	}
	return ""
}

// isPostToolTurn reports whether the last message in the context is a
// tool-result turn.
func isPostToolTurn(ctx *Context) bool {
	if ctx == nil || len(ctx.Messages) == 0 {
		return false
	}
	return ctx.Messages[len(ctx.Messages)-1].Role == RoleToolResult
}

// lastAssistantProvider returns the Provider of the most recent assistant
// message, or "" if there isn't one. Used for cloud session affinity.
func lastAssistantProvider(ctx *Context) string {
	if ctx == nil {
		return ""
	}
	for i := len(ctx.Messages) - 1; i >= 0; i-- {
		if ctx.Messages[i].Role == RoleAssistant {
			return ctx.Messages[i].Provider
		}
	}
	return ""
}

func classifyHeuristic(ctx *Context, text string) (float64, string, []string) {
	var score float64
	var tags []string

	words := wordCount(text)
	if words > 100 {
		score += 0.15
		tags = append(tags, "long-prompt")
	}
	if words > 300 {
		score += 0.15
		tags = append(tags, "very-long-prompt")
	}

	complexityCount := 0
	for _, p := range complexPatterns {
		if p.re.MatchString(text) {
			score += p.weight
			tags = append(tags, p.tag)
			complexityCount++
		}
	}
	for _, p := range simplePatterns {
		if p.re.MatchString(text) {
			score += p.weight
			tags = append(tags, p.tag)
		}
	}

	if complexityCount >= 2 {
		score += 0.15
		tags = append(tags, "multi-signal")
	}
	if words > 12 && complexityCount >= 1 {
		score += 0.10
		tags = append(tags, "detailed-query")
	}

	if countRecentToolParts(ctx, 10) > 3 {
		score -= 0.10
		tags = append(tags, "tool-heavy-ctx")
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return score, "heuristic", tags
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// countRecentToolParts counts tool-call content parts across the last n
// messages of the context.
func countRecentToolParts(ctx *Context, n int) int {
	if ctx == nil {
		return 0
	}
	msgs := ctx.Messages
	start := len(msgs) - n
	if start < 0 {
		start = 0
	}
	count := 0
	for _, m := range msgs[start:] {
		for _, p := range m.Parts {
			if p.Type == "tool-call" {
				count++
			}
		}
	}
	return count
}
