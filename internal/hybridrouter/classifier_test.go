package hybridrouter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouterConfig(t *testing.T, forceCloud, forceLocal []string) *RouterConfig {
	t.Helper()
	cfg, err := ResolveConfig(map[string]any{
		"enabled": true,
		"local_model": map[string]any{
			"provider": "ollama",
			"id":       "functiongemma",
		},
		"local_text_model": map[string]any{
			"provider": "ollama",
			"id":       "functiongemma-text",
		},
		"cloud_model": map[string]any{
			"provider": "anthropic",
			"id":       "claude-3.5-sonnet",
		},
		"routing": map[string]any{
			"complexity_threshold":  0.5,
			"force_cloud_patterns":  forceCloud,
			"force_local_patterns":  forceLocal,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, cfg)
	return cfg
}

func userCtx(text string) *Context {
	return &Context{Messages: []Message{{Role: RoleUser, Text: text}}}
}

func TestClassify_ForceCloudShortcut(t *testing.T) {
	cfg := testRouterConfig(t, []string{`explain.*in detail`}, nil)
	score, reason, tags := Classify(userCtx("please explain this in detail"), cfg)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, "force-cloud", reason)
	assert.Contains(t, tags, `explain.*in detail`)
}

func TestClassify_ForceLocalShortcut(t *testing.T) {
	cfg := testRouterConfig(t, nil, []string{`read.*file`})
	score, reason, _ := Classify(userCtx("read the file src/index.ts"), cfg)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, "force-local", reason)
}

func TestClassify_ForceCloudBeatsForceLocal(t *testing.T) {
	cfg := testRouterConfig(t, []string{`explain.*in detail`}, []string{`read.*file`})
	_, reason, _ := Classify(userCtx("please explain this in detail, don't just read the file"), cfg)
	assert.Equal(t, "force-cloud", reason)
}

func TestClassify_PostToolTurn_LocalProvider(t *testing.T) {
	cfg := testRouterConfig(t, nil, nil)
	ctx := &Context{Messages: []Message{
		{Role: RoleUser, Text: "list the files"},
		{Role: RoleAssistant, Provider: "ollama"},
		{Role: RoleToolResult},
	}}
	score, reason, tags := Classify(ctx, cfg)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, "post-tool-turn", reason)
	assert.Contains(t, tags, "post-tool")
}

func TestClassify_PostToolTurn_CloudSessionAffinity(t *testing.T) {
	cfg := testRouterConfig(t, nil, nil)
	ctx := &Context{Messages: []Message{
		{Role: RoleUser, Text: "what's the weather"},
		{Role: RoleAssistant, Provider: "anthropic"},
		{Role: RoleToolResult},
	}}
	score, reason, tags := Classify(ctx, cfg)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, "force-cloud", reason)
	assert.Contains(t, tags, "cloud-session-affinity")
}

func TestClassify_EmptyContext(t *testing.T) {
	cfg := testRouterConfig(t, nil, nil)
	score, reason, tags := Classify(&Context{}, cfg)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
	assert.Equal(t, "heuristic", reason)
	assert.Empty(t, tags)
}

func TestClassify_Greeting(t *testing.T) {
	cfg := testRouterConfig(t, nil, nil)
	score, _, tags := Classify(userCtx("hello"), cfg)
	assert.Less(t, score, 0.5)
	assert.Contains(t, tags, "greeting")
}

func TestClassify_ComplexImplementationRequest(t *testing.T) {
	cfg := testRouterConfig(t, nil, nil)
	score, _, tags := Classify(userCtx("please implement and refactor this module, then analyze it"), cfg)
	assert.GreaterOrEqual(t, score, 0.5)
	assert.Contains(t, tags, "implementation")
	assert.Contains(t, tags, "refactoring")
	assert.Contains(t, tags, "analysis")
	assert.Contains(t, tags, "multi-signal")
}

func TestClassify_ScoreAlwaysClamped(t *testing.T) {
	cfg := testRouterConfig(t, nil, nil)
	text := strings.Repeat("implement build create develop search recommend buy ", 60)
	score, _, _ := Classify(userCtx(text), cfg)
	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestClassify_ToolHeavyDiscount(t *testing.T) {
	cfg := testRouterConfig(t, nil, nil)
	msgs := []Message{{Role: RoleUser, Text: "explain what happened in detail"}}
	for i := 0; i < 4; i++ {
		msgs = append(msgs, Message{Parts: []ContentPart{{Type: "tool-call"}}})
	}
	ctx := &Context{Messages: msgs}
	scoreWith, _, tagsWith := Classify(ctx, cfg)

	plainCtx := &Context{Messages: []Message{{Role: RoleUser, Text: "explain what happened in detail"}}}
	scorePlain, _, _ := Classify(plainCtx, cfg)

	assert.Contains(t, tagsWith, "tool-heavy-ctx")
	assert.Less(t, scoreWith, scorePlain)
}

// Monotonicity property: adding a complex keyword never decreases the
// score; adding a simple keyword never increases it.
func TestClassify_Monotonicity(t *testing.T) {
	cfg := testRouterConfig(t, nil, nil)
	base := "tell me about the weather system"
	baseScore, _, _ := Classify(userCtx(base), cfg)

	withComplex := base + " please implement this thoroughly"
	complexScore, _, _ := Classify(userCtx(withComplex), cfg)
	assert.GreaterOrEqual(t, complexScore, baseScore)

	withSimple := base + " just run ls"
	simpleScore, _, _ := Classify(userCtx(withSimple), cfg)
	assert.LessOrEqual(t, simpleScore, baseScore)
}
