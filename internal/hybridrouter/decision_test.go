package hybridrouter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flynn-ai/hybridrouter/internal/model"
)

func scenarioConfig(t *testing.T, preference Preference) *RouterConfig {
	t.Helper()
	cfg, err := ResolveConfig(map[string]any{
		"enabled":    true,
		"preference": string(preference),
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
			"complexity_threshold": 0.5,
			"force_cloud_patterns": []string{`explain.*in detail`, `implement.*feature`},
			"force_local_patterns": []string{`read.*file`, `^(yes|no|ok|sure)$`},
		},
	})
	require.NoError(t, err)
	return cfg
}

func scenarioModels(t *testing.T) ResolvedModels {
	t.Helper()
	return ResolvedModels{
		Local:     &fakeModel{provider: "ollama", name: "functiongemma", local: true, available: true},
		LocalText: &fakeModel{provider: "ollama", name: "functiongemma-text", local: true, available: true},
		Cloud:     &fakeModel{provider: "anthropic", name: "claude-3.5-sonnet", available: true},
	}
}

// Scenarios table from spec §8, config: preference=prefer-local,
// threshold=0.5, cloudAvailable=true, localTextModel present.
func TestDecide_EndToEndScenarios(t *testing.T) {
	cfg := scenarioConfig(t, PreferLocal)
	models := scenarioModels(t)

	cases := []struct {
		name           string
		ctx            *Context
		wantTarget     Target
		reasonContains string
	}{
		{
			name:           "read the file",
			ctx:            userCtx("read the file src/index.ts"),
			wantTarget:     TargetLocal,
			reasonContains: "force-local",
		},
		{
			name:           "yes confirmation",
			ctx:            userCtx("yes"),
			wantTarget:     TargetLocal,
			reasonContains: "force-local",
		},
		{
			name:           "simple arithmetic question",
			ctx:            userCtx("What is 2 + 2?"),
			wantTarget:     TargetLocalText,
			reasonContains: "simple",
		},
		{
			name:           "real-time headlines",
			ctx:            userCtx("what are the latest headlines today?"),
			wantTarget:     TargetCloud,
			reasonContains: "cloud-capability",
		},
		{
			name:           "refactor, implement, and analyze",
			ctx:            userCtx("please refactor this module, implement the missing handler, and analyze the result"),
			wantTarget:     TargetCloud,
			reasonContains: "cloud",
		},
		{
			name: "post-tool after cloud assistant",
			ctx: &Context{Messages: []Message{
				{Role: RoleUser, Text: "search for something"},
				{Role: RoleAssistant, Provider: "anthropic"},
				{Role: RoleToolResult},
			}},
			wantTarget:     TargetCloud,
			reasonContains: "force-cloud",
		},
		{
			name: "post-tool after local assistant",
			ctx: &Context{Messages: []Message{
				{Role: RoleUser, Text: "list files"},
				{Role: RoleAssistant, Provider: "ollama"},
				{Role: RoleToolResult},
			}},
			wantTarget:     TargetLocal,
			reasonContains: "post-tool-turn",
		},
		{
			name:           "long complex prompt",
			ctx:            userCtx(strings.Repeat("implement optimize analyze ", 70)),
			wantTarget:     TargetCloud,
			reasonContains: "complex",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(tc.ctx, cfg, models, true)
			assert.Equal(t, tc.wantTarget, d.Target, "reason=%s tags=%v", d.Reason, d.Tags)
			assert.Contains(t, d.Reason, tc.reasonContains)
		})
	}
}

func TestDecide_LocalOnlyOverridesEverything(t *testing.T) {
	cfg := scenarioConfig(t, LocalOnly)
	models := scenarioModels(t)

	d := Decide(userCtx("what are the latest headlines today?"), cfg, models, true)
	assert.Equal(t, TargetLocal, d.Target)
	assert.Equal(t, "pref:local-only", d.Reason)
}

func TestDecide_CloudOnly_Available(t *testing.T) {
	cfg := scenarioConfig(t, CloudOnly)
	models := scenarioModels(t)

	d := Decide(userCtx("yes"), cfg, models, true)
	assert.Equal(t, TargetCloud, d.Target)
	assert.Equal(t, "pref:cloud-only", d.Reason)
	assert.Equal(t, model.TierCloud, d.EstimatedCostTier)
}

func TestDecide_EstimatedCostTier_MatchesTarget(t *testing.T) {
	cfg := scenarioConfig(t, PreferLocal)
	models := scenarioModels(t)

	local := Decide(userCtx("read the file src/index.ts"), cfg, models, true)
	assert.Equal(t, TargetLocal, local.Target)
	assert.Equal(t, model.TierLocal7B, local.EstimatedCostTier)

	text := Decide(userCtx("hello"), cfg, models, true)
	assert.Equal(t, TargetLocalText, text.Target)
	assert.Equal(t, model.TierLocal3B, text.EstimatedCostTier)

	cloud := Decide(userCtx("please explain this in detail and analyze it thoroughly"), cfg, models, true)
	assert.Equal(t, TargetCloud, cloud.Target)
	assert.Equal(t, model.TierCloud, cloud.EstimatedCostTier)
}

func TestDecide_CloudOnly_Unavailable(t *testing.T) {
	cfg := scenarioConfig(t, CloudOnly)
	models := scenarioModels(t)
	models.Cloud = nil

	d := Decide(userCtx("yes"), cfg, models, false)
	assert.Equal(t, TargetLocal, d.Target)
}

func TestDecide_ScoreInvariantBounds(t *testing.T) {
	cfg := scenarioConfig(t, PreferLocal)
	models := scenarioModels(t)
	d := Decide(userCtx("tell me a long winded story"), cfg, models, true)
	assert.GreaterOrEqual(t, d.Score, 0.0)
	assert.LessOrEqual(t, d.Score, 1.0)
}

func TestDecide_EmptyUserText_RoutesLocal(t *testing.T) {
	cfg := scenarioConfig(t, PreferLocal)
	models := scenarioModels(t)
	d := Decide(&Context{}, cfg, models, true)
	assert.Contains(t, []Target{TargetLocal, TargetLocalText}, d.Target)
}

func TestDecide_ModelAlwaysNonNil(t *testing.T) {
	cfg := scenarioConfig(t, PreferLocal)
	models := scenarioModels(t)
	models.LocalText = nil
	models.Cloud = nil

	d := Decide(userCtx("What is 2 + 2?"), cfg, models, false)
	require.NotNil(t, d.Model)
	assert.Equal(t, TargetLocal, d.Target)
}

func TestDecide_ThresholdBoundary_IsComplex(t *testing.T) {
	cfg := scenarioConfig(t, PreferLocal)
	cfg.Routing.ComplexityThreshold = 0
	models := scenarioModels(t)

	// An empty-scoring text (0.0) must still be treated as >= threshold 0.
	d := Decide(&Context{}, cfg, models, true)
	assert.Equal(t, "complex+local-text", d.Reason)
}
