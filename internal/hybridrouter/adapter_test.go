package hybridrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullContext() *Context {
	return &Context{
		SystemPrompt: "host system prompt",
		Messages:     []Message{{Role: RoleUser, Text: "hi"}},
		Tools: []ToolSchema{
			{Name: "read", Description: "host read", Parameters: map[string]any{"a": 1}},
			{Name: "grep", Description: "host grep"},
			{Name: "write", Description: "host write", Execute: "write-fn"},
			{Name: "edit", Description: "host edit"},
			{Name: "exec", Description: "host exec"},
		},
	}
}

func TestAdaptContext_Cloud_Unchanged(t *testing.T) {
	ctx := fullContext()
	out := AdaptContext(ctx, TargetCloud, "preamble")
	assert.Same(t, ctx, out)
}

func TestAdaptContext_Local_ReducesTools(t *testing.T) {
	ctx := fullContext()
	out := AdaptContext(ctx, TargetLocal, "You are Flynn.")

	require.Len(t, out.Tools, 4)
	names := make([]string, len(out.Tools))
	for i, tool := range out.Tools {
		names[i] = tool.Name
	}
	assert.Equal(t, []string{"read", "exec", "write", "edit"}, names)
	assert.Equal(t, "You are Flynn. "+toolBasePrompt, out.SystemPrompt)

	for _, tool := range out.Tools {
		if tool.Name == "write" {
			assert.Equal(t, "write-fn", tool.Execute)
		}
	}
}

func TestAdaptContext_Local_DropsUnknownTools(t *testing.T) {
	ctx := &Context{Tools: []ToolSchema{{Name: "grep"}, {Name: "browse"}}}
	out := AdaptContext(ctx, TargetLocal, "")
	assert.Empty(t, out.Tools)
}

func TestAdaptContext_Local_NeverFabricatesTools(t *testing.T) {
	ctx := &Context{Tools: []ToolSchema{{Name: "read"}}}
	out := AdaptContext(ctx, TargetLocal, "")
	require.Len(t, out.Tools, 1)
	assert.Equal(t, "read", out.Tools[0].Name)
}

func TestAdaptContext_LocalText_NoTools(t *testing.T) {
	ctx := fullContext()
	out := AdaptContext(ctx, TargetLocalText, "You are Flynn.")
	assert.Empty(t, out.Tools)
	assert.Equal(t, "You are Flynn. "+textBasePrompt, out.SystemPrompt)
}

func TestAdaptContext_NoPreamble_FallsBackToBase(t *testing.T) {
	ctx := fullContext()
	out := AdaptContext(ctx, TargetLocalText, "")
	assert.Equal(t, textBasePrompt, out.SystemPrompt)
}

// Context adaptation is idempotent: adapting twice to the same target
// yields structurally equal results (spec §8).
func TestAdaptContext_Idempotent(t *testing.T) {
	ctx := fullContext()
	for _, target := range []Target{TargetCloud, TargetLocal, TargetLocalText} {
		once := AdaptContext(ctx, target, "You are Flynn.")
		twice := AdaptContext(once, target, "You are Flynn.")
		assert.Equal(t, once, twice, "target=%s", target)
	}
}
