package hybridrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flynn-ai/hybridrouter/internal/cost"
	"github.com/flynn-ai/hybridrouter/internal/model"
)

type stubResolver struct {
	byProvider map[string]model.Model
}

func (r *stubResolver) Resolve(ref ModelRef) (model.Model, error) {
	if ref.IsZero() {
		return nil, nil
	}
	return r.byProvider[ref.Provider], nil
}

func newTestWrapper(t *testing.T, preference Preference) *Wrapper {
	t.Helper()
	cfg, err := ResolveConfig(map[string]any{
		"enabled":    true,
		"preference": string(preference),
		"local_model": map[string]any{
			"provider": "ollama",
			"id":       "functiongemma",
		},
		"cloud_model": map[string]any{
			"provider": "anthropic",
			"id":       "claude-3.5-sonnet",
		},
		"routing": map[string]any{"complexity_threshold": 0.5},
	})
	require.NoError(t, err)

	resolver := &stubResolver{byProvider: map[string]model.Model{
		"ollama":    &fakeModel{provider: "ollama", name: "functiongemma", local: true, available: true},
		"anthropic": &fakeModel{provider: "anthropic", name: "claude-3.5-sonnet", available: true},
	}}

	creds := &CredentialSource{AuthProfiles: map[string]string{"anthropic": "test-key"}}

	w, err := NewWrapper(cfg, resolver, creds, "", nil)
	require.NoError(t, err)
	require.NotNil(t, w)
	return w
}

func TestWrap_NilWrapperIsPassThrough(t *testing.T) {
	var calledWith *Context
	fn := StreamFunc[string](func(m model.Model, ctx *Context, options map[string]any) (string, error) {
		calledWith = ctx
		return "ok", nil
	})

	wrapped := Wrap[string](nil, fn)
	ctx := &Context{SystemPrompt: "untouched"}
	result, err := wrapped(nil, ctx, nil)

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Same(t, ctx, calledWith)
}

func TestWrap_DelegatesWithAdaptedContextAndResolvedModel(t *testing.T) {
	w := newTestWrapper(t, PreferLocal)

	var gotModel model.Model
	var gotCtx *Context
	fn := StreamFunc[string](func(m model.Model, ctx *Context, options map[string]any) (string, error) {
		gotModel = m
		gotCtx = ctx
		return "stream-result", nil
	})

	wrapped := Wrap[string](w, fn)
	original := &Context{Messages: []Message{{Role: RoleUser, Text: "yes"}}, Tools: []ToolSchema{{Name: "read"}}}

	result, err := wrapped(w.models.Local, original, map[string]any{"x": 1})
	require.NoError(t, err)
	assert.Equal(t, "stream-result", result)
	assert.Equal(t, "ollama", gotModel.Provider())
	assert.NotSame(t, original, gotCtx)
}

func TestWrap_SwitchesCredentialOnProviderChange(t *testing.T) {
	w := newTestWrapper(t, PreferCloud)

	var gotOptions map[string]any
	fn := StreamFunc[string](func(m model.Model, ctx *Context, options map[string]any) (string, error) {
		gotOptions = options
		return "ok", nil
	})

	wrapped := Wrap[string](w, fn)
	original := &Context{Messages: []Message{{Role: RoleUser, Text: "please explain this in detail and analyze it thoroughly"}}}

	_, err := wrapped(w.models.Local, original, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotOptions["api_key"])
}

func TestWrapper_Status(t *testing.T) {
	w := newTestWrapper(t, PreferLocal)
	status := w.Status()
	require.Contains(t, status, "local")
	assert.True(t, status["local"].Available)
}

func TestWrap_RecordsCostViaTrackerCostRecorder(t *testing.T) {
	cfg, err := ResolveConfig(map[string]any{
		"enabled":    true,
		"preference": string(PreferCloud),
		"local_model": map[string]any{
			"provider": "ollama",
			"id":       "functiongemma",
		},
		"cloud_model": map[string]any{
			"provider": "anthropic",
			"id":       "claude-3.5-sonnet",
		},
		"routing": map[string]any{"complexity_threshold": 0.5},
	})
	require.NoError(t, err)

	resolver := &stubResolver{byProvider: map[string]model.Model{
		"ollama":    &fakeModel{provider: "ollama", name: "functiongemma", local: true, available: true},
		"anthropic": &fakeModel{provider: "anthropic", name: "claude-3.5-sonnet", available: true},
	}}
	creds := &CredentialSource{AuthProfiles: map[string]string{"anthropic": "test-key"}}

	tracker := cost.NewTracker()
	w, err := NewWrapper(cfg, resolver, creds, "", &TrackerCostRecorder{Tracker: tracker})
	require.NoError(t, err)

	fn := StreamFunc[string](func(m model.Model, ctx *Context, options map[string]any) (string, error) {
		return "ok", nil
	})
	wrapped := Wrap[string](w, fn)

	ctx := &Context{Messages: []Message{{Role: RoleUser, Text: "please explain this in detail and analyze it thoroughly"}}}
	_, err = wrapped(w.models.Local, ctx, map[string]any{})
	require.NoError(t, err)

	stats := tracker.GetDailyStats()
	assert.Equal(t, 1, stats.Requests)
	assert.Greater(t, stats.CloudTokens, 0)
	assert.Greater(t, stats.CloudCost, 0.0)
	assert.Equal(t, 0, stats.LocalTokens)
}
