package hybridrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfig_DisabledByDefault(t *testing.T) {
	cfg, err := ResolveConfig(nil)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestResolveConfig_DisabledExplicitly(t *testing.T) {
	cfg, err := ResolveConfig(map[string]any{"enabled": false})
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := ResolveConfig(map[string]any{"enabled": true})
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, PreferLocal, cfg.Preference)
	assert.Equal(t, 0.5, cfg.Routing.ComplexityThreshold)
	assert.Equal(t, ModelRef{Provider: "ollama", ID: "functiongemma"}, cfg.LocalModel)
	assert.Nil(t, cfg.LocalTextModel)
	assert.Nil(t, cfg.CloudModel)
	assert.Equal(t, FallbackLocalText, cfg.Fallback.OnCloudUnavailable)
	assert.Equal(t, LocalFallbackCloud, cfg.Fallback.OnLocalError)
}

func TestResolveConfig_RequiresLocalModel(t *testing.T) {
	_, err := ResolveConfig(map[string]any{
		"enabled":     true,
		"local_model": map[string]any{},
	})
	require.Error(t, err)
}

func TestResolveConfig_RejectsUnknownPreference(t *testing.T) {
	_, err := ResolveConfig(map[string]any{
		"enabled":    true,
		"preference": "bogus",
	})
	require.Error(t, err)
}

func TestResolveConfig_CompilesPatternsCaseInsensitively(t *testing.T) {
	cfg, err := ResolveConfig(map[string]any{
		"enabled": true,
		"routing": map[string]any{
			"force_cloud_patterns": []string{"EXPLAIN"},
		},
	})
	require.NoError(t, err)
	require.Len(t, cfg.forceCloud, 1)
	assert.True(t, cfg.forceCloud[0].re.MatchString("please explain this"))
}

func TestResolveConfig_SkipsUncompilablePattern(t *testing.T) {
	cfg, err := ResolveConfig(map[string]any{
		"enabled": true,
		"routing": map[string]any{
			"force_local_patterns": []string{"[unterminated", "read.*file"},
		},
	})
	require.NoError(t, err)
	require.Len(t, cfg.forceLocal, 1)
	assert.Equal(t, "read.*file", cfg.forceLocal[0].source)
}

func TestResolveConfig_OverridesApplied(t *testing.T) {
	cfg, err := ResolveConfig(map[string]any{
		"enabled":    true,
		"preference": string(CloudOnly),
		"local_model": map[string]any{
			"provider": "llamacpp",
			"id":       "qwen",
		},
		"routing": map[string]any{
			"complexity_threshold": 0.8,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, CloudOnly, cfg.Preference)
	assert.Equal(t, "llamacpp", cfg.LocalModel.Provider)
	assert.Equal(t, 0.8, cfg.Routing.ComplexityThreshold)
}
