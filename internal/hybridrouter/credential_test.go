package hybridrouter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialSource_AuthProfilesWinFirst(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	c := &CredentialSource{AuthProfiles: map[string]string{"anthropic": "profile-key"}}

	key, err := c.Resolve("anthropic")
	require.NoError(t, err)
	assert.Equal(t, "profile-key", key)
}

func TestCredentialSource_FallsBackToAgentLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"provider":"anthropic","access_token":"oauth-token"}]`), 0644))

	c := &CredentialSource{ProfileFilePath: path}
	key, err := c.Resolve("anthropic")
	require.NoError(t, err)
	assert.Equal(t, "oauth-token", key)
}

func TestCredentialSource_FallsBackToEnvVar(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "router-key")
	c := &CredentialSource{}
	key, err := c.Resolve("openrouter")
	require.NoError(t, err)
	assert.Equal(t, "router-key", key)
}

func TestCredentialSource_FallsBackToOAuthEnvVar(t *testing.T) {
	t.Setenv("ANTHROPIC_OAUTH_TOKEN", "oauth-env-token")
	c := &CredentialSource{}
	key, err := c.Resolve("anthropic")
	require.NoError(t, err)
	assert.Equal(t, "oauth-env-token", key)
}

func TestCredentialSource_NotFound(t *testing.T) {
	c := &CredentialSource{}
	_, err := c.Resolve("anthropic")
	require.Error(t, err)
	assert.False(t, c.HasCredential("anthropic"))
}

func TestCredentialSource_CachesResult(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "first-value")
	c := &CredentialSource{}

	key1, err := c.Resolve("groq")
	require.NoError(t, err)
	assert.Equal(t, "first-value", key1)

	os.Setenv("GROQ_API_KEY", "second-value")
	key2, err := c.Resolve("groq")
	require.NoError(t, err)
	assert.Equal(t, "first-value", key2, "cached result must not change after env changes")
}
