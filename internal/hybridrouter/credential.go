package hybridrouter

import (
	"encoding/json"
	"os"
	"sync"

	"golang.org/x/oauth2"

	"github.com/flynn-ai/hybridrouter/internal/errors"
)

// envKeyByProvider is the fixed table from spec §4.7(c).
var envKeyByProvider = map[string]string{
	"anthropic":  "ANTHROPIC_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"google":     "GOOGLE_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
	"groq":       "GROQ_API_KEY",
	"xai":        "XAI_API_KEY",
	"mistral":    "MISTRAL_API_KEY",
}

// providerOAuthEnv is the table from spec §4.7(d). Currently just
// Anthropic's OAuth flow.
var providerOAuthEnv = map[string]string{
	"anthropic": "ANTHROPIC_OAUTH_TOKEN",
}

// CredentialSource is the Credential Resolver's lookup backend (spec
// §4.7). AuthProfiles and ProfileFilePath come from the host's config;
// the router never opens config files itself beyond them.
type CredentialSource struct {
	// AuthProfiles maps provider name to API key, from the host's
	// `[auth.profiles]` config table.
	AuthProfiles map[string]string

	// ProfileFilePath is an agent-local file holding OAuth tokens keyed
	// by "{provider}-...". Optional.
	ProfileFilePath string

	mu    sync.Mutex
	cache map[string]string
}

// agentProfileEntry is one record of the agent-local OAuth profile file.
type agentProfileEntry struct {
	Provider string `json:"provider"`
	Token    string `json:"access_token"`
}

// Resolve looks up a credential for provider, in lookup-chain order: (a)
// configured auth profiles, (b) the agent-local OAuth profile file, (c)
// the fixed environment-variable table, (d) the provider's OAuth env var.
// The result is cached; subsequent calls for the same provider never
// repeat the lookup (spec §4.7, §5).
func (c *CredentialSource) Resolve(provider string) (string, error) {
	c.mu.Lock()
	if cached, ok := c.cache[provider]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	key, err := c.resolveUncached(provider)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	if c.cache == nil {
		c.cache = make(map[string]string)
	}
	c.cache[provider] = key
	c.mu.Unlock()

	return key, nil
}

func (c *CredentialSource) resolveUncached(provider string) (string, error) {
	if key, ok := c.AuthProfiles[provider]; ok && key != "" {
		return key, nil
	}

	if c.ProfileFilePath != "" {
		if key, ok := c.lookupAgentProfile(provider); ok {
			return key, nil
		}
	}

	if envVar, ok := envKeyByProvider[provider]; ok {
		if key := os.Getenv(envVar); key != "" {
			return key, nil
		}
	}

	if envVar, ok := providerOAuthEnv[provider]; ok {
		if token := os.Getenv(envVar); token != "" {
			return token, nil
		}
	}

	return "", errors.NewBuilder(errors.CodeRouterCredential, "no credential found for provider").
		User().
		WithContext("provider", provider).
		WithSuggestion("Set " + envKeyByProvider[provider] + " or add an auth profile").
		Build()
}

// lookupAgentProfile reads the agent-local profile file and returns the
// token for provider, modeled as an oauth2.Token so the cached shape
// matches the host's own OAuth credential representation.
func (c *CredentialSource) lookupAgentProfile(provider string) (string, bool) {
	data, err := os.ReadFile(c.ProfileFilePath)
	if err != nil {
		return "", false
	}

	var entries []agentProfileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return "", false
	}

	for _, e := range entries {
		if e.Provider != provider || e.Token == "" {
			continue
		}
		tok := &oauth2.Token{AccessToken: e.Token}
		return tok.AccessToken, true
	}
	return "", false
}

// HasCredential reports whether a credential can be resolved for
// provider, without surfacing the resolver error — used by the Decision
// Engine's cloudAvailable predicate.
func (c *CredentialSource) HasCredential(provider string) bool {
	_, err := c.Resolve(provider)
	return err == nil
}
