package hybridrouter

import (
	"github.com/flynn-ai/hybridrouter/internal/errors"
	"github.com/flynn-ai/hybridrouter/internal/model"
)

// ModelResolver binds a (provider, id) reference against the host's
// current configuration and credentials (spec §4.2). The surrounding
// agent runtime implements this; the router only calls it at
// construction time and never again — resolved Models are frozen for
// the wrapper's lifetime (spec §5).
type ModelResolver interface {
	Resolve(ref ModelRef) (model.Model, error)
}

// DefaultModelResolver is the router's own resolver for the two backend
// shapes the teacher codebase already speaks: any OpenAI-compatible local
// server (ollama, llamacpp, lmstudio, vllm, ...) and OpenRouter-style
// cloud providers. A host embedding the router can supply its own
// ModelResolver instead when it has richer provider wiring.
type DefaultModelResolver struct {
	// LocalBaseURL overrides the default local server address.
	LocalBaseURL string

	// CloudAPIKeyFor resolves an API key for a cloud provider at bind
	// time. The Credential Resolver supplies this.
	CloudAPIKeyFor func(provider string) (string, error)
}

// Resolve implements ModelResolver.
func (r *DefaultModelResolver) Resolve(ref ModelRef) (model.Model, error) {
	if ref.IsZero() {
		return nil, nil
	}

	if ref.Provider == "ollama" || ref.Provider == "llamacpp" || ref.Provider == "lmstudio" || ref.Provider == "vllm" {
		cfg := model.DefaultLocalConfig(r.LocalBaseURL, ref.ID)
		cfg.Provider = ref.Provider
		return model.NewLocalClient(cfg), nil
	}

	apiKey := ""
	if r.CloudAPIKeyFor != nil {
		key, err := r.CloudAPIKeyFor(ref.Provider)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeRouterModelResolve, "failed to resolve cloud credential", errors.CategorySystem)
		}
		apiKey = key
	}

	cfg := model.DefaultOpenRouterConfig(apiKey, ref.Provider, ref.ID)
	return model.NewOpenRouterClient(cfg), nil
}

// resolveModels binds RouterConfig's three ModelRefs against the given
// resolver, enforcing the §4.2 fatality rule: a local-model resolution
// failure is fatal, the other two degrade to nil.
func resolveModels(cfg *RouterConfig, resolver ModelResolver) (ResolvedModels, error) {
	local, err := resolver.Resolve(cfg.LocalModel)
	if err != nil || local == nil {
		return ResolvedModels{}, errors.NewBuilder(errors.CodeRouterModelResolve, "failed to resolve required local model").
			System().
			Wrap(err).
			WithContext("provider", cfg.LocalModel.Provider).
			WithContext("id", cfg.LocalModel.ID).
			Build()
	}

	models := ResolvedModels{Local: local}

	if cfg.LocalTextModel != nil {
		if lt, err := resolver.Resolve(*cfg.LocalTextModel); err == nil {
			models.LocalText = lt
		}
	}
	if cfg.CloudModel != nil {
		if c, err := resolver.Resolve(*cfg.CloudModel); err == nil {
			models.Cloud = c
		}
	}

	return models, nil
}
