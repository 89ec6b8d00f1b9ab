package hybridrouter

import (
	"regexp"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"

	"github.com/flynn-ai/hybridrouter/internal/errors"
)

// rawConfig mirrors the `[router]` subtree shape. Fields absent from the
// host's subtree keep whatever defaultRawConfig already put there: the
// mapstructure decode only touches keys present in the input map.
type rawConfig struct {
	Enabled        bool           `mapstructure:"enabled"`
	Preference     string         `mapstructure:"preference"`
	LocalModel     ModelRef       `mapstructure:"local_model"`
	LocalTextModel *ModelRef      `mapstructure:"local_text_model"`
	CloudModel     *ModelRef      `mapstructure:"cloud_model"`
	Routing        RoutingParams  `mapstructure:"routing"`
	Fallback       FallbackParams `mapstructure:"fallback"`
}

func defaultRawConfig() rawConfig {
	return rawConfig{
		Enabled:    false,
		Preference: string(PreferLocal),
		LocalModel: ModelRef{Provider: "ollama", ID: "functiongemma"},
		Routing: RoutingParams{
			ComplexityThreshold: 0.5,
		},
		Fallback: FallbackParams{
			OnCloudUnavailable: FallbackLocalText,
			OnLocalError:       LocalFallbackCloud,
		},
	}
}

// ResolveConfig is the Config Resolver (spec §4.1). It decodes the host's
// `[router]` subtree — already parsed into a generic map by the host's
// TOML loader — into an immutable RouterConfig, applying documented
// defaults and compiling the regex pattern lists.
//
// If the subtree is nil, or decodes with enabled == false, ResolveConfig
// returns (nil, nil): the caller must not install the wrapper. A non-nil
// error is always config-invalid and fatal to construction.
func ResolveConfig(subtree map[string]any) (*RouterConfig, error) {
	raw := defaultRawConfig()

	if subtree != nil {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &raw,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeRouterConfigInvalid, "failed to build router config decoder", errors.CategoryPermanent)
		}
		if err := dec.Decode(subtree); err != nil {
			return nil, errors.Wrap(err, errors.CodeRouterConfigInvalid, "failed to decode router config", errors.CategoryPermanent)
		}
		// An explicitly empty local_model table clears the default rather
		// than merging into it, so the required-model check below applies.
		if lm, ok := subtree["local_model"].(map[string]any); ok && len(lm) == 0 {
			raw.LocalModel = ModelRef{}
		}
	}

	if !raw.Enabled {
		return nil, nil
	}

	pref := Preference(raw.Preference)
	switch pref {
	case PreferLocal, PreferCloud, LocalOnly, CloudOnly:
	default:
		return nil, errors.NewBuilder(errors.CodeRouterConfigInvalid, "unrecognised router preference").
			Permanent().
			WithContext("preference", raw.Preference).
			Build()
	}

	if raw.LocalModel.IsZero() {
		return nil, errors.NewBuilder(errors.CodeRouterConfigInvalid, "router.local_model is required").
			Permanent().
			WithSuggestion("Set router.local_model = { provider = \"ollama\", id = \"...\" }").
			Build()
	}

	cfg := &RouterConfig{
		Enabled:        true,
		Preference:     pref,
		LocalModel:     raw.LocalModel,
		LocalTextModel: raw.LocalTextModel,
		CloudModel:     raw.CloudModel,
		Routing:        raw.Routing,
		Fallback:       raw.Fallback,
	}
	cfg.forceCloud = compilePatterns(raw.Routing.ForceCloudPatterns)
	cfg.forceLocal = compilePatterns(raw.Routing.ForceLocalPatterns)

	return cfg, nil
}

// compilePatterns compiles each source string case-insensitively,
// logging and skipping entries that fail to compile (§4.1, §7
// pattern-compile).
func compilePatterns(sources []string) []*compiledPattern {
	if len(sources) == 0 {
		return nil
	}
	out := make([]*compiledPattern, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile("(?i)" + src)
		if err != nil {
			log.Warn().Err(err).Str("pattern", src).Msg("[hybrid-router] failed to compile routing pattern, skipping")
			continue
		}
		out = append(out, &compiledPattern{source: src, re: re})
	}
	return out
}
