package hybridrouter

import "github.com/flynn-ai/hybridrouter/internal/model"

// ResolvedModels holds the three backend Models the Model Resolver bound
// at wrapper construction. Local is always non-nil; LocalText and Cloud
// are nil when not configured or not resolvable (§4.2).
type ResolvedModels struct {
	Local     model.Model
	LocalText model.Model
	Cloud     model.Model
}

// Decide combines the classifier's verdict with preference, model
// availability, and cloud-credential presence to choose a Target (§4.4).
//
// cloudAvailable must be true iff models.Cloud != nil and a credential
// exists for cfg.CloudModel.Provider; the caller (the Stream Wrapper)
// computes it via the Credential Resolver before calling Decide.
func Decide(ctx *Context, cfg *RouterConfig, models ResolvedModels, cloudAvailable bool) Decision {
	score, reason, tags := Classify(ctx, cfg)

	// Rule 1: local-only overrides everything.
	if cfg.Preference == LocalOnly {
		return decision(TargetLocal, models, score, "pref:local-only", tags)
	}

	// Rule 2: cloud-only, with a log-worthy degrade when unavailable.
	if cfg.Preference == CloudOnly {
		if cloudAvailable {
			return decision(TargetCloud, models, score, "pref:cloud-only", tags)
		}
		return decision(TargetLocal, models, score, "pref:cloud-only (cloud unavailable)", tags)
	}

	// Rule 3: an explicit force-cloud classification (including cloud
	// session affinity, which is reported as force-cloud by Classify).
	if reason == "force-cloud" {
		if cloudAvailable {
			return decision(TargetCloud, models, score, "force-cloud", tags)
		}
		return decision(fallbackTarget(models, TargetLocalText), models, score, "force-cloud (cloud unavailable)", tags)
	}

	// Rule 4: explicit force-local or the plain post-tool-turn shortcut.
	if reason == "force-local" || reason == "post-tool-turn" {
		return decision(TargetLocal, models, score, reason, tags)
	}

	// Rule 5: cloud-capability gate. Some asks need live, real-world data
	// a local model cannot produce regardless of how "complex" they score.
	if hasTag(tags, cloudCapabilityTags) && cloudAvailable && cfg.Preference != LocalOnly {
		return decision(TargetCloud, models, score, "cloud-capability", tags)
	}

	// Rule 6: score-driven complexity routing.
	if score >= cfg.Routing.ComplexityThreshold {
		if cfg.Preference == PreferLocal {
			if score < 0.7 && models.LocalText != nil {
				return decision(TargetLocalText, models, score, "complex+local-text", tags)
			}
			if cloudAvailable {
				return decision(TargetCloud, models, score, "complex+cloud", tags)
			}
			return decision(fallbackTarget(models, TargetLocalText), models, score, "complex (cloud unavailable)", tags)
		}
		// default / prefer-cloud
		if cloudAvailable {
			return decision(TargetCloud, models, score, "complex+cloud", tags)
		}
		return decision(fallbackTarget(models, TargetLocalText), models, score, "complex (cloud unavailable)", tags)
	}

	// Rule 7: simple task.
	isToolLike := hasTag(tags, toolLikeTags)
	switch {
	case isToolLike:
		return decision(TargetLocal, models, score, "simple+tool-like", tags)
	case cfg.Preference == PreferCloud && cloudAvailable:
		return decision(TargetCloud, models, score, "simple+cloud", tags)
	case models.LocalText != nil:
		return decision(TargetLocalText, models, score, "simple+text", tags)
	default:
		return decision(TargetLocal, models, score, "simple+local", tags)
	}
}

// fallbackTarget degrades from target to local-text (if available) or
// local, per the chain in §4.2.
func fallbackTarget(models ResolvedModels, target Target) Target {
	if target == TargetLocalText && models.LocalText != nil {
		return TargetLocalText
	}
	return TargetLocal
}

// decision resolves target to its backing Model and assembles a Decision.
// Local is mandatory, so every branch is guaranteed a non-nil Model.
func decision(target Target, models ResolvedModels, score float64, reason string, tags []string) Decision {
	m := models.Local
	switch target {
	case TargetCloud:
		if models.Cloud != nil {
			m = models.Cloud
		} else {
			target = TargetLocal
		}
	case TargetLocalText:
		if models.LocalText != nil {
			m = models.LocalText
		} else {
			target = TargetLocal
		}
	}
	return Decision{
		Target:            target,
		Model:             m,
		Score:             score,
		Reason:            reason,
		Tags:              tags,
		EstimatedCostTier: costTierFor(target),
	}
}
