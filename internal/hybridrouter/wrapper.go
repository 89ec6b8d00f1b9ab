package hybridrouter

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flynn-ai/hybridrouter/internal/cost"
	"github.com/flynn-ai/hybridrouter/internal/model"
)

var routerLog zerolog.Logger

func init() {
	level := zerolog.InfoLevel
	if os.Getenv("FLYNN_ROUTER_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	routerLog = log.With().Str("component", "hybrid-router").Logger().Level(level)
}

// StreamFunc is the host's per-call stream function (spec §4.8). S is the
// host's own stream/response type, which the router never inspects — it
// is delegated to and returned verbatim.
type StreamFunc[S any] func(m model.Model, ctx *Context, options map[string]any) (S, error)

// CostRecorder is the optional supplemented telemetry hook (SPEC_FULL.md
// "Cost/Tier annotation on Decisions"). It is purely additive: the
// Decision Engine never reads it back. estimatedTokens is the Stream
// Wrapper's own rough token count for the adapted call, derived the same
// way the cloud client estimates usage for streamed responses.
type CostRecorder interface {
	Record(d Decision, estimatedTokens int)
}

// TrackerCostRecorder adapts the teacher's cost.Tracker to CostRecorder,
// feeding every decision's target and the call's estimated token count
// into the tracker so Savings()/LocalRate() reflect real routing
// behaviour instead of being permanently zero.
type TrackerCostRecorder struct {
	Tracker *cost.Tracker
}

// Record implements CostRecorder.
func (r *TrackerCostRecorder) Record(d Decision, estimatedTokens int) {
	if r == nil || r.Tracker == nil || d.Model == nil {
		return
	}
	r.Tracker.Record(d.Model.Name(), d.Target != TargetCloud, estimatedTokens)
}

// estimateTokens gives a rough token count for ctx, the same
// length/4-based heuristic internal/model/openrouter.go uses for
// streamed cloud responses (approxTokens).
func estimateTokens(ctx *Context) int {
	if ctx == nil {
		return 0
	}
	total := len(ctx.SystemPrompt)
	for _, m := range ctx.Messages {
		total += len(m.textParts())
	}
	if total == 0 {
		return 0
	}
	return total/4 + 1
}

// Wrapper holds everything frozen at construction time: the resolved
// RouterConfig, the three bound Models, the identity preamble, and the
// credential source. Safe for concurrent use (spec §5).
type Wrapper struct {
	cfg              *RouterConfig
	models           ResolvedModels
	identityPreamble string
	creds            *CredentialSource
	recorder         CostRecorder
}

// NewWrapper constructs a Wrapper. It returns (nil, nil) when cfg is nil
// (router disabled) so callers can pass the result straight to Wrap,
// which treats a nil *Wrapper as a no-op.
func NewWrapper(cfg *RouterConfig, resolver ModelResolver, creds *CredentialSource, workspace string, recorder CostRecorder) (*Wrapper, error) {
	if cfg == nil {
		return nil, nil
	}

	models, err := resolveModels(cfg, resolver)
	if err != nil {
		return nil, err
	}

	return &Wrapper{
		cfg:              cfg,
		models:           models,
		identityPreamble: BuildIdentityPreamble(workspace),
		creds:            creds,
		recorder:         recorder,
	}, nil
}

// Status reports the resolved Models' availability for host health
// checks (SPEC_FULL.md supplement #3). Read-only; not a decision input.
func (w *Wrapper) Status() map[string]*model.ModelStatus {
	out := map[string]*model.ModelStatus{}
	if w == nil {
		return out
	}
	if w.models.Local != nil {
		out["local"] = w.models.Local.Status()
	}
	if w.models.LocalText != nil {
		out["local-text"] = w.models.LocalText.Status()
	}
	if w.models.Cloud != nil {
		out["cloud"] = w.models.Cloud.Status()
	}
	return out
}

// cloudAvailable implements the §4.4 predicate: models.cloud != nil and a
// credential exists for cloudModel.provider.
func (w *Wrapper) cloudAvailable() bool {
	if w.models.Cloud == nil || w.cfg.CloudModel == nil || w.creds == nil {
		return false
	}
	return w.creds.HasCredential(w.cfg.CloudModel.Provider)
}

// Wrap implements the Stream Wrapper (spec §4.8): wrap(streamFn) ->
// streamFn'. A nil Wrapper (router not installed, or construction
// skipped because the config was disabled) makes Wrap a pass-through —
// the returned function is behaviourally identical to fn, satisfying the
// §8 round-trip invariant.
func Wrap[S any](w *Wrapper, fn StreamFunc[S]) StreamFunc[S] {
	if w == nil {
		return fn
	}

	return func(m model.Model, ctx *Context, options map[string]any) (S, error) {
		d := Decide(ctx, w.cfg, w.models, w.cloudAvailable())

		callID := uuid.NewString()
		logDecision(callID, d)

		effectiveOptions := options
		if m != nil && d.Model != nil && d.Model.Provider() != m.Provider() {
			effectiveOptions = withResolvedCredential(options, w.creds, d.Model.Provider(), callID)
		}

		effectiveContext := AdaptContext(ctx, d.Target, w.identityPreamble)

		// No retry or fallback happens here: an error from fn is returned
		// unchanged. A host that wants retry-with-fallback wraps this
		// function itself.
		result, err := fn(d.Model, effectiveContext, effectiveOptions)
		if err == nil && w.recorder != nil {
			w.recorder.Record(d, estimateTokens(effectiveContext))
		}
		return result, err
	}
}

// logDecision emits the one mandated structured line per decision (spec
// §4.8/§6), plus a debug trace when FLYNN_ROUTER_DEBUG is set.
func logDecision(callID string, d Decision) {
	name := "unresolved"
	if d.Model != nil {
		name = fmt.Sprintf("%s/%s", d.Model.Provider(), d.Model.Name())
	}
	routerLog.Info().
		Str("call_id", callID).
		Str("target", string(d.Target)).
		Str("model", name).
		Float64("score", d.Score).
		Str("reason", d.Reason).
		Strs("tags", d.Tags).
		Msg("[hybrid-router] routing decision")

	routerLog.Debug().
		Str("call_id", callID).
		Interface("decision", d).
		Msg("[hybrid-router] decision detail")
}

// withResolvedCredential resolves and merges a credential for provider
// into a copy of options, only when the target provider differs from the
// call's incoming default (per §4.7). Resolution failure is logged and
// the original options are forwarded unchanged (§7 credential-resolve).
func withResolvedCredential(options map[string]any, creds *CredentialSource, provider, callID string) map[string]any {
	if creds == nil {
		return options
	}
	key, err := creds.Resolve(provider)
	if err != nil {
		routerLog.Warn().Str("call_id", callID).Str("provider", provider).Err(err).
			Msg("[hybrid-router] credential resolution failed, forwarding original options")
		return options
	}

	merged := make(map[string]any, len(options)+1)
	for k, v := range options {
		merged[k] = v
	}
	merged["api_key"] = key
	return merged
}
