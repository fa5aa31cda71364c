package classify

import (
	"context"

	"github.com/firgen-ai/firgen/internal/redact"
)

// Loader constructs a classification strategy, typically by loading a
// model. Load failures are how the orchestrator decides to degrade.
type Loader struct {
	Name string
	Load func(ctx context.Context) (Strategy, error)
}

// Orchestrator owns the strategy chosen at startup. The choice is
// latched for the lifetime of the service: loaders are probed exactly
// once, in priority order, and the first that succeeds wins. If none
// succeeds the fallback strategy is latched instead.
//
// A call-time failure of the latched strategy degrades that single
// call to the fallback without re-latching.
type Orchestrator struct {
	active   Strategy
	fallback Strategy
}

// NewOrchestrator probes the loaders in order and latches the first
// strategy that loads. fallback must never fail at call time.
func NewOrchestrator(ctx context.Context, loaders []Loader, fallback Strategy) *Orchestrator {
	for _, l := range loaders {
		strategy, err := l.Load(ctx)
		if err != nil {
			redact.Logf("classify: strategy %s failed to load: %v; trying next", l.Name, err)
			continue
		}
		redact.Logf("classify: using %s strategy", strategy.Name())
		return &Orchestrator{active: strategy, fallback: fallback}
	}

	redact.Logf("classify: no model-backed strategy available; using %s strategy", fallback.Name())
	return &Orchestrator{active: fallback, fallback: fallback}
}

// ActiveStrategy reports the name of the latched strategy.
func (o *Orchestrator) ActiveStrategy() string {
	return o.active.Name()
}

// Classify delegates to the latched strategy and never returns an
// error: a transient failure is absorbed by degrading the call to the
// fallback strategy.
func (o *Orchestrator) Classify(ctx context.Context, text string) Result {
	res, err := o.active.Classify(ctx, text)
	if err == nil {
		return res
	}

	redact.Logf("classify: %s strategy failed at call time: %v; degrading call to %s", o.active.Name(), err, o.fallback.Name())
	res, err = o.fallback.Classify(ctx, text)
	if err != nil {
		// The keyword fallback cannot fail; guard against a miswired
		// fallback anyway.
		redact.Logf("classify: fallback %s failed: %v; returning neutral result", o.fallback.Name(), err)
		scores := emptyScores()
		scores[CategoryOther] = 1.0
		return Result{Label: CategoryOther, Confidence: 1.0, AllScores: scores}
	}
	return res
}
