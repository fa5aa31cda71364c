// Package pipeline runs the complaint analysis stages in order:
// normalization, entity tagging, and offence classification.
package pipeline

import (
	"context"
	"time"

	"github.com/firgen-ai/firgen/internal/classify"
	"github.com/firgen-ai/firgen/internal/ner"
	"github.com/firgen-ai/firgen/internal/redact"
	"github.com/firgen-ai/firgen/internal/telemetry"
	"github.com/firgen-ai/firgen/internal/textproc"
)

// Analysis is the combined result of one pipeline run.
type Analysis struct {
	Entities        ner.Entities    `json:"entities"`
	Classification  classify.Result `json:"classification"`
	ConfidenceLevel string          `json:"confidence_level"`
}

// Pipeline ties the tagger and the classification orchestrator
// together. A tagger failure degrades entity extraction to empty
// lists; it never fails the run.
type Pipeline struct {
	tagger     ner.Tagger
	classifier *classify.Orchestrator
	tel        *telemetry.Provider
}

func New(tagger ner.Tagger, classifier *classify.Orchestrator, tel *telemetry.Provider) *Pipeline {
	if tagger == nil {
		tagger = ner.NewNoopTagger()
	}
	return &Pipeline{
		tagger:     tagger,
		classifier: classifier,
		tel:        tel,
	}
}

// ActiveStrategy reports which classification strategy is latched.
func (p *Pipeline) ActiveStrategy() string {
	return p.classifier.ActiveStrategy()
}

// Process analyzes one complaint text.
func (p *Pipeline) Process(ctx context.Context, text string) Analysis {
	normalized := textproc.Normalize(text)

	start := time.Now()
	tokens, err := p.tagger.Tag(ctx, normalized)
	if err != nil {
		redact.Logf("pipeline: tagger failed: %v; continuing without entities", err)
		p.tel.RecordDegradation("ner")
		tokens = nil
	}
	entities := ner.Aggregate(tokens)
	p.tel.RecordStage("ner", float64(time.Since(start).Milliseconds()))

	start = time.Now()
	result := p.classifier.Classify(ctx, normalized)
	p.tel.RecordStage("classify", float64(time.Since(start).Milliseconds()))

	return Analysis{
		Entities:        entities,
		Classification:  result,
		ConfidenceLevel: classify.Grade(result.Confidence),
	}
}
