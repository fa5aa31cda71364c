package ner

import "context"

// TaggedToken is one token-level prediction from the NER model: the
// token surface form, its raw BIO label (e.g. "B-PER", "I-LOC", "O"),
// and the model's confidence for that label.
type TaggedToken struct {
	Surface    string
	Tag        string
	Confidence float64
}

// Entities holds the aggregated, deduplicated entity lists for one text.
type Entities struct {
	Persons       []string `json:"persons"`
	Locations     []string `json:"locations"`
	Organizations []string `json:"organizations"`
}

// Count returns the total number of extracted entities.
func (e Entities) Count() int {
	return len(e.Persons) + len(e.Locations) + len(e.Organizations)
}

// Tagger produces token-level BIO predictions for a text.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]TaggedToken, error)
}

type noopTagger struct{}

// NewNoopTagger returns a Tagger that never predicts any entity. It is
// used when the NER bundle is unavailable so the rest of the pipeline
// keeps working.
func NewNoopTagger() Tagger {
	return noopTagger{}
}

func (noopTagger) Tag(ctx context.Context, text string) ([]TaggedToken, error) {
	return nil, nil
}
