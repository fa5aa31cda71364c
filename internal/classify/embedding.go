package classify

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Embedder produces a fixed-dimension dense vector for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingStrategy classifies by cosine similarity between the text
// embedding and one prototype embedding per category (the category's
// keyword list joined into a single string), softmaxed into a
// probability distribution.
type EmbeddingStrategy struct {
	embedder   Embedder
	prototypes map[string][]float32
}

// NewEmbedding embeds the six category prototypes up front so that
// classification only costs one embedding per call.
func NewEmbedding(ctx context.Context, embedder Embedder) (*EmbeddingStrategy, error) {
	if embedder == nil {
		return nil, errors.New("embedder is nil")
	}

	prototypes := make(map[string][]float32, len(Categories))
	for _, cat := range Categories {
		vec, err := embedder.Embed(ctx, strings.Join(categoryKeywords[cat], " "))
		if err != nil {
			return nil, fmt.Errorf("embed prototype for %s: %w", cat, err)
		}
		prototypes[cat] = vec
	}

	return &EmbeddingStrategy{
		embedder:   embedder,
		prototypes: prototypes,
	}, nil
}

func (s *EmbeddingStrategy) Name() string { return "embedding" }

func (s *EmbeddingStrategy) Classify(ctx context.Context, text string) (Result, error) {
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("embed text: %w", err)
	}

	similarities := make([]float64, len(Categories))
	for i, cat := range Categories {
		similarities[i] = cosine(vec, s.prototypes[cat])
	}

	probs := stableSoftmax(similarities)

	scores := emptyScores()
	top := CategoryOther
	topScore := -1.0
	for i, cat := range Categories {
		scores[cat] = probs[i]
		if probs[i] > topScore {
			top = cat
			topScore = probs[i]
		}
	}

	return Result{
		Label:      top,
		Confidence: topScore,
		AllScores:  scores,
	}, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// stableSoftmax subtracts the max before exponentiating.
func stableSoftmax(vals []float64) []float64 {
	if len(vals) == 0 {
		return nil
	}
	maxVal := vals[0]
	for _, v := range vals[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	out := make([]float64, len(vals))
	sum := 0.0
	for i, v := range vals {
		out[i] = math.Exp(v - maxVal)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
