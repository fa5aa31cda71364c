package classify

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

// fakeEmbedder maps texts onto axis-aligned vectors so that cosine
// similarity is trivially predictable.
type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vec := make([]float32, len(Categories))
	for i, cat := range Categories {
		if strings.Contains(text, categoryKeywords[cat][0]) {
			vec[i] = 1
		}
	}
	// Unmatched text gets a fixed off-axis vector.
	if allZero(vec) {
		vec[len(vec)-1] = 0.25
	}
	return vec, nil
}

func allZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func TestEmbeddingPicksNearestPrototype(t *testing.T) {
	s, err := NewEmbedding(context.Background(), &fakeEmbedder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := s.Classify(context.Background(), "a theft took place near the market")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Label != CategoryTheft {
		t.Fatalf("label = %s, want Theft", res.Label)
	}
	assertSixCategories(t, res)
}

func TestEmbeddingScoresSumToOne(t *testing.T) {
	s, err := NewEmbedding(context.Background(), &fakeEmbedder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, text := range []string{"a theft happened", "completely unrelated text", ""} {
		res, err := s.Classify(context.Background(), text)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		sum := 0.0
		for _, v := range res.AllScores {
			sum += v
		}
		if math.Abs(sum-1.0) > 1e-6 {
			t.Fatalf("softmax sum = %v for %q, want 1.0 ± 1e-6", sum, text)
		}
		if res.Label == "" {
			t.Fatalf("empty label for %q", text)
		}
	}
}

func TestEmbeddingLabelIsArgmax(t *testing.T) {
	s, err := NewEmbedding(context.Background(), &fakeEmbedder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := s.Classify(context.Background(), "an assault was reported")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for cat, score := range res.AllScores {
		if score > res.AllScores[res.Label] {
			t.Fatalf("label %s (%v) is not the argmax; %s has %v", res.Label, res.AllScores[res.Label], cat, score)
		}
	}
}

func TestEmbeddingConstructionFailsWhenPrototypesCannotEmbed(t *testing.T) {
	if _, err := NewEmbedding(context.Background(), &fakeEmbedder{err: errors.New("no model")}); err == nil {
		t.Fatalf("expected construction error when prototype embedding fails")
	}
}

func TestStableSoftmaxHandlesLargeValues(t *testing.T) {
	probs := stableSoftmax([]float64{1000, 999, 998, 0, 0, 0})
	sum := 0.0
	for _, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			t.Fatalf("softmax produced non-finite value: %v", probs)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("softmax sum = %v, want 1.0", sum)
	}
	if probs[0] <= probs[1] {
		t.Fatalf("softmax must preserve ordering: %v", probs)
	}
}
