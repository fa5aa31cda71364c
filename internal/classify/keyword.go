package classify

import (
	"context"
	"strings"
)

// keywordOverrideFloor: if the normalized top score falls below this,
// the result is forced to "Other" with a fixed 0.5 confidence. This
// deliberately breaks label == argmax(AllScores); callers must not
// assume the invariant holds for keyword results.
const keywordOverrideFloor = 0.2

const keywordOverrideConfidence = 0.5

// KeywordStrategy scores categories by counting keyword hits in the
// text. It needs no model and never fails, which makes it the terminal
// rung of the degradation chain.
type KeywordStrategy struct{}

func NewKeyword() *KeywordStrategy {
	return &KeywordStrategy{}
}

func (s *KeywordStrategy) Name() string { return "keyword" }

func (s *KeywordStrategy) Classify(ctx context.Context, text string) (Result, error) {
	lower := strings.ToLower(text)

	raw := emptyScores()
	total := 0.0
	for _, cat := range Categories {
		keywords := categoryKeywords[cat]
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		score := float64(hits) / float64(len(keywords))
		raw[cat] = score
		total += score
	}

	scores := emptyScores()
	if total == 0 {
		// No keyword matched anything: all probability mass on Other.
		scores[CategoryOther] = 1.0
		return Result{
			Label:      CategoryOther,
			Confidence: 1.0,
			AllScores:  scores,
		}, nil
	}

	top := CategoryOther
	topScore := -1.0
	for _, cat := range Categories {
		scores[cat] = raw[cat] / total
		if scores[cat] > topScore {
			top = cat
			topScore = scores[cat]
		}
	}

	if topScore < keywordOverrideFloor {
		return Result{
			Label:      CategoryOther,
			Confidence: keywordOverrideConfidence,
			AllScores:  scores,
		}, nil
	}

	return Result{
		Label:      top,
		Confidence: topScore,
		AllScores:  scores,
	}, nil
}
