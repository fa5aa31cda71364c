package classify

import (
	"context"
	"fmt"
	"sort"
)

// EntailmentScorer scores how strongly a text entails a candidate
// label phrase. The score is the entailment component of the NLI
// model's 3-way distribution.
type EntailmentScorer interface {
	ScoreEntailment(ctx context.Context, text, hypothesis string) (float64, error)
}

// zeroShotHypotheses are the verbose label phrases presented to the
// NLI model, each mapped back to its canonical category.
var zeroShotHypotheses = []struct {
	Phrase   string
	Category string
}{
	{"theft or robbery or stealing", CategoryTheft},
	{"physical assault or violence or attack", CategoryAssault},
	{"cyber crime or online fraud or hacking", CategoryCyberCrime},
	{"cheating or fraud or scam", CategoryCheating},
	{"harassment or stalking or threatening", CategoryHarassment},
	{"other criminal activity", CategoryOther},
}

// ZeroShotStrategy classifies by scoring entailment between the
// complaint text and each candidate label phrase.
type ZeroShotStrategy struct {
	scorer EntailmentScorer
}

func NewZeroShot(scorer EntailmentScorer) *ZeroShotStrategy {
	return &ZeroShotStrategy{scorer: scorer}
}

func (s *ZeroShotStrategy) Name() string { return "zero-shot" }

// Classify emits the raw per-phrase entailment scores mapped onto the
// canonical categories. The scores are not renormalized across
// categories, so AllScores is only approximately a distribution.
func (s *ZeroShotStrategy) Classify(ctx context.Context, text string) (Result, error) {
	type scored struct {
		category string
		score    float64
	}

	ranked := make([]scored, 0, len(zeroShotHypotheses))
	for _, h := range zeroShotHypotheses {
		score, err := s.scorer.ScoreEntailment(ctx, text, h.Phrase)
		if err != nil {
			return Result{}, fmt.Errorf("score hypothesis %q: %w", h.Phrase, err)
		}
		ranked = append(ranked, scored{category: canonicalOrOther(h.Category), score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	scores := emptyScores()
	for _, r := range ranked {
		scores[r.category] = r.score
	}

	return Result{
		Label:      ranked[0].category,
		Confidence: ranked[0].score,
		AllScores:  scores,
	}, nil
}
