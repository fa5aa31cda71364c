package model

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/firgen-ai/firgen/internal/redact"
	ort "github.com/yalue/onnxruntime_go"
)

// EntailmentModel scores premise/hypothesis pairs with a 3-way NLI
// head. It implements classify.EntailmentScorer.
type EntailmentModel struct {
	tokenizer  *WordPieceTokenizer
	seqLen     int
	numLabels  int
	entailIdx  int
	tokenTypes bool
	pool       *sessionPool
}

// NewEntailment loads the NLI bundle from dir.
func NewEntailment(dir string, seqLen, poolSize int, rt RuntimeSettings) (*EntailmentModel, error) {
	if seqLen <= 0 {
		seqLen = 256
	}
	if !bundleDirLooksValid(dir) {
		return nil, fmt.Errorf("nli bundle at %s is missing model or vocab", dir)
	}
	if err := initRuntime(dir); err != nil {
		return nil, err
	}

	tokenizer, err := LoadTokenizerFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("nli load tokenizer: %w", err)
	}
	meta, err := loadBundleMeta(dir)
	if err != nil {
		return nil, fmt.Errorf("nli load meta: %w", err)
	}
	numLabels := meta.NumLabels
	if numLabels <= 0 {
		numLabels = 3
	}

	modelPath := resolveModelPath(dir)
	outShape := ort.NewShape(1, int64(numLabels))
	pool, err := newSessionPool(modelPath, seqLen, poolSize, "logits", outShape, rt, meta.RequiresTokenType)
	if err != nil {
		return nil, fmt.Errorf("nli %w", err)
	}

	entailIdx := pickEntailmentIndex(meta.Labels, numLabels)
	redact.Logf("model: loaded nli scorer model=%s entailment_index=%d", filepath.Base(modelPath), entailIdx)
	return &EntailmentModel{
		tokenizer:  tokenizer,
		seqLen:     seqLen,
		numLabels:  numLabels,
		entailIdx:  entailIdx,
		tokenTypes: meta.RequiresTokenType,
		pool:       pool,
	}, nil
}

// ScoreEntailment returns the entailment component of the softmaxed
// NLI distribution for the pair.
func (m *EntailmentModel) ScoreEntailment(ctx context.Context, text, hypothesis string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	ss := m.pool.acquire()
	defer m.pool.release(ss)

	ids, attn, types := m.tokenizer.EncodePair(text, hypothesis, m.seqLen)
	if err := ss.run(ids, attn, types); err != nil {
		return 0, err
	}

	logits := ss.output.GetData()
	if len(logits) < m.numLabels {
		return 0, fmt.Errorf("nli output too short: %d < %d", len(logits), m.numLabels)
	}
	probs := softmax32(logits[:m.numLabels])
	return probs[m.entailIdx], nil
}

// pickEntailmentIndex finds the entailment class in the label map. MNLI
// checkpoints conventionally put it last.
func pickEntailmentIndex(labels []string, numLabels int) int {
	for i, lbl := range labels {
		if strings.Contains(strings.ToLower(lbl), "entail") {
			return i
		}
	}
	if numLabels > 0 {
		return numLabels - 1
	}
	return 2
}

func softmax32(logits []float32) []float64 {
	maxVal := logits[0]
	for _, v := range logits[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	out := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		out[i] = math.Exp(float64(v - maxVal))
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
