package model

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/firgen-ai/firgen/internal/ner"
	"github.com/firgen-ai/firgen/internal/redact"
	ort "github.com/yalue/onnxruntime_go"
)

// TokenTagger runs the bundled NER model and emits per-token BIO
// predictions. It implements ner.Tagger.
type TokenTagger struct {
	tokenizer *WordPieceTokenizer
	labels    []string
	seqLen    int
	pool      *sessionPool
}

// NewTokenTagger loads the NER bundle from dir.
func NewTokenTagger(dir string, seqLen, poolSize int, rt RuntimeSettings) (*TokenTagger, error) {
	if seqLen <= 0 {
		seqLen = 256
	}
	if !bundleDirLooksValid(dir) {
		return nil, fmt.Errorf("ner bundle at %s is missing model or vocab", dir)
	}
	if err := initRuntime(dir); err != nil {
		return nil, err
	}

	tokenizer, err := LoadTokenizerFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ner load tokenizer: %w", err)
	}
	meta, err := loadBundleMeta(dir)
	if err != nil {
		return nil, fmt.Errorf("ner load meta: %w", err)
	}
	if len(meta.Labels) == 0 {
		return nil, fmt.Errorf("ner bundle at %s has no token labels", dir)
	}

	modelPath := resolveModelPath(dir)
	outShape := ort.NewShape(1, int64(seqLen), int64(len(meta.Labels)))
	pool, err := newSessionPool(modelPath, seqLen, poolSize, "logits", outShape, rt, meta.RequiresTokenType)
	if err != nil {
		return nil, fmt.Errorf("ner %w", err)
	}

	redact.Logf("model: loaded ner tagger model=%s labels=%d seq_len=%d", filepath.Base(modelPath), len(meta.Labels), seqLen)
	return &TokenTagger{
		tokenizer: tokenizer,
		labels:    meta.Labels,
		seqLen:    seqLen,
		pool:      pool,
	}, nil
}

// Tag encodes the text, runs the model, and returns one prediction per
// non-padding position. Sentinel tokens keep their surfaces so the
// aggregator can skip them.
func (t *TokenTagger) Tag(ctx context.Context, text string) ([]ner.TaggedToken, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ss := t.pool.acquire()
	defer t.pool.release(ss)

	ids, attn, surfaces := t.tokenizer.EncodeWithSurfaces(text, t.seqLen)
	if err := ss.run(ids, attn, nil); err != nil {
		return nil, err
	}

	logits := ss.output.GetData()
	numLabels := len(t.labels)

	var tagged []ner.TaggedToken
	for i := 0; i < t.seqLen && i < len(surfaces); i++ {
		if attn[i] == 0 {
			break
		}
		base := i * numLabels
		if base+numLabels > len(logits) {
			break
		}
		best, conf := argmaxSoftmax(logits[base : base+numLabels])
		tagged = append(tagged, ner.TaggedToken{
			Surface:    surfaces[i],
			Tag:        t.labels[best],
			Confidence: conf,
		})
	}
	return tagged, nil
}

// argmaxSoftmax returns the index of the largest logit and its softmax
// probability.
func argmaxSoftmax(logits []float32) (int, float64) {
	best := 0
	maxVal := logits[0]
	for i, v := range logits[1:] {
		if v > maxVal {
			best = i + 1
			maxVal = v
		}
	}
	sum := 0.0
	for _, v := range logits {
		sum += math.Exp(float64(v - maxVal))
	}
	if sum == 0 {
		return best, 0
	}
	return best, 1.0 / sum
}
