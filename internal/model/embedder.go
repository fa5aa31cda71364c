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

// SentenceEmbedder mean-pools the encoder's last hidden state into one
// dense vector per text. It implements classify.Embedder.
type SentenceEmbedder struct {
	tokenizer *WordPieceTokenizer
	seqLen    int
	hidden    int
	pool      *sessionPool
}

const defaultHiddenSize = 384

// NewSentenceEmbedder loads the embedding bundle from dir.
func NewSentenceEmbedder(dir string, seqLen, poolSize int, rt RuntimeSettings) (*SentenceEmbedder, error) {
	if seqLen <= 0 {
		seqLen = 256
	}
	if !bundleDirLooksValid(dir) {
		return nil, fmt.Errorf("embedding bundle at %s is missing model or vocab", dir)
	}
	if err := initRuntime(dir); err != nil {
		return nil, err
	}

	tokenizer, err := LoadTokenizerFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("embedding load tokenizer: %w", err)
	}
	meta, err := loadBundleMeta(dir)
	if err != nil {
		return nil, fmt.Errorf("embedding load meta: %w", err)
	}
	hidden := meta.HiddenSize
	if hidden <= 0 {
		hidden = defaultHiddenSize
	}

	modelPath := resolveModelPath(dir)
	outShape := ort.NewShape(1, int64(seqLen), int64(hidden))
	pool, err := newSessionPool(modelPath, seqLen, poolSize, "last_hidden_state", outShape, rt, meta.RequiresTokenType)
	if err != nil {
		return nil, fmt.Errorf("embedding %w", err)
	}

	redact.Logf("model: loaded sentence embedder model=%s hidden=%d", filepath.Base(modelPath), hidden)
	return &SentenceEmbedder{
		tokenizer: tokenizer,
		seqLen:    seqLen,
		hidden:    hidden,
		pool:      pool,
	}, nil
}

// Embed mean-pools the hidden states of the attended positions and
// L2-normalizes the result.
func (m *SentenceEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return make([]float32, m.hidden), nil
	}

	ss := m.pool.acquire()
	defer m.pool.release(ss)

	ids, attn, _ := m.tokenizer.EncodeWithSurfaces(text, m.seqLen)
	if err := ss.run(ids, attn, nil); err != nil {
		return nil, err
	}

	hidden := ss.output.GetData()
	vec := make([]float64, m.hidden)
	count := 0
	for i := 0; i < m.seqLen; i++ {
		if attn[i] == 0 {
			break
		}
		base := i * m.hidden
		if base+m.hidden > len(hidden) {
			break
		}
		for j := 0; j < m.hidden; j++ {
			vec[j] += float64(hidden[base+j])
		}
		count++
	}
	if count == 0 {
		return make([]float32, m.hidden), nil
	}

	var norm float64
	for j := range vec {
		vec[j] /= float64(count)
		norm += vec[j] * vec[j]
	}
	norm = math.Sqrt(norm)

	out := make([]float32, m.hidden)
	for j := range vec {
		if norm > 0 {
			out[j] = float32(vec[j] / norm)
		}
	}
	return out, nil
}
