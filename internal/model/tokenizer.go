package model

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel tokens shared by every bundled model.
const (
	tokenCLS = "[CLS]"
	tokenSEP = "[SEP]"
	tokenPAD = "[PAD]"
	tokenUNK = "[UNK]"
)

// WordPieceTokenizer is a minimal BERT-compatible tokenizer. It covers
// the three bundled models: NER tagging, NLI entailment, and sentence
// embedding.
type WordPieceTokenizer struct {
	vocab        map[string]int64
	lowerCase    bool
	clsID        int64
	sepID        int64
	padID        int64
	unkID        int64
	continuation string
}

// LoadWordPieceTokenizer builds the tokenizer from vocab.txt.
func LoadWordPieceTokenizer(path string) (*WordPieceTokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int64)
	sc := bufio.NewScanner(f)
	var idx int64
	for sc.Scan() {
		token := strings.TrimSpace(sc.Text())
		if token == "" {
			continue
		}
		vocab[token] = idx
		idx++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan vocab: %w", err)
	}
	return newTokenizerFromVocab(vocab), nil
}

// LoadTokenizerFromDir loads the tokenizer from a model directory,
// looking for vocab.txt at the usual locations.
func LoadTokenizerFromDir(dir string) (*WordPieceTokenizer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("tokenizer dir is empty")
	}
	candidates := []string{
		filepath.Join(dir, "vocab.txt"),
		filepath.Join(dir, "tokenizer", "vocab.txt"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return LoadWordPieceTokenizer(path)
		}
	}
	return nil, fmt.Errorf("tokenizer assets not found in %s (vocab.txt)", dir)
}

func newTokenizerFromVocab(vocab map[string]int64) *WordPieceTokenizer {
	return &WordPieceTokenizer{
		vocab:        vocab,
		lowerCase:    true,
		continuation: "##",
		clsID:        vocab[tokenCLS],
		sepID:        vocab[tokenSEP],
		padID:        vocab[tokenPAD],
		unkID:        vocab[tokenUNK],
	}
}

// Encode converts text into token IDs and an attention mask of length
// seqLen.
func (t *WordPieceTokenizer) Encode(text string, seqLen int) ([]int64, []int64) {
	ids, attn, _ := t.EncodeWithSurfaces(text, seqLen)
	return ids, attn
}

// EncodeWithSurfaces additionally returns the surface form of every
// position, with continuation pieces keeping their "##" prefix. The
// surfaces let the NER aggregator rebuild words from sub-word
// predictions.
func (t *WordPieceTokenizer) EncodeWithSurfaces(text string, seqLen int) ([]int64, []int64, []string) {
	if seqLen <= 0 {
		return nil, nil, nil
	}

	ids := []int64{t.clsID}
	surfaces := []string{tokenCLS}

	for _, w := range strings.Fields(text) {
		if t.lowerCase {
			w = strings.ToLower(w)
		}
		pieces, texts := t.wordPiece(w)
		for i, id := range pieces {
			ids = append(ids, id)
			surfaces = append(surfaces, texts[i])
			if len(ids) >= seqLen-1 {
				break
			}
		}
		if len(ids) >= seqLen-1 {
			break
		}
	}
	ids = append(ids, t.sepID)
	surfaces = append(surfaces, tokenSEP)

	attn := make([]int64, seqLen)
	for i := 0; i < len(ids) && i < seqLen; i++ {
		attn[i] = 1
	}
	for len(ids) < seqLen {
		ids = append(ids, t.padID)
		surfaces = append(surfaces, tokenPAD)
	}

	return ids, attn, surfaces
}

// EncodePair encodes a premise/hypothesis pair for NLI models as
// [CLS] premise [SEP] hypothesis [SEP], returning the token type IDs
// alongside the usual IDs and attention mask.
func (t *WordPieceTokenizer) EncodePair(premise, hypothesis string, seqLen int) ([]int64, []int64, []int64) {
	if seqLen <= 0 {
		return nil, nil, nil
	}

	ids := []int64{t.clsID}
	types := []int64{0}

	appendSegment := func(text string, segment int64) {
		for _, w := range strings.Fields(text) {
			if t.lowerCase {
				w = strings.ToLower(w)
			}
			pieces, _ := t.wordPiece(w)
			for _, id := range pieces {
				if len(ids) >= seqLen-1 {
					return
				}
				ids = append(ids, id)
				types = append(types, segment)
			}
		}
	}

	appendSegment(premise, 0)
	ids = append(ids, t.sepID)
	types = append(types, 0)

	if len(ids) < seqLen-1 {
		appendSegment(hypothesis, 1)
		ids = append(ids, t.sepID)
		types = append(types, 1)
	}

	attn := make([]int64, seqLen)
	for i := 0; i < len(ids) && i < seqLen; i++ {
		attn[i] = 1
	}
	for len(ids) < seqLen {
		ids = append(ids, t.padID)
		types = append(types, 0)
	}
	if len(ids) > seqLen {
		ids = ids[:seqLen]
		types = types[:seqLen]
	}

	return ids, attn, types
}

// wordPiece splits one whitespace word into vocabulary pieces using
// greedy longest-match-first. Unknown words map to a single [UNK].
func (t *WordPieceTokenizer) wordPiece(token string) ([]int64, []string) {
	if id, ok := t.vocab[token]; ok {
		return []int64{id}, []string{token}
	}

	var ids []int64
	var texts []string
	start := 0
	for start < len(token) {
		end := len(token)
		matched := false
		for end > start {
			sub := token[start:end]
			if start > 0 {
				sub = t.continuation + sub
			}
			if id, ok := t.vocab[sub]; ok {
				ids = append(ids, id)
				texts = append(texts, sub)
				start = end
				matched = true
				break
			}
			end--
		}
		if !matched {
			return []int64{t.unkID}, []string{tokenUNK}
		}
	}
	if len(ids) == 0 {
		return []int64{t.unkID}, []string{tokenUNK}
	}
	return ids, texts
}
