package model

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// Vocab order fixes the token IDs used throughout these tests.
const testVocab = `[PAD]
[UNK]
[CLS]
[SEP]
john
##son
robbed
near
delhi
`

const (
	idPAD = iota
	idUNK
	idCLS
	idSEP
	idJohn
	idSonCont
	idRobbed
	idNear
	idDelhi
)

func testTokenizer(t *testing.T) *WordPieceTokenizer {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vocab.txt"), []byte(testVocab), 0o644); err != nil {
		t.Fatalf("write vocab: %v", err)
	}
	tok, err := LoadTokenizerFromDir(dir)
	if err != nil {
		t.Fatalf("LoadTokenizerFromDir: %v", err)
	}
	return tok
}

func TestEncodeBasic(t *testing.T) {
	tok := testTokenizer(t)

	ids, attn := tok.Encode("John robbed", 8)
	wantIDs := []int64{idCLS, idJohn, idRobbed, idSEP, idPAD, idPAD, idPAD, idPAD}
	wantAttn := []int64{1, 1, 1, 1, 0, 0, 0, 0}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Fatalf("ids = %v, want %v", ids, wantIDs)
	}
	if !reflect.DeepEqual(attn, wantAttn) {
		t.Fatalf("attn = %v, want %v", attn, wantAttn)
	}
}

func TestEncodeWithSurfacesSplitsWordPieces(t *testing.T) {
	tok := testTokenizer(t)

	ids, _, surfaces := tok.EncodeWithSurfaces("Johnson robbed", 8)
	wantIDs := []int64{idCLS, idJohn, idSonCont, idRobbed, idSEP, idPAD, idPAD, idPAD}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Fatalf("ids = %v, want %v", ids, wantIDs)
	}
	wantSurfaces := []string{"[CLS]", "john", "##son", "robbed", "[SEP]", "[PAD]", "[PAD]", "[PAD]"}
	if !reflect.DeepEqual(surfaces, wantSurfaces) {
		t.Fatalf("surfaces = %v, want %v", surfaces, wantSurfaces)
	}
}

func TestEncodeUnknownWord(t *testing.T) {
	tok := testTokenizer(t)

	ids, _, surfaces := tok.EncodeWithSurfaces("zzzqqq", 6)
	if ids[1] != idUNK {
		t.Fatalf("unknown word should map to [UNK], got id %d", ids[1])
	}
	if surfaces[1] != "[UNK]" {
		t.Fatalf("surface = %q, want [UNK]", surfaces[1])
	}
}

func TestEncodeTruncates(t *testing.T) {
	tok := testTokenizer(t)

	ids, attn := tok.Encode("john robbed near delhi", 4)
	if len(ids) != 4 || len(attn) != 4 {
		t.Fatalf("lengths = %d/%d, want 4", len(ids), len(attn))
	}
	if ids[0] != idCLS || ids[3] != idSEP {
		t.Fatalf("truncated encoding must keep [CLS]...[SEP], got %v", ids)
	}
}

func TestEncodePair(t *testing.T) {
	tok := testTokenizer(t)

	ids, attn, types := tok.EncodePair("john robbed", "near delhi", 12)
	wantIDs := []int64{idCLS, idJohn, idRobbed, idSEP, idNear, idDelhi, idSEP, idPAD, idPAD, idPAD, idPAD, idPAD}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Fatalf("ids = %v, want %v", ids, wantIDs)
	}
	wantTypes := []int64{0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 0, 0}
	if !reflect.DeepEqual(types, wantTypes) {
		t.Fatalf("types = %v, want %v", types, wantTypes)
	}
	for i := 0; i < 7; i++ {
		if attn[i] != 1 {
			t.Fatalf("attn[%d] = 0, want 1", i)
		}
	}
	for i := 7; i < 12; i++ {
		if attn[i] != 0 {
			t.Fatalf("attn[%d] = 1, want 0", i)
		}
	}
}

func TestArgmaxSoftmax(t *testing.T) {
	idx, conf := argmaxSoftmax([]float32{1.0, 3.0, 2.0})
	if idx != 1 {
		t.Fatalf("idx = %d, want 1", idx)
	}
	if conf <= 0.5 || conf >= 1.0 {
		t.Fatalf("conf = %f, want a dominant but proper probability", conf)
	}
}

func TestPickEntailmentIndex(t *testing.T) {
	if got := pickEntailmentIndex([]string{"contradiction", "neutral", "entailment"}, 3); got != 2 {
		t.Fatalf("idx = %d, want 2", got)
	}
	if got := pickEntailmentIndex([]string{"ENTAILMENT", "NEUTRAL", "CONTRADICTION"}, 3); got != 0 {
		t.Fatalf("idx = %d, want 0", got)
	}
	// No label metadata: MNLI convention puts entailment last.
	if got := pickEntailmentIndex(nil, 3); got != 2 {
		t.Fatalf("idx = %d, want 2", got)
	}
}
