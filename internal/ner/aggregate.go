package ner

import (
	"strings"
	"unicode/utf8"
)

// minSpanConfidence is the average-confidence floor below which an
// aggregated span is discarded. A span sitting exactly on the floor is
// kept.
const minSpanConfidence = 0.5

// span accumulates the sub-word tokens of one open entity while the
// scan walks the token sequence.
type span struct {
	entityType  string
	tokens      []string
	confidences []float64
}

// Aggregate folds a BIO-tagged token sequence into deduplicated entity
// lists. The scan keeps at most one span open at a time:
//
//   - "O" and sentinel tokens close the open span.
//   - "B-<T>" closes the open span and opens a new one of type T.
//   - "I-<T>" extends an open span of the same type; over a span of a
//     different type it closes that span and opens a new one of type T
//     (a continuation without a matching begin is an implicit begin).
//
// A span only becomes an entity if its joined surface is longer than
// one character and its average confidence is at least 0.5.
func Aggregate(tokens []TaggedToken) Entities {
	out := Entities{
		Persons:       []string{},
		Locations:     []string{},
		Organizations: []string{},
	}

	var open *span
	flush := func() {
		if open != nil {
			emit(&out, open)
			open = nil
		}
	}

	for _, tok := range tokens {
		if isSentinel(tok.Surface) {
			flush()
			continue
		}

		prefix, entityType := splitTag(tok.Tag)
		switch {
		case prefix == "B":
			flush()
			open = &span{
				entityType:  entityType,
				tokens:      []string{tok.Surface},
				confidences: []float64{tok.Confidence},
			}
		case prefix == "I":
			if open != nil && open.entityType == entityType {
				open.tokens = append(open.tokens, tok.Surface)
				open.confidences = append(open.confidences, tok.Confidence)
				continue
			}
			// Continuation without a matching begin: close whatever is
			// open and treat this token as the start of a new span.
			flush()
			open = &span{
				entityType:  entityType,
				tokens:      []string{tok.Surface},
				confidences: []float64{tok.Confidence},
			}
		default:
			flush()
		}
	}
	flush()

	out.Persons = dedupe(out.Persons)
	out.Locations = dedupe(out.Locations)
	out.Organizations = dedupe(out.Organizations)
	return out
}

func emit(out *Entities, sp *span) {
	surface := joinWordPieces(sp.tokens)
	if surface == "" || utf8.RuneCountInString(surface) <= 1 {
		return
	}
	if average(sp.confidences) < minSpanConfidence {
		return
	}

	switch sp.entityType {
	case "PER":
		out.Persons = append(out.Persons, surface)
	case "LOC":
		out.Locations = append(out.Locations, surface)
	case "ORG":
		out.Organizations = append(out.Organizations, surface)
	}
	// Any other entity type is dropped.
}

// joinWordPieces concatenates sub-word tokens into a surface string.
// Continuation pieces ("##...") attach without a space; whole-word
// pieces are joined with single spaces.
func joinWordPieces(tokens []string) string {
	var b strings.Builder
	for i, tok := range tokens {
		if piece, ok := strings.CutPrefix(tok, "##"); ok {
			b.WriteString(piece)
			continue
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return strings.TrimSpace(b.String())
}

func splitTag(tag string) (prefix, entityType string) {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "O" {
		return "", ""
	}
	parts := strings.SplitN(tag, "-", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

func isSentinel(surface string) bool {
	switch surface {
	case "[CLS]", "[SEP]", "[PAD]":
		return true
	}
	return false
}

func average(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
