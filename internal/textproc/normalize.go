// Package textproc normalizes raw complaint text before it reaches the
// NER and classification models.
package textproc

import (
	"regexp"
	"strings"
)

var (
	urlRe        = regexp.MustCompile(`http[s]?://[A-Za-z0-9$\-_@.&+!*(),%/?#=~:;]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^\w\s.,!?;:'"@#$%&*()\-/]`)
)

// Normalize folds the text to ASCII, strips URLs, collapses whitespace,
// and removes characters the models were not trained on while keeping
// the punctuation NER relies on.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = asciiFold(text)
	text = urlRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = disallowedRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// asciiFold drops every non-ASCII byte sequence.
func asciiFold(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
