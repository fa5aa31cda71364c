// Package extract pulls structured identifiers (phone numbers, emails,
// national IDs, vehicle plates) out of complaint text with regex
// scanning. It complements the model-based entity extraction.
package extract

import (
	"regexp"
	"strings"
)

// Identifiers holds every identifier class extracted from one text.
type Identifiers struct {
	PhoneNumbers   []string `json:"phone_numbers"`
	Emails         []string `json:"emails"`
	AadhaarNumbers []string `json:"aadhaar_numbers"`
	PANNumbers     []string `json:"pan_numbers"`
	VehicleNumbers []string `json:"vehicle_numbers"`
}

// Extractor owns the compiled patterns. All pattern definitions live in
// New so the full identifier grammar is visible in one place.
type Extractor struct {
	phonePatterns   []*regexp.Regexp
	emailRe         *regexp.Regexp
	aadhaarPatterns []*regexp.Regexp
	panRe           *regexp.Regexp
	vehiclePatterns []*regexp.Regexp
	nonDigitRe      *regexp.Regexp
	separatorRe     *regexp.Regexp
}

// New compiles the identifier patterns.
//
// Go's regexp has no lookbehind/lookahead, so the digit-adjacency
// guards of the reference patterns are enforced after matching (see
// findDigitBounded).
func New() *Extractor {
	return &Extractor{
		phonePatterns: []*regexp.Regexp{
			// +91 followed by a 10-digit mobile.
			regexp.MustCompile(`\+91[-.\s]?[6-9]\d{9}`),
			// 91 prefix without the plus.
			regexp.MustCompile(`91[-.\s]?[6-9]\d{9}`),
			// STD-style leading zero.
			regexp.MustCompile(`0[6-9]\d{9}`),
			// Plain 10-digit mobile.
			regexp.MustCompile(`[6-9]\d{9}`),
			// Formatted XXX-XXX-XXXX.
			regexp.MustCompile(`[6-9]\d{2}[-.\s]\d{3}[-.\s]\d{4}`),
			// Country code in parentheses.
			regexp.MustCompile(`\(\+?91\)[-.\s]?[6-9]\d{9}`),
			// Landlines: STD code plus number.
			regexp.MustCompile(`0\d{2,4}[-.\s]?\d{6,8}`),
		},
		emailRe: regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
		aadhaarPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\d{4}[-.\s]\d{4}[-.\s]\d{4}`),
			regexp.MustCompile(`\d{12}`),
		},
		panRe: regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`),
		vehiclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[A-Z]{2}[-.\s]?\d{1,2}[-.\s]?[A-Z]{1,3}[-.\s]?\d{4}\b`),
		},
		nonDigitRe:  regexp.MustCompile(`\D`),
		separatorRe: regexp.MustCompile(`[-.\s]`),
	}
}

// All extracts every identifier class from the text.
func (e *Extractor) All(text string) Identifiers {
	return Identifiers{
		PhoneNumbers:   e.PhoneNumbers(text),
		Emails:         e.Emails(text),
		AadhaarNumbers: e.AadhaarNumbers(text),
		PANNumbers:     e.PANNumbers(text),
		VehicleNumbers: e.VehicleNumbers(text),
	}
}

// PhoneNumbers extracts Indian phone numbers and normalizes each to a
// bare 10-digit form.
func (e *Extractor) PhoneNumbers(text string) []string {
	var candidates []string
	for _, re := range e.phonePatterns {
		candidates = append(candidates, findDigitBounded(re, text)...)
	}

	cleaned := make([]string, 0, len(candidates))
	for _, c := range candidates {
		digits := e.nonDigitRe.ReplaceAllString(c, "")
		switch {
		case len(digits) == 10 && isMobilePrefix(digits[0]):
			cleaned = append(cleaned, digits)
		case len(digits) == 11 && digits[0] == '0' && isMobilePrefix(digits[1]):
			cleaned = append(cleaned, digits[1:])
		case len(digits) == 12 && digits[:2] == "91" && isMobilePrefix(digits[2]):
			cleaned = append(cleaned, digits[2:])
		case len(digits) == 13 && digits[:3] == "091" && isMobilePrefix(digits[3]):
			cleaned = append(cleaned, digits[3:])
		}
	}
	return dedupe(cleaned)
}

// Emails extracts email addresses.
func (e *Extractor) Emails(text string) []string {
	return dedupe(e.emailRe.FindAllString(text, -1))
}

// AadhaarNumbers extracts 12-digit Aadhaar IDs. Aadhaar numbers never
// start with 0 or 1.
func (e *Extractor) AadhaarNumbers(text string) []string {
	var candidates []string
	for _, re := range e.aadhaarPatterns {
		candidates = append(candidates, findDigitBounded(re, text)...)
	}

	cleaned := make([]string, 0, len(candidates))
	for _, c := range candidates {
		digits := e.nonDigitRe.ReplaceAllString(c, "")
		if len(digits) == 12 && digits[0] != '0' && digits[0] != '1' {
			cleaned = append(cleaned, digits)
		}
	}
	return dedupe(cleaned)
}

// PANNumbers extracts permanent account numbers (AAAAA0000A).
func (e *Extractor) PANNumbers(text string) []string {
	return dedupe(e.panRe.FindAllString(strings.ToUpper(text), -1))
}

// VehicleNumbers extracts Indian vehicle registration numbers,
// normalized to their compact form (e.g. TS09AB1234).
func (e *Extractor) VehicleNumbers(text string) []string {
	upper := strings.ToUpper(text)
	var candidates []string
	for _, re := range e.vehiclePatterns {
		candidates = append(candidates, re.FindAllString(upper, -1)...)
	}

	cleaned := make([]string, 0, len(candidates))
	for _, c := range candidates {
		compact := e.separatorRe.ReplaceAllString(c, "")
		if len(compact) >= 9 && len(compact) <= 11 {
			cleaned = append(cleaned, compact)
		}
	}
	return dedupe(cleaned)
}

// findDigitBounded returns matches of re that are not immediately
// preceded or followed by another digit, standing in for the
// lookaround guards the reference patterns use.
func findDigitBounded(re *regexp.Regexp, text string) []string {
	var out []string
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && isDigit(text[loc[0]-1]) {
			continue
		}
		if loc[1] < len(text) && isDigit(text[loc[1]]) {
			continue
		}
		out = append(out, text[loc[0]:loc[1]])
	}
	return out
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isMobilePrefix(b byte) bool { return b >= '6' && b <= '9' }

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
