package redact

import (
	"fmt"
	"log"
	"regexp"
)

// Complaint text and extracted identifiers routinely reach log
// statements. Everything that looks like complainant PII is masked
// before a line is written.
var (
	emailRe   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe   = regexp.MustCompile(`(\+?91[-.\s]?)?[6-9]\d{9}`)
	aadhaarRe = regexp.MustCompile(`\b\d{4}[-.\s]\d{4}[-.\s]\d{4}\b|\b\d{12}\b`)
	panRe     = regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`)
	apiKeyRe  = regexp.MustCompile(`(?i)(api[_-]?key(?:s)?\s*[:=]\s*)([A-Za-z0-9._\-+/=]+)`)
	bearerRe  = regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9._\-+/=]+)`)
)

// String masks PII and credential patterns in free-form strings.
func String(s string) string {
	if s == "" {
		return s
	}

	out := s
	out = apiKeyRe.ReplaceAllString(out, "${1}[REDACTED]")
	out = bearerRe.ReplaceAllString(out, "${1}[REDACTED]")
	out = emailRe.ReplaceAllString(out, "[EMAIL]")
	out = aadhaarRe.ReplaceAllString(out, "[AADHAAR]")
	out = phoneRe.ReplaceAllString(out, "[PHONE]")
	out = panRe.ReplaceAllString(out, "[PAN]")
	return out
}

// Sprintf formats like fmt.Sprintf and redacts the result.
func Sprintf(format string, args ...interface{}) string {
	return String(fmt.Sprintf(format, args...))
}

// Logf prints a redacted log line.
func Logf(format string, args ...interface{}) {
	log.Print(Sprintf(format, args...))
}

// Fatalf prints a redacted fatal log line.
func Fatalf(format string, args ...interface{}) {
	log.Fatal(Sprintf(format, args...))
}
