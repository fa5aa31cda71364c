// Package severity scores how urgent a complaint is from the detected
// offence type, the classification confidence, and severity keywords
// in the text.
package severity

import (
	"fmt"
	"strings"
)

// Assessment is the severity verdict for one complaint.
type Assessment struct {
	Score   int      `json:"score"`
	Level   string   `json:"level"`
	Factors []string `json:"factors"`
}

// Severity levels, mapped from the 0-100 score.
const (
	LevelCritical = "Critical"
	LevelHigh     = "High"
	LevelMedium   = "Medium"
	LevelLow      = "Low"
)

var baseScores = map[string]int{
	"Assault":     70,
	"Cyber Crime": 50,
	"Theft":       45,
	"Cheating":    40,
	"Harassment":  55,
	"Other":       30,
}

var highSeverityKeywords = []string{
	"murder", "death", "killed", "weapon", "gun", "knife",
	"hospital", "critical", "serious injury", "blood",
	"threat to life", "kidnap", "abduct", "ransom",
}

var mediumSeverityKeywords = []string{
	"injured", "hurt", "attack", "force", "threat",
	"large amount", "lakh", "crore", "multiple victims",
}

// Assess computes the severity score for a classified complaint. Only
// the first matching keyword of each tier contributes.
func Assess(offenceType string, confidence float64, text string) Assessment {
	score, ok := baseScores[offenceType]
	if !ok {
		score = 30
	}
	var factors []string

	lower := strings.ToLower(text)

	for _, kw := range highSeverityKeywords {
		if strings.Contains(lower, kw) {
			score += 15
			factors = append(factors, fmt.Sprintf("High severity indicator: %q", kw))
			break
		}
	}

	for _, kw := range mediumSeverityKeywords {
		if strings.Contains(lower, kw) {
			score += 8
			factors = append(factors, fmt.Sprintf("Medium severity indicator: %q", kw))
			break
		}
	}

	if confidence > 0.8 {
		score += 5
		factors = append(factors, "High classification confidence")
	} else if confidence < 0.4 {
		score -= 5
		factors = append(factors, "Low classification confidence")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Assessment{
		Score:   score,
		Level:   levelFor(score),
		Factors: factors,
	}
}

func levelFor(score int) string {
	switch {
	case score >= 75:
		return LevelCritical
	case score >= 55:
		return LevelHigh
	case score >= 35:
		return LevelMedium
	default:
		return LevelLow
	}
}
