// Package fir assembles the final First Information Report: statute
// lookup, reference IDs, and the rendered document.
package fir

import "strings"

// Section is one applicable statute reference.
type Section struct {
	Section     string `json:"section"`
	Description string `json:"description"`
}

// ipcSections maps offence types to their applicable legal sections.
var ipcSections = map[string][]Section{
	"Theft": {
		{"379", "Punishment for theft"},
		{"380", "Theft in dwelling house"},
		{"381", "Theft by clerk or servant"},
		{"382", "Theft after preparation for causing death/hurt"},
	},
	"Assault": {
		{"323", "Punishment for voluntarily causing hurt"},
		{"324", "Voluntarily causing hurt by dangerous weapons"},
		{"325", "Punishment for voluntarily causing grievous hurt"},
		{"326", "Voluntarily causing grievous hurt by dangerous weapons"},
		{"352", "Punishment for assault or criminal force"},
	},
	"Cyber Crime": {
		{"66", "IT Act - Computer related offences"},
		{"66C", "IT Act - Identity theft"},
		{"66D", "IT Act - Cheating by personation using computer"},
		{"67", "IT Act - Publishing obscene information"},
		{"420", "IPC - Cheating and dishonestly inducing delivery of property"},
	},
	"Cheating": {
		{"415", "Cheating"},
		{"417", "Punishment for cheating"},
		{"418", "Cheating with knowledge that wrongful loss may ensue"},
		{"420", "Cheating and dishonestly inducing delivery of property"},
	},
	"Harassment": {
		{"354", "Assault or criminal force to woman with intent to outrage modesty"},
		{"354A", "Sexual harassment"},
		{"354D", "Stalking"},
		{"498A", "Husband or relative subjecting woman to cruelty"},
		{"509", "Word, gesture or act intended to insult modesty of woman"},
	},
	"Other": {
		{"154", "CrPC - Information in cognizable cases"},
		{"200", "CrPC - Examination of complainant"},
	},
}

// SectionsFor returns the applicable sections for an offence type.
// Unknown types fall back to the generic CrPC sections.
func SectionsFor(offenceType string) []Section {
	normalized := titleCase(strings.TrimSpace(offenceType))

	lower := strings.ToLower(normalized)
	switch {
	case strings.Contains(lower, "cyber"):
		normalized = "Cyber Crime"
	case strings.Contains(lower, "cheat"), strings.Contains(lower, "fraud"):
		normalized = "Cheating"
	}

	if sections, ok := ipcSections[normalized]; ok {
		return sections
	}
	return ipcSections["Other"]
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
