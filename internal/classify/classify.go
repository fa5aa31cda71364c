package classify

import "context"

// Canonical offence categories. Every strategy normalizes its output to
// exactly this label set, which is what makes the strategies
// interchangeable behind the Strategy interface.
const (
	CategoryTheft      = "Theft"
	CategoryAssault    = "Assault"
	CategoryCyberCrime = "Cyber Crime"
	CategoryCheating   = "Cheating"
	CategoryHarassment = "Harassment"
	CategoryOther      = "Other"
)

// Categories lists the canonical labels in a fixed order.
var Categories = []string{
	CategoryTheft,
	CategoryAssault,
	CategoryCyberCrime,
	CategoryCheating,
	CategoryHarassment,
	CategoryOther,
}

// Result is the uniform classification output: the winning category,
// its confidence, and the full score distribution over all six
// canonical categories.
type Result struct {
	Label      string             `json:"label"`
	Confidence float64            `json:"confidence"`
	AllScores  map[string]float64 `json:"all_scores"`
}

// Strategy classifies complaint text into one canonical category.
type Strategy interface {
	Name() string
	Classify(ctx context.Context, text string) (Result, error)
}

// categoryKeywords drives both the keyword fallback strategy and the
// per-category prototype texts of the embedding strategy. Keywords are
// matched as case-insensitive substrings; entries are chosen so no
// keyword is a substring of another within the same list, keeping the
// per-category match counts reproducible.
var categoryKeywords = map[string][]string{
	CategoryTheft: {
		"theft", "stolen", "robbery", "robbed", "burglary", "burgled",
		"snatched", "snatching", "pickpocket", "shoplifting", "looted", "decamped",
	},
	CategoryAssault: {
		"assault", "attack", "beaten", "thrashed", "injured", "violence",
		"slapped", "stabbed", "punched", "hurt", "wounded", "fight",
	},
	CategoryCyberCrime: {
		"hacked", "hacking", "phishing", "online fraud", "cyber", "otp",
		"upi", "malware", "fake website", "password", "internet", "email fraud",
	},
	CategoryCheating: {
		"cheated", "cheating", "fraud", "scam", "duped",
		"fake", "forgery", "deceived", "swindled", "counterfeit",
	},
	CategoryHarassment: {
		"harass", "stalking", "stalked", "threatening", "threatened",
		"blackmail", "abuse", "obscene", "eve teasing", "molest",
	},
	CategoryOther: {
		"complaint", "dispute", "nuisance", "missing", "lost", "quarrel",
	},
}

// canonicalOrOther maps arbitrary label text onto the canonical set.
func canonicalOrOther(label string) string {
	for _, c := range Categories {
		if c == label {
			return c
		}
	}
	return CategoryOther
}

// emptyScores returns a zeroed distribution containing all six keys.
func emptyScores() map[string]float64 {
	scores := make(map[string]float64, len(Categories))
	for _, c := range Categories {
		scores[c] = 0
	}
	return scores
}
