package severity

import "testing"

func TestAssessBaseScores(t *testing.T) {
	got := Assess("Theft", 0.6, "my wallet is gone")
	if got.Score != 45 {
		t.Fatalf("score = %d, want base 45", got.Score)
	}
	if got.Level != LevelMedium {
		t.Fatalf("level = %s, want Medium", got.Level)
	}
	if len(got.Factors) != 0 {
		t.Fatalf("expected no factors, got %v", got.Factors)
	}
}

func TestAssessHighSeverityKeywordBumpsOnce(t *testing.T) {
	// Two high-severity keywords, but only the first match counts.
	got := Assess("Assault", 0.6, "he pulled a knife and a gun")
	if got.Score != 85 {
		t.Fatalf("score = %d, want 70+15", got.Score)
	}
	if got.Level != LevelCritical {
		t.Fatalf("level = %s, want Critical", got.Level)
	}
	if len(got.Factors) != 1 {
		t.Fatalf("expected a single high-severity factor, got %v", got.Factors)
	}
}

func TestAssessStacksTiersAndConfidence(t *testing.T) {
	got := Assess("Assault", 0.9, "attacked with a weapon, victim injured")
	// 70 base + 15 high + 8 medium + 5 confidence.
	if got.Score != 98 {
		t.Fatalf("score = %d, want 98", got.Score)
	}
	if len(got.Factors) != 3 {
		t.Fatalf("expected 3 factors, got %v", got.Factors)
	}
}

func TestAssessLowConfidencePenalty(t *testing.T) {
	got := Assess("Other", 0.3, "something happened")
	if got.Score != 25 {
		t.Fatalf("score = %d, want 30-5", got.Score)
	}
	if got.Level != LevelLow {
		t.Fatalf("level = %s, want Low", got.Level)
	}
}

func TestAssessUnknownOffenceUsesDefaultBase(t *testing.T) {
	got := Assess("Unheard Of", 0.6, "text")
	if got.Score != 30 {
		t.Fatalf("score = %d, want default base 30", got.Score)
	}
}

func TestAssessClampsToHundred(t *testing.T) {
	got := Assess("Assault", 0.95, "murder attempt, victim injured badly")
	if got.Score > 100 {
		t.Fatalf("score = %d, must be clamped to 100", got.Score)
	}
}

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{75, LevelCritical},
		{74, LevelHigh},
		{55, LevelHigh},
		{54, LevelMedium},
		{35, LevelMedium},
		{34, LevelLow},
		{0, LevelLow},
	}
	for _, tc := range cases {
		if got := levelFor(tc.score); got != tc.want {
			t.Fatalf("levelFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
