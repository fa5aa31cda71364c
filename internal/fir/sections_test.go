package fir

import "testing"

func TestSectionsForKnownOffences(t *testing.T) {
	cases := []struct {
		offence string
		first   string
		count   int
	}{
		{"Theft", "379", 4},
		{"Assault", "323", 5},
		{"Cyber Crime", "66", 5},
		{"Cheating", "415", 4},
		{"Harassment", "354", 5},
		{"Other", "154", 2},
	}
	for _, tc := range cases {
		got := SectionsFor(tc.offence)
		if len(got) != tc.count {
			t.Fatalf("SectionsFor(%q) returned %d sections, want %d", tc.offence, len(got), tc.count)
		}
		if got[0].Section != tc.first {
			t.Fatalf("SectionsFor(%q)[0] = %s, want %s", tc.offence, got[0].Section, tc.first)
		}
	}
}

func TestSectionsForIsCaseInsensitive(t *testing.T) {
	got := SectionsFor("theft")
	if len(got) == 0 || got[0].Section != "379" {
		t.Fatalf("lowercase offence should resolve to Theft sections, got %v", got)
	}
}

func TestSectionsForAliases(t *testing.T) {
	if got := SectionsFor("cybercrime"); got[0].Section != "66" {
		t.Fatalf("cybercrime alias should map to Cyber Crime, got %v", got)
	}
	if got := SectionsFor("online fraud"); got[0].Section != "415" {
		t.Fatalf("fraud alias should map to Cheating, got %v", got)
	}
}

func TestSectionsForUnknownFallsBackToOther(t *testing.T) {
	got := SectionsFor("jaywalking")
	if len(got) != 2 || got[0].Section != "154" {
		t.Fatalf("unknown offence should fall back to Other, got %v", got)
	}
}
