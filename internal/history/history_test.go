package history

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestAppendAndRecent(t *testing.T) {
	l := NewLog()
	l.Append(Entry{FIRID: "FIR-20250114-AAAAAAAA", OffenceType: "Theft", Confidence: 0.9, Severity: "Medium", GeneratedAt: time.Now()})
	l.Append(Entry{FIRID: "FIR-20250114-BBBBBBBB", OffenceType: "Assault", Confidence: 0.7, Severity: "High", GeneratedAt: time.Now()})

	got := l.Recent()
	if len(got) != 2 {
		t.Fatalf("Recent returned %d entries, want 2", len(got))
	}
	if got[0].FIRID != "FIR-20250114-AAAAAAAA" || got[1].FIRID != "FIR-20250114-BBBBBBBB" {
		t.Fatalf("Recent out of order: %v", got)
	}
}

func TestRecentCapsAtLimit(t *testing.T) {
	l := NewLog()
	for i := 0; i < recentLimit+10; i++ {
		l.Append(Entry{FIRID: fmt.Sprintf("FIR-%04d", i)})
	}

	got := l.Recent()
	if len(got) != recentLimit {
		t.Fatalf("Recent returned %d entries, want %d", len(got), recentLimit)
	}
	// Oldest entries drop off the window.
	if got[0].FIRID != "FIR-0010" {
		t.Fatalf("window should start at FIR-0010, got %s", got[0].FIRID)
	}
	if l.Len() != recentLimit+10 {
		t.Fatalf("Len = %d, want %d", l.Len(), recentLimit+10)
	}
}

func TestRecentReturnsSnapshot(t *testing.T) {
	l := NewLog()
	l.Append(Entry{FIRID: "FIR-1"})

	snap := l.Recent()
	snap[0].FIRID = "mutated"

	if got := l.Recent(); got[0].FIRID != "FIR-1" {
		t.Fatalf("mutating the snapshot leaked into the log: %v", got)
	}
}

func TestConcurrentAppend(t *testing.T) {
	l := NewLog()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				l.Append(Entry{FIRID: fmt.Sprintf("FIR-%d-%d", i, j)})
			}
		}(i)
	}
	wg.Wait()

	if l.Len() != 200 {
		t.Fatalf("Len = %d after concurrent appends, want 200", l.Len())
	}
}
