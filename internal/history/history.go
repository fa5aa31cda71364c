// Package history keeps an in-memory record of generated FIRs for the
// history endpoint. Entries live for the process lifetime only.
package history

import (
	"sync"
	"time"
)

// recentLimit caps how many entries Recent returns.
const recentLimit = 50

// Entry is one generated FIR, trimmed to the fields the history view
// shows.
type Entry struct {
	FIRID       string    `json:"fir_id"`
	OffenceType string    `json:"offence_type"`
	Confidence  float64   `json:"confidence"`
	Severity    string    `json:"severity"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Log is a concurrency-safe append-only record of generated FIRs.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

func NewLog() *Log {
	return &Log{}
}

// Append records a generated FIR.
func (l *Log) Append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// Recent returns a snapshot of the most recent entries, oldest first,
// capped at recentLimit.
func (l *Log) Recent() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := 0
	if len(l.entries) > recentLimit {
		start = len(l.entries) - recentLimit
	}
	out := make([]Entry, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

// Len reports how many FIRs have been recorded in total.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
