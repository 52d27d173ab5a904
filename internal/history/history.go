// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps the bounded log of recent conversions for a session.
package history

import (
	"strconv"
	"sync"
)

// Capacity is the maximum number of entries a Log retains.
const Capacity = 10

// Entry is one recorded conversion. Output holds the formatted result.
type Entry struct {
	Input    float64 `json:"input"`
	From     string  `json:"from"`
	Output   string  `json:"output"`
	To       string  `json:"to"`
	Category string  `json:"category"`
}

// String renders the entry as "1 Meter = 3.28084 Foot".
func (e Entry) String() string {
	return FormatInput(e.Input) + " " + e.From + " = " + e.Output + " " + e.To
}

// FormatInput renders an input value the way it was typed, without
// exponent or padding for ordinary magnitudes.
func FormatInput(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// =============================================================================
// LOG
// =============================================================================

// Log is an append-only ring of the most recent entries, oldest first.
// Consecutive identical entries are collapsed into one.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

// New creates an empty log.
func New() *Log {
	return &Log{entries: make([]Entry, 0, Capacity)}
}

// Record appends e unless it equals the last entry, then drops the oldest
// entries beyond Capacity. It reports whether the log changed.
func (l *Log) Record(e Entry) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n := len(l.entries); n > 0 && l.entries[n-1] == e {
		return false
	}

	l.entries = append(l.entries, e)
	if over := len(l.entries) - Capacity; over > 0 {
		copy(l.entries, l.entries[over:])
		l.entries = l.entries[:Capacity]
	}
	return true
}

// Recent returns up to n of the newest entries, oldest to newest.
// The returned slice is a copy.
func (l *Log) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 {
		return []Entry{}
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// All returns every retained entry, oldest to newest.
func (l *Log) All() []Entry {
	return l.Recent(Capacity)
}

// Last returns the newest entry.
func (l *Log) Last() (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
