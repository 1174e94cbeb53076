// Package ledger holds append-only, time-ordered event lists and the
// calendar-day arithmetic used to bucket and roll them over.
package ledger

import (
	"sort"
	"time"
)

// Entry is anything recorded at a point in time.
type Entry interface {
	Timestamp() time.Time
}

// Ledger keeps entries oldest first. Entries are never modified once appended.
type Ledger[E Entry] struct {
	entries []E
}

// New builds a ledger from previously persisted entries, restoring time order.
func New[E Entry](entries []E) *Ledger[E] {
	l := &Ledger[E]{entries: append([]E(nil), entries...)}
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].Timestamp().Before(l.entries[j].Timestamp())
	})
	return l
}

// Append adds e at the tail. An entry older than the current tail is placed
// in time order so consumers always see a sorted ledger.
func (l *Ledger[E]) Append(e E) {
	i := len(l.entries)
	for i > 0 && l.entries[i-1].Timestamp().After(e.Timestamp()) {
		i--
	}
	l.entries = append(l.entries, e)
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = e
}

// Trim drops entries older than cutoff and reports how many were removed.
func (l *Ledger[E]) Trim(cutoff time.Time) int {
	i := 0
	for i < len(l.entries) && l.entries[i].Timestamp().Before(cutoff) {
		i++
	}
	if i == 0 {
		return 0
	}
	l.entries = append([]E(nil), l.entries[i:]...)
	return i
}

// RetentionTrim drops entries older than windowDays calendar days before now.
func (l *Ledger[E]) RetentionTrim(now time.Time, windowDays int) int {
	return l.Trim(now.AddDate(0, 0, -windowDays))
}

// Query returns the entries with start <= timestamp < end.
func (l *Ledger[E]) Query(start, end time.Time) []E {
	var out []E
	for _, e := range l.entries {
		ts := e.Timestamp()
		if ts.Before(start) {
			continue
		}
		if !ts.Before(end) {
			break
		}
		out = append(out, e)
	}
	return out
}

// All returns a copy of every entry, oldest first.
func (l *Ledger[E]) All() []E {
	return append([]E(nil), l.entries...)
}

func (l *Ledger[E]) Len() int { return len(l.entries) }

func (l *Ledger[E]) Clear() { l.entries = nil }
