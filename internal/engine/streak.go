package engine

import (
	"time"

	"github.com/sadopc/upfocus/internal/ledger"
)

// StreakState counts consecutive local calendar days with at least one
// completed focus interval. Best never drops below Current.
type StreakState struct {
	Current             int
	Best                int
	LastCreditedDateKey string
}

// CreditCompletion credits the day containing now. At most one credit is
// given per day; a gap of one or more missed days restarts the streak at 1.
// It reports whether the state changed.
func (s *StreakState) CreditCompletion(now time.Time) bool {
	loc := now.Location()
	today := ledger.DateKey(now, loc)
	if s.LastCreditedDateKey == today {
		return false
	}

	last, err := ledger.ParseDateKey(s.LastCreditedDateKey, loc)
	hasCredit := err == nil
	if hasCredit && last.After(ledger.StartOfDay(now)) {
		// The clock went backwards; never move the credited day back with it.
		return false
	}

	yesterday, _ := ledger.Yesterday(today, loc)
	if hasCredit && s.LastCreditedDateKey == yesterday {
		s.Current++
	} else {
		s.Current = 1
	}
	if s.Current > s.Best {
		s.Best = s.Current
	}
	s.LastCreditedDateKey = today
	return true
}
