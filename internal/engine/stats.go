package engine

import (
	"time"

	"github.com/sadopc/upfocus/internal/ledger"
	"github.com/sadopc/upfocus/internal/store"
)

// DayTotal is one local calendar day of a derived series.
type DayTotal struct {
	Date  time.Time // local midnight
	Key   string    // YYYY-MM-DD
	Label string    // short weekday, e.g. "Mon"
	Value int
}

type CategoryTotal struct {
	Category store.Category
	Minutes  int
}

// HeatmapDays is the number of day buckets in HeatmapData.
const HeatmapDays = 28

func sessionMinutes(e store.SessionEntry) int { return e.Minutes }

func (e *Engine) focusByDay(now time.Time, n int) []DayTotal {
	days := ledger.LastDays(now, n)
	totals := ledger.SumByDay(e.sessions, days, sessionMinutes)
	out := make([]DayTotal, len(days))
	for i, d := range days {
		out[i] = DayTotal{Date: d.Start, Key: d.Key, Label: d.Start.Format("Mon"), Value: totals[i]}
	}
	return out
}

// WeeklyFocusData is focus minutes per day for the last 7 days, oldest first.
func (e *Engine) WeeklyFocusData() []DayTotal {
	now := e.touch()
	return e.focusByDay(now, 7)
}

// HeatmapData is focus minutes per day for the last 28 days, oldest first.
func (e *Engine) HeatmapData() []DayTotal {
	now := e.touch()
	return e.focusByDay(now, HeatmapDays)
}

// CategoryBreakdown sums retained focus minutes per category, in category order.
func (e *Engine) CategoryBreakdown() []CategoryTotal {
	e.touch()
	totals := make(map[store.Category]int)
	for _, s := range e.sessions.All() {
		totals[s.Category] += s.Minutes
	}
	out := make([]CategoryTotal, len(store.Categories))
	for i, c := range store.Categories {
		out[i] = CategoryTotal{Category: c, Minutes: totals[c]}
	}
	return out
}
