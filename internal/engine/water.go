package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sadopc/upfocus/internal/ledger"
	"github.com/sadopc/upfocus/internal/store"
)

// LogWater records ml millilitres drunk now.
func (e *Engine) LogWater(ml int) error {
	if ml <= 0 {
		return fmt.Errorf("log water %d ml: %w", ml, ErrInvalidAmount)
	}
	now := e.touch()
	e.water.Append(store.WaterLogEntry{ID: uuid.NewString(), OccurredAt: now, Milliliters: ml})
	e.waterTotal += ml
	e.saveWater()
	return nil
}

// ResetWater clears today's intake without touching the history.
func (e *Engine) ResetWater() {
	e.touch()
	e.waterTotal = 0
	e.water.Clear()
	e.saveWater()
}

func (e *Engine) WaterToday() int {
	e.touch()
	return e.waterTotal
}

// WaterLog is today's raw log, oldest first.
func (e *Engine) WaterLog() []store.WaterLogEntry {
	e.touch()
	return e.water.All()
}

// WaterHistory is the rollup of up to 7 previous days, oldest first.
func (e *Engine) WaterHistory() []store.DailyWaterRecord {
	e.touch()
	return e.waterHistory.Records()
}

func (e *Engine) WaterGoal() int { return e.Preferences().WaterGoalML }

// WaterProgress is today's intake against the goal, capped at 1.
func (e *Engine) WaterProgress() float64 {
	return ratio(e.WaterToday(), e.WaterGoal())
}

// WeeklyWaterData is millilitres per day for the last 7 days, oldest first.
// Today comes from the live total, earlier days from the rollup.
func (e *Engine) WeeklyWaterData() []DayTotal {
	now := e.touch()
	today := e.dateKey(now)
	byKey := make(map[string]int)
	for _, r := range e.waterHistory.Records() {
		byKey[r.DateKey] = r.TotalMilliliters
	}
	days := ledger.LastDays(now, 7)
	out := make([]DayTotal, len(days))
	for i, d := range days {
		v := byKey[d.Key]
		if d.Key == today {
			v = e.waterTotal
		}
		out[i] = DayTotal{Date: d.Start, Key: d.Key, Label: d.Start.Format("Mon"), Value: v}
	}
	return out
}
