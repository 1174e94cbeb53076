package engine

import (
	"fmt"
	"strconv"
)

const (
	keyWorkMinutes      = "workMinutes"
	keyBreakMinutes     = "breakMinutes"
	keyDailySessionGoal = "dailySessionGoal"
	keyDailyMinuteGoal  = "dailyMinuteGoal"
	keyWaterGoalML      = "waterGoalML"
)

// Preferences are the user-editable defaults and daily goals.
type Preferences struct {
	WorkMinutes      int
	BreakMinutes     int
	DailySessionGoal int
	DailyMinuteGoal  int
	WaterGoalML      int
}

func DefaultPreferences() Preferences {
	return Preferences{
		WorkMinutes:      25,
		BreakMinutes:     5,
		DailySessionGoal: 4,
		DailyMinuteGoal:  120,
		WaterGoalML:      2000,
	}
}

func (p Preferences) Validate() error {
	if p.WorkMinutes <= 0 || p.BreakMinutes < 0 {
		return fmt.Errorf("work %d min, break %d min: %w", p.WorkMinutes, p.BreakMinutes, ErrInvalidDuration)
	}
	if p.DailySessionGoal < 0 || p.DailyMinuteGoal < 0 || p.WaterGoalML < 0 {
		return fmt.Errorf("negative goal: %w", ErrInvalidAmount)
	}
	return nil
}

// Preferences reads the stored preferences, using the default for any value
// that is missing or unusable.
func (e *Engine) Preferences() Preferences {
	d := DefaultPreferences()
	return Preferences{
		WorkMinutes:      e.prefInt(keyWorkMinutes, d.WorkMinutes, 1),
		BreakMinutes:     e.prefInt(keyBreakMinutes, d.BreakMinutes, 0),
		DailySessionGoal: e.prefInt(keyDailySessionGoal, d.DailySessionGoal, 0),
		DailyMinuteGoal:  e.prefInt(keyDailyMinuteGoal, d.DailyMinuteGoal, 0),
		WaterGoalML:      e.prefInt(keyWaterGoalML, d.WaterGoalML, 0),
	}
}

func (e *Engine) SetPreferences(p Preferences) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("set preferences: %w", err)
	}
	// Written in a fixed order; a failed write leaves a known prefix stored.
	for _, kv := range []struct {
		key string
		v   int
	}{
		{keyWorkMinutes, p.WorkMinutes},
		{keyBreakMinutes, p.BreakMinutes},
		{keyDailySessionGoal, p.DailySessionGoal},
		{keyDailyMinuteGoal, p.DailyMinuteGoal},
		{keyWaterGoalML, p.WaterGoalML},
	} {
		if err := e.kv.Set(kv.key, strconv.Itoa(kv.v)); err != nil {
			return fmt.Errorf("set preferences: %s: %w", kv.key, err)
		}
	}
	return nil
}

func (e *Engine) prefInt(key string, fallback, floor int) int {
	v := e.getString(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < floor {
		return fallback
	}
	return n
}
