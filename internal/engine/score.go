package engine

import "math"

// Goals are the daily targets the focus score is measured against.
type Goals struct {
	Sessions int
	Minutes  int
}

// streakTarget is the streak length that earns the full streak component.
const streakTarget = 7

// FocusScore rates today on a 0 to 100 scale: up to 40 points for sessions
// against the goal, 40 for minutes against the goal and 20 for the streak.
// A goal of zero counts as one.
func FocusScore(c Counters, g Goals, currentStreak int) int {
	sessions := ratio(c.TodayCompleted, g.Sessions) * 40
	minutes := ratio(c.TodayFocusMinutes, g.Minutes) * 40
	streak := ratio(currentStreak, streakTarget) * 20

	score := int(math.Floor(sessions + minutes + streak))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func ratio(value, goal int) float64 {
	if goal < 1 {
		goal = 1
	}
	r := float64(value) / float64(goal)
	if r > 1 {
		return 1
	}
	if r < 0 {
		return 0
	}
	return r
}

// Insight is the advisory line shown with a focus score.
func Insight(score int) string {
	switch {
	case score < 20:
		return "Start a session to build momentum!"
	case score < 40:
		return "Good start, keep the focus going."
	case score < 60:
		return "Solid progress today. Stay consistent!"
	case score < 80:
		return "Great work! You're in the zone."
	default:
		return "Outstanding focus day! 🏆"
	}
}

// FocusScore scores today using the stored goals.
func (e *Engine) FocusScore() int {
	e.touch()
	p := e.Preferences()
	return FocusScore(e.counters, Goals{Sessions: p.DailySessionGoal, Minutes: p.DailyMinuteGoal}, e.streak.Current)
}

func (e *Engine) FocusInsight() string { return Insight(e.FocusScore()) }
