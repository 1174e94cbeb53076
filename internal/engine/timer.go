package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/upfocus/internal/store"
)

// Phase is the timer state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFocusing
	PhaseOnBreak
)

var phaseNames = map[Phase]string{
	PhaseIdle:     "idle",
	PhaseFocusing: "focusing",
	PhaseOnBreak:  "on_break",
}

func (p Phase) String() string { return phaseNames[p] }

func parsePhase(s string) Phase {
	for p, name := range phaseNames {
		if name == s {
			return p
		}
	}
	return PhaseIdle
}

// TimerState is the single timer owned by the engine. Fields other than
// Phase are meaningful only outside PhaseIdle.
type TimerState struct {
	Phase        Phase
	EndsAt       time.Time
	TaskLabel    string
	Category     store.Category
	FocusMinutes int
	BreakMinutes int
}

// Total is the full length of the current phase.
func (t TimerState) Total() time.Duration {
	switch t.Phase {
	case PhaseFocusing:
		return time.Duration(t.FocusMinutes) * time.Minute
	case PhaseOnBreak:
		return time.Duration(t.BreakMinutes) * time.Minute
	}
	return 0
}

var breakQuotes = []string{
	"Rest your eyes for a bit",
	"Grab a glass of water",
	"Relax your shoulders",
	"Look out the window",
	"Take a deep breath...",
	"Stand up and stretch",
	"Fix your posture!",
	"You're doing great",
}

// StartSession cancels any running timer and begins a focus interval of
// focusMinutes followed by a break of breakMinutes (none when zero).
func (e *Engine) StartSession(taskLabel string, category store.Category, focusMinutes, breakMinutes int) error {
	if focusMinutes <= 0 || breakMinutes < 0 {
		return fmt.Errorf("start session (focus %d, break %d): %w", focusMinutes, breakMinutes, ErrInvalidDuration)
	}
	if !category.Valid() {
		return fmt.Errorf("start session %q: %w", category, ErrInvalidCategory)
	}

	e.Stop()
	now := e.touch()

	e.timer = TimerState{
		Phase:        PhaseFocusing,
		EndsAt:       now.Add(time.Duration(focusMinutes) * time.Minute),
		TaskLabel:    taskLabel,
		Category:     category,
		FocusMinutes: focusMinutes,
		BreakMinutes: breakMinutes,
	}
	e.saveTimer()
	e.subscribe()
	e.cues.Cue(CueFocusStart)
	e.announcePhase()
	e.log.Info().Str("task", taskLabel).Str("category", string(category)).
		Int("focus_min", focusMinutes).Int("break_min", breakMinutes).Msg("session started")
	return nil
}

// Stop returns the timer to idle from any state. A focus interval stopped
// before it expires is discarded; only fully elapsed intervals are recorded.
// An interval that has already run out, but whose expiry no tick has seen
// yet, is settled first.
func (e *Engine) Stop() {
	now := e.touch()
	if e.timer.Phase != PhaseIdle && !e.timer.EndsAt.After(now) {
		e.onIntervalExpired(now)
	}
	wasRunning := e.timer.Phase != PhaseIdle
	e.toIdle()
	if wasRunning {
		e.log.Info().Msg("timer stopped")
	}
}

// Tick is the clock callback. Remaining time is always derived from the wall
// clock, so missed ticks only delay, never lose, an expiry.
func (e *Engine) Tick() {
	if e.timer.Phase == PhaseIdle {
		return
	}
	now := e.touch()
	remaining := e.timer.EndsAt.Sub(now)
	if remaining > 0 {
		t := e.timer
		err := e.presence.Update(ceilSeconds(remaining), int(t.Total()/time.Second), t.TaskLabel, t.Category.Icon(), t.Phase == PhaseOnBreak)
		if err != nil {
			e.log.Debug().Err(err).Str("collaborator", "presence").Msg("update failed")
		}
		return
	}
	e.onIntervalExpired(now)
}

// onIntervalExpired settles the current phase. The phase ended at EndsAt,
// which is earlier than now when ticks were missed or the process was down.
func (e *Engine) onIntervalExpired(now time.Time) {
	switch e.timer.Phase {
	case PhaseFocusing:
		done := e.timer.EndsAt
		e.commitSession(done, now)
		e.cues.Cue(CueFocusEnd)
		breakEnds := done.Add(time.Duration(e.timer.BreakMinutes) * time.Minute)
		if e.timer.BreakMinutes == 0 || !breakEnds.After(now) {
			e.toIdle()
			return
		}
		e.timer.Phase = PhaseOnBreak
		e.timer.EndsAt = breakEnds
		e.breakQuote = breakQuotes[rand.IntN(len(breakQuotes))]
		e.saveTimer()
		e.notifier.CancelAll()
		e.announcePhase()
	case PhaseOnBreak:
		e.cues.Cue(CueBreakEnd)
		e.toIdle()
	}
}

// commitSession records a focus interval that completed at done, then
// credits the streak, then evaluates achievements. The order is fixed.
// Today's counters only move when done falls on today.
func (e *Engine) commitSession(done, now time.Time) {
	t := e.timer
	e.sessions.Append(store.SessionEntry{
		ID:         uuid.NewString(),
		OccurredAt: done,
		Minutes:    t.FocusMinutes,
		Category:   t.Category,
		TaskLabel:  t.TaskLabel,
	})
	e.sessions.RetentionTrim(now, SessionRetentionDays)
	e.saveSessions()

	if e.dateKey(done) == e.dateKey(now) {
		e.counters.TodayCompleted++
		e.counters.TodayFocusMinutes += t.FocusMinutes
		e.counters.LastResetDateKey = e.dateKey(now)
		e.saveCounters()
	}

	e.totals.SessionsCompleted++
	e.totals.FocusMinutes += t.FocusMinutes
	e.totals.LastSessionMinutes = t.FocusMinutes
	e.saveTotals()

	if e.streak.CreditCompletion(done) {
		e.saveStreak()
	}

	e.evaluateAchievements(EvalInput{
		TotalSessions:      e.totals.SessionsCompleted,
		LastSessionMinutes: t.FocusMinutes,
		CurrentStreak:      e.streak.Current,
		TotalFocusMinutes:  e.totals.FocusMinutes,
		Hour:               done.Hour(),
	})

	e.log.Info().Int("minutes", t.FocusMinutes).Str("category", string(t.Category)).
		Time("completed_at", done).Int("streak", e.streak.Current).Msg("session completed")
}

func (e *Engine) toIdle() {
	e.unsubscribe()
	e.timer = TimerState{}
	e.breakQuote = ""
	e.saveTimer()
	e.notifier.CancelAll()
	e.presence.End()
}

// announcePhase issues the notification and presence side effects for the
// phase just entered.
func (e *Engine) announcePhase() {
	t := e.timer
	title, body := "Time's up! ⏰", "Time for a break. Rest your eyes."
	isBreak := t.Phase == PhaseOnBreak
	if isBreak {
		title, body = "Break's over!", "Let's get back to focusing."
	}
	if t.TaskLabel != "" {
		body += " (" + t.TaskLabel + ")"
	}
	if err := e.notifier.Schedule(t.EndsAt, title, body); err != nil {
		e.log.Warn().Err(err).Str("collaborator", "notifier").Msg("schedule failed")
	}
	if err := e.presence.Start(t.TaskLabel, t.Category, int(t.Total()/time.Second), isBreak); err != nil {
		e.log.Warn().Err(err).Str("collaborator", "presence").Msg("start failed")
	}
}

func (e *Engine) subscribe() {
	if e.cancelTick != nil {
		return
	}
	e.cancelTick = e.clock.OnTick(e.Tick)
}

func (e *Engine) unsubscribe() {
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
}

// restoreTimer resumes a timer persisted by an earlier process. An interval
// that ran out while the process was down completes on the next tick, dated
// at its own end time.
func (e *Engine) restoreTimer(now time.Time) {
	t := e.loadTimer()
	if t.Phase == PhaseIdle {
		return
	}
	e.timer = t
	if t.Phase == PhaseOnBreak {
		e.breakQuote = breakQuotes[rand.IntN(len(breakQuotes))]
	}
	e.subscribe()
	if t.EndsAt.After(now) {
		e.announcePhase()
	}
	e.log.Info().Str("phase", t.Phase.String()).Time("ends_at", t.EndsAt).Msg("timer restored")
}

// State returns a copy of the timer state.
func (e *Engine) State() TimerState { return e.timer }

// Remaining is the time left in the current phase, zero when idle.
func (e *Engine) Remaining() time.Duration {
	if e.timer.Phase == PhaseIdle {
		return 0
	}
	r := e.timer.EndsAt.Sub(e.clock.Now())
	if r < 0 {
		return 0
	}
	return r
}

// Progress is the elapsed fraction of the current phase in [0, 1].
func (e *Engine) Progress() float64 {
	total := e.timer.Total()
	if total <= 0 {
		return 0
	}
	p := 1 - float64(e.Remaining())/float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// BreakQuote is the suggestion shown during the current break.
func (e *Engine) BreakQuote() string { return e.breakQuote }

func ceilSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}
