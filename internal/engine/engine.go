// Package engine is the session and activity tracking core: the focus/break
// timer, the session and water ledgers with daily rollover, streaks, the
// focus score and achievements.
//
// An Engine is not safe for concurrent use. Every call, including the tick
// callback, must come from a single control loop.
package engine

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/upfocus/internal/ledger"
	"github.com/sadopc/upfocus/internal/store"
)

const (
	// SessionRetentionDays bounds the session ledger.
	SessionRetentionDays = 28
	// WaterHistoryDays bounds the daily water rollup.
	WaterHistoryDays = 7
)

var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// Counters are today's session tallies. They are stale once LastResetDateKey
// is no longer today.
type Counters struct {
	TodayCompleted    int
	TodayFocusMinutes int
	LastResetDateKey  string
}

// Totals are lifetime tallies.
type Totals struct {
	SessionsCompleted  int
	FocusMinutes       int
	LastSessionMinutes int
}

type Engine struct {
	kv       KV
	clock    Clock
	notifier Notifier
	presence Presence
	cues     Cues
	log      zerolog.Logger

	timer      TimerState
	cancelTick func()
	breakQuote string

	sessions     *ledger.Ledger[store.SessionEntry]
	water        *ledger.Ledger[store.WaterLogEntry]
	waterHistory *ledger.Rollup[store.DailyWaterRecord]
	waterTotal   int
	waterDateKey string

	counters     Counters
	totals       Totals
	streak       StreakState
	achievements *Achievements
	notices      []AchievementID
}

type Option func(*Engine)

func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

func WithNotifier(n Notifier) Option { return func(e *Engine) { e.notifier = n } }

func WithPresence(p Presence) Option { return func(e *Engine) { e.presence = p } }

func WithCues(c Cues) Option { return func(e *Engine) { e.cues = c } }

func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

// New loads all persisted state from kv, applies any pending daily rollover
// and resumes a timer that was running when the previous process exited.
func New(kv KV, opts ...Option) *Engine {
	e := &Engine{
		kv:       kv,
		clock:    NewLoopClock(nil),
		notifier: nopNotifier{},
		presence: nopPresence{},
		cues:     nopCues{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.load()

	now := e.clock.Now()
	e.rollover(now)
	e.trimSessions(now)
	e.restoreTimer(now)
	return e
}

func (e *Engine) dateKey(t time.Time) string { return ledger.DateKey(t, t.Location()) }

// rollover zeroes today's counters and rolls the water ledger into the
// history when the local calendar day has changed since they were last used.
func (e *Engine) rollover(now time.Time) {
	today := e.dateKey(now)

	if e.counters.LastResetDateKey != today {
		e.counters = Counters{LastResetDateKey: today}
		e.saveCounters()
	}

	if e.waterDateKey != today {
		if e.waterDateKey != "" && e.waterTotal > 0 {
			e.waterHistory.Append(store.DailyWaterRecord{
				DateKey:          e.waterDateKey,
				TotalMilliliters: e.waterTotal,
			})
			e.saveWaterHistory()
		}
		e.waterTotal = 0
		e.water.Clear()
		e.waterDateKey = today
		e.saveWater()
	}
}

func (e *Engine) trimSessions(now time.Time) {
	if e.sessions.RetentionTrim(now, SessionRetentionDays) > 0 {
		e.saveSessions()
	}
}

// touch is run at the top of every public call.
func (e *Engine) touch() time.Time {
	now := e.clock.Now()
	e.rollover(now)
	e.trimSessions(now)
	return now
}

func (e *Engine) Counters() Counters {
	e.touch()
	return e.counters
}

func (e *Engine) Totals() Totals { return e.totals }

func (e *Engine) Streak() StreakState { return e.streak }

// Sessions returns the retained session ledger, oldest first.
func (e *Engine) Sessions() []store.SessionEntry {
	e.touch()
	return e.sessions.All()
}
