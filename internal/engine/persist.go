package engine

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/upfocus/internal/ledger"
	"github.com/sadopc/upfocus/internal/store"
)

// Fixed keys in the durable store.
const (
	keySessionHistory     = "sessionHistory"
	keyTodaySessionCount  = "todaySessionCount"
	keyTodayFocusMinutes  = "todayFocusMinutes"
	keyLastResetDate      = "lastSessionDate"
	keyTotalSessions      = "totalSessionsCompleted"
	keyTotalFocusMinutes  = "totalFocusMinutes"
	keyLastSessionMinutes = "lastSessionMinutes"
	keyCurrentStreak      = "currentStreak"
	keyBestStreak         = "bestStreak"
	keyLastStreakDate     = "lastStreakDate"
	keyUnlocked           = "unlockedAchievements"
	keyPendingNotices     = "pendingAchievementNotices"
	keyWaterTotal         = "waterIntakeML"
	keyWaterLog           = "waterLogData"
	keyWaterDate          = "waterDate"
	keyWaterHistory       = "weeklyWaterHistoryData"
	keyTimerState         = "timerState"
)

func (e *Engine) load() {
	sessions, err := store.DecodeSessions(e.getString(keySessionHistory))
	e.decodeFailed(keySessionHistory, err)
	e.sessions = ledger.New(sessions)

	waterLog, err := store.DecodeWaterLog(e.getString(keyWaterLog))
	e.decodeFailed(keyWaterLog, err)
	e.water = ledger.New(waterLog)

	history, err := store.DecodeWaterHistory(e.getString(keyWaterHistory))
	e.decodeFailed(keyWaterHistory, err)
	e.waterHistory = ledger.NewRollup(WaterHistoryDays, history)

	e.waterTotal = e.getInt(keyWaterTotal)
	e.waterDateKey = e.getString(keyWaterDate)

	e.counters = Counters{
		TodayCompleted:    e.getInt(keyTodaySessionCount),
		TodayFocusMinutes: e.getInt(keyTodayFocusMinutes),
		LastResetDateKey:  e.getString(keyLastResetDate),
	}
	e.totals = Totals{
		SessionsCompleted:  e.getInt(keyTotalSessions),
		FocusMinutes:       e.getInt(keyTotalFocusMinutes),
		LastSessionMinutes: e.getInt(keyLastSessionMinutes),
	}
	e.streak = StreakState{
		Current:             e.getInt(keyCurrentStreak),
		Best:                e.getInt(keyBestStreak),
		LastCreditedDateKey: e.getString(keyLastStreakDate),
	}
	if e.streak.Best < e.streak.Current {
		e.streak.Best = e.streak.Current
	}

	unlocked, err := store.DecodeStringSet(e.getString(keyUnlocked))
	e.decodeFailed(keyUnlocked, err)
	e.achievements = NewAchievements(unlocked)

	queued, err := store.DecodeStringList(e.getString(keyPendingNotices))
	e.decodeFailed(keyPendingNotices, err)
	for _, raw := range queued {
		id := AchievementID(raw)
		if e.achievements.IsUnlocked(id) {
			e.notices = append(e.notices, id)
		}
	}
}

func (e *Engine) saveSessions() {
	blob, err := store.EncodeSessions(e.sessions.All())
	e.setBlob(keySessionHistory, blob, err)
}

func (e *Engine) saveCounters() {
	e.setInt(keyTodaySessionCount, e.counters.TodayCompleted)
	e.setInt(keyTodayFocusMinutes, e.counters.TodayFocusMinutes)
	e.set(keyLastResetDate, e.counters.LastResetDateKey)
}

func (e *Engine) saveTotals() {
	e.setInt(keyTotalSessions, e.totals.SessionsCompleted)
	e.setInt(keyTotalFocusMinutes, e.totals.FocusMinutes)
	e.setInt(keyLastSessionMinutes, e.totals.LastSessionMinutes)
}

func (e *Engine) saveStreak() {
	e.setInt(keyCurrentStreak, e.streak.Current)
	e.setInt(keyBestStreak, e.streak.Best)
	e.set(keyLastStreakDate, e.streak.LastCreditedDateKey)
}

// saveAchievements writes the unlocked set before the notice queue, so a
// queued notice always names a saved achievement.
func (e *Engine) saveAchievements() {
	blob, err := store.EncodeStringSet(e.achievements.ids())
	e.setBlob(keyUnlocked, blob, err)
	e.saveNotices()
}

func (e *Engine) saveNotices() {
	ids := make([]string, len(e.notices))
	for i, id := range e.notices {
		ids[i] = string(id)
	}
	blob, err := store.EncodeStringList(ids)
	e.setBlob(keyPendingNotices, blob, err)
}

func (e *Engine) saveWater() {
	e.setInt(keyWaterTotal, e.waterTotal)
	e.set(keyWaterDate, e.waterDateKey)
	blob, err := store.EncodeWaterLog(e.water.All())
	e.setBlob(keyWaterLog, blob, err)
}

func (e *Engine) saveWaterHistory() {
	blob, err := store.EncodeWaterHistory(e.waterHistory.Records())
	e.setBlob(keyWaterHistory, blob, err)
}

type timerWire struct {
	Phase        string    `json:"phase"`
	EndsAt       time.Time `json:"endsAt"`
	TaskLabel    string    `json:"taskLabel"`
	Category     string    `json:"category"`
	FocusMinutes int       `json:"focusMinutes"`
	BreakMinutes int       `json:"breakMinutes"`
}

func (e *Engine) saveTimer() {
	t := e.timer
	b, err := json.Marshal(timerWire{
		Phase:        t.Phase.String(),
		EndsAt:       t.EndsAt.UTC(),
		TaskLabel:    t.TaskLabel,
		Category:     string(t.Category),
		FocusMinutes: t.FocusMinutes,
		BreakMinutes: t.BreakMinutes,
	})
	e.setBlob(keyTimerState, string(b), err)
}

// loadTimer returns the persisted timer, or the idle state when nothing
// usable was stored.
func (e *Engine) loadTimer() TimerState {
	blob := e.getString(keyTimerState)
	if strings.TrimSpace(blob) == "" {
		return TimerState{}
	}
	var w timerWire
	if err := json.Unmarshal([]byte(blob), &w); err != nil {
		e.decodeFailed(keyTimerState, err)
		return TimerState{}
	}
	t := TimerState{
		Phase:        parsePhase(w.Phase),
		EndsAt:       w.EndsAt.In(e.clock.Now().Location()),
		TaskLabel:    w.TaskLabel,
		Category:     store.Category(w.Category),
		FocusMinutes: w.FocusMinutes,
		BreakMinutes: w.BreakMinutes,
	}
	if t.Phase == PhaseIdle || t.EndsAt.IsZero() || t.FocusMinutes <= 0 || t.BreakMinutes < 0 || !t.Category.Valid() {
		return TimerState{}
	}
	return t
}

func (e *Engine) getString(key string) string {
	v, _, err := e.kv.Get(key)
	if err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("store read failed")
		return ""
	}
	return v
}

func (e *Engine) getInt(key string) int {
	v := e.getString(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		e.log.Warn().Err(err).Str("key", key).Str("value", v).Msg("discarding unreadable counter")
		return 0
	}
	return n
}

func (e *Engine) set(key, value string) {
	if err := e.kv.Set(key, value); err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("store write failed")
	}
}

func (e *Engine) setInt(key string, n int) { e.set(key, strconv.Itoa(n)) }

func (e *Engine) setBlob(key, blob string, encodeErr error) {
	if encodeErr != nil {
		e.log.Warn().Err(encodeErr).Str("key", key).Msg("encode failed")
		return
	}
	e.set(key, blob)
}

func (e *Engine) decodeFailed(key string, err error) {
	if err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("corrupt blob replaced with empty default")
	}
}
