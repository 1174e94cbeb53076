package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/upfocus/internal/store"
)

// ============================================================
// Water
// ============================================================

func TestLogWater(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 9, 0))

	for _, ml := range []int{250, 500} {
		if err := h.eng.LogWater(ml); err != nil {
			t.Fatal(err)
		}
	}
	if got := h.eng.WaterToday(); got != 750 {
		t.Fatalf("total = %d, want 750", got)
	}
	if len(h.eng.WaterLog()) != 2 {
		t.Fatal("expected two log entries")
	}
	if p := h.eng.WaterProgress(); p != 0.375 {
		t.Fatalf("progress = %v, want 0.375", p)
	}

	for _, ml := range []int{0, -100} {
		if err := h.eng.LogWater(ml); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("LogWater(%d) err = %v, want ErrInvalidAmount", ml, err)
		}
	}
	if h.eng.WaterToday() != 750 {
		t.Fatal("rejected amounts must not change the total")
	}
}

func TestResetWater(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 9, 0))
	h.eng.LogWater(500)
	h.eng.ResetWater()

	if h.eng.WaterToday() != 0 || len(h.eng.WaterLog()) != 0 {
		t.Fatal("reset should clear today")
	}
	if len(h.eng.WaterHistory()) != 0 {
		t.Fatal("reset must not write history")
	}
}

func TestWaterRollsOverAtMidnight(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 23, 50))
	h.eng.LogWater(500)

	h.time.Advance(20 * time.Minute)
	if got := h.eng.WaterToday(); got != 0 {
		t.Fatalf("new day total = %d, want 0", got)
	}
	hist := h.eng.WaterHistory()
	if len(hist) != 1 || hist[0] != (store.DailyWaterRecord{DateKey: "2026-03-10", TotalMilliliters: 500}) {
		t.Fatalf("unexpected history %+v", hist)
	}
	if len(h.eng.WaterLog()) != 0 {
		t.Fatal("log should clear on rollover")
	}

	h.eng.LogWater(250)
	if len(h.eng.WaterHistory()) != 1 {
		t.Fatal("same day writes must not add history")
	}
}

func TestWaterHistoryKeepsSevenDays(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 1, 12, 0))
	for i := 0; i < 10; i++ {
		h.eng.LogWater(100 * (i + 1))
		h.time.Advance(24 * time.Hour)
	}
	hist := h.eng.WaterHistory()
	if len(hist) != WaterHistoryDays {
		t.Fatalf("history len = %d, want %d", len(hist), WaterHistoryDays)
	}
	if hist[0].DateKey != "2026-03-04" || hist[6].DateKey != "2026-03-10" {
		t.Fatalf("unexpected window %s..%s", hist[0].DateKey, hist[6].DateKey)
	}
	if hist[6].TotalMilliliters != 1000 {
		t.Fatalf("newest record = %d, want 1000", hist[6].TotalMilliliters)
	}
}

func TestEmptyDayAddsNoHistory(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 9, 0))
	h.time.Advance(3 * 24 * time.Hour)
	if len(h.eng.WaterHistory()) != 0 {
		t.Fatal("days without water should not produce records")
	}
}

func TestWeeklyWaterData(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 9, 9, 0))
	h.eng.LogWater(800)
	h.time.Advance(24 * time.Hour)
	h.eng.LogWater(300)

	data := h.eng.WeeklyWaterData()
	if len(data) != 7 {
		t.Fatalf("expected 7 days, got %d", len(data))
	}
	if data[5].Key != "2026-03-09" || data[5].Value != 800 {
		t.Fatalf("yesterday = %+v", data[5])
	}
	if data[6].Key != "2026-03-10" || data[6].Value != 300 {
		t.Fatalf("today = %+v", data[6])
	}
}

// ============================================================
// Counters, retention and aggregates
// ============================================================

func TestCountersResetOnNewDay(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 22, 0))
	h.eng.StartSession("", store.CategoryStudy, 25, 0)
	h.tickFor(25 * 60)

	h.time.Advance(2 * time.Hour)
	c := h.eng.Counters()
	if c.TodayCompleted != 0 || c.TodayFocusMinutes != 0 || c.LastResetDateKey != "2026-03-11" {
		t.Fatalf("unexpected counters %+v", c)
	}
	if h.eng.Totals().SessionsCompleted != 1 {
		t.Fatal("lifetime totals must survive rollover")
	}
	if len(h.eng.Sessions()) != 1 {
		t.Fatal("ledger must survive rollover")
	}
}

func TestCountersResetWhileEngineClosed(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 9, 0))
	h.eng.StartSession("", store.CategoryStudy, 25, 0)
	h.tickFor(25 * 60)

	h.time.Advance(48 * time.Hour)
	r := h.reopen()
	if r.eng.Counters().TodayCompleted != 0 {
		t.Fatal("counters should reset on load after midnight")
	}
}

func TestSessionRetention(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 2, 1, 9, 0))
	complete := func() {
		h.eng.StartSession("", store.CategoryWork, 1, 0)
		h.tickFor(60)
	}
	complete() // 2026-02-01 09:01, 29 days before the check
	h.time.Advance(2 * 24 * time.Hour)
	complete() // 2026-02-03 09:02, 27 days before the check

	h.time.Advance(27 * 24 * time.Hour)
	sessions := h.eng.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected only the 27 day old session, got %d", len(sessions))
	}
	if got := sessions[0].OccurredAt.Format("2006-01-02"); got != "2026-02-03" {
		t.Fatalf("kept the wrong session: %s", got)
	}

	r := h.reopen()
	if len(r.eng.Sessions()) != 1 {
		t.Fatal("trimmed ledger should be persisted")
	}
}

func TestWeeklyFocusAndHeatmap(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 9, 9, 0))
	h.eng.StartSession("", store.CategoryStudy, 20, 0)
	h.tickFor(20 * 60)
	h.time.Advance(24 * time.Hour)
	h.eng.StartSession("", store.CategoryStudy, 30, 0)
	h.tickFor(30 * 60)
	h.eng.StartSession("", store.CategoryHealth, 10, 0)
	h.tickFor(10 * 60)

	week := h.eng.WeeklyFocusData()
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if week[5].Value != 20 || week[6].Value != 40 {
		t.Fatalf("unexpected last two days: %+v %+v", week[5], week[6])
	}
	if week[6].Label != "Tue" {
		t.Fatalf("2026-03-10 label = %q, want Tue", week[6].Label)
	}

	heat := h.eng.HeatmapData()
	if len(heat) != HeatmapDays || heat[HeatmapDays-1].Key != "2026-03-10" {
		t.Fatalf("unexpected heatmap tail %+v", heat[len(heat)-1])
	}
	sum := 0
	for _, d := range heat {
		sum += d.Value
	}
	if sum != 60 {
		t.Fatalf("heatmap total = %d, want 60", sum)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 9, 0))
	for _, s := range []struct {
		c store.Category
		m int
	}{{store.CategoryWork, 5}, {store.CategoryHealth, 3}, {store.CategoryWork, 2}} {
		h.eng.StartSession("", s.c, s.m, 0)
		h.tickFor(s.m * 60)
	}

	got := h.eng.CategoryBreakdown()
	want := map[store.Category]int{store.CategoryStudy: 0, store.CategoryWork: 7, store.CategoryCreative: 0, store.CategoryHealth: 3}
	if len(got) != len(store.Categories) {
		t.Fatalf("expected one row per category, got %d", len(got))
	}
	for i, row := range got {
		if row.Category != store.Categories[i] {
			t.Fatalf("rows out of category order: %+v", got)
		}
		if row.Minutes != want[row.Category] {
			t.Errorf("%s = %d, want %d", row.Category, row.Minutes, want[row.Category])
		}
	}
}

// ============================================================
// Preferences
// ============================================================

func TestPreferencesDefaults(t *testing.T) {
	for name, kv := range map[string]KV{"sqlite": newTestStore(t), "empty map": newMapKV()} {
		h := newHarness(t, kv, day(2026, 3, 10, 9, 0))
		if got := h.eng.Preferences(); got != DefaultPreferences() {
			t.Errorf("%s: preferences = %+v, want defaults", name, got)
		}
	}
}

func TestSetPreferences(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 9, 0))
	want := Preferences{WorkMinutes: 50, BreakMinutes: 10, DailySessionGoal: 6, DailyMinuteGoal: 300, WaterGoalML: 2500}
	if err := h.eng.SetPreferences(want); err != nil {
		t.Fatal(err)
	}
	if h.eng.WaterGoal() != 2500 {
		t.Fatalf("water goal = %d", h.eng.WaterGoal())
	}
	if got := h.reopen().eng.Preferences(); got != want {
		t.Fatalf("preferences = %+v, want %+v", got, want)
	}

	bad := want
	bad.WorkMinutes = 0
	if err := h.eng.SetPreferences(bad); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("err = %v, want ErrInvalidDuration", err)
	}
	bad = want
	bad.WaterGoalML = -1
	if err := h.eng.SetPreferences(bad); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	if h.eng.Preferences() != want {
		t.Fatal("rejected preferences must not be stored")
	}
}

func TestSetPreferencesWritesInOrder(t *testing.T) {
	kv := newMapKV()
	h := newHarness(t, kv, day(2026, 3, 10, 9, 0))
	kv.failKey = keyDailySessionGoal

	err := h.eng.SetPreferences(Preferences{WorkMinutes: 50, BreakMinutes: 10, DailySessionGoal: 6, DailyMinuteGoal: 300, WaterGoalML: 2500})
	if err == nil {
		t.Fatal("expected the failed write to surface")
	}
	for key, want := range map[string]string{keyWorkMinutes: "50", keyBreakMinutes: "10"} {
		if kv.data[key] != want {
			t.Fatalf("%s = %q, want %q written before the failure", key, kv.data[key], want)
		}
	}
	for _, key := range []string{keyDailySessionGoal, keyDailyMinuteGoal, keyWaterGoalML} {
		if _, ok := kv.data[key]; ok {
			t.Fatalf("%s should not be written after the failure", key)
		}
	}
}

func TestPreferencesIgnoreUnusableValues(t *testing.T) {
	kv := newMapKV()
	kv.data[keyWorkMinutes] = "zero"
	kv.data[keyBreakMinutes] = "-3"
	kv.data[keyWaterGoalML] = "3000"
	h := newHarness(t, kv, day(2026, 3, 10, 9, 0))

	p := h.eng.Preferences()
	if p.WorkMinutes != 25 || p.BreakMinutes != 5 || p.WaterGoalML != 3000 {
		t.Fatalf("unexpected preferences %+v", p)
	}
}
