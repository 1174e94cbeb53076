package engine

import (
	"testing"
	"time"

	"github.com/sadopc/upfocus/internal/store"
)

func TestCreditCompletion(t *testing.T) {
	tests := []struct {
		name     string
		start    StreakState
		wantCur  int
		wantBest int
		wantKey  string
		changed  bool
	}{
		{"first ever", StreakState{}, 1, 1, "2026-03-10", true},
		{"same day", StreakState{Current: 3, Best: 5, LastCreditedDateKey: "2026-03-10"}, 3, 5, "2026-03-10", false},
		{"yesterday", StreakState{Current: 3, Best: 3, LastCreditedDateKey: "2026-03-09"}, 4, 4, "2026-03-10", true},
		{"gap resets", StreakState{Current: 6, Best: 9, LastCreditedDateKey: "2026-03-07"}, 1, 9, "2026-03-10", true},
		{"clock went back", StreakState{Current: 2, Best: 2, LastCreditedDateKey: "2026-03-12"}, 2, 2, "2026-03-12", false},
		{"unreadable key", StreakState{Current: 4, Best: 4, LastCreditedDateKey: "yesterday"}, 1, 4, "2026-03-10", true},
	}
	for _, tt := range tests {
		s := tt.start
		changed := s.CreditCompletion(day(2026, 3, 10, 14, 0))
		if changed != tt.changed {
			t.Errorf("%s: changed = %v, want %v", tt.name, changed, tt.changed)
		}
		if s.Current != tt.wantCur || s.Best != tt.wantBest || s.LastCreditedDateKey != tt.wantKey {
			t.Errorf("%s: got %+v, want current=%d best=%d key=%s", tt.name, s, tt.wantCur, tt.wantBest, tt.wantKey)
		}
	}
}

func TestStreakAcrossMonthBoundary(t *testing.T) {
	s := StreakState{Current: 1, Best: 1, LastCreditedDateKey: "2026-02-28"}
	s.CreditCompletion(day(2026, 3, 1, 0, 5))
	if s.Current != 2 {
		t.Fatalf("Feb 28 to Mar 1 should continue the streak, got %d", s.Current)
	}
}

func TestStreakSessionsOnConsecutiveDays(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 9, 0))
	for i := 0; i < 3; i++ {
		// Two sessions a day only credit once.
		for j := 0; j < 2; j++ {
			h.eng.StartSession("", store.CategoryStudy, 1, 0)
			h.tickFor(60)
		}
		h.time.Advance(24 * time.Hour)
	}

	if s := h.eng.Streak(); s.Current != 3 || s.Best != 3 {
		t.Fatalf("unexpected streak %+v", s)
	}

	// Skip two days.
	h.time.Advance(48 * time.Hour)
	h.eng.StartSession("", store.CategoryStudy, 1, 0)
	h.tickFor(60)
	if s := h.eng.Streak(); s.Current != 1 || s.Best != 3 {
		t.Fatalf("gap should reset current only, got %+v", s)
	}
}
