package engine

import (
	"testing"

	"github.com/sadopc/upfocus/internal/store"
)

func TestEvaluateUnlocksEveryMetRule(t *testing.T) {
	a := NewAchievements(nil)
	in := EvalInput{TotalSessions: 10, LastSessionMinutes: 60, CurrentStreak: 7, TotalFocusMinutes: 600, Hour: 23}

	got := a.Evaluate(in)
	if len(got) != len(Catalogue) {
		t.Fatalf("expected all %d unlocked, got %v", len(Catalogue), got)
	}
	for i, info := range Catalogue {
		if got[i] != info.ID {
			t.Fatalf("unlock order %v does not follow the catalogue", got)
		}
		if !a.IsUnlocked(info.ID) {
			t.Fatalf("%q should be unlocked", info.ID)
		}
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	a := NewAchievements(nil)
	in := EvalInput{TotalSessions: 1, LastSessionMinutes: 25, Hour: 10}

	if got := a.Evaluate(in); len(got) != 1 || got[0] != FirstSession {
		t.Fatalf("expected firstSession, got %v", got)
	}
	if got := a.Evaluate(in); len(got) != 0 {
		t.Fatalf("second evaluation must not unlock anything, got %v", got)
	}
	if len(a.Unlocked()) != 1 {
		t.Fatal("unlocked set should hold exactly one id")
	}
}

func TestNewAchievementsAcceptsTitles(t *testing.T) {
	a := NewAchievements(map[string]bool{
		"First Focus": true,
		"marathon":    true,
		"Night Owl":   false,
		"Speedrun":    true,
	})
	if !a.IsUnlocked(FirstSession) || !a.IsUnlocked(Marathon) {
		t.Fatal("stored titles and ids should both restore")
	}
	if a.IsUnlocked(NightOwl) {
		t.Fatal("false entries should be ignored")
	}
	if len(a.Unlocked()) != 2 {
		t.Fatalf("unknown names should be dropped, got %v", a.Unlocked())
	}
}

func TestLookup(t *testing.T) {
	info, ok := Lookup(WeekStreak)
	if !ok || info.Title != "On Fire" {
		t.Fatalf("unexpected lookup %+v", info)
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatal("unknown id should not resolve")
	}
}

func TestLateMarathonQueuesNotices(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 21, 45))
	h.eng.StartSession("Thesis", store.CategoryStudy, 60, 0)
	h.tickFor(60 * 60)

	for _, want := range []AchievementID{FirstSession, Marathon, NightOwl} {
		id, ok := h.eng.ConsumeNewlyUnlocked()
		if !ok || id != want {
			t.Fatalf("expected %q, got %q (%v)", want, id, ok)
		}
		if !h.eng.IsUnlocked(want) {
			t.Fatalf("%q should be in the unlocked set once surfaced", want)
		}
	}
	if _, ok := h.eng.ConsumeNewlyUnlocked(); ok {
		t.Fatal("queue should be drained")
	}
	if h.eng.IsUnlocked(HundredMinutes) {
		t.Fatal("60 total minutes must not unlock the 100 minute achievement")
	}
}

func TestQueuedNoticesSurviveRestart(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 22, 0))
	h.eng.StartSession("", store.CategoryStudy, 60, 0)
	h.tickFor(60 * 60)

	r := h.reopen()
	for _, id := range []AchievementID{FirstSession, Marathon, NightOwl} {
		if !r.eng.IsUnlocked(id) {
			t.Fatalf("%q should be unlocked after restart even though its notice was never shown", id)
		}
	}
	if id, ok := r.eng.ConsumeNewlyUnlocked(); !ok || id != FirstSession {
		t.Fatalf("expected firstSession first, got %q (%v)", id, ok)
	}

	r = r.reopen()
	for _, want := range []AchievementID{Marathon, NightOwl} {
		if id, ok := r.eng.ConsumeNewlyUnlocked(); !ok || id != want {
			t.Fatalf("expected %q, got %q (%v)", want, id, ok)
		}
	}
	if _, ok := r.eng.ConsumeNewlyUnlocked(); ok {
		t.Fatal("queue should be drained")
	}
}

func TestUnlocksQueueBehindUnshownNotices(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 21, 45))
	h.eng.StartSession("", store.CategoryStudy, 60, 0)
	h.tickFor(60 * 60)
	if id, _ := h.eng.ConsumeNewlyUnlocked(); id != FirstSession {
		t.Fatalf("expected firstSession, got %q", id)
	}

	h.eng.StartSession("", store.CategoryStudy, 45, 0)
	h.tickFor(45 * 60)

	if !h.eng.IsUnlocked(Marathon) || !h.eng.IsUnlocked(HundredMinutes) {
		t.Fatalf("met rules must unlock regardless of the queue, got %v", h.eng.UnlockedAchievements())
	}
	for _, want := range []AchievementID{Marathon, NightOwl, HundredMinutes} {
		if id, ok := h.eng.ConsumeNewlyUnlocked(); !ok || id != want {
			t.Fatalf("expected %q, got %q (%v)", want, id, ok)
		}
	}
}

func TestAchievementsPersist(t *testing.T) {
	h := newHarness(t, newTestStore(t), day(2026, 3, 10, 9, 0))
	h.eng.StartSession("", store.CategoryStudy, 1, 0)
	h.tickFor(60)
	if id, _ := h.eng.ConsumeNewlyUnlocked(); id != FirstSession {
		t.Fatalf("expected firstSession, got %q", id)
	}

	r := h.reopen()
	if !r.eng.IsUnlocked(FirstSession) {
		t.Fatal("unlock should persist")
	}
	if _, ok := r.eng.ConsumeNewlyUnlocked(); ok {
		t.Fatal("a shown notice must not come back after restart")
	}

	r.eng.StartSession("", store.CategoryStudy, 1, 0)
	r.tickFor(60)
	if _, ok := r.eng.ConsumeNewlyUnlocked(); ok {
		t.Fatal("restored achievement must not unlock again")
	}
}
