package store

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createNoteAt is a test helper that creates a note and backdates it.
func createNoteAt(t *testing.T, s *Store, n Note, created time.Time) *Note {
	t.Helper()
	got, err := s.CreateNote(n)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	ts := created.UTC().Format(noteTimeLayout)
	if _, err := s.db.Exec(`UPDATE notes SET created_at = ?, updated_at = ? WHERE id = ?`, ts, ts, got.ID); err != nil {
		t.Fatalf("backdate note: %v", err)
	}
	return got
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/upfocus.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("currentStreak", "3"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: should succeed, keep data and not re-seed defaults over it
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, ok, err := s2.Get("currentStreak")
	if err != nil || !ok || v != "3" {
		t.Fatalf("value lost across reopen: %q %v %v", v, ok, err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Key/value
// ============================================================

func TestDefaultPreferencesSeeded(t *testing.T) {
	s := newTestStore(t)
	want := map[string]string{
		"workMinutes":      "25",
		"breakMinutes":     "5",
		"dailySessionGoal": "4",
		"dailyMinuteGoal":  "120",
		"waterGoalML":      "2000",
	}
	for k, v := range want {
		got, ok, err := s.Get(k)
		if err != nil || !ok || got != v {
			t.Errorf("%s = %q (%v, %v), want %q", k, got, ok, err, v)
		}
	}
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)
	v, ok, err := s.Get("nope")
	if err != nil {
		t.Fatal(err)
	}
	if ok || v != "" {
		t.Fatalf("missing key returned %q, %v", v, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t)
	s.Set("waterIntakeML", "250")
	if err := s.Set("waterIntakeML", "750"); err != nil {
		t.Fatal(err)
	}
	v, _, _ := s.Get("waterIntakeML")
	if v != "750" {
		t.Fatalf("expected 750, got %q", v)
	}

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, kv := range all {
		if kv.Key == "waterIntakeML" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one row for the key, got %d", count)
	}
}

func TestAllSortedByKey(t *testing.T) {
	s := newTestStore(t)
	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key > all[i].Key {
			t.Fatalf("keys out of order: %s before %s", all[i-1].Key, all[i].Key)
		}
	}
}

// ============================================================
// Retry
// ============================================================

func TestIsTransientSQLiteErr(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{errors.New("SQLITE_LOCKED: database table is locked"), true},
		{errors.New("no such table: kv"), false},
	}
	for _, tt := range tests {
		if got := isTransientSQLiteErr(tt.err); got != tt.want {
			t.Errorf("isTransientSQLiteErr(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestRetryOnContention(t *testing.T) {
	calls := 0
	err := retryOnContention(func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("expected success on third call, got err=%v calls=%d", err, calls)
	}

	calls = 0
	permanent := errors.New("constraint failed")
	err = retryOnContention(func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Fatalf("non-transient error should not retry, got err=%v calls=%d", err, calls)
	}

	calls = 0
	err = retryOnContention(func() error {
		calls++
		return errors.New("database is locked")
	})
	if err == nil || calls != maxWriteRetries+1 {
		t.Fatalf("expected give up after %d calls, got err=%v calls=%d", maxWriteRetries+1, err, calls)
	}
}

// ============================================================
// Notes
// ============================================================

func TestCreateAndGetNote(t *testing.T) {
	s := newTestStore(t)
	n, err := s.CreateNote(Note{Title: "Chapter 4", Content: "summary", Category: CategoryWork, LinkedTask: "Essay"})
	if err != nil {
		t.Fatal(err)
	}
	if n.ID == "" {
		t.Fatal("expected an id")
	}
	if n.ColorTag != "blue" {
		t.Fatalf("default colour = %q, want blue", n.ColorTag)
	}
	if n.CreatedAt.IsZero() || !n.CreatedAt.Equal(n.UpdatedAt) {
		t.Fatalf("unexpected timestamps %v %v", n.CreatedAt, n.UpdatedAt)
	}

	got, err := s.GetNote(n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Chapter 4" || got.LinkedTask != "Essay" || got.Category != CategoryWork {
		t.Fatalf("unexpected note %+v", got)
	}
}

func TestCreateNoteValidation(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateNote(Note{Title: "   "}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
	n, err := s.CreateNote(Note{Title: "x", Category: "Gaming"})
	if err != nil {
		t.Fatal(err)
	}
	if n.Category != CategoryStudy {
		t.Fatalf("unknown category should become Study, got %q", n.Category)
	}
}

func TestGetNoteNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetNote("missing"); err == nil {
		t.Fatal("expected error")
	}
}

func TestListNotesOrdering(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := createNoteAt(t, s, Note{Title: "a"}, base)
	b := createNoteAt(t, s, Note{Title: "b", Pinned: true}, base.Add(time.Hour))
	c := createNoteAt(t, s, Note{Title: "c"}, base.Add(2*time.Hour))

	notes, err := s.ListNotes(NoteFilter{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{b.ID, c.ID, a.ID}
	for i, id := range want {
		if notes[i].ID != id {
			t.Fatalf("newest first with pinned on top: got %v", titles(notes))
		}
	}

	notes, _ = s.ListNotes(NoteFilter{OldestFirst: true})
	want = []string{b.ID, a.ID, c.ID}
	for i, id := range want {
		if notes[i].ID != id {
			t.Fatalf("oldest first with pinned on top: got %v", titles(notes))
		}
	}
}

func TestListNotesFilters(t *testing.T) {
	s := newTestStore(t)
	s.CreateNote(Note{Title: "Derivatives", Content: "chain rule", Category: CategoryStudy})
	s.CreateNote(Note{Title: "Standup", Content: "blockers", Category: CategoryWork, LinkedTask: "Sprint review"})
	s.CreateNote(Note{Title: "Run", Category: CategoryHealth})

	work := CategoryWork
	notes, err := s.ListNotes(NoteFilter{Category: &work})
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].Title != "Standup" {
		t.Fatalf("category filter: %v", titles(notes))
	}

	for q, want := range map[string]string{"chain": "Derivatives", "sprint": "Standup", "RUN": "Run"} {
		notes, _ := s.ListNotes(NoteFilter{Search: q})
		if len(notes) != 1 || notes[0].Title != want {
			t.Errorf("search %q: got %v, want [%s]", q, titles(notes), want)
		}
	}

	notes, _ = s.ListNotes(NoteFilter{Search: "zzz"})
	if len(notes) != 0 {
		t.Fatalf("expected no matches, got %v", titles(notes))
	}
}

func TestUpdateNote(t *testing.T) {
	s := newTestStore(t)
	n := createNoteAt(t, s, Note{Title: "draft"}, time.Now().Add(-time.Hour))
	n, _ = s.GetNote(n.ID)

	n.Title = "final"
	n.Content = "done"
	n.Category = CategoryCreative
	if err := s.UpdateNote(*n); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetNote(n.ID)
	if got.Title != "final" || got.Content != "done" || got.Category != CategoryCreative {
		t.Fatalf("unexpected note %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatal("update should bump updated_at")
	}

	n.Title = ""
	if err := s.UpdateNote(*n); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
}

func TestToggleNotePinAndColor(t *testing.T) {
	s := newTestStore(t)
	n, _ := s.CreateNote(Note{Title: "pin me"})

	s.ToggleNotePin(n.ID)
	got, _ := s.GetNote(n.ID)
	if !got.Pinned {
		t.Fatal("expected pinned")
	}
	s.ToggleNotePin(n.ID)
	got, _ = s.GetNote(n.ID)
	if got.Pinned {
		t.Fatal("expected unpinned")
	}

	if err := s.SetNoteColor(n.ID, "orange"); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetNote(n.ID)
	if got.ColorTag != "orange" {
		t.Fatalf("colour = %q, want orange", got.ColorTag)
	}
}

func TestDeleteNote(t *testing.T) {
	s := newTestStore(t)
	n, _ := s.CreateNote(Note{Title: "bye"})
	if err := s.DeleteNote(n.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetNote(n.ID); err == nil {
		t.Fatal("note should be gone")
	}
}

func titles(notes []Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}
