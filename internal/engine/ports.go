package engine

import (
	"time"

	"github.com/sadopc/upfocus/internal/store"
)

// KV is the durable string-keyed store the engine serializes its state into.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

var _ KV = (*store.Store)(nil)

// Notifier schedules user-visible completion notifications. Fire and forget.
type Notifier interface {
	Schedule(at time.Time, title, body string) error
	CancelAll()
}

// Presence mirrors the running timer into an out-of-app status surface.
// Best effort; implementations may do nothing.
type Presence interface {
	Start(taskLabel string, category store.Category, totalSeconds int, isBreak bool) error
	Update(remaining, total int, taskLabel, icon string, isBreak bool) error
	End()
}

// CueKind names a phase transition worth a sound or haptic.
type CueKind int

const (
	CueFocusStart CueKind = iota
	CueFocusEnd
	CueBreakEnd
)

func (k CueKind) String() string {
	switch k {
	case CueFocusStart:
		return "focus_start"
	case CueFocusEnd:
		return "focus_end"
	case CueBreakEnd:
		return "break_end"
	}
	return "unknown"
}

type Cues interface {
	Cue(kind CueKind)
}

type nopNotifier struct{}

func (nopNotifier) Schedule(time.Time, string, string) error { return nil }
func (nopNotifier) CancelAll()                               {}

type nopPresence struct{}

func (nopPresence) Start(string, store.Category, int, bool) error { return nil }
func (nopPresence) Update(int, int, string, string, bool) error   { return nil }
func (nopPresence) End()                                          {}

type nopCues struct{}

func (nopCues) Cue(CueKind) {}
