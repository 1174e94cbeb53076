package notify

import (
	"fmt"

	"github.com/sadopc/upfocus/internal/store"
)

// Snapshot is what the status line shows for the running timer.
type Snapshot struct {
	Active    bool
	TaskLabel string
	Icon      string
	Remaining int // seconds
	Total     int // seconds
	IsBreak   bool
}

// Status keeps the latest presence state for the TUI status line.
type Status struct {
	snap Snapshot
}

func NewStatus() *Status { return &Status{} }

func (s *Status) Start(taskLabel string, category store.Category, totalSeconds int, isBreak bool) error {
	if totalSeconds < 0 {
		return fmt.Errorf("presence start: negative total %d", totalSeconds)
	}
	s.snap = Snapshot{
		Active:    true,
		TaskLabel: taskLabel,
		Icon:      category.Icon(),
		Remaining: totalSeconds,
		Total:     totalSeconds,
		IsBreak:   isBreak,
	}
	return nil
}

func (s *Status) Update(remaining, total int, taskLabel, icon string, isBreak bool) error {
	if !s.snap.Active {
		return fmt.Errorf("presence update: not started")
	}
	s.snap = Snapshot{
		Active:    true,
		TaskLabel: taskLabel,
		Icon:      icon,
		Remaining: remaining,
		Total:     total,
		IsBreak:   isBreak,
	}
	return nil
}

func (s *Status) End() { s.snap = Snapshot{} }

func (s *Status) Snapshot() Snapshot { return s.snap }

// Line renders the snapshot as a one-line summary, empty when inactive.
func (s *Status) Line() string {
	if !s.snap.Active {
		return ""
	}
	label := s.snap.TaskLabel
	if label == "" {
		label = "Focus"
	}
	if s.snap.IsBreak {
		label = "Break"
	}
	return fmt.Sprintf("%s %s %02d:%02d", s.snap.Icon, label, s.snap.Remaining/60, s.snap.Remaining%60)
}
