package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/upfocus/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewFocus viewState = iota
	viewInsights
	viewWater
	viewNotes
	viewSettings
)

var viewNames = []string{"Focus", "Insights", "Water", "Notes", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

type notesDataMsg struct {
	notes []store.Note
	err   error
}

// --- Helpers ---

// formatClock renders a countdown as MM:SS, or H:MM:SS past an hour.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

// progressBar draws frac (0..1) as a bar of width cells.
func progressBar(width int, frac float64) string {
	if width < 1 {
		return ""
	}
	frac = max(0, min(1, frac))
	filled := int(frac*float64(width) + 0.5)
	return successStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}
