package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/upfocus/internal/engine"
	"github.com/sadopc/upfocus/internal/store"
)

// focusModel drives the session timer. It renders from a snapshot taken
// synchronously from the engine on every tick and key press.
type focusModel struct {
	eng    *engine.Engine
	width  int
	height int

	state     engine.TimerState
	remaining time.Duration
	progress  float64
	quote     string
	counters  engine.Counters
	prefs     engine.Preferences
	streak    engine.StreakState

	lastTask     string
	lastCategory store.Category

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTask     *string
	formCategory *string
	formFocus    *string
	formBreak    *string
}

func newFocusModel(eng *engine.Engine) focusModel {
	task, cat, f, b := "", string(store.CategoryStudy), "", ""
	m := focusModel{
		eng:          eng,
		lastCategory: store.CategoryStudy,
		formTask:     &task,
		formCategory: &cat,
		formFocus:    &f,
		formBreak:    &b,
	}
	m.refresh()
	return m
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f *focusModel) refresh() {
	f.state = f.eng.State()
	f.remaining = f.eng.Remaining()
	f.progress = f.eng.Progress()
	f.quote = f.eng.BreakQuote()
	f.counters = f.eng.Counters()
	f.prefs = f.eng.Preferences()
	f.streak = f.eng.Streak()
	if f.state.Phase != engine.PhaseIdle {
		f.lastTask = f.state.TaskLabel
		f.lastCategory = f.state.Category
	}
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	if f.formActive && f.form != nil {
		return f.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Start):
			return f.showForm()
		case key.Matches(msg, keys.QuickStart):
			if f.state.Phase == engine.PhaseIdle {
				return f.start(f.lastTask, f.lastCategory, f.prefs.WorkMinutes, f.prefs.BreakMinutes)
			}
		case key.Matches(msg, keys.Stop):
			if f.state.Phase != engine.PhaseIdle {
				f.eng.Stop()
				f.refresh()
				return f, func() tea.Msg { return statusMsg{text: "Session stopped"} }
			}
		}
	}
	return f, nil
}

func (f focusModel) start(task string, cat store.Category, focusMin, breakMin int) (focusModel, tea.Cmd) {
	if err := f.eng.StartSession(task, cat, focusMin, breakMin); err != nil {
		return f, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	f.refresh()
	return f, func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Focusing for %d min", focusMin)}
	}
}

func (f focusModel) showForm() (focusModel, tea.Cmd) {
	f.prefs = f.eng.Preferences()
	*f.formTask = f.lastTask
	*f.formCategory = string(f.lastCategory)
	*f.formFocus = strconv.Itoa(f.prefs.WorkMinutes)
	*f.formBreak = strconv.Itoa(f.prefs.BreakMinutes)

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Placeholder("What are you working on?").Value(f.formTask),
			huh.NewSelect[string]().Title("Category").Options(categoryOptions()...).Value(f.formCategory),
			huh.NewInput().Title("Focus (min)").Validate(intAtLeast(1)).Value(f.formFocus),
			huh.NewInput().Title("Break (min)").Validate(intAtLeast(0)).Value(f.formBreak),
		),
	).WithShowHelp(true).WithShowErrors(true)

	f.formActive = true
	return f, f.form.Init()
}

func (f focusModel) updateForm(msg tea.Msg) (focusModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.formActive = false
			f.form = nil
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.formActive = false
		focusMin, _ := strconv.Atoi(strings.TrimSpace(*f.formFocus))
		breakMin, _ := strconv.Atoi(strings.TrimSpace(*f.formBreak))
		f.lastTask = strings.TrimSpace(*f.formTask)
		f.lastCategory = store.Category(*f.formCategory)
		return f.start(f.lastTask, f.lastCategory, focusMin, breakMin)
	}
	return f, cmd
}

func (f focusModel) view() string {
	w := f.width - 4

	if f.formActive && f.form != nil {
		title := titleStyle.Render("New Session")
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", f.form.View()))
	}

	title := titleStyle.Render("Focus Timer")

	var timeDisplay, phaseLabel, detail string
	switch f.state.Phase {
	case engine.PhaseIdle:
		timeDisplay = timerStyle.Width(w - 6).Render(formatClock(time.Duration(f.prefs.WorkMinutes) * time.Minute))
		phaseLabel = mutedStyle.Render("Ready to focus")
		detail = mutedStyle.Render("s: new session  enter: quick start")
	case engine.PhaseFocusing:
		timeDisplay = accentStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatClock(f.remaining))
		phaseLabel = accentStyle.Bold(true).Render("FOCUS")
		detail = f.renderTask()
	case engine.PhaseOnBreak:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatClock(f.remaining))
		phaseLabel = successStyle.Bold(true).Render("BREAK")
		detail = highlightStyle.Render(f.quote)
	}

	rows := []string{title, "", timeDisplay, phaseLabel, ""}
	if f.state.Phase != engine.PhaseIdle {
		rows = append(rows, progressBar(min(40, max(10, w-10)), f.progress), "")
	}
	rows = append(rows, detail, "", f.renderToday())

	var controls string
	switch f.state.Phase {
	case engine.PhaseIdle:
		controls = mutedStyle.Render("s: start  enter: quick start  q: quit")
	default:
		controls = mutedStyle.Render("x: stop  s: restart")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, append(rows, "", controls)...),
	)
}

func (f focusModel) renderTask() string {
	label := f.state.TaskLabel
	if label == "" {
		label = "Untitled session"
	}
	return fmt.Sprintf("%s %s %s", f.state.Category.Icon(), highlightStyle.Render(label),
		mutedStyle.Render(string(f.state.Category)))
}

func (f focusModel) renderToday() string {
	sessions := fmt.Sprintf("%d/%d sessions", f.counters.TodayCompleted, f.prefs.DailySessionGoal)
	minutes := fmt.Sprintf("%d/%d min", f.counters.TodayFocusMinutes, f.prefs.DailyMinuteGoal)
	streak := fmt.Sprintf("🔥 %d", f.streak.Current)
	return mutedStyle.Render("Today  ") + sessions + mutedStyle.Render("  ·  ") + minutes + mutedStyle.Render("  ·  ") + streak
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(store.Categories))
	for i, c := range store.Categories {
		opts[i] = huh.NewOption(c.Icon()+" "+string(c), string(c))
	}
	return opts
}

var errNotNumber = errors.New("enter a whole number")

// intAtLeast validates a form field as an integer no smaller than floor.
func intAtLeast(floor int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errNotNumber
		}
		if n < floor {
			return fmt.Errorf("must be at least %d", floor)
		}
		return nil
	}
}
