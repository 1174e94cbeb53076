package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/upfocus/internal/engine"
)

type settingsModel struct {
	eng    *engine.Engine
	width  int
	height int

	prefs      engine.Preferences
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	workMinutes  *string
	breakMinutes *string
	sessionGoal  *string
	minuteGoal   *string
	waterGoal    *string
}

func newSettingsModel(eng *engine.Engine) settingsModel {
	wm, bm, sg, mg, wg := "", "", "", "", ""
	return settingsModel{
		eng:          eng,
		workMinutes:  &wm,
		breakMinutes: &bm,
		sessionGoal:  &sg,
		minuteGoal:   &mg,
		waterGoal:    &wg,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *settingsModel) refresh() {
	s.prefs = s.eng.Preferences()
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	s.refresh()
	*s.workMinutes = strconv.Itoa(s.prefs.WorkMinutes)
	*s.breakMinutes = strconv.Itoa(s.prefs.BreakMinutes)
	*s.sessionGoal = strconv.Itoa(s.prefs.DailySessionGoal)
	*s.minuteGoal = strconv.Itoa(s.prefs.DailyMinuteGoal)
	*s.waterGoal = strconv.Itoa(s.prefs.WaterGoalML)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus length (min)").Validate(intAtLeast(1)).Value(s.workMinutes),
			huh.NewInput().Title("Break length (min)").Validate(intAtLeast(0)).Value(s.breakMinutes),
		).Title("Timer"),
		huh.NewGroup(
			huh.NewInput().Title("Sessions per day").Validate(intAtLeast(0)).Value(s.sessionGoal),
			huh.NewInput().Title("Focus minutes per day").Validate(intAtLeast(0)).Value(s.minuteGoal),
			huh.NewInput().Title("Water per day (ml)").Validate(intAtLeast(0)).Value(s.waterGoal),
		).Title("Daily goals"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		cmd := s.save()
		return s, cmd
	}

	return s, cmd
}

func (s *settingsModel) save() tea.Cmd {
	p := engine.Preferences{
		WorkMinutes:      atoi(*s.workMinutes),
		BreakMinutes:     atoi(*s.breakMinutes),
		DailySessionGoal: atoi(*s.sessionGoal),
		DailyMinuteGoal:  atoi(*s.minuteGoal),
		WaterGoalML:      atoi(*s.waterGoal),
	}
	if err := s.eng.SetPreferences(p); err != nil {
		return func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
	}
	s.refresh()
	return func() tea.Msg { return statusMsg{text: "Settings saved"} }
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render(label), highlightStyle.Render(value))
	}

	rows := []string{
		title,
		"",
		mutedStyle.Render("Timer"),
		row("Focus length", fmt.Sprintf("%d min", s.prefs.WorkMinutes)),
		row("Break length", fmt.Sprintf("%d min", s.prefs.BreakMinutes)),
		"",
		mutedStyle.Render("Daily goals"),
		row("Sessions", strconv.Itoa(s.prefs.DailySessionGoal)),
		row("Focus minutes", formatMinutes(s.prefs.DailyMinuteGoal)),
		row("Water", humanize.Comma(int64(s.prefs.WaterGoalML))+" ml"),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// atoi parses a value already checked by intAtLeast.
func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
