package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/sadopc/upfocus/internal/engine"
	"github.com/sadopc/upfocus/internal/export"
	"github.com/sadopc/upfocus/internal/notify"
	"github.com/sadopc/upfocus/internal/store"
)

// noticeDuration is how long an achievement banner stays on screen.
const noticeDuration = 5 * time.Second

// App is the root Bubble Tea model. Every engine call happens inside Update
// or View so the engine only ever sees the event loop goroutine.
type App struct {
	eng    *engine.Engine
	store  *store.Store
	clock  *engine.LoopClock
	status *notify.Status
	log    zerolog.Logger

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	focus    focusModel
	insights insightsModel
	water    waterModel
	notes    notesModel
	settings settingsModel

	help        help.Model
	statusText  string
	statusError bool

	notice      *engine.AchievementInfo
	noticeUntil time.Time
}

func NewApp(eng *engine.Engine, s *store.Store, clock *engine.LoopClock, status *notify.Status, log zerolog.Logger) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		eng:        eng,
		store:      s,
		clock:      clock,
		status:     status,
		log:        log,
		activeView: viewFocus,
		focus:      newFocusModel(eng),
		insights:   newInsightsModel(eng),
		water:      newWaterModel(eng),
		notes:      newNotesModel(s),
		settings:   newSettingsModel(eng),
		help:       h,
	}
	a.settings.refresh()
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.notes.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.focus.setSize(a.width, contentHeight)
		a.insights.setSize(a.width, contentHeight)
		a.water.setSize(a.width, contentHeight)
		a.notes.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewFocus)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewInsights)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewWater)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewNotes)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		a.clock.Fire()
		a.focus.refresh()
		if a.activeView == viewInsights {
			a.insights.refresh()
		}
		if a.activeView == viewWater && !a.water.formActive {
			a.water.refresh()
		}
		a.pollNotice(time.Time(msg))
		return a, tickCmd()

	case notify.Notification:
		a.statusText = msg.Title + ": " + msg.Body
		a.statusError = false
		return a, nil

	case statusMsg:
		a.statusText = msg.text
		a.statusError = msg.isError
		if msg.isError {
			a.log.Warn().Str("view", viewNames[a.activeView]).Msg(msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.statusText = "Exported to " + msg.path
		a.statusError = false
		return a, nil

	case notesDataMsg:
		var cmd tea.Cmd
		a.notes, cmd = a.notes.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	switch v {
	case viewFocus:
		a.focus.refresh()
	case viewInsights:
		a.insights.refresh()
	case viewWater:
		a.water.refresh()
	case viewNotes:
		return a, a.notes.refresh()
	case viewSettings:
		a.settings.refresh()
	}
	return a, nil
}

// pollNotice shows the next pending achievement once the current banner
// has been up for noticeDuration.
func (a *App) pollNotice(now time.Time) {
	if a.notice != nil {
		if now.Before(a.noticeUntil) {
			return
		}
		a.notice = nil
	}
	id, ok := a.eng.ConsumeNewlyUnlocked()
	if !ok {
		return
	}
	info, ok := engine.Lookup(id)
	if !ok {
		return
	}
	a.log.Info().Str("achievement", string(id)).Msg("achievement unlocked")
	a.notice = &info
	a.noticeUntil = now.Add(noticeDuration)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewWater:
		a.water, cmd = a.water.update(msg)
	case viewNotes:
		a.notes, cmd = a.notes.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
		// New defaults show up on the focus view straight away.
		a.focus.refresh()
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewFocus:
		return a.focus.formActive
	case viewWater:
		return a.water.formActive
	case viewNotes:
		return a.notes.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewFocus:
		content = a.focus.view()
	case viewInsights:
		content = a.insights.view()
	case viewWater:
		content = a.water.view()
	case viewNotes:
		content = a.notes.view()
	case viewSettings:
		content = a.settings.view()
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}
	if a.notice != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, a.renderNotice(), content)
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("upfocus")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.statusText != "" {
		style := mutedStyle
		if a.statusError {
			style = errorStyle
		}
		status = style.Render(" " + a.statusText)
	}

	timerInfo := ""
	if line := a.status.Line(); line != "" {
		style := successStyle
		if a.status.Snapshot().IsBreak {
			style = warningStyle
		}
		timerInfo = style.Render(" " + line)
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderNotice() string {
	n := a.notice
	return noticeStyle.Render(fmt.Sprintf("%s Achievement unlocked: %s  %s",
		n.Icon, accentStyle.Bold(true).Render(n.Title), mutedStyle.Render(n.Description)))
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Sessions")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return panelStyle.BorderForeground(colorPrimary).Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport snapshots the ledger on the event loop and writes the file
// from a command.
func (a App) doExport(format int) tea.Cmd {
	entries := a.eng.Sessions()
	log := a.log
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("upfocus-export-%s.csv", dateStr))
			if err := export.ToCSV(entries, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("upfocus-export-%s.json", dateStr))
			if err := export.ToJSON(entries, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		log.Info().Str("path", path).Int("sessions", len(entries)).Msg("exported sessions")
		return exportDoneMsg{path: path}
	}
}
