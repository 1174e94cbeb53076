package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/upfocus/internal/engine"
	"github.com/sadopc/upfocus/internal/store"
)

// Quick-add amounts in millilitres.
const (
	smallGlassML = 250
	largeGlassML = 500
)

type waterModel struct {
	eng    *engine.Engine
	width  int
	height int

	total    int
	goal     int
	progress float64
	log      []store.WaterLogEntry
	week     []engine.DayTotal

	chart barchart.Model

	formActive bool
	form       *huh.Form
	formAmount *string
}

func newWaterModel(eng *engine.Engine) waterModel {
	amount := ""
	return waterModel{
		eng:        eng,
		chart:      barchart.New(40, 8),
		formAmount: &amount,
	}
}

func (m *waterModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

func (m *waterModel) refresh() {
	m.total = m.eng.WaterToday()
	m.goal = m.eng.WaterGoal()
	m.progress = m.eng.WaterProgress()
	m.log = m.eng.WaterLog()
	m.week = m.eng.WeeklyWaterData()
	m.buildChart()
}

func (m waterModel) update(msg tea.Msg) (waterModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Small):
			return m.add(smallGlassML)
		case key.Matches(msg, keys.Large):
			return m.add(largeGlassML)
		case key.Matches(msg, keys.Custom):
			return m.showForm()
		case key.Matches(msg, keys.Reset):
			m.eng.ResetWater()
			m.refresh()
			return m, func() tea.Msg { return statusMsg{text: "Water reset for today"} }
		}
	}
	return m, nil
}

func (m waterModel) add(ml int) (waterModel, tea.Cmd) {
	if err := m.eng.LogWater(ml); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	m.refresh()
	return m, func() tea.Msg { return statusMsg{text: fmt.Sprintf("+%d ml 💧", ml)} }
}

func (m waterModel) showForm() (waterModel, tea.Cmd) {
	*m.formAmount = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Amount (ml)").Validate(intAtLeast(1)).Value(m.formAmount),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m waterModel) updateForm(msg tea.Msg) (waterModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		ml, _ := strconv.Atoi(strings.TrimSpace(*m.formAmount))
		return m.add(ml)
	}
	return m, cmd
}

func (m *waterModel) buildChart() {
	m.chart = barchart.New(max(28, m.width/2-8), 8)
	bars := make([]barchart.BarData, 0, len(m.week))
	for _, d := range m.week {
		bars = append(bars, barchart.BarData{
			Label: d.Label,
			Values: []barchart.BarValue{{
				Name:  d.Key,
				Value: float64(d.Value),
				Style: lipgloss.NewStyle().Foreground(colorSecondary),
			}},
		})
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m waterModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Log Water")
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()))
	}

	title := titleStyle.Render("Hydration")
	amount := highlightStyle.Bold(true).Render(humanize.Comma(int64(m.total))+" ml") +
		mutedStyle.Render(fmt.Sprintf(" of %s ml  (%d%%)", humanize.Comma(int64(m.goal)), int(m.progress*100)))
	bar := progressBar(min(40, max(10, w-10)), m.progress)

	left := lipgloss.JoinVertical(lipgloss.Left,
		title, "", amount, bar, "", titleStyle.Render("Today"), m.renderLog(),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Last 7 days")+mutedStyle.Render("  (ml)"), m.chart.View(),
	)
	half := max(30, w/2-2)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half).Render(left),
		lipgloss.NewStyle().Width(half).Render(right),
	)

	controls := mutedStyle.Render(fmt.Sprintf("a: +%d ml  b: +%d ml  w: custom  r: reset", smallGlassML, largeGlassML))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, body, "", controls))
}

func (m waterModel) renderLog() string {
	if len(m.log) == 0 {
		return mutedStyle.Render("  Nothing logged yet")
	}
	var rows []string
	// Newest first, at most the last 8.
	for i := len(m.log) - 1; i >= 0 && len(rows) < 8; i-- {
		e := m.log[i]
		rows = append(rows, fmt.Sprintf("  💧 %-8s %s", fmt.Sprintf("%d ml", e.Milliliters),
			mutedStyle.Render(e.OccurredAt.Local().Format("15:04")+"  "+humanize.Time(e.OccurredAt))))
	}
	return strings.Join(rows, "\n")
}
