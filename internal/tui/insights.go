package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/upfocus/internal/engine"
)

type insightsModel struct {
	eng    *engine.Engine
	width  int
	height int

	score    int
	insight  string
	streak   engine.StreakState
	totals   engine.Totals
	week     []engine.DayTotal
	heat     []engine.DayTotal
	cats     []engine.CategoryTotal
	unlocked map[engine.AchievementID]bool

	chart barchart.Model
}

func newInsightsModel(eng *engine.Engine) insightsModel {
	return insightsModel{
		eng:   eng,
		chart: barchart.New(60, 10),
	}
}

func (r *insightsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

func (r *insightsModel) refresh() {
	r.score = r.eng.FocusScore()
	r.insight = engine.Insight(r.score)
	r.streak = r.eng.Streak()
	r.totals = r.eng.Totals()
	r.week = r.eng.WeeklyFocusData()
	r.heat = r.eng.HeatmapData()
	r.cats = r.eng.CategoryBreakdown()
	r.unlocked = make(map[engine.AchievementID]bool)
	for _, id := range r.eng.UnlockedAchievements() {
		r.unlocked[id] = true
	}
	r.buildChart()
}

func (r *insightsModel) buildChart() {
	chartWidth := r.width/2 - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 36 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	bars := make([]barchart.BarData, 0, len(r.week))
	for _, d := range r.week {
		bars = append(bars, barchart.BarData{
			Label: d.Label,
			Values: []barchart.BarValue{{
				Name:  d.Key,
				Value: float64(d.Value),
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}
	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r insightsModel) view() string {
	w := r.width - 4
	half := max(30, w/2-2)

	left := lipgloss.JoinVertical(lipgloss.Left,
		r.renderScore(),
		"",
		titleStyle.Render("Last 7 days")+mutedStyle.Render("  (minutes)"),
		r.chart.View(),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("28-day activity"),
		r.renderHeatmap(),
		"",
		titleStyle.Render("Categories"),
		r.renderCategories(half-4),
	)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half).Render(left),
		lipgloss.NewStyle().Width(half).Render(right),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, top, "", titleStyle.Render("Achievements"), r.renderAchievements()),
	)
}

func (r insightsModel) renderScore() string {
	score := accentStyle.Bold(true).Render(fmt.Sprintf("%d", r.score)) + mutedStyle.Render(" / 100")
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Focus score  ")+score,
		highlightStyle.Render(r.insight),
		"",
		fmt.Sprintf("🔥 %d day streak  %s", r.streak.Current, mutedStyle.Render(fmt.Sprintf("best %d", r.streak.Best))),
		mutedStyle.Render(fmt.Sprintf("%s sessions · %s focused all time",
			humanize.Comma(int64(r.totals.SessionsCompleted)), formatMinutes(r.totals.FocusMinutes))),
	)
}

// renderHeatmap lays the days out as weeks, oldest at the top left.
func (r insightsModel) renderHeatmap() string {
	var rows []string
	for start := 0; start < len(r.heat); start += 7 {
		end := min(start+7, len(r.heat))
		var cells []string
		for _, d := range r.heat[start:end] {
			cells = append(cells, heatStyle(d.Value).Render("■"))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	legend := mutedStyle.Render("less ") + heatStyle(0).Render("■") + " " + heatStyle(15).Render("■") + " " +
		heatStyle(45).Render("■") + " " + heatStyle(90).Render("■") + " " + heatStyle(150).Render("■") + mutedStyle.Render(" more")
	return strings.Join(append(rows, legend), "\n")
}

func (r insightsModel) renderCategories(width int) string {
	top := 0
	for _, c := range r.cats {
		top = max(top, c.Minutes)
	}
	barWidth := max(5, width-22)
	var rows []string
	for _, c := range r.cats {
		frac := 0.0
		if top > 0 {
			frac = float64(c.Minutes) / float64(top)
		}
		filled := int(frac*float64(barWidth) + 0.5)
		bar := categoryStyle(c.Category).Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("·", barWidth-filled))
		rows = append(rows, fmt.Sprintf("%s %-9s %s %s", c.Category.Icon(), c.Category, bar, formatMinutes(c.Minutes)))
	}
	return strings.Join(rows, "\n")
}

func (r insightsModel) renderAchievements() string {
	var rows []string
	for _, a := range engine.Catalogue {
		if r.unlocked[a.ID] {
			rows = append(rows, fmt.Sprintf("  %s %s %s", a.Icon, successStyle.Render(a.Title), mutedStyle.Render(a.Description)))
		} else {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  ○ %s  %s", a.Title, a.Description)))
		}
	}
	return strings.Join(rows, "\n")
}
