package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dreammap/internal/progress"
	"github.com/sadopc/dreammap/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	state store.State
	today string

	chart barchart.Model
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{
		store: s,
		chart: barchart.New(60, 10),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		return stateMsg{state: d.store.State(), today: store.Today()}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		d.state = msg.state
		d.today = msg.today
		d.buildChart()
		return d, nil
	}
	return d, nil
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if d.height > 30 {
		chartHeight = 14
	}

	d.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for i, dream := range d.state.Dreams {
		pct := progress.DreamProgress(dream)
		style := successStyle
		switch {
		case progress.IsStalled(dream):
			style = errorStyle
		case progress.IsStruggling(dream):
			style = warningStyle
		}
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("D%d", i+1),
			Values: []barchart.BarValue{{
				Name:  dream.Text,
				Value: float64(pct),
				Style: style,
			}},
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	if len(d.state.Dreams) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("DreamMap"),
			"",
			mutedStyle.Render("No dreams yet. Press 4 to open the wizard and map your first one."),
		)
		return panelStyle.Width(contentWidth).Render(content)
	}

	summary := d.renderSummaryPanel(contentWidth)
	dreams := d.renderDreamsPanel(contentWidth)
	chart := panelStyle.Width(contentWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Progress"), d.chart.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, summary, dreams, chart)
}

func (d dashboardModel) renderSummaryPanel(w int) string {
	sum := progress.Summarize(d.state, d.today)

	habitLine := fmt.Sprintf("Habits today: %s",
		highlightStyle.Render(fmt.Sprintf("%d/%d", sum.HabitsDoneToday, sum.Habits)))
	if sum.Habits > 0 && sum.HabitsDoneToday == sum.Habits {
		habitLine += successStyle.Render("  ✓ all done")
	}

	goalsLine := fmt.Sprintf("Short goals: %s done",
		highlightStyle.Render(fmt.Sprintf("%d/%d", sum.ShortGoalsDone, sum.ShortGoals)))

	etaLine := mutedStyle.Render(fmt.Sprintf("Overall timeline: %d years", d.state.OverallETA))

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Today"),
		habitLine,
		goalsLine,
		etaLine,
	)
	return activePanelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderDreamsPanel(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Dreams"))
	for i, dream := range d.state.Dreams {
		pct := progress.DreamProgress(dream)
		label := classify(dream)
		badge := ""
		if label != "" {
			badge = "  " + badgeStyle(label).Render(label)
		}
		bar := renderBar(pct, 20)
		rows = append(rows, fmt.Sprintf("  D%d %-28s %s %3d%%%s",
			i+1, truncate(dream.Text, 28), bar, pct, badge))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderBar draws a fixed-width textual progress bar.
func renderBar(pct, width int) string {
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case pct >= 80:
		return successStyle.Render(bar)
	case pct < 30:
		return warningStyle.Render(bar)
	default:
		return highlightStyle.Render(bar)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
