package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dreammap/internal/progress"
	"github.com/sadopc/dreammap/internal/store"
)

// goalRow is one selectable short goal inside the detail view.
type goalRow struct {
	goalID  string
	detail  string
	done    bool
	enabler string
}

type dreamsModel struct {
	store  *store.Store
	width  int
	height int

	state  store.State
	cursor int

	viewingDetail bool
	goalRows      []goalRow
	goalCursor    int
}

func newDreamsModel(s *store.Store) dreamsModel {
	return dreamsModel{store: s}
}

func (m *dreamsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m dreamsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return stateMsg{state: m.store.State(), today: store.Today()}
	}
}

func (m dreamsModel) update(msg tea.Msg) (dreamsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = msg.state
		if m.cursor >= len(m.state.Dreams) {
			m.cursor = max(0, len(m.state.Dreams)-1)
		}
		if m.viewingDetail {
			m.buildGoalRows()
		}
		return m, nil

	case tea.KeyMsg:
		if m.viewingDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m dreamsModel) updateList(msg tea.KeyMsg) (dreamsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.state.Dreams)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.state.Dreams) > 0 {
			m.viewingDetail = true
			m.goalCursor = 0
			m.buildGoalRows()
		}
	}
	return m, nil
}

func (m dreamsModel) updateDetail(msg tea.KeyMsg) (dreamsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.viewingDetail = false
		return m, nil
	case key.Matches(msg, keys.Up):
		if m.goalCursor > 0 {
			m.goalCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.goalCursor < len(m.goalRows)-1 {
			m.goalCursor++
		}
	case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
		if len(m.goalRows) > 0 {
			row := m.goalRows[m.goalCursor]
			if err := m.store.SetShortGoalDone(row.goalID, !row.done); err != nil {
				return m, errorStatus(fmt.Sprintf("Error: %v", err))
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *dreamsModel) buildGoalRows() {
	m.goalRows = nil
	if m.cursor >= len(m.state.Dreams) {
		return
	}
	for _, e := range m.state.Dreams[m.cursor].Enablers {
		for _, g := range e.ShortGoals {
			m.goalRows = append(m.goalRows, goalRow{
				goalID:  g.ID,
				detail:  g.Detail,
				done:    g.Done,
				enabler: e.Name,
			})
		}
	}
	if m.goalCursor >= len(m.goalRows) {
		m.goalCursor = max(0, len(m.goalRows)-1)
	}
}

func (m dreamsModel) view() string {
	if m.viewingDetail {
		return m.renderDetail()
	}
	return m.renderList()
}

func (m dreamsModel) renderList() string {
	w := m.width - 4
	title := titleStyle.Render("Dreams")

	if len(m.state.Dreams) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing here yet. Press 4 to open the wizard."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, d := range m.state.Dreams {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		pct := progress.DreamProgress(d)
		label := classify(d)
		badge := ""
		if label != "" {
			badge = "  " + badgeStyle(label).Render(label)
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-36s %3d%%", cursor, truncate(d.Text, 36), pct))+badge)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: open  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m dreamsModel) renderDetail() string {
	w := m.width - 4
	dream := m.state.Dreams[m.cursor]
	title := titleStyle.Render(dream.Text) +
		mutedStyle.Render(fmt.Sprintf("  %d%%", progress.DreamProgress(dream)))

	var rows []string
	rows = append(rows, title)

	rowIdx := 0
	for _, e := range dream.Enablers {
		rows = append(rows, "")
		rows = append(rows, highlightStyle.Render("◆ "+e.Name))
		for _, g := range e.ShortGoals {
			check := "☐"
			style := normalItemStyle
			if g.Done {
				check = "☑"
				style = successStyle
			}
			cursor := "  "
			if rowIdx == m.goalCursor {
				cursor = "> "
				style = selectedItemStyle
			}
			rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, check, g.Detail)))
			rowIdx++
		}
		for _, h := range e.DailyHabits {
			streak := ""
			if h.Streak > 0 {
				streak = accentStyle.Render(fmt.Sprintf("  🔥%d", h.Streak))
			}
			rows = append(rows, mutedStyle.Render("    ⟳ "+h.Detail)+streak)
		}
	}

	if rowIdx == 0 {
		rows = append(rows, "", mutedStyle.Render("  No short goals in this dream"))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle done  esc: back"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
