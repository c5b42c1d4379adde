package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dreammap/internal/store"
)

// habitRow is one daily habit flattened out of the dream tree for the
// check-in list.
type habitRow struct {
	habitID string
	detail  string
	streak  int
	done    bool
	dream   string
}

type checkinModel struct {
	store  *store.Store
	width  int
	height int

	today  string
	rows   []habitRow
	cursor int
}

func newCheckinModel(s *store.Store) checkinModel {
	return checkinModel{store: s}
}

func (m *checkinModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m checkinModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return stateMsg{state: m.store.State(), today: store.Today()}
	}
}

func (m checkinModel) update(msg tea.Msg) (checkinModel, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.today = msg.today
		m.rows = flattenHabits(msg.state, msg.today)
		if m.cursor >= len(m.rows) {
			m.cursor = max(0, len(m.rows)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if len(m.rows) > 0 {
				row := m.rows[m.cursor]
				if err := m.store.CheckInHabit(row.habitID, m.today, !row.done); err != nil {
					return m, errorStatus(fmt.Sprintf("Error: %v", err))
				}
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func flattenHabits(st store.State, today string) []habitRow {
	var rows []habitRow
	for _, d := range st.Dreams {
		for _, e := range d.Enablers {
			for _, h := range e.DailyHabits {
				rows = append(rows, habitRow{
					habitID: h.ID,
					detail:  h.Detail,
					streak:  h.Streak,
					done:    h.CompletedOn(today),
					dream:   d.Text,
				})
			}
		}
	}
	return rows
}

func (m checkinModel) view() string {
	w := m.width - 4

	done := 0
	for _, r := range m.rows {
		if r.done {
			done++
		}
	}
	title := titleStyle.Render("Daily Check-in") + "  " +
		highlightStyle.Render(fmt.Sprintf("%d/%d", done, len(m.rows)))

	if len(m.rows) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No daily habits yet. The wizard adds them in step 5."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, r := range m.rows {
		check := "☐"
		style := normalItemStyle
		if r.done {
			check = "☑"
			style = successStyle
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		streak := ""
		if r.streak > 0 {
			streak = accentStyle.Render(fmt.Sprintf("  🔥%d", r.streak))
		}
		context := mutedStyle.Render("  — " + truncate(r.dream, 24))
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-36s", cursor, check, truncate(r.detail, 36)))+streak+context)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: check in / undo  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
