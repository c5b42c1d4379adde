package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dreammap/internal/store"
	"github.com/sadopc/dreammap/internal/suggest"
)

type settingsModel struct {
	store   *store.Store
	suggest *suggest.Client
	width   int
	height  int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	overallETA *string
	modelName  *string
}

func newSettingsModel(s *store.Store, sg *suggest.Client) settingsModel {
	eta, model := "", ""
	return settingsModel{
		store:      s,
		suggest:    sg,
		overallETA: &eta,
		modelName:  &model,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	return nil
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.overallETA = strconv.Itoa(s.store.State().OverallETA)
	*s.modelName = s.suggest.Model()

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Overall timeline (years)").Value(s.overallETA).
				Validate(func(v string) error {
					n, err := strconv.Atoi(v)
					if err != nil || n < 1 {
						return fmt.Errorf("enter a number of years, at least 1")
					}
					return nil
				}),
			huh.NewInput().Title("Suggestion model").Value(s.modelName),
		),
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
		if years, err := strconv.Atoi(*s.overallETA); err == nil && years >= 1 {
			if err := s.store.SetOverallETA(years); err != nil {
				return s, errorStatus(fmt.Sprintf("Error: %v", err))
			}
		}
		s.suggest.SetModel(*s.modelName)
		return s, infoStatus("Settings saved")
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %-24s %s",
		"Overall timeline", highlightStyle.Render(fmt.Sprintf("%d years", s.store.State().OverallETA))))
	rows = append(rows, fmt.Sprintf("  %-24s %s",
		"Suggestion model", highlightStyle.Render(s.suggest.Model())))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
