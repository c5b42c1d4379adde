// Package tui implements the terminal interface: a tabbed layout over
// the dashboard, dream browser, daily check-in, wizard and settings.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dreammap/internal/export"
	"github.com/sadopc/dreammap/internal/store"
	"github.com/sadopc/dreammap/internal/suggest"
)

type App struct {
	store  *store.Store
	width  int
	height int

	activeView viewState

	dashboard dashboardModel
	dreams    dreamsModel
	checkin   checkinModel
	wizard    wizardViewModel
	settings  settingsModel

	help     help.Model
	showHelp bool

	status      string
	statusError bool

	exportOpen   bool
	exportCursor int
}

var exportFormats = []string{"JSON", "CSV"}

func NewApp(s *store.Store, sg *suggest.Client) App {
	app := App{
		store:     s,
		dashboard: newDashboardModel(s),
		dreams:    newDreamsModel(s),
		checkin:   newCheckinModel(s),
		wizard:    newWizardViewModel(s, sg),
		settings:  newSettingsModel(s, sg),
		help:      help.New(),
	}
	// First launch goes straight to the wizard so there is something to
	// track before the dashboard means anything.
	if s.FirstLaunch() {
		app.activeView = viewWizard
	}
	return app
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.dashboard.loadData(), a.dreams.refresh(), a.checkin.refresh())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentH := msg.Height - 4
		a.dashboard.setSize(msg.Width, contentH)
		a.dreams.setSize(msg.Width, contentH)
		a.checkin.setSize(msg.Width, contentH)
		a.wizard.setSize(msg.Width, contentH)
		a.settings.setSize(msg.Width, contentH)
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case stateMsg:
		// Data views share snapshots so they never go stale on switch.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		cmds = append(cmds, cmd)
		a.dreams, cmd = a.dreams.update(msg)
		cmds = append(cmds, cmd)
		a.checkin, cmd = a.checkin.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case suggestionsMsg, analyzeMsg:
		var cmd tea.Cmd
		a.wizard, cmd = a.wizard.update(msg)
		return a, cmd

	case wizardDoneMsg:
		a.activeView = viewDashboard
		noun := "dream"
		if msg.dreams != 1 {
			noun = "dreams"
		}
		return a, tea.Batch(
			a.dashboard.loadData(),
			infoStatus(fmt.Sprintf("Saved %d %s", msg.dreams, noun)),
		)

	case exportDoneMsg:
		a.exportOpen = false
		return a, infoStatus("Exported to " + msg.path)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	return a.updateActive(msg)
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""

	if a.exportOpen {
		return a.updateExportPicker(msg)
	}

	// Forms need raw input; only quit stays global.
	if a.formActive() {
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateActive(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil

	case key.Matches(msg, keys.Tab):
		return a.switchView(viewState((int(a.activeView) + 1) % len(viewNames)))
	case key.Matches(msg, keys.Tab1):
		return a.switchView(viewDashboard)
	case key.Matches(msg, keys.Tab2):
		return a.switchView(viewDreams)
	case key.Matches(msg, keys.Tab3):
		return a.switchView(viewCheckin)
	case key.Matches(msg, keys.Tab4):
		return a.switchView(viewWizard)
	case key.Matches(msg, keys.Tab5):
		return a.switchView(viewSettings)

	case key.Matches(msg, keys.New):
		if a.activeView != viewWizard && a.activeView != viewSettings {
			return a.switchView(viewWizard)
		}

	case key.Matches(msg, keys.Export):
		if a.activeView != viewWizard {
			a.exportOpen = true
			a.exportCursor = 0
			return a, nil
		}
	}

	return a.updateActive(msg)
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		return a, a.runExport(exportFormats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportOpen = false
	}
	return a, nil
}

func (a App) runExport(format string) tea.Cmd {
	st := a.store.State()
	return func() tea.Msg {
		stamp := time.Now().Format("2006-01-02")
		var path string
		var err error
		if format == "CSV" {
			path = fmt.Sprintf("dreammap-%s.csv", stamp)
			err = export.ToCSV(st, path)
		} else {
			path = fmt.Sprintf("dreammap-%s.json", stamp)
			err = export.ToJSON(st, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export failed: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	switch v {
	case viewDashboard:
		return a, a.dashboard.loadData()
	case viewDreams:
		return a, a.dreams.refresh()
	case viewCheckin:
		return a, a.checkin.refresh()
	}
	return a, nil
}

func (a App) formActive() bool {
	switch a.activeView {
	case viewWizard:
		return a.wizard.captures()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewDreams:
		a.dreams, cmd = a.dreams.update(msg)
	case viewCheckin:
		a.checkin, cmd = a.checkin.update(msg)
	case viewWizard:
		a.wizard, cmd = a.wizard.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderTabs()

	var content string
	if a.exportOpen {
		content = a.renderExportPicker()
	} else {
		switch a.activeView {
		case viewDashboard:
			content = a.dashboard.view()
		case viewDreams:
			content = a.dreams.view()
		case viewCheckin:
			content = a.checkin.view()
		case viewWizard:
			content = a.wizard.view()
		case viewSettings:
			content = a.settings.view()
		}
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderTabs() string {
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...))
}

func (a App) renderExportPicker() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Export"))
	rows = append(rows, "")
	for i, f := range exportFormats {
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
	return activePanelStyle.Render(strings.Join(rows, "\n"))
}

func (a App) renderFooter() string {
	if a.status != "" {
		style := successStyle
		if a.statusError {
			style = errorStyle
		}
		return footerStyle.Render(style.Render(a.status))
	}
	return footerStyle.Render(a.help.View(keys))
}
