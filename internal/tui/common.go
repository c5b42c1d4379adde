package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/dreammap/internal/progress"
	"github.com/sadopc/dreammap/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewDreams
	viewCheckin
	viewWizard
	viewSettings
)

var viewNames = []string{"Dashboard", "Dreams", "Check-in", "Wizard", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// stateMsg carries a fresh state snapshot to a view.
type stateMsg struct {
	state store.State
	today string
}

// suggestionsMsg delivers suggestion chips for the wizard. seq guards
// against responses arriving after the user navigated away from the
// parent they were requested for.
type suggestionsMsg struct {
	seq   int
	items []string
}

// analyzeMsg delivers the completion-step assessment text.
type analyzeMsg struct {
	seq  int
	text string
}

// wizardDoneMsg signals that a wizard session committed its dreams.
type wizardDoneMsg struct {
	dreams int
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func errorStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

func infoStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

// classify returns a short classification label for a dream, or "" when
// it has no short goals yet. Stalled wins over struggling; the 30-80%
// band is plain "in progress".
func classify(d store.Dream) string {
	total := 0
	for _, e := range d.Enablers {
		total += len(e.ShortGoals)
	}
	switch {
	case total == 0:
		return ""
	case progress.IsStalled(d):
		return "stalled"
	case progress.IsStruggling(d):
		return "struggling"
	case progress.IsSuccessful(d):
		return "on track"
	default:
		return "in progress"
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
