package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dreammap/internal/store"
	"github.com/sadopc/dreammap/internal/suggest"
	"github.com/sadopc/dreammap/internal/wizard"
)

// parentRef names the draft slot a form field edits. goal is -1 for
// fields that belong to a dream rather than a goal.
type parentRef struct {
	dream int
	goal  int
}

type wizardViewModel struct {
	store   *store.Store
	suggest *suggest.Client
	width   int
	height  int

	machine *wizard.Machine

	// Mode chooser shown before a session starts.
	choosing   bool
	modeCursor int

	form     *huh.Form
	formVals []*string
	formRefs []parentRef

	// Suggestion chips for the active parent. seq drops responses that
	// arrive after the user moved on.
	suggestSeq     int
	suggestions    []string
	suggestOpen    bool
	suggestCursor  int
	suggestLoading bool
	activeParent   int

	analyzeSeq  int
	analyzeText string
}

func newWizardViewModel(s *store.Store, sg *suggest.Client) wizardViewModel {
	return wizardViewModel{
		store:    s,
		suggest:  sg,
		choosing: true,
	}
}

func (w *wizardViewModel) setSize(width, height int) {
	w.width = width
	w.height = height
}

// captures reports whether the wizard needs raw key input (so the app
// must not treat digits and tab as view switches).
func (w wizardViewModel) captures() bool {
	return w.form != nil || w.suggestOpen
}

// --- Session lifecycle ---

func (w wizardViewModel) startSession(mode wizard.Mode) (wizardViewModel, tea.Cmd) {
	w.machine = wizard.New(mode, len(w.store.State().Dreams))
	w.choosing = false
	return w.setupStep()
}

func (w wizardViewModel) abandonSession() wizardViewModel {
	w.machine = nil
	w.form = nil
	w.formVals = nil
	w.formRefs = nil
	w.suggestions = nil
	w.suggestOpen = false
	w.choosing = true
	return w
}

// setupStep rebuilds the form (and suggestion state) for the machine's
// current step, pre-filling values from the draft so back-navigation
// keeps collected data visible.
func (w wizardViewModel) setupStep() (wizardViewModel, tea.Cmd) {
	w.form = nil
	w.formVals = nil
	w.formRefs = nil
	w.suggestOpen = false
	w.suggestions = nil
	w.suggestLoading = false
	w.activeParent = 0
	w.suggestSeq++ // invalidate any in-flight fetch

	draft := w.machine.Draft()
	simple := w.machine.Mode() == wizard.ModeSimple

	var fields []huh.Field
	switch w.machine.Step() {
	case wizard.StepBucketList:
		var texts []string
		for _, d := range draft.Dreams {
			texts = append(texts, d.Text)
		}
		v := new(string)
		if simple {
			if len(texts) > 0 {
				*v = texts[0]
			}
			fields = append(fields, huh.NewInput().
				Title("What is your dream?").
				Description("One bucket-list item you want to make real.").
				Value(v))
		} else {
			*v = joinLines(texts)
			fields = append(fields, huh.NewText().
				Title("What are your dreams?").
				Description("One bucket-list item per line.").
				Value(v))
		}
		w.formVals = []*string{v}
		w.formRefs = []parentRef{{dream: -1, goal: -1}}

	case wizard.StepTimeline:
		v := new(string)
		*v = strconv.Itoa(draft.Timeline)
		fields = append(fields, huh.NewInput().
			Title("Timeline (years)").
			Description("How long do you give yourself?").
			Value(v).
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n < 1 {
					return fmt.Errorf("enter a number of years, at least 1")
				}
				return nil
			}))
		w.formVals = []*string{v}
		w.formRefs = []parentRef{{dream: -1, goal: -1}}

	case wizard.StepMediumTerm:
		for di, d := range draft.Dreams {
			if strings.TrimSpace(d.Text) == "" {
				continue
			}
			var texts []string
			for _, g := range d.Goals {
				texts = append(texts, g.Text)
			}
			v := new(string)
			title := fmt.Sprintf("Medium-term goals for %q", truncate(d.Text, 40))
			if simple {
				if len(texts) > 0 {
					*v = texts[0]
				}
				fields = append(fields, huh.NewInput().Title(title).Value(v))
			} else {
				*v = joinLines(texts)
				fields = append(fields, huh.NewText().Title(title).
					Description("One goal per line.").Value(v))
			}
			w.formVals = append(w.formVals, v)
			w.formRefs = append(w.formRefs, parentRef{dream: di, goal: -1})
		}

	case wizard.StepShortTerm:
		for di, d := range draft.Dreams {
			for gi, g := range d.Goals {
				if strings.TrimSpace(g.Text) == "" {
					continue
				}
				v := new(string)
				title := fmt.Sprintf("Short-term actions for %q", truncate(g.Text, 40))
				if simple {
					if len(g.ShortGoals) > 0 {
						*v = g.ShortGoals[0]
					}
					fields = append(fields, huh.NewInput().Title(title).Value(v))
				} else {
					*v = joinLines(g.ShortGoals)
					fields = append(fields, huh.NewText().Title(title).
						Description("One action per line.").Value(v))
				}
				w.formVals = append(w.formVals, v)
				w.formRefs = append(w.formRefs, parentRef{dream: di, goal: gi})
			}
		}

	case wizard.StepDailyHabits:
		for di, d := range draft.Dreams {
			for gi, g := range d.Goals {
				if strings.TrimSpace(g.Text) == "" {
					continue
				}
				v := new(string)
				title := fmt.Sprintf("Daily habits for %q", truncate(g.Text, 40))
				if simple {
					if len(g.Habits) > 0 {
						*v = g.Habits[0]
					}
					fields = append(fields, huh.NewInput().Title(title).Value(v))
				} else {
					*v = joinLines(g.Habits)
					fields = append(fields, huh.NewText().Title(title).
						Description("One habit per line. Optional.").Value(v))
				}
				w.formVals = append(w.formVals, v)
				w.formRefs = append(w.formRefs, parentRef{dream: di, goal: gi})
			}
		}

	case wizard.StepCompletion:
		// No form; recap plus async analysis.
		w.analyzeSeq++
		return w, w.fetchAnalysis()
	}

	w.form = huh.NewForm(huh.NewGroup(fields...)).
		WithShowHelp(true).WithShowErrors(true)

	var cmds []tea.Cmd
	cmds = append(cmds, w.form.Init())
	if w.suggestableStep() {
		var fetch tea.Cmd
		w, fetch = w.fetchSuggestions()
		cmds = append(cmds, fetch)
	}
	return w, tea.Batch(cmds...)
}

func (w wizardViewModel) suggestableStep() bool {
	switch w.machine.Step() {
	case wizard.StepMediumTerm, wizard.StepShortTerm, wizard.StepDailyHabits:
		return len(w.formRefs) > 0
	}
	return false
}

func (w wizardViewModel) suggestionKind() suggest.Kind {
	switch w.machine.Step() {
	case wizard.StepShortTerm:
		return suggest.KindShortTerm
	case wizard.StepDailyHabits:
		return suggest.KindDailyHabit
	default:
		return suggest.KindMediumTerm
	}
}

// parentText returns the draft text of the active parent slot.
func (w wizardViewModel) parentText() string {
	if w.activeParent >= len(w.formRefs) {
		return ""
	}
	ref := w.formRefs[w.activeParent]
	draft := w.machine.Draft()
	if ref.dream < 0 || ref.dream >= len(draft.Dreams) {
		return ""
	}
	if ref.goal < 0 {
		return draft.Dreams[ref.dream].Text
	}
	if ref.goal >= len(draft.Dreams[ref.dream].Goals) {
		return ""
	}
	return draft.Dreams[ref.dream].Goals[ref.goal].Text
}

// --- Commands ---

func (w wizardViewModel) fetchSuggestions() (wizardViewModel, tea.Cmd) {
	w.suggestSeq++
	w.suggestLoading = true
	w.suggestions = nil
	seq := w.suggestSeq
	kind := w.suggestionKind()
	parent := w.parentText()
	client := w.suggest
	return w, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		return suggestionsMsg{seq: seq, items: client.Suggest(ctx, kind, parent, 3)}
	}
}

func (w wizardViewModel) fetchAnalysis() tea.Cmd {
	draft := w.machine.Draft()
	var goals []string
	for _, d := range draft.Dreams {
		for _, g := range d.Goals {
			if strings.TrimSpace(g.Text) != "" {
				goals = append(goals, g.Text)
			}
		}
	}
	seq := w.analyzeSeq
	years := draft.Timeline
	client := w.suggest
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return analyzeMsg{seq: seq, text: client.Analyze(ctx, goals, years)}
	}
}

// --- Update ---

func (w wizardViewModel) update(msg tea.Msg) (wizardViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionsMsg:
		if msg.seq != w.suggestSeq {
			return w, nil // stale response, user moved on
		}
		w.suggestLoading = false
		w.suggestions = msg.items
		return w, nil

	case analyzeMsg:
		if msg.seq != w.analyzeSeq {
			return w, nil
		}
		w.analyzeText = msg.text
		return w, nil

	case tea.KeyMsg:
		if w.choosing {
			return w.updateChooser(msg)
		}
		if w.machine == nil {
			return w, nil
		}
		if w.suggestOpen {
			return w.updateSuggestOverlay(msg)
		}
		if w.machine.Step() == wizard.StepCompletion {
			return w.updateCompletion(msg)
		}
		return w.updateForm(msg)
	}

	if w.form != nil {
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd
	}
	return w, nil
}

func (w wizardViewModel) updateChooser(msg tea.KeyMsg) (wizardViewModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if w.modeCursor > 0 {
			w.modeCursor--
		}
	case key.Matches(msg, keys.Down):
		if w.modeCursor < 1 {
			w.modeCursor++
		}
	case key.Matches(msg, keys.Enter):
		mode := wizard.ModeFull
		if w.modeCursor == 1 {
			mode = wizard.ModeSimple
		}
		return w.startSession(mode)
	}
	return w, nil
}

func (w wizardViewModel) updateForm(msg tea.KeyMsg) (wizardViewModel, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		// Keep whatever was typed, then step back (or abandon at step 1).
		w.applyCurrentStep()
		if w.machine.Step() == wizard.StepBucketList {
			return w.abandonSession(), nil
		}
		w.machine.Back()
		return w.setupStep()

	case key.Matches(msg, keys.Suggest) && w.suggestableStep():
		w.suggestOpen = true
		w.suggestCursor = 0
		if w.suggestions == nil && !w.suggestLoading {
			var fetch tea.Cmd
			w, fetch = w.fetchSuggestions()
			return w, fetch
		}
		return w, nil

	case key.Matches(msg, keys.Parent) && w.suggestableStep():
		if len(w.formRefs) > 1 {
			w.activeParent = (w.activeParent + 1) % len(w.formRefs)
			return w.fetchSuggestions()
		}
		return w, nil
	}

	if w.form == nil {
		return w, nil
	}
	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advance()
	}
	return w, cmd
}

func (w wizardViewModel) updateSuggestOverlay(msg tea.KeyMsg) (wizardViewModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if w.suggestCursor > 0 {
			w.suggestCursor--
		}
	case key.Matches(msg, keys.Down):
		if w.suggestCursor < len(w.suggestions)-1 {
			w.suggestCursor++
		}
	case key.Matches(msg, keys.Enter):
		if w.suggestCursor < len(w.suggestions) {
			w.applySuggestion(w.suggestions[w.suggestCursor])
		}
		w.suggestOpen = false
	case key.Matches(msg, keys.Back):
		w.suggestOpen = false
	}
	return w, nil
}

// applySuggestion fills the first blank slot of the active parent's field
// (or appends) using the shared wizard rule.
func (w *wizardViewModel) applySuggestion(s string) {
	if w.activeParent >= len(w.formVals) {
		return
	}
	v := w.formVals[w.activeParent]
	if w.machine.Mode() == wizard.ModeSimple {
		if strings.TrimSpace(*v) == "" {
			*v = s
		}
		return
	}
	items := wizard.ApplySuggestion(splitLines(*v), s)
	*v = joinLines(items)
}

func (w wizardViewModel) updateCompletion(msg tea.KeyMsg) (wizardViewModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		return w.commit()
	case key.Matches(msg, keys.Back):
		w.machine.Back()
		return w.setupStep()
	}
	return w, nil
}

// applyCurrentStep merges the form's current values into the draft
// without advancing. Parse errors are ignored; validation happens on
// advance.
func (w *wizardViewModel) applyCurrentStep() {
	simple := w.machine.Mode() == wizard.ModeSimple
	values := func(i int) []string {
		if simple {
			return []string{*w.formVals[i]}
		}
		return splitLines(*w.formVals[i])
	}

	switch w.machine.Step() {
	case wizard.StepBucketList:
		if len(w.formVals) == 1 {
			w.machine.Apply(wizard.BucketPatch{Items: values(0)})
		}
	case wizard.StepTimeline:
		if len(w.formVals) == 1 {
			if n, err := strconv.Atoi(strings.TrimSpace(*w.formVals[0])); err == nil {
				w.machine.Apply(wizard.TimelinePatch{Years: n})
			}
		}
	case wizard.StepMediumTerm:
		for i, ref := range w.formRefs {
			w.machine.Apply(wizard.GoalsPatch{Dream: ref.dream, Goals: values(i)})
		}
	case wizard.StepShortTerm:
		for i, ref := range w.formRefs {
			w.machine.Apply(wizard.ShortGoalsPatch{Dream: ref.dream, Goal: ref.goal, Items: values(i)})
		}
	case wizard.StepDailyHabits:
		for i, ref := range w.formRefs {
			w.machine.Apply(wizard.HabitsPatch{Dream: ref.dream, Goal: ref.goal, Items: values(i)})
		}
	}
}

// advance merges the step's values, checks the step gate and moves on.
func (w wizardViewModel) advance() (wizardViewModel, tea.Cmd) {
	w.applyCurrentStep()

	if !w.machine.Ready() {
		var hint string
		switch w.machine.Step() {
		case wizard.StepBucketList:
			hint = "Add at least one dream to continue"
		case wizard.StepMediumTerm:
			hint = "Every dream needs at least one medium-term goal"
		case wizard.StepShortTerm:
			hint = "Every goal needs at least one short-term action"
		default:
			hint = "This step is incomplete"
		}
		m, cmd := w.setupStep()
		return m, tea.Batch(cmd, errorStatus(hint))
	}

	if err := w.machine.Next(nil); err != nil {
		m, cmd := w.setupStep()
		return m, tea.Batch(cmd, errorStatus(fmt.Sprintf("Error: %v", err)))
	}
	return w.setupStep()
}

// commit performs the single write point of the wizard: all dreams from
// the draft, then the session timeline.
func (w wizardViewModel) commit() (wizardViewModel, tea.Cmd) {
	dreams, years, err := w.machine.Complete()
	if err != nil {
		return w, errorStatus(fmt.Sprintf("Cannot save yet: %v", err))
	}
	for _, d := range dreams {
		if err := w.store.AddDream(d); err != nil {
			return w, errorStatus(fmt.Sprintf("Save error: %v", err))
		}
	}
	if err := w.store.SetOverallETA(years); err != nil {
		return w, errorStatus(fmt.Sprintf("Save error: %v", err))
	}

	n := len(dreams)
	w = w.abandonSession()
	return w, func() tea.Msg { return wizardDoneMsg{dreams: n} }
}

// --- View ---

func (w wizardViewModel) view() string {
	width := w.width - 4

	if w.choosing || w.machine == nil {
		return w.renderChooser(width)
	}

	step := w.machine.Step()
	header := titleStyle.Render(fmt.Sprintf("Step %d/%d: %s", int(step), wizard.TotalSteps, step))

	if step == wizard.StepCompletion {
		return w.renderCompletion(width, header)
	}

	var sections []string
	sections = append(sections, header)

	if w.suggestableStep() {
		sections = append(sections, w.renderSuggestionBar())
	}

	if w.form != nil {
		sections = append(sections, "", w.form.View())
	}

	if w.suggestOpen {
		sections = append(sections, "", w.renderSuggestOverlay())
	}

	return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (w wizardViewModel) renderChooser(width int) string {
	title := titleStyle.Render("New Dream Wizard")
	modes := []string{
		"Full: several dreams, several goals each",
		"Quick: one dream, one goal chain",
	}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, m := range modes {
		cursor := "  "
		style := normalItemStyle
		if i == w.modeCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+m))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: start  ↑/↓: choose"))
	return activePanelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (w wizardViewModel) renderSuggestionBar() string {
	parent := truncate(w.parentText(), 40)
	switch {
	case w.suggestLoading:
		return mutedStyle.Render(fmt.Sprintf("✨ fetching ideas for %q…", parent))
	case len(w.suggestions) > 0:
		return secondaryStyle.Render("✨ ideas ready, ctrl+s to browse") +
			mutedStyle.Render(fmt.Sprintf("  (%q, ctrl+n: next item)", parent))
	default:
		return mutedStyle.Render("ctrl+s: suggestions")
	}
}

func (w wizardViewModel) renderSuggestOverlay() string {
	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("Suggestions for %q", truncate(w.parentText(), 40))))
	rows = append(rows, "")
	if w.suggestLoading {
		rows = append(rows, mutedStyle.Render("  thinking…"))
	}
	for i, s := range w.suggestions {
		cursor := "  "
		style := normalItemStyle
		if i == w.suggestCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+s))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: apply  esc: close"))
	return activePanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (w wizardViewModel) renderCompletion(width int, header string) string {
	draft := w.machine.Draft()

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("Timeline: %d years", draft.Timeline)))

	for _, d := range draft.Dreams {
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		rows = append(rows, "")
		rows = append(rows, highlightStyle.Render("★ "+d.Text))
		for _, g := range d.Goals {
			if strings.TrimSpace(g.Text) == "" {
				continue
			}
			rows = append(rows, secondaryStyle.Render("  ◆ "+g.Text))
			for _, sg := range g.ShortGoals {
				if strings.TrimSpace(sg) != "" {
					rows = append(rows, normalItemStyle.Render("      ☐ "+sg))
				}
			}
			for _, h := range g.Habits {
				if strings.TrimSpace(h) != "" {
					rows = append(rows, mutedStyle.Render("      ⟳ "+h))
				}
			}
		}
	}

	rows = append(rows, "")
	if w.analyzeText != "" {
		rows = append(rows, accentStyle.Render("Coach says:"))
		rows = append(rows, wordWrap(w.analyzeText, width-8))
	} else {
		rows = append(rows, mutedStyle.Render("Coach is thinking…"))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: save dreams  esc: back"))

	return activePanelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// --- line helpers ---

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func joinLines(items []string) string {
	return strings.Join(items, "\n")
}

func wordWrap(s string, width int) string {
	if width < 10 {
		width = 10
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
