package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/dreammap/internal/store"
	"github.com/sadopc/dreammap/internal/suggest"
	"github.com/sadopc/dreammap/internal/wizard"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func addTestDream(t *testing.T, s *store.Store) {
	t.Helper()
	seq := store.NewIDSeq(0)
	e := store.NewEnabler("Learn to dive",
		[]string{"Book a course", "Buy a mask"},
		[]string{"Practice breathing"},
		seq)
	if err := s.AddDream(store.NewDream("Explore a reef", []store.Enabler{e}, 0)); err != nil {
		t.Fatal(err)
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ============================================================
// Helpers
// ============================================================

func TestClassify(t *testing.T) {
	mk := func(done ...bool) store.Dream {
		var goals []store.ShortGoal
		for _, d := range done {
			goals = append(goals, store.ShortGoal{Done: d})
		}
		return store.Dream{Enablers: []store.Enabler{{ShortGoals: goals}}}
	}

	if got := classify(store.Dream{}); got != "" {
		t.Fatalf("no goals: expected empty label, got %q", got)
	}
	if got := classify(mk(false, false)); got != "stalled" {
		t.Fatalf("expected stalled, got %q", got)
	}
	if got := classify(mk(true, false, false, false)); got != "struggling" {
		t.Fatalf("expected struggling, got %q", got)
	}
	if got := classify(mk(true, true, true, true, false)); got != "on track" {
		t.Fatalf("expected on track, got %q", got)
	}
	if got := classify(mk(true, false)); got != "in progress" {
		t.Fatalf("expected in progress, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := truncate("a longer string", 8); got != "a longe…" {
		t.Fatalf("unexpected: %q", got)
	}
	// Rune-aware: multi-byte text must never be cut mid-rune.
	if got := truncate("日本語を勉強する", 4); got != "日本語…" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := truncate("日本語", 5); got != "日本語" {
		t.Fatalf("short multi-byte string should pass through, got %q", got)
	}
}

func TestFlattenHabits(t *testing.T) {
	s := newTestStore(t)
	addTestDream(t, s)
	today := "2026-08-29"
	habitID := s.State().Dreams[0].Enablers[0].DailyHabits[0].ID
	if err := s.CheckInHabit(habitID, today, true); err != nil {
		t.Fatal(err)
	}

	rows := flattenHabits(s.State(), today)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !rows[0].done || rows[0].streak != 1 {
		t.Fatalf("row not reflecting check-in: %+v", rows[0])
	}
	if rows[0].dream != "Explore a reef" {
		t.Fatalf("missing dream context: %q", rows[0].dream)
	}
}

func TestSplitJoinLines(t *testing.T) {
	if got := splitLines("  \n "); got != nil {
		t.Fatalf("blank input should yield nil, got %v", got)
	}
	got := splitLines("a\nb")
	if len(got) != 2 || got[1] != "b" {
		t.Fatalf("unexpected: %v", got)
	}
	if joinLines([]string{"a", "b"}) != "a\nb" {
		t.Fatal("join mismatch")
	}
}

// ============================================================
// Wizard view
// ============================================================

func newTestWizard(t *testing.T) (wizardViewModel, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	return newWizardViewModel(s, suggest.NewClient("")), s
}

func TestWizardChooserStartsSession(t *testing.T) {
	w, _ := newTestWizard(t)
	if !w.choosing {
		t.Fatal("wizard should open on the mode chooser")
	}

	w, _ = w.update(tea.KeyMsg{Type: tea.KeyEnter})
	if w.choosing || w.machine == nil {
		t.Fatal("enter should start a session")
	}
	if w.machine.Mode() != wizard.ModeFull {
		t.Fatal("first chooser entry is the full flow")
	}
	if w.machine.Step() != wizard.StepBucketList {
		t.Fatalf("expected step 1, got %v", w.machine.Step())
	}
	if w.form == nil {
		t.Fatal("step 1 should present a form")
	}
}

func TestWizardFullFlowCommit(t *testing.T) {
	w, s := newTestWizard(t)
	w, _ = w.startSession(wizard.ModeFull)

	// Step 1: dreams, one per line.
	*w.formVals[0] = "Run a marathon\nWrite a novel"
	w, _ = w.advance()
	if w.machine.Step() != wizard.StepTimeline {
		t.Fatalf("expected timeline step, got %v", w.machine.Step())
	}

	// Step 2: timeline.
	*w.formVals[0] = "4"
	w, _ = w.advance()
	if w.machine.Step() != wizard.StepMediumTerm {
		t.Fatalf("expected medium-term step, got %v", w.machine.Step())
	}
	if len(w.formRefs) != 2 {
		t.Fatalf("expected one field per dream, got %d", len(w.formRefs))
	}

	// Step 3: a goal per dream.
	*w.formVals[0] = "Build a running base"
	*w.formVals[1] = "Finish the first draft"
	w, _ = w.advance()

	// Step 4: short goals per goal.
	if len(w.formRefs) != 2 {
		t.Fatalf("expected one field per goal, got %d", len(w.formRefs))
	}
	*w.formVals[0] = "Run a 10k"
	*w.formVals[1] = "Outline chapters"
	w, _ = w.advance()

	// Step 5: habits are optional.
	*w.formVals[0] = "Run 5k"
	w, _ = w.advance()
	if w.machine.Step() != wizard.StepCompletion {
		t.Fatalf("expected completion step, got %v", w.machine.Step())
	}

	// Commit.
	w, cmd := w.commit()
	if cmd == nil {
		t.Fatal("commit should emit a done message")
	}
	msg, ok := cmd().(wizardDoneMsg)
	if !ok {
		t.Fatalf("expected wizardDoneMsg, got %T", cmd())
	}
	if msg.dreams != 2 {
		t.Fatalf("expected 2 committed dreams, got %d", msg.dreams)
	}

	st := s.State()
	if len(st.Dreams) != 2 {
		t.Fatalf("store should hold 2 dreams, got %d", len(st.Dreams))
	}
	if st.OverallETA != 4 {
		t.Fatalf("store ETA should be the session timeline, got %d", st.OverallETA)
	}
	if !w.choosing {
		t.Fatal("wizard should return to the chooser after commit")
	}
}

func TestWizardGateBlocksAdvance(t *testing.T) {
	w, _ := newTestWizard(t)
	w, _ = w.startSession(wizard.ModeFull)

	*w.formVals[0] = "   "
	w, _ = w.advance()
	if w.machine.Step() != wizard.StepBucketList {
		t.Fatalf("blank bucket list must not advance, got %v", w.machine.Step())
	}
}

func TestWizardBackKeepsTypedText(t *testing.T) {
	w, _ := newTestWizard(t)
	w, _ = w.startSession(wizard.ModeFull)
	*w.formVals[0] = "Dream A"
	w, _ = w.advance()

	// Esc applies the (unsubmitted) timeline text and steps back.
	*w.formVals[0] = "7"
	w, _ = w.update(tea.KeyMsg{Type: tea.KeyEsc})
	if w.machine.Step() != wizard.StepBucketList {
		t.Fatalf("expected step 1 after esc, got %v", w.machine.Step())
	}
	if w.machine.Draft().Timeline != 7 {
		t.Fatalf("typed timeline lost on back: %d", w.machine.Draft().Timeline)
	}
	if *w.formVals[0] != "Dream A" {
		t.Fatalf("bucket form not refilled from draft: %q", *w.formVals[0])
	}
}

func TestWizardEscAtStepOneAbandons(t *testing.T) {
	w, _ := newTestWizard(t)
	w, _ = w.startSession(wizard.ModeFull)
	w, _ = w.update(tea.KeyMsg{Type: tea.KeyEsc})
	if !w.choosing || w.machine != nil {
		t.Fatal("esc at step 1 should return to the chooser")
	}
}

func TestWizardStaleSuggestionsDropped(t *testing.T) {
	w, _ := newTestWizard(t)
	w, _ = w.startSession(wizard.ModeFull)

	w, _ = w.update(suggestionsMsg{seq: w.suggestSeq - 1, items: []string{"stale"}})
	if w.suggestions != nil {
		t.Fatal("stale suggestions must be dropped")
	}

	w, _ = w.update(suggestionsMsg{seq: w.suggestSeq, items: []string{"fresh"}})
	if len(w.suggestions) != 1 || w.suggestions[0] != "fresh" {
		t.Fatalf("current suggestions lost: %v", w.suggestions)
	}
}

func TestWizardApplySuggestionFillsBlank(t *testing.T) {
	w, _ := newTestWizard(t)
	w, _ = w.startSession(wizard.ModeFull)
	*w.formVals[0] = "Dream A"
	w, _ = w.advance()
	*w.formVals[0] = "3"
	w, _ = w.advance()

	*w.formVals[0] = "existing\n"
	w.activeParent = 0
	w.applySuggestion("suggested goal")
	if *w.formVals[0] != "existing\nsuggested goal" {
		t.Fatalf("suggestion should fill the blank line: %q", *w.formVals[0])
	}
}

func TestWizardBaseIndexFollowsStore(t *testing.T) {
	s := newTestStore(t)
	addTestDream(t, s)
	w := newWizardViewModel(s, suggest.NewClient(""))
	w, _ = w.startSession(wizard.ModeFull)

	*w.formVals[0] = "Second dream"
	w, _ = w.advance()
	*w.formVals[0] = "2"
	w, _ = w.advance()
	*w.formVals[0] = "a goal"
	w, _ = w.advance()
	*w.formVals[0] = "a step"
	w, _ = w.advance()
	w, _ = w.advance()

	w, _ = w.commit()
	st := s.State()
	if len(st.Dreams) != 2 {
		t.Fatalf("expected 2 dreams, got %d", len(st.Dreams))
	}
	if st.Dreams[1].ID != "dream-1" {
		t.Fatalf("new dream must continue the index sequence, got %q", st.Dreams[1].ID)
	}
}

// ============================================================
// App routing
// ============================================================

func TestAppFirstLaunchOpensWizard(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, suggest.NewClient(""))
	if app.activeView != viewWizard {
		t.Fatalf("first launch should open the wizard, got %v", app.activeView)
	}

	addTestDream(t, s)
	app = NewApp(s, suggest.NewClient(""))
	if app.activeView != viewDashboard {
		t.Fatalf("returning launch should open the dashboard, got %v", app.activeView)
	}
}

func TestAppViewSwitching(t *testing.T) {
	s := newTestStore(t)
	addTestDream(t, s)
	app := NewApp(s, suggest.NewClient(""))

	m, _ := app.Update(keyRune('3'))
	app = m.(App)
	if app.activeView != viewCheckin {
		t.Fatalf("expected check-in view, got %v", app.activeView)
	}

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = m.(App)
	if app.activeView != viewWizard {
		t.Fatalf("tab should move to the next view, got %v", app.activeView)
	}
}

func TestAppWizardDoneReturnsToDashboard(t *testing.T) {
	s := newTestStore(t)
	addTestDream(t, s)
	app := NewApp(s, suggest.NewClient(""))
	app.activeView = viewWizard

	m, _ := app.Update(wizardDoneMsg{dreams: 1})
	app = m.(App)
	if app.activeView != viewDashboard {
		t.Fatalf("expected dashboard after commit, got %v", app.activeView)
	}
}

func TestAppStatusMessages(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, suggest.NewClient(""))

	m, _ := app.Update(statusMsg{text: "boom", isError: true})
	app = m.(App)
	if app.status != "boom" || !app.statusError {
		t.Fatal("status not recorded")
	}

	// Any key clears the status line.
	m, _ = app.Update(keyRune('1'))
	app = m.(App)
	if app.status != "" {
		t.Fatalf("status should clear on input, got %q", app.status)
	}
}
