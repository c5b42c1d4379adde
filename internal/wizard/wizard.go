// Package wizard implements the six-step goal-decomposition flow that
// turns free-text input into committed dream entities. The machine is
// pure: it owns a draft, validates typed patches at each transition and
// produces store entities exactly once, at completion.
package wizard

import (
	"fmt"
	"strings"

	"github.com/sadopc/dreammap/internal/store"
)

// Step is the 1-based wizard position.
type Step int

const (
	StepBucketList Step = iota + 1
	StepTimeline
	StepMediumTerm
	StepShortTerm
	StepDailyHabits
	StepCompletion

	TotalSteps = int(StepCompletion)
)

var stepNames = map[Step]string{
	StepBucketList:  "Bucket List",
	StepTimeline:    "Timeline",
	StepMediumTerm:  "Medium-Term Goals",
	StepShortTerm:   "Short-Term Actions",
	StepDailyHabits: "Daily Habits",
	StepCompletion:  "Review & Commit",
}

func (s Step) String() string { return stepNames[s] }

// Mode selects the flow variant. The simple flow walks the same six steps
// but collects a single dream with a single goal chain.
type Mode int

const (
	ModeFull Mode = iota
	ModeSimple
)

// GoalDraft is one medium-term goal under a dream draft, with its child
// text slots. Children are joined to parents by index, never by text.
type GoalDraft struct {
	Text       string
	ShortGoals []string
	Habits     []string
}

// DreamDraft is one bucket-list item under construction.
type DreamDraft struct {
	Text  string
	Goals []GoalDraft
}

// Draft is the transient state collected across steps. Nothing here is
// persisted until Complete.
type Draft struct {
	Dreams   []DreamDraft
	Timeline int // years
}

// Machine drives the wizard. The zero value is not usable; construct with
// New.
type Machine struct {
	mode      Mode
	step      Step
	draft     Draft
	baseIndex int // dream index committed entities start at
}

// New creates a machine at step one. baseIndex is the number of dreams
// already in the store, so committed IDs never collide with earlier
// sessions.
func New(mode Mode, baseIndex int) *Machine {
	return &Machine{
		mode:      mode,
		step:      StepBucketList,
		draft:     Draft{Timeline: store.DefaultOverallETA},
		baseIndex: baseIndex,
	}
}

func (m *Machine) Mode() Mode   { return m.mode }
func (m *Machine) Step() Step   { return m.step }
func (m *Machine) Draft() Draft { return m.draft }

// Apply merges a patch into the draft without moving. Steps that collect
// input for several parents apply one patch per parent before advancing.
func (m *Machine) Apply(p Patch) error {
	return p.apply(m)
}

// Next applies the patch to the draft and advances one step, clamped at
// the completion step. A nil patch advances without changing the draft.
func (m *Machine) Next(p Patch) error {
	if p != nil {
		if err := p.apply(m); err != nil {
			return err
		}
	}
	if m.step < StepCompletion {
		m.step++
	}
	return nil
}

// Back moves one step back, clamped at step one. Collected draft data is
// never discarded.
func (m *Machine) Back() {
	if m.step > StepBucketList {
		m.step--
	}
}

// Ready reports whether the current step's continue affordance should be
// enabled: every parent collected so far must have at least one non-blank
// child where the step demands one.
func (m *Machine) Ready() bool {
	switch m.step {
	case StepBucketList:
		for _, d := range m.draft.Dreams {
			if strings.TrimSpace(d.Text) != "" {
				return true
			}
		}
		return false
	case StepMediumTerm:
		return m.everyDreamHasGoal()
	case StepShortTerm:
		return m.everyGoalHasShortGoal()
	default:
		// Timeline has a default, habits are optional, completion gates
		// through Complete.
		return true
	}
}

func (m *Machine) everyDreamHasGoal() bool {
	any := false
	for _, d := range m.draft.Dreams {
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		any = true
		found := false
		for _, g := range d.Goals {
			if strings.TrimSpace(g.Text) != "" {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return any
}

func (m *Machine) everyGoalHasShortGoal() bool {
	if !m.everyDreamHasGoal() {
		return false
	}
	for _, d := range m.draft.Dreams {
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		for _, g := range d.Goals {
			if strings.TrimSpace(g.Text) == "" {
				continue
			}
			found := false
			for _, sg := range g.ShortGoals {
				if strings.TrimSpace(sg) != "" {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// Complete converts the draft into committed entities. It is only legal at
// the completion step with all gates satisfied. The returned timeline is
// the session value for the store's overall ETA. Output is deterministic
// for a given draft and base index.
func (m *Machine) Complete() ([]store.Dream, int, error) {
	if m.step != StepCompletion {
		return nil, 0, fmt.Errorf("complete called at step %d", m.step)
	}
	if !m.everyGoalHasShortGoal() {
		return nil, 0, fmt.Errorf("draft is incomplete")
	}

	var dreams []store.Dream
	idx := m.baseIndex
	for _, dd := range m.draft.Dreams {
		if strings.TrimSpace(dd.Text) == "" {
			continue
		}
		seq := store.NewIDSeq(idx)
		var enablers []store.Enabler
		for _, g := range dd.Goals {
			if strings.TrimSpace(g.Text) == "" {
				continue
			}
			enablers = append(enablers, store.NewEnabler(g.Text, g.ShortGoals, g.Habits, seq))
		}
		dreams = append(dreams, store.NewDream(dd.Text, enablers, idx))
		idx++
	}
	return dreams, m.draft.Timeline, nil
}

// ApplySuggestion merges a suggestion into a slot list: it fills the first
// blank slot, or appends a new one if none is blank. The rule is the same
// for AI-generated and fallback suggestions.
func ApplySuggestion(items []string, suggestion string) []string {
	for i, it := range items {
		if strings.TrimSpace(it) == "" {
			out := make([]string, len(items))
			copy(out, items)
			out[i] = suggestion
			return out
		}
	}
	out := make([]string, len(items), len(items)+1)
	copy(out, items)
	return append(out, suggestion)
}
