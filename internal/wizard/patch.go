package wizard

import "fmt"

// Patch is a typed, per-step draft update. Each patch kind is only legal
// at its own step; indices refer to draft positions, never to item text.
type Patch interface {
	apply(m *Machine) error
}

// BucketPatch replaces the bucket-list items (step 1). Existing goal
// chains are kept for items whose position survives.
type BucketPatch struct {
	Items []string
}

func (p BucketPatch) apply(m *Machine) error {
	if m.step != StepBucketList {
		return fmt.Errorf("bucket patch at step %d", m.step)
	}
	if m.mode == ModeSimple && len(p.Items) > 1 {
		return fmt.Errorf("simple flow accepts one dream, got %d", len(p.Items))
	}
	dreams := make([]DreamDraft, len(p.Items))
	for i, text := range p.Items {
		dreams[i].Text = text
		if i < len(m.draft.Dreams) {
			dreams[i].Goals = m.draft.Dreams[i].Goals
		}
	}
	m.draft.Dreams = dreams
	return nil
}

// TimelinePatch sets the session timeline in years (step 2).
type TimelinePatch struct {
	Years int
}

func (p TimelinePatch) apply(m *Machine) error {
	if m.step != StepTimeline {
		return fmt.Errorf("timeline patch at step %d", m.step)
	}
	if p.Years < 1 {
		return fmt.Errorf("timeline must be at least one year")
	}
	m.draft.Timeline = p.Years
	return nil
}

// GoalsPatch replaces the medium-term goals of one dream (step 3). Child
// slots are kept for goal positions that survive.
type GoalsPatch struct {
	Dream int
	Goals []string
}

func (p GoalsPatch) apply(m *Machine) error {
	if m.step != StepMediumTerm {
		return fmt.Errorf("goals patch at step %d", m.step)
	}
	if p.Dream < 0 || p.Dream >= len(m.draft.Dreams) {
		return fmt.Errorf("dream index %d out of range", p.Dream)
	}
	if m.mode == ModeSimple && len(p.Goals) > 1 {
		return fmt.Errorf("simple flow accepts one goal, got %d", len(p.Goals))
	}
	old := m.draft.Dreams[p.Dream].Goals
	goals := make([]GoalDraft, len(p.Goals))
	for i, text := range p.Goals {
		goals[i].Text = text
		if i < len(old) {
			goals[i].ShortGoals = old[i].ShortGoals
			goals[i].Habits = old[i].Habits
		}
	}
	m.draft.Dreams[p.Dream].Goals = goals
	return nil
}

// ShortGoalsPatch replaces the short-term actions of one goal (step 4).
type ShortGoalsPatch struct {
	Dream int
	Goal  int
	Items []string
}

func (p ShortGoalsPatch) apply(m *Machine) error {
	if m.step != StepShortTerm {
		return fmt.Errorf("short goals patch at step %d", m.step)
	}
	g, err := m.goalAt(p.Dream, p.Goal)
	if err != nil {
		return err
	}
	if m.mode == ModeSimple && len(p.Items) > 1 {
		return fmt.Errorf("simple flow accepts one action, got %d", len(p.Items))
	}
	g.ShortGoals = append([]string(nil), p.Items...)
	return nil
}

// HabitsPatch replaces the daily habits of one goal (step 5).
type HabitsPatch struct {
	Dream int
	Goal  int
	Items []string
}

func (p HabitsPatch) apply(m *Machine) error {
	if m.step != StepDailyHabits {
		return fmt.Errorf("habits patch at step %d", m.step)
	}
	g, err := m.goalAt(p.Dream, p.Goal)
	if err != nil {
		return err
	}
	if m.mode == ModeSimple && len(p.Items) > 1 {
		return fmt.Errorf("simple flow accepts one habit, got %d", len(p.Items))
	}
	g.Habits = append([]string(nil), p.Items...)
	return nil
}

func (m *Machine) goalAt(dream, goal int) (*GoalDraft, error) {
	if dream < 0 || dream >= len(m.draft.Dreams) {
		return nil, fmt.Errorf("dream index %d out of range", dream)
	}
	goals := m.draft.Dreams[dream].Goals
	if goal < 0 || goal >= len(goals) {
		return nil, fmt.Errorf("goal index %d out of range for dream %d", goal, dream)
	}
	return &goals[goal], nil
}
