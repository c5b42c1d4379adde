package progress

import (
	"testing"

	"github.com/sadopc/dreammap/internal/store"
)

// dreamWith builds a dream whose short goals have the given done flags,
// split across two enablers to exercise cross-enabler aggregation.
func dreamWith(done ...bool) store.Dream {
	var goals []store.ShortGoal
	for i, d := range done {
		goals = append(goals, store.ShortGoal{ID: string(rune('a' + i)), Detail: "g", Done: d})
	}
	half := len(goals) / 2
	return store.Dream{
		ID:   "dream-0",
		Text: "d",
		Enablers: []store.Enabler{
			{ID: "e0", Name: "first", ShortGoals: goals[:half]},
			{ID: "e1", Name: "second", ShortGoals: goals[half:]},
		},
	}
}

func TestDreamProgress(t *testing.T) {
	tests := []struct {
		name string
		done []bool
		want int
	}{
		{"no goals", nil, 0},
		{"none done", []bool{false, false, false}, 0},
		{"all done", []bool{true, true}, 100},
		{"half done", []bool{true, false}, 50},
		{"one of three rounds up", []bool{true, false, false}, 33},
		{"two of three rounds up", []bool{true, true, false}, 67},
		{"one of eight", []bool{true, false, false, false, false, false, false, false}, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DreamProgress(dreamWith(tt.done...)); got != tt.want {
				t.Fatalf("expected %d%%, got %d%%", tt.want, got)
			}
		})
	}
}

func TestClassificationBands(t *testing.T) {
	// 4/5 = 80% is successful, boundary inclusive.
	if !IsSuccessful(dreamWith(true, true, true, true, false)) {
		t.Fatal("80% should be successful")
	}
	// 3/4 = 75% is neither successful nor struggling.
	d := dreamWith(true, true, true, false)
	if IsSuccessful(d) || IsStruggling(d) || IsStalled(d) {
		t.Fatal("75% should carry no label")
	}
	// 1/4 = 25% is struggling but not stalled.
	d = dreamWith(true, false, false, false)
	if !IsStruggling(d) {
		t.Fatal("25% should be struggling")
	}
	if IsStalled(d) {
		t.Fatal("25% with progress is not stalled")
	}
	// 0/n is stalled, and stalled implies struggling.
	d = dreamWith(false, false)
	if !IsStalled(d) || !IsStruggling(d) {
		t.Fatal("0% should be both stalled and struggling")
	}
	// No goals at all: no label applies.
	empty := store.Dream{ID: "dream-0", Enablers: []store.Enabler{{ID: "e0"}}}
	if IsSuccessful(empty) || IsStruggling(empty) || IsStalled(empty) {
		t.Fatal("dream without goals must carry no label")
	}
}

func TestStruggleBoundary(t *testing.T) {
	// 3/10 = 30% sits exactly on the boundary and is not struggling.
	d := dreamWith(true, true, true, false, false, false, false, false, false, false)
	if IsStruggling(d) {
		t.Fatal("exactly 30% should not be struggling")
	}
}

func TestTodayHabitCompletion(t *testing.T) {
	today := "2026-08-29"
	st := store.State{Dreams: []store.Dream{{
		Enablers: []store.Enabler{{
			DailyHabits: []store.DailyHabit{
				{ID: "h1", History: []string{today, "2026-08-28"}},
				{ID: "h2", History: []string{"2026-08-28"}},
				{ID: "h3"},
			},
		}},
	}}}

	completed, total := TodayHabitCompletion(st, today)
	if completed != 1 || total != 3 {
		t.Fatalf("expected 1/3, got %d/%d", completed, total)
	}

	completed, total = TodayHabitCompletion(store.State{}, today)
	if completed != 0 || total != 0 {
		t.Fatalf("empty state: expected 0/0, got %d/%d", completed, total)
	}
}

func TestSummarize(t *testing.T) {
	today := "2026-08-29"
	st := store.State{
		OverallETA: 10,
		Dreams: []store.Dream{
			dreamWith(true, false),
			{Enablers: []store.Enabler{{
				ShortGoals:  []store.ShortGoal{{ID: "s", Done: true}},
				DailyHabits: []store.DailyHabit{{ID: "h", History: []string{today}}},
			}}},
		},
	}

	sum := Summarize(st, today)
	if sum.Dreams != 2 {
		t.Fatalf("dreams: %d", sum.Dreams)
	}
	if sum.Enablers != 3 {
		t.Fatalf("enablers: %d", sum.Enablers)
	}
	if sum.ShortGoals != 3 || sum.ShortGoalsDone != 2 {
		t.Fatalf("short goals: %d/%d", sum.ShortGoalsDone, sum.ShortGoals)
	}
	if sum.Habits != 1 || sum.HabitsDoneToday != 1 {
		t.Fatalf("habits: %d/%d", sum.HabitsDoneToday, sum.Habits)
	}
}
