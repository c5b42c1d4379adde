// Package progress derives read-only dashboard values from a state
// snapshot. Nothing here mutates the store.
package progress

import (
	"math"

	"github.com/sadopc/dreammap/internal/store"
)

func shortGoalCounts(d store.Dream) (done, total int) {
	for _, e := range d.Enablers {
		for _, g := range e.ShortGoals {
			total++
			if g.Done {
				done++
			}
		}
	}
	return done, total
}

// DreamProgress is the percentage of completed short goals across all of
// the dream's enablers, rounded half-up. A dream with no short goals is
// at zero.
func DreamProgress(d store.Dream) int {
	done, total := shortGoalCounts(d)
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// IsSuccessful reports >= 80% completion. Never true without short goals.
func IsSuccessful(d store.Dream) bool {
	done, total := shortGoalCounts(d)
	return total > 0 && float64(done)/float64(total) >= 0.8
}

// IsStruggling reports < 30% completion. Never true without short goals.
func IsStruggling(d store.Dream) bool {
	done, total := shortGoalCounts(d)
	return total > 0 && float64(done)/float64(total) < 0.3
}

// IsStalled reports zero completed short goals out of at least one.
// Stalled implies struggling.
func IsStalled(d store.Dream) bool {
	done, total := shortGoalCounts(d)
	return total > 0 && done == 0
}

// TodayHabitCompletion counts habits checked in on the given date against
// all habits in the state.
func TodayHabitCompletion(st store.State, today string) (completed, total int) {
	for _, d := range st.Dreams {
		for _, e := range d.Enablers {
			for _, h := range e.DailyHabits {
				total++
				if h.CompletedOn(today) {
					completed++
				}
			}
		}
	}
	return completed, total
}

// Summary aggregates the whole state for the dashboard and exports.
type Summary struct {
	Dreams          int
	Enablers        int
	ShortGoals      int
	ShortGoalsDone  int
	Habits          int
	HabitsDoneToday int
}

// Summarize computes a Summary for the given date.
func Summarize(st store.State, today string) Summary {
	var sum Summary
	sum.Dreams = len(st.Dreams)
	for _, d := range st.Dreams {
		sum.Enablers += len(d.Enablers)
		done, total := shortGoalCounts(d)
		sum.ShortGoals += total
		sum.ShortGoalsDone += done
	}
	sum.HabitsDoneToday, sum.Habits = TodayHabitCompletion(st, today)
	return sum
}
