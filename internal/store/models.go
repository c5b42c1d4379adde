package store

// DailyHabit is a recurring action under an enabler, tracked by a streak
// counter and a set of completion dates.
//
// Streak is the stored source of truth: it moves only on check-in toggles
// and is never reconciled against History on load, so a multi-day gap in
// History does not reset it.
type DailyHabit struct {
	ID      string   `json:"id"`
	Detail  string   `json:"detail"`
	Streak  int      `json:"streak"`
	History []string `json:"history"` // YYYY-MM-DD, unique, unordered
}

// CompletedOn reports whether the habit was checked in on the given date.
func (h DailyHabit) CompletedOn(date string) bool {
	for _, d := range h.History {
		if d == date {
			return true
		}
	}
	return false
}

// ShortGoal is a discrete, completable short-term action.
type ShortGoal struct {
	ID     string `json:"id"`
	Detail string `json:"detail"`
	Done   bool   `json:"done"`
}

// Enabler is one medium-term goal and everything that operationalizes it.
type Enabler struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	ShortGoals  []ShortGoal  `json:"shortGoals"`
	DailyHabits []DailyHabit `json:"dailyHabits"`
}

// Dream is a top-level bucket-list aspiration. Enablers are owned
// exclusively; nothing is shared across dreams.
type Dream struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Enablers []Enabler `json:"enablers"`
}

// State is the entire persisted application state, serialized wholesale as
// one JSON blob.
type State struct {
	Dreams     []Dream `json:"dreams"`
	OverallETA int     `json:"overallETA"` // years
}

// DefaultOverallETA is the timeline applied on first launch.
const DefaultOverallETA = 10

// DefaultState is the state used when nothing has been persisted yet or
// the persisted blob cannot be read.
func DefaultState() State {
	return State{Dreams: []Dream{}, OverallETA: DefaultOverallETA}
}
