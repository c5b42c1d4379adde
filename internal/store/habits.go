package store

import (
	"fmt"
	"time"
)

// DateFormat is the layout of habit history entries.
const DateFormat = "2006-01-02"

// Today returns the current local date in history format.
func Today() string {
	return time.Now().Format(DateFormat)
}

// CheckInHabit toggles a habit's completion for the given date. Checking
// in adds the date to history and bumps the streak; unchecking removes it
// and decrements the streak (floored at zero). Toggling to the state the
// habit is already in is a no-op. Persists on change.
func (s *Store) CheckInHabit(habitID, date string, checked bool) error {
	h := s.findHabit(habitID)
	if h == nil {
		return fmt.Errorf("habit %q not found", habitID)
	}

	has := h.CompletedOn(date)
	switch {
	case checked && !has:
		h.History = append(h.History, date)
		h.Streak++
	case !checked && has:
		h.History = removeDate(h.History, date)
		if h.Streak > 0 {
			h.Streak--
		}
	default:
		return nil
	}
	return s.save()
}

func (s *Store) findHabit(habitID string) *DailyHabit {
	for di := range s.state.Dreams {
		for ei := range s.state.Dreams[di].Enablers {
			habits := s.state.Dreams[di].Enablers[ei].DailyHabits
			for hi := range habits {
				if habits[hi].ID == habitID {
					return &habits[hi]
				}
			}
		}
	}
	return nil
}

func removeDate(history []string, date string) []string {
	out := make([]string, 0, len(history))
	for _, d := range history {
		if d != date {
			out = append(out, d)
		}
	}
	return out
}
