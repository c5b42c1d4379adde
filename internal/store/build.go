package store

import (
	"fmt"
	"strings"
)

// IDSeq issues deterministic entity IDs for one dream under construction.
// Short-goal and habit ordinals run across all enablers of the dream.
type IDSeq struct {
	dream   int
	enabler int
	short   int
	habit   int
}

// NewIDSeq starts an ID sequence for the dream at the given index.
func NewIDSeq(dreamIdx int) *IDSeq {
	return &IDSeq{dream: dreamIdx}
}

func (s *IDSeq) nextEnabler() string {
	id := fmt.Sprintf("enabler-%d-%d", s.dream, s.enabler)
	s.enabler++
	return id
}

func (s *IDSeq) nextShort() string {
	id := fmt.Sprintf("short-%d-%d", s.dream, s.short)
	s.short++
	return id
}

func (s *IDSeq) nextHabit() string {
	id := fmt.Sprintf("daily-%d-%d", s.dream, s.habit)
	s.habit++
	return id
}

// NewEnabler builds a committed enabler from raw wizard text. Blank texts
// are dropped after trimming; an enabler with no remaining content is
// still valid. Inputs are never mutated.
func NewEnabler(name string, shortGoals, habits []string, seq *IDSeq) Enabler {
	e := Enabler{
		ID:          seq.nextEnabler(),
		Name:        strings.TrimSpace(name),
		ShortGoals:  []ShortGoal{},
		DailyHabits: []DailyHabit{},
	}
	for _, text := range shortGoals {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		e.ShortGoals = append(e.ShortGoals, ShortGoal{
			ID:     seq.nextShort(),
			Detail: text,
		})
	}
	for _, text := range habits {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		e.DailyHabits = append(e.DailyHabits, DailyHabit{
			ID:      seq.nextHabit(),
			Detail:  text,
			History: []string{},
		})
	}
	return e
}

// NewDream builds a committed dream at the given index.
func NewDream(text string, enablers []Enabler, dreamIdx int) Dream {
	if enablers == nil {
		enablers = []Enabler{}
	}
	return Dream{
		ID:       fmt.Sprintf("dream-%d", dreamIdx),
		Text:     strings.TrimSpace(text),
		Enablers: enablers,
	}
}
