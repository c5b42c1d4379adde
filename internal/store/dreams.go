package store

import "fmt"

// AddDream appends a committed dream and persists, preserving insertion
// order. First launch ends once a dream has been saved.
func (s *Store) AddDream(d Dream) error {
	s.state.Dreams = append(s.state.Dreams, d)
	if err := s.save(); err != nil {
		return err
	}
	s.firstLaunch = false
	return nil
}

// SetOverallETA overwrites the global timeline and persists.
func (s *Store) SetOverallETA(years int) error {
	s.state.OverallETA = years
	return s.save()
}

// SetShortGoalDone marks the short goal with the given ID done (or not)
// and persists.
func (s *Store) SetShortGoalDone(goalID string, done bool) error {
	for di := range s.state.Dreams {
		for ei := range s.state.Dreams[di].Enablers {
			goals := s.state.Dreams[di].Enablers[ei].ShortGoals
			for gi := range goals {
				if goals[gi].ID == goalID {
					goals[gi].Done = done
					return s.save()
				}
			}
		}
	}
	return fmt.Errorf("short goal %q not found", goalID)
}
