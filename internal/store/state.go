package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// load reads the persisted blob. Absence or a malformed blob is not an
// error for the caller: both resolve to the default state with firstLaunch
// set, and a malformed blob is noted once on stderr.
func (s *Store) load() (State, bool) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM state WHERE key = ?`, stateKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultState(), true
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dreammap: read state: %v\n", err)
		return DefaultState(), true
	}

	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		fmt.Fprintf(os.Stderr, "dreammap: corrupt state blob, starting fresh: %v\n", err)
		return DefaultState(), true
	}
	if st.Dreams == nil {
		st.Dreams = []Dream{}
	}
	return st, false
}

// save overwrites the persisted blob wholesale. Every mutating operation
// calls it immediately; write failures propagate to the caller.
func (s *Store) save() error {
	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		stateKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// State returns the current in-memory state snapshot.
func (s *Store) State() State {
	return s.state
}
