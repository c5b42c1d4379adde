package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/sadopc/dreammap/internal/store"
)

// ToCSV writes one row per short goal and per daily habit, with dream and
// enabler context, to path.
func ToCSV(st store.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Dream", "Enabler", "Type", "Detail", "Done", "Streak", "Last Check-in"}); err != nil {
		return err
	}

	for _, d := range st.Dreams {
		for _, e := range d.Enablers {
			for _, g := range e.ShortGoals {
				row := []string{d.Text, e.Name, "short goal", g.Detail, strconv.FormatBool(g.Done), "", ""}
				if err := w.Write(row); err != nil {
					return err
				}
			}
			for _, h := range e.DailyHabits {
				row := []string{d.Text, e.Name, "daily habit", h.Detail, "", strconv.Itoa(h.Streak), lastCheckIn(h)}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}

	return w.Error()
}

// lastCheckIn returns the most recent history date. History is unordered
// in storage, so sort a copy.
func lastCheckIn(h store.DailyHabit) string {
	if len(h.History) == 0 {
		return ""
	}
	dates := append([]string(nil), h.History...)
	sort.Strings(dates)
	return dates[len(dates)-1]
}
