package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/dreammap/internal/progress"
	"github.com/sadopc/dreammap/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	OverallETA int         `json:"overall_eta_years"`
	DreamCount int         `json:"dream_count"`
	Dreams     []jsonDream `json:"dreams"`
}

type jsonDream struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Progress int           `json:"progress_percent"`
	Enablers []jsonEnabler `json:"enablers"`
}

type jsonEnabler struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	ShortGoals  []store.ShortGoal  `json:"short_goals"`
	DailyHabits []store.DailyHabit `json:"daily_habits"`
}

// ToJSON writes the whole dream tree with computed progress to path.
func ToJSON(st store.State, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		OverallETA: st.OverallETA,
		DreamCount: len(st.Dreams),
	}

	for _, d := range st.Dreams {
		jd := jsonDream{
			ID:       d.ID,
			Text:     d.Text,
			Progress: progress.DreamProgress(d),
		}
		for _, e := range d.Enablers {
			jd.Enablers = append(jd.Enablers, jsonEnabler{
				ID:          e.ID,
				Name:        e.Name,
				ShortGoals:  e.ShortGoals,
				DailyHabits: e.DailyHabits,
			})
		}
		out.Dreams = append(out.Dreams, jd)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
