package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/upfocus/internal/store"
)

type jsonExport struct {
	ExportedAt   string      `json:"exported_at"`
	Count        int         `json:"count"`
	TotalMinutes int         `json:"total_minutes"`
	Entries      []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID          string `json:"id"`
	CompletedAt string `json:"completed_at"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Task        string `json:"task,omitempty"`
	Minutes     int    `json:"minutes"`
	Duration    string `json:"duration"`
}

// ToJSON writes completed sessions to a pretty-printed JSON file at path.
func ToJSON(entries []store.SessionEntry, path string) error {
	data, err := marshalJSON(entries, time.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func WriteJSON(w io.Writer, entries []store.SessionEntry) error {
	data, err := marshalJSON(entries, time.Now())
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func marshalJSON(entries []store.SessionEntry, now time.Time) ([]byte, error) {
	export := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(entries),
		Entries:    []jsonEntry{},
	}

	for _, e := range entries {
		local := e.OccurredAt.Local()
		export.TotalMinutes += e.Minutes
		export.Entries = append(export.Entries, jsonEntry{
			ID:          e.ID,
			CompletedAt: local.Format(time.RFC3339),
			Date:        local.Format("2006-01-02"),
			Category:    string(e.Category),
			Task:        e.TaskLabel,
			Minutes:     e.Minutes,
			Duration:    formatDuration(int64(e.Minutes) * 60),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}
