package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/upfocus/internal/store"
)

// ToCSV writes completed sessions to a CSV file at path.
func ToCSV(entries []store.SessionEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, entries)
}

func WriteCSV(out io.Writer, entries []store.SessionEntry) error {
	w := csv.NewWriter(out)

	// Header
	if err := w.Write([]string{"ID", "Completed", "Date", "Category", "Task", "Minutes", "Duration"}); err != nil {
		return err
	}

	for _, e := range entries {
		local := e.OccurredAt.Local()
		row := []string{
			e.ID,
			local.Format(time.RFC3339),
			local.Format("2006-01-02"),
			string(e.Category),
			e.TaskLabel,
			strconv.Itoa(e.Minutes),
			formatDuration(int64(e.Minutes) * 60),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
