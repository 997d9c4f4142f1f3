package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportFileName returns the conventional export name for the given day,
// e.g. "time-entries-2026-08-31.csv".
func ExportFileName(day time.Time) string {
	return fmt.Sprintf("time-entries-%s.csv", day.Format("2006-01-02"))
}

// WriteExport writes the CSV text into the directory and returns the full
// path of the written file.
func WriteExport(dir, csvText string, day time.Time) (string, error) {
	path := filepath.Join(dir, ExportFileName(day))
	if err := os.WriteFile(path, []byte(csvText), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
