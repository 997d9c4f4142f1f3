package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFileName(t *testing.T) {
	day := time.Date(2026, 8, 31, 16, 30, 0, 0, time.Local)
	assert.Equal(t, "time-entries-2026-08-31.csv", ExportFileName(day))
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2026, 8, 31, 16, 30, 0, 0, time.Local)
	csvText := `"Description","Start date"` + "\n" + `"a","2026-08-31"`

	path, err := WriteExport(dir, csvText, day)
	require.NoError(t, err)
	assert.Contains(t, path, "time-entries-2026-08-31.csv")

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, csvText, string(written))
}
