package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportHeader = `"Description","Start date","Start time","End date","End time","Duration","Email","Project"`

func TestExportEmptyLedger(t *testing.T) {
	led, _ := newTestLedger(nil)

	_, ok := led.ExportCSV(ExportMeta{})
	assert.False(t, ok)
}

func TestExportRunningSessionExcluded(t *testing.T) {
	led, _ := newTestLedger(nil)
	require.NoError(t, led.Start("in progress"))

	_, ok := led.ExportCSV(ExportMeta{})
	assert.False(t, ok, "an in-progress session alone exports nothing")
}

func TestExportTwoSessions(t *testing.T) {
	led, clock := newTestLedger(nil)

	require.NoError(t, led.Start("morning"))
	clock.Advance(1*time.Hour + 2*time.Minute + 3*time.Second)
	_, err := led.Stop()
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	require.NoError(t, led.Start("afternoon"))
	clock.Advance(45 * time.Second)
	_, err = led.Stop()
	require.NoError(t, err)

	csvText, ok := led.ExportCSV(ExportMeta{Email: "dev@example.com", Project: "cadence"})
	require.True(t, ok)

	lines := strings.Split(csvText, "\n")
	require.Len(t, lines, 3, "header plus one row per completed session")
	assert.Equal(t, exportHeader, lines[0])
	assert.False(t, strings.HasSuffix(csvText, "\n"))

	// Rows appear in storage order with fixed-width durations.
	assert.Contains(t, lines[1], `"morning"`)
	assert.Contains(t, lines[1], `"01:02:03"`)
	assert.Contains(t, lines[2], `"afternoon"`)
	assert.Contains(t, lines[2], `"00:00:45"`)

	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		require.Len(t, fields, 8)
		for _, field := range fields {
			assert.True(t, strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`), "every field is quoted: %s", field)
		}
		assert.Equal(t, `"dev@example.com"`, fields[6])
		assert.Equal(t, `"cadence"`, fields[7])
	}
}

func TestExportUsesLocalDatesAndTimes(t *testing.T) {
	led, clock := newTestLedger(nil)

	require.NoError(t, led.Start("dated"))
	clock.Advance(time.Minute)
	session, err := led.Stop()
	require.NoError(t, err)

	csvText, ok := led.ExportCSV(ExportMeta{})
	require.True(t, ok)

	row := strings.Split(csvText, "\n")[1]
	assert.Contains(t, row, `"`+session.StartedAt.Format("2006-01-02")+`"`)
	assert.Contains(t, row, `"`+session.StartedAt.Format("15:04:05")+`"`)
	assert.Contains(t, row, `"`+session.StoppedAt.Format("15:04:05")+`"`)
}

func TestExportEscapesQuotes(t *testing.T) {
	led, clock := newTestLedger(nil)

	require.NoError(t, led.Start(`review "cadence" branch`))
	clock.Advance(time.Second)
	_, err := led.Stop()
	require.NoError(t, err)

	csvText, ok := led.ExportCSV(ExportMeta{})
	require.True(t, ok)
	assert.Contains(t, csvText, `"review ""cadence"" branch"`)
}

func TestExportMetaReflectsCurrentSettings(t *testing.T) {
	led, clock := newTestLedger(nil)

	require.NoError(t, led.Start("historic"))
	clock.Advance(time.Second)
	_, err := led.Stop()
	require.NoError(t, err)

	first, ok := led.ExportCSV(ExportMeta{Email: "old@example.com"})
	require.True(t, ok)
	second, ok := led.ExportCSV(ExportMeta{Email: "new@example.com"})
	require.True(t, ok)

	assert.Contains(t, first, `"old@example.com"`)
	assert.Contains(t, second, `"new@example.com"`)
	assert.NotContains(t, second, `"old@example.com"`)
}
