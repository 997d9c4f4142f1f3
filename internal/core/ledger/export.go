package ledger

import (
	"fmt"
	"strings"

	"cadence/internal/core/model"
)

// ExportMeta carries the settings values stamped onto every exported row.
// They are read at export time, so historical rows reflect the current
// settings rather than the settings at recording time.
type ExportMeta struct {
	Email   string
	Project string
}

var csvColumns = []string{
	"Description",
	"Start date",
	"Start time",
	"End date",
	"End time",
	"Duration",
	"Email",
	"Project",
}

// ExportCSV serializes the completed sessions in storage order. Every field
// is double-quoted, rows are newline-joined with no trailing newline, and
// timestamps render in the local timezone. The in-progress session is never
// included; an empty ledger yields ok=false.
func (led *Ledger) ExportCSV(meta ExportMeta) (string, bool) {
	led.mu.Lock()
	sessions := append([]model.Session(nil), led.completed...)
	led.mu.Unlock()

	if len(sessions) == 0 {
		return "", false
	}

	var builder strings.Builder
	writeCSVRow(&builder, csvColumns)
	for _, session := range sessions {
		builder.WriteByte('\n')
		writeCSVRow(&builder, []string{
			session.Description,
			session.StartedAt.Format("2006-01-02"),
			session.StartedAt.Format("15:04:05"),
			session.StoppedAt.Format("2006-01-02"),
			session.StoppedAt.Format("15:04:05"),
			formatCSVDuration(session.DurationSeconds),
			meta.Email,
			meta.Project,
		})
	}
	return builder.String(), true
}

func writeCSVRow(builder *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteByte('"')
		builder.WriteString(strings.ReplaceAll(field, `"`, `""`))
		builder.WriteByte('"')
	}
}

// formatCSVDuration renders a duration as fixed-width HH:MM:SS, unlike the
// display format used in the history list.
func formatCSVDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
