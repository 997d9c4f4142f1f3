package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      string
	}{
		{0, "00:00"},
		{-5 * time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{10 * time.Minute, "10:00"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour, "01:00:00"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "02:03:04"},
		{700 * time.Millisecond, "00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.remaining))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{-1, "0s"},
		{59, "59s"},
		{60, "1m 0s"},
		{123, "2m 3s"},
		{3600, "1h 0m 0s"},
		{3723, "1h 2m 3s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds))
	}
}

func TestFormatCSVDurationIsFixedWidth(t *testing.T) {
	assert.Equal(t, "00:00:03", formatCSVDuration(3))
	assert.Equal(t, "01:02:03", formatCSVDuration(3723))
	assert.Equal(t, "00:00:00", formatCSVDuration(-1))
	assert.Equal(t, "27:46:40", formatCSVDuration(100000))
}
