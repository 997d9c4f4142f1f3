package storage

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadence/internal/ui/preferences"
)

func useTempConfigDir(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME override is linux-only")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadSettingsMissingFile(t *testing.T) {
	useTempConfigDir(t)

	settings, err := LoadSettings("cadence-test")

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsRoundTrip(t *testing.T) {
	useTempConfigDir(t)

	saved := preferences.Settings{
		WorkDuration: 50 * time.Minute,
		RestDuration: 10 * time.Minute,
		Description:  "deep work",
		Email:        "dev@example.com",
		Project:      "cadence",
	}
	require.NoError(t, SaveSettings("cadence-test", saved))

	loaded, err := LoadSettings("cadence-test")
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsIgnoresNonPositiveDurations(t *testing.T) {
	useTempConfigDir(t)

	saved := preferences.DefaultSettings()
	saved.WorkDuration = 0
	require.NoError(t, SaveSettings("cadence-test", saved))

	loaded, err := LoadSettings("cadence-test")
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings().WorkDuration, loaded.WorkDuration)
}
