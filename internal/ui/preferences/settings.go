package preferences

import (
	"time"

	"cadence/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkDuration time.Duration
	RestDuration time.Duration
	Description  string
	Email        string
	Project      string
}

// DefaultSettings returns default settings for Cadence.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration: 25 * time.Minute,
		RestDuration: 5 * time.Minute,
		Description:  "Work",
	}
}

// EngineConfig converts settings to the engine configuration. The work unit
// is the only recordable one.
func (settings Settings) EngineConfig() model.EngineConfig {
	return model.EngineConfig{
		Units: []model.UnitConfig{
			{ID: model.UnitWork, Label: "Work", Duration: settings.WorkDuration, Recordable: true},
			{ID: model.UnitRest, Label: "Rest", Duration: settings.RestDuration},
		},
		TickInterval: 50 * time.Millisecond,
	}
}
