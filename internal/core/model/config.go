package model

import "time"

// UnitID identifies one countdown unit.
type UnitID string

const (
	UnitWork UnitID = "work"
	UnitRest UnitID = "rest"
)

// UnitConfig describes one countdown unit managed by the engine.
type UnitConfig struct {
	ID         UnitID
	Label      string
	Duration   time.Duration
	Recordable bool
}

// EngineConfig contains runtime settings for the timer engine.
type EngineConfig struct {
	Units        []UnitConfig
	TickInterval time.Duration
}
