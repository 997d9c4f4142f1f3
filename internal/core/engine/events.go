package engine

import (
	"time"

	"cadence/internal/core/model"
)

// RunState represents the overall engine mode.
type RunState string

const (
	StateStopped RunState = "stopped"
	StateRunning RunState = "running"
	StatePaused  RunState = "paused"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventRunState     EventType = "run_state"
	EventRemaining    EventType = "remaining"
	EventActiveChange EventType = "active_change"
	EventTimeout      EventType = "timeout"
)

// Event represents an engine update for observers.
type Event struct {
	Type      EventType
	Unit      model.UnitID
	State     RunState
	Remaining time.Duration
	Active    bool
	At        time.Time
}
