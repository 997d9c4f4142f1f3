package engine

import (
	"time"

	"cadence/internal/core/model"
)

// Unit is one countdown timer owned by the engine. All mutation happens
// under the engine mutex; the unit itself carries no lock.
type Unit struct {
	id         model.UnitID
	label      string
	configured time.Duration
	remaining  time.Duration
	active     bool
	recordable bool
}

func newUnit(config model.UnitConfig) *Unit {
	return &Unit{
		id:         config.ID,
		label:      config.Label,
		configured: config.Duration,
		remaining:  config.Duration,
		recordable: config.Recordable,
	}
}

// advance decrements remaining time by the measured elapsed duration,
// clamped at zero. Advancing an exhausted unit is a no-op.
func (unit *Unit) advance(elapsed time.Duration) time.Duration {
	if unit.remaining <= 0 {
		return 0
	}
	unit.remaining -= elapsed
	if unit.remaining < 0 {
		unit.remaining = 0
	}
	return unit.remaining
}

func (unit *Unit) resetRemaining() {
	unit.remaining = unit.configured
}

func (unit *Unit) setDuration(duration time.Duration) error {
	if duration <= 0 {
		return ErrInvalidDuration
	}
	unit.configured = duration
	return nil
}

// UnitSnapshot is a consistent copy of unit fields for observers.
type UnitSnapshot struct {
	ID         model.UnitID
	Label      string
	Configured time.Duration
	Remaining  time.Duration
	Active     bool
	Recordable bool
}

func (unit *Unit) snapshot() UnitSnapshot {
	return UnitSnapshot{
		ID:         unit.id,
		Label:      unit.label,
		Configured: unit.configured,
		Remaining:  unit.remaining,
		Active:     unit.active,
		Recordable: unit.recordable,
	}
}
