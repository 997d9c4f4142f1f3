// Package engine contains the two-unit countdown state machine. The engine
// owns which unit is current, whether the clock is running or paused, and
// converts measured wall-clock time into countdown decrements.
//
// Concurrency model: all state lives behind a single mutex. The tick loop is
// a goroutine per run period; starting a new loop cancels the previous one,
// so at most one loop is ever outstanding. Recorder callbacks and observer
// events are fired outside the lock, in transition order.
package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"cadence/internal/core/model"
)

var (
	// ErrUnknownUnit indicates an activate or edit against an id the engine does not own.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrInvalidDuration indicates a non-positive configured duration.
	ErrInvalidDuration = errors.New("duration must be positive")
)

const minTickInterval = 50 * time.Millisecond

// Recorder receives unit lifecycle notifications. A timeout is terminal and
// is never preceded by a deactivation for the same unit.
type Recorder interface {
	UnitActivated(model.UnitID)
	UnitDeactivated(model.UnitID)
	UnitTimedOut(model.UnitID)
}

// Engine is the countdown scheduler and state machine.
type Engine struct {
	mu           sync.Mutex
	units        []*Unit
	byID         map[model.UnitID]*Unit
	state        RunState
	active       *Unit
	recorder     Recorder
	now          func() time.Time
	tickInterval time.Duration
	lastTick     time.Time
	tickStop     chan struct{}
	events       []chan Event
	logger       zerolog.Logger
}

// New creates an engine from the provided configuration. The recorder may be
// nil when no time tracking is wanted.
func New(config model.EngineConfig, recorder Recorder, logger zerolog.Logger) *Engine {
	interval := config.TickInterval
	if interval < minTickInterval {
		interval = minTickInterval
	}

	eng := &Engine{
		byID:         make(map[model.UnitID]*Unit),
		state:        StateStopped,
		recorder:     recorder,
		now:          time.Now,
		tickInterval: interval,
		logger:       logger,
	}
	for _, unitConfig := range config.Units {
		unit := newUnit(unitConfig)
		eng.units = append(eng.units, unit)
		eng.byID[unit.id] = unit
	}
	return eng
}

// Subscribe registers a new observer channel.
func (eng *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	eng.mu.Lock()
	eng.events = append(eng.events, ch)
	eng.mu.Unlock()
	return ch
}

// Stop halts the tick loop and closes observer channels. The engine state is
// left as-is; Stop is meant for application shutdown.
func (eng *Engine) Stop() {
	eng.mu.Lock()
	eng.stopTickLocked()
	events := eng.events
	eng.events = nil
	eng.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Activate makes the unit current and starts the clock. Activating the unit
// that is already current and running is a no-op; activating the other unit
// while running deactivates it first.
func (eng *Engine) Activate(id model.UnitID) error {
	eng.mu.Lock()
	unit, ok := eng.byID[id]
	if !ok {
		eng.mu.Unlock()
		return ErrUnknownUnit
	}

	switch eng.state {
	case StateStopped:
		unit.active = true
		eng.active = unit
		eng.state = StateRunning
		eng.startTickLocked()
		eng.mu.Unlock()

		eng.recordActivated(unit.id)
		eng.emit(Event{Type: EventActiveChange, Unit: unit.id, Active: true, At: eng.now()})
		eng.emit(Event{Type: EventRunState, State: StateRunning, At: eng.now()})

	case StateRunning:
		if eng.active == unit {
			eng.mu.Unlock()
			return nil
		}
		previous := eng.active
		previous.active = false
		unit.active = true
		eng.active = unit
		eng.lastTick = eng.now()
		eng.mu.Unlock()

		eng.recordDeactivated(previous.id)
		eng.emit(Event{Type: EventActiveChange, Unit: previous.id, Active: false, At: eng.now()})
		eng.recordActivated(unit.id)
		eng.emit(Event{Type: EventActiveChange, Unit: unit.id, Active: true, At: eng.now()})

	case StatePaused:
		// Resuming via the current unit; switching clears the old unit's
		// visual state without a second deactivation, since pausing (or a
		// timeout) already ended any recording.
		var previous *Unit
		if eng.active != unit {
			previous = eng.active
			previous.active = false
			unit.active = true
			eng.active = unit
		}
		eng.state = StateRunning
		eng.startTickLocked()
		eng.mu.Unlock()

		if previous != nil {
			eng.emit(Event{Type: EventActiveChange, Unit: previous.id, Active: false, At: eng.now()})
			eng.emit(Event{Type: EventActiveChange, Unit: unit.id, Active: true, At: eng.now()})
		}
		eng.recordActivated(unit.id)
		eng.emit(Event{Type: EventRunState, State: StateRunning, At: eng.now()})
	}

	eng.logger.Debug().Str("unit", string(id)).Msg("unit activated")
	return nil
}

// TogglePause suspends a running clock or resumes a paused one. A toggle
// from the stopped state is a no-op.
func (eng *Engine) TogglePause() {
	eng.mu.Lock()
	switch eng.state {
	case StateStopped:
		eng.mu.Unlock()
		return

	case StateRunning:
		unit := eng.active
		eng.stopTickLocked()
		eng.state = StatePaused
		eng.mu.Unlock()

		eng.recordDeactivated(unit.id)
		eng.emit(Event{Type: EventRunState, State: StatePaused, At: eng.now()})
		eng.logger.Debug().Str("unit", string(unit.id)).Msg("paused")

	case StatePaused:
		unit := eng.active
		eng.state = StateRunning
		eng.startTickLocked()
		eng.mu.Unlock()

		eng.recordActivated(unit.id)
		eng.emit(Event{Type: EventRunState, State: StateRunning, At: eng.now()})
		eng.logger.Debug().Str("unit", string(unit.id)).Msg("resumed")
	}
}

// Reset stops the clock, restores every unit's remaining time and clears the
// current unit. Reset from the stopped state changes nothing and emits no
// events.
func (eng *Engine) Reset() {
	eng.mu.Lock()
	if eng.state == StateStopped {
		eng.mu.Unlock()
		return
	}
	wasRunning := eng.state == StateRunning
	previous := eng.active
	eng.stopTickLocked()
	previous.active = false
	eng.active = nil
	eng.state = StateStopped
	remainders := make([]Event, 0, len(eng.units))
	for _, unit := range eng.units {
		unit.resetRemaining()
		remainders = append(remainders, Event{Type: EventRemaining, Unit: unit.id, Remaining: unit.remaining})
	}
	eng.mu.Unlock()

	if wasRunning {
		eng.recordDeactivated(previous.id)
	}
	eng.emit(Event{Type: EventActiveChange, Unit: previous.id, Active: false, At: eng.now()})
	for _, event := range remainders {
		event.At = eng.now()
		eng.emit(event)
	}
	eng.emit(Event{Type: EventRunState, State: StateStopped, At: eng.now()})
	eng.logger.Debug().Msg("reset")
}

// SetUnitDuration applies a new configured duration. Unless the unit is both
// current and running, its remaining time is reset to the new value as well.
func (eng *Engine) SetUnitDuration(id model.UnitID, duration time.Duration) error {
	eng.mu.Lock()
	unit, ok := eng.byID[id]
	if !ok {
		eng.mu.Unlock()
		return ErrUnknownUnit
	}
	if err := unit.setDuration(duration); err != nil {
		eng.mu.Unlock()
		return err
	}
	activeRunning := eng.state == StateRunning && eng.active == unit
	if !activeRunning {
		unit.remaining = duration
	}
	remaining := unit.remaining
	eng.mu.Unlock()

	if !activeRunning {
		eng.emit(Event{Type: EventRemaining, Unit: id, Remaining: remaining, At: eng.now()})
	}
	return nil
}

// State returns the current run state.
func (eng *Engine) State() RunState {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.state
}

// ActiveUnit returns the current unit id, if any.
func (eng *Engine) ActiveUnit() (model.UnitID, bool) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	if eng.active == nil {
		return "", false
	}
	return eng.active.id, true
}

// Units returns snapshots of all units in configuration order.
func (eng *Engine) Units() []UnitSnapshot {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	snapshots := make([]UnitSnapshot, 0, len(eng.units))
	for _, unit := range eng.units {
		snapshots = append(snapshots, unit.snapshot())
	}
	return snapshots
}

// Unit returns a snapshot of one unit.
func (eng *Engine) Unit(id model.UnitID) (UnitSnapshot, bool) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	unit, ok := eng.byID[id]
	if !ok {
		return UnitSnapshot{}, false
	}
	return unit.snapshot(), true
}

func (eng *Engine) startTickLocked() {
	eng.stopTickLocked()
	stop := make(chan struct{})
	eng.tickStop = stop
	eng.lastTick = eng.now()
	go eng.run(stop)
}

// stopTickLocked is idempotent; stopping an already stopped loop is a no-op.
func (eng *Engine) stopTickLocked() {
	if eng.tickStop != nil {
		close(eng.tickStop)
		eng.tickStop = nil
	}
}

func (eng *Engine) run(stop chan struct{}) {
	ticker := time.NewTicker(eng.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			eng.tick(eng.now())
		}
	}
}

// tick advances the current unit by the measured elapsed time since the
// previous tick. The scheduler is coarse, so elapsed time is always measured
// rather than assumed; a throttled or delayed tick still accrues fully.
func (eng *Engine) tick(tickTime time.Time) {
	eng.mu.Lock()
	if eng.state != StateRunning || eng.active == nil {
		eng.mu.Unlock()
		return
	}
	elapsed := tickTime.Sub(eng.lastTick)
	if elapsed < 0 {
		elapsed = 0
	}
	eng.lastTick = tickTime
	unit := eng.active
	remaining := unit.advance(elapsed)
	timedOut := remaining <= 0
	if timedOut {
		eng.stopTickLocked()
		eng.state = StatePaused
	}
	eng.mu.Unlock()

	eng.emit(Event{Type: EventRemaining, Unit: unit.id, Remaining: remaining, At: tickTime})
	if timedOut {
		eng.recordTimedOut(unit.id)
		eng.emit(Event{Type: EventTimeout, Unit: unit.id, At: tickTime})
		eng.emit(Event{Type: EventRunState, State: StatePaused, At: tickTime})
		eng.logger.Info().Str("unit", string(unit.id)).Msg("unit timed out")
	}
}

func (eng *Engine) recordActivated(id model.UnitID) {
	if eng.recorder != nil {
		eng.recorder.UnitActivated(id)
	}
}

func (eng *Engine) recordDeactivated(id model.UnitID) {
	if eng.recorder != nil {
		eng.recorder.UnitDeactivated(id)
	}
}

func (eng *Engine) recordTimedOut(id model.UnitID) {
	if eng.recorder != nil {
		eng.recorder.UnitTimedOut(id)
	}
}

// emit delivers to observers without blocking. Sends happen under the lock
// so Stop cannot close a channel mid-send.
func (eng *Engine) emit(event Event) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	for _, ch := range eng.events {
		select {
		case ch <- event:
		default:
		}
	}
}
