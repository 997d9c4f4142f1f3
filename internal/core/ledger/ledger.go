// Package ledger keeps the append-only log of completed work sessions plus
// at most one in-progress session, and serializes the log to CSV.
package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"cadence/internal/core/model"
)

var (
	// ErrSessionRunning indicates a start while a session is already open.
	ErrSessionRunning = errors.New("session already running")
	// ErrNoSession indicates a stop without an open session.
	ErrNoSession = errors.New("no session running")
)

// State is the persisted shape of the ledger.
type State struct {
	Completed []model.Session
	Current   *model.Session
}

// Store persists ledger state across restarts.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// Ledger owns the session log. Every mutation is persisted through the
// store; a store failure is logged and the ledger keeps operating in memory.
type Ledger struct {
	mu        sync.Mutex
	completed []model.Session
	current   *model.Session
	store     Store
	now       func() time.Time
	logger    zerolog.Logger
	onChange  func()
}

// New creates a ledger, loading any persisted state. The store may be nil
// for a purely in-memory ledger.
func New(store Store, logger zerolog.Logger) *Ledger {
	led := &Ledger{store: store, now: time.Now, logger: logger}
	if store != nil {
		state, err := store.Load()
		if err != nil {
			logger.Warn().Err(err).Msg("ledger state unavailable, starting empty")
		} else {
			led.completed = state.Completed
			led.current = state.Current
		}
	}
	return led
}

// SetOnChange registers a hook invoked after every session list mutation.
func (led *Ledger) SetOnChange(hook func()) {
	led.mu.Lock()
	led.onChange = hook
	led.mu.Unlock()
}

// Start opens a new session.
func (led *Ledger) Start(description string) error {
	led.mu.Lock()
	if led.current != nil {
		led.mu.Unlock()
		return ErrSessionRunning
	}
	session := model.Session{
		Description:     description,
		StartedAt:       led.now(),
		DurationSeconds: model.RunningDuration,
	}
	led.current = &session
	led.persistLocked()
	led.mu.Unlock()

	led.notify()
	return nil
}

// Stop closes the current session, moves it into the completed list and
// returns it. Duration is the whole number of elapsed seconds, rounded down.
func (led *Ledger) Stop() (model.Session, error) {
	led.mu.Lock()
	if led.current == nil {
		led.mu.Unlock()
		return model.Session{}, ErrNoSession
	}
	session := *led.current
	session.StoppedAt = led.now()
	seconds := int(session.StoppedAt.Sub(session.StartedAt) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	session.DurationSeconds = seconds
	led.completed = append(led.completed, session)
	led.current = nil
	led.persistLocked()
	led.mu.Unlock()

	led.notify()
	return session, nil
}

// HasRunning reports whether a session is open.
func (led *Ledger) HasRunning() bool {
	led.mu.Lock()
	defer led.mu.Unlock()
	return led.current != nil
}

// Running returns the open session, if any.
func (led *Ledger) Running() (model.Session, bool) {
	led.mu.Lock()
	defer led.mu.Unlock()
	if led.current == nil {
		return model.Session{}, false
	}
	return *led.current, true
}

// Sessions returns the completed sessions in completion order.
func (led *Ledger) Sessions() []model.Session {
	led.mu.Lock()
	defer led.mu.Unlock()
	return append([]model.Session(nil), led.completed...)
}

// Clear empties the completed list. An open session is left untouched.
func (led *Ledger) Clear() {
	led.mu.Lock()
	led.completed = nil
	led.persistLocked()
	led.mu.Unlock()

	led.notify()
}

func (led *Ledger) persistLocked() {
	if led.store == nil {
		return
	}
	state := State{Completed: append([]model.Session(nil), led.completed...)}
	if led.current != nil {
		current := *led.current
		state.Current = &current
	}
	if err := led.store.Save(state); err != nil {
		led.logger.Warn().Err(err).Msg("ledger not persisted, keeping in-memory state")
	}
}

func (led *Ledger) notify() {
	led.mu.Lock()
	hook := led.onChange
	led.mu.Unlock()
	if hook != nil {
		hook()
	}
}
