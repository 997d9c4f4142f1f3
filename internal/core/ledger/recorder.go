package ledger

import (
	"github.com/rs/zerolog"

	"cadence/internal/core/model"
)

// SessionRecorder bridges engine lifecycle notifications to the ledger.
// Only recordable units start and stop sessions; the rest are ignored. Both
// deactivation and timeout close the session, each guarded by HasRunning
// because a timeout is never preceded by a deactivation for the same unit.
type SessionRecorder struct {
	ledger      *Ledger
	recordable  map[model.UnitID]bool
	description func() string
	logger      zerolog.Logger
}

// NewSessionRecorder builds a recorder for the units flagged recordable in
// the configuration. The description getter is consulted at session start.
func NewSessionRecorder(led *Ledger, units []model.UnitConfig, description func() string, logger zerolog.Logger) *SessionRecorder {
	recordable := make(map[model.UnitID]bool)
	for _, unit := range units {
		if unit.Recordable {
			recordable[unit.ID] = true
		}
	}
	return &SessionRecorder{
		ledger:      led,
		recordable:  recordable,
		description: description,
		logger:      logger,
	}
}

// UnitActivated opens a session for recordable units.
func (recorder *SessionRecorder) UnitActivated(id model.UnitID) {
	if !recorder.recordable[id] {
		return
	}
	description := ""
	if recorder.description != nil {
		description = recorder.description()
	}
	if err := recorder.ledger.Start(description); err != nil {
		recorder.logger.Warn().Err(err).Str("unit", string(id)).Msg("session not started")
	}
}

// UnitDeactivated closes the session for recordable units.
func (recorder *SessionRecorder) UnitDeactivated(id model.UnitID) {
	recorder.stopSession(id)
}

// UnitTimedOut closes the session for recordable units.
func (recorder *SessionRecorder) UnitTimedOut(id model.UnitID) {
	recorder.stopSession(id)
}

func (recorder *SessionRecorder) stopSession(id model.UnitID) {
	if !recorder.recordable[id] {
		return
	}
	if !recorder.ledger.HasRunning() {
		return
	}
	if _, err := recorder.ledger.Stop(); err != nil {
		recorder.logger.Warn().Err(err).Str("unit", string(id)).Msg("session not stopped")
	}
}
