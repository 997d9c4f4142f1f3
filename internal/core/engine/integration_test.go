package engine

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadence/internal/core/ledger"
	"cadence/internal/core/model"
)

// These tests wire the real ledger behind the real engine through the
// session recorder, checking the session bookkeeping across full transition
// sequences. Durations are asserted in the ledger's own tests, where the
// ledger clock can be controlled.

func newRecordedEngine(t *testing.T, clock *fakeClock) (*Engine, *ledger.Ledger) {
	t.Helper()
	led := ledger.New(nil, zerolog.Nop())
	units := []model.UnitConfig{
		{ID: model.UnitWork, Label: "Work", Duration: 10 * time.Minute, Recordable: true},
		{ID: model.UnitRest, Label: "Rest", Duration: 10 * time.Minute},
	}
	recorder := ledger.NewSessionRecorder(led, units, func() string { return "focus" }, zerolog.Nop())
	eng := New(model.EngineConfig{Units: units}, recorder, zerolog.Nop())
	eng.now = clock.Now
	t.Cleanup(eng.Stop)
	return eng, led
}

func TestWorkSessionRecordedAcrossSwitch(t *testing.T) {
	clock := newFakeClock()
	eng, led := newRecordedEngine(t, clock)

	require.NoError(t, eng.Activate(model.UnitWork))
	assert.True(t, led.HasRunning())

	clock.Advance(3 * time.Second)
	eng.tick(clock.Now())

	require.NoError(t, eng.Activate(model.UnitRest))

	assert.Len(t, led.Sessions(), 1)
	assert.False(t, led.HasRunning(), "the rest unit does not record")
}

func TestWorkSessionRecordedAcrossTimeout(t *testing.T) {
	clock := newFakeClock()
	eng, led := newRecordedEngine(t, clock)

	require.NoError(t, eng.Activate(model.UnitWork))
	clock.Advance(10*time.Minute + 10*time.Second)
	eng.tick(clock.Now())

	require.Equal(t, StatePaused, eng.State())
	assert.Len(t, led.Sessions(), 1)
	assert.False(t, led.HasRunning())

	// Reset after a timeout must not try to close a second session.
	eng.Reset()
	assert.Len(t, led.Sessions(), 1)
}

func TestPauseResumeSplitsSessions(t *testing.T) {
	clock := newFakeClock()
	eng, led := newRecordedEngine(t, clock)

	require.NoError(t, eng.Activate(model.UnitWork))
	eng.TogglePause()
	assert.False(t, led.HasRunning())
	assert.Len(t, led.Sessions(), 1)

	eng.TogglePause()
	assert.True(t, led.HasRunning())

	eng.Reset()
	assert.Len(t, led.Sessions(), 2)
	assert.False(t, led.HasRunning())
}
