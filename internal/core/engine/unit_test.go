package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadence/internal/core/model"
)

func TestUnitAdvance(t *testing.T) {
	tests := []struct {
		name      string
		remaining time.Duration
		elapsed   time.Duration
		want      time.Duration
	}{
		{name: "partial decrement", remaining: 10 * time.Second, elapsed: 3 * time.Second, want: 7 * time.Second},
		{name: "zero elapsed", remaining: 10 * time.Second, elapsed: 0, want: 10 * time.Second},
		{name: "clamped at zero", remaining: 2 * time.Second, elapsed: 5 * time.Second, want: 0},
		{name: "exact exhaustion", remaining: 5 * time.Second, elapsed: 5 * time.Second, want: 0},
		{name: "noop when exhausted", remaining: 0, elapsed: time.Hour, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := newUnit(model.UnitConfig{ID: model.UnitWork, Duration: time.Minute})
			unit.remaining = tt.remaining

			got := unit.advance(tt.elapsed)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, unit.remaining)
		})
	}
}

func TestUnitSetDuration(t *testing.T) {
	unit := newUnit(model.UnitConfig{ID: model.UnitWork, Duration: time.Minute})

	require.ErrorIs(t, unit.setDuration(0), ErrInvalidDuration)
	require.ErrorIs(t, unit.setDuration(-time.Second), ErrInvalidDuration)
	assert.Equal(t, time.Minute, unit.configured)

	require.NoError(t, unit.setDuration(2*time.Minute))
	assert.Equal(t, 2*time.Minute, unit.configured)
	// Remaining is the engine's call, not the unit's.
	assert.Equal(t, time.Minute, unit.remaining)
}

func TestUnitResetRemaining(t *testing.T) {
	unit := newUnit(model.UnitConfig{ID: model.UnitRest, Duration: time.Minute})
	unit.advance(40 * time.Second)

	unit.resetRemaining()

	assert.Equal(t, time.Minute, unit.remaining)
}
