// Package sound plays the timeout chime. The tone is generated, so no audio
// assets ship with the binary.
package sound

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const chimeFrequency = 880

// Chime owns the speaker. When audio cannot be initialized the chime is
// disabled and Play becomes a no-op.
type Chime struct {
	enabled    bool
	sampleRate beep.SampleRate
}

// NewChime initializes the speaker.
func NewChime(logger zerolog.Logger) *Chime {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		logger.Warn().Err(err).Msg("audio disabled, speaker init failed")
		return &Chime{}
	}
	return &Chime{enabled: true, sampleRate: sampleRate}
}

// Play sounds a short tone.
func (chime *Chime) Play() {
	if !chime.enabled {
		return
	}
	tone, err := generators.SinTone(chime.sampleRate, chimeFrequency)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(chime.sampleRate.N(300*time.Millisecond), tone))
}
