// drv_beep.go plays the buzzer through the host's audio device, via
// the Beep library.
//
// The original buzzer was a fixed-pitch monotone, so rather than ship
// a sample file we synthesize a square wave and hand it to the
// speaker as a streamer.  Start plays the streamer, which loops until
// Stop clears the speaker again.

package tone

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	// sampleRate is the rate we ask the speaker to run at.
	sampleRate = beep.SampleRate(44100)

	// toneFrequency is the pitch of the buzzer, in Hz.
	toneFrequency = 440

	// toneVolume keeps the square wave from being ear-splitting.
	toneVolume = 0.25
)

// squareWave is a beep streamer which produces an endless square
// wave.
type squareWave struct {

	// pos counts samples, so we know where we are in the cycle.
	pos int
}

// Stream fills the sample buffer with our wave.
//
// This is part of the beep.Streamer interface.
func (s *squareWave) Stream(samples [][2]float64) (int, bool) {

	period := int(sampleRate) / toneFrequency

	for i := range samples {
		v := toneVolume
		if s.pos%period < period/2 {
			v = -toneVolume
		}
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

// Err reports any error, of which we can have none.
//
// This is part of the beep.Streamer interface.
func (s *squareWave) Err() error {
	return nil
}

// BeepToneDriver holds our state.
type BeepToneDriver struct {

	// sounding records whether the tone is playing.
	sounding bool
}

// GetName returns the name of this driver.
//
// This is part of the Driver interface.
func (b *BeepToneDriver) GetName() string {
	return "beep"
}

// Setup opens the speaker.
//
// This is part of the Driver interface.
func (b *BeepToneDriver) Setup() error {
	return speaker.Init(sampleRate, sampleRate.N(time.Second/10))
}

// TearDown silences the speaker.
//
// This is part of the Driver interface.
func (b *BeepToneDriver) TearDown() error {
	speaker.Clear()
	b.sounding = false
	return nil
}

// Start begins playing the square wave.
//
// This is part of the Driver interface.
func (b *BeepToneDriver) Start() error {
	if b.sounding {
		return nil
	}

	speaker.Play(&squareWave{})
	b.sounding = true
	return nil
}

// Stop silences the speaker.
//
// This is part of the Driver interface.
func (b *BeepToneDriver) Stop() error {
	if !b.sounding {
		return nil
	}

	speaker.Clear()
	b.sounding = false
	return nil
}

// IsSounding returns true if the tone is playing.
//
// This is part of the Driver interface.
func (b *BeepToneDriver) IsSounding() bool {
	return b.sounding
}

// init registers our driver, by name.
func init() {
	Register("beep", func() Driver {
		return &BeepToneDriver{}
	})
}
