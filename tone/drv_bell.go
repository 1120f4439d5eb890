// drv_bell.go approximates the buzzer with the terminal bell.
//
// A bell character is written when the tone starts, and again once a
// second while it keeps sounding, since the terminal bell is a
// one-shot chirp rather than a sustained note.  Crude, but it needs
// no audio device at all.

package tone

import (
	"io"
	"os"
	"time"
)

// BellToneDriver holds our state.
type BellToneDriver struct {

	// writer is where we send the bell character.
	writer io.Writer

	// sounding records whether the tone is playing.
	sounding bool

	// lastBell is when we last rang the bell.
	lastBell time.Time
}

// GetName returns the name of this driver.
//
// This is part of the Driver interface.
func (b *BellToneDriver) GetName() string {
	return "bell"
}

// Setup does nothing.
//
// This is part of the Driver interface.
func (b *BellToneDriver) Setup() error {
	return nil
}

// TearDown does nothing.
//
// This is part of the Driver interface.
func (b *BellToneDriver) TearDown() error {
	b.sounding = false
	return nil
}

// Start rings the bell, unless we rang it recently.
//
// This is part of the Driver interface.
func (b *BellToneDriver) Start() error {
	b.sounding = true

	if time.Since(b.lastBell) < time.Second {
		return nil
	}
	b.lastBell = time.Now()

	_, err := b.writer.Write([]byte{'\a'})
	return err
}

// Stop marks the tone as silent.  There is no way to cut a terminal
// bell short.
//
// This is part of the Driver interface.
func (b *BellToneDriver) Stop() error {
	b.sounding = false
	return nil
}

// IsSounding returns true if the tone is playing.
//
// This is part of the Driver interface.
func (b *BellToneDriver) IsSounding() bool {
	return b.sounding
}

// SetWriter will update the writer.
func (b *BellToneDriver) SetWriter(w io.Writer) {
	b.writer = w
}

// init registers our driver, by name.
func init() {
	Register("bell", func() Driver {
		return &BellToneDriver{
			writer: os.Stdout,
		}
	})
}
