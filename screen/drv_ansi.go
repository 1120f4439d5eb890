// drv_ansi.go renders the display to any io.Writer using ANSI escape
// sequences, two character cells per pixel.
//
// It needs nothing beyond a terminal that honours cursor-positioning,
// which makes it the portable fallback, and with SetWriter it also
// serves tests which want to inspect rendered output.

package screen

import (
	"io"
	"os"
	"strings"
)

// AnsiScreenDriver holds our state.
type AnsiScreenDriver struct {

	// writer is where we send our output.
	writer io.Writer
}

// GetName returns the name of this driver.
//
// This is part of the Driver interface.
func (a *AnsiScreenDriver) GetName() string {
	return "ansi"
}

// Setup clears the terminal and hides the cursor.
//
// This is part of the Driver interface.
func (a *AnsiScreenDriver) Setup() error {
	_, err := a.writer.Write([]byte("\x1b[2J\x1b[?25l"))
	return err
}

// TearDown restores the cursor.
//
// This is part of the Driver interface.
func (a *AnsiScreenDriver) TearDown() error {
	_, err := a.writer.Write([]byte("\x1b[?25h\n"))
	return err
}

// Draw renders a complete frame, homing the cursor rather than
// clearing so that the terminal doesn't flicker.
//
// This is part of the Driver interface.
func (a *AnsiScreenDriver) Draw(buffer *[256]uint8) error {

	var sb strings.Builder
	sb.WriteString("\x1b[H")

	for y := 0; y < Rows; y++ {
		for x := 0; x < Columns; x++ {
			if pixelSet(buffer, x, y) {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\r\n")
	}

	_, err := io.WriteString(a.writer, sb.String())
	return err
}

// SetWriter will update the writer.
func (a *AnsiScreenDriver) SetWriter(w io.Writer) {
	a.writer = w
}

// init registers our driver, by name.
func init() {
	Register("ansi", func() Driver {
		return &AnsiScreenDriver{
			writer: os.Stdout,
		}
	})
}
