// drv_termbox.go renders the display with the Termbox library, two
// terminal cells per pixel.
//
// Termbox owns the whole terminal while it is initialized, so this
// driver cooperates with the termbox keypad driver: whichever of the
// two is set up first performs the initialization, and whichever is
// torn down first closes it again.

package screen

import (
	"github.com/nsf/termbox-go"
)

// TermboxScreenDriver holds our state.
type TermboxScreenDriver struct {
}

// GetName returns the name of this driver.
//
// This is part of the Driver interface.
func (t *TermboxScreenDriver) GetName() string {
	return "termbox"
}

// Setup initializes termbox, unless the keypad driver beat us to it.
//
// This is part of the Driver interface.
func (t *TermboxScreenDriver) Setup() error {
	if termbox.IsInit {
		return nil
	}
	return termbox.Init()
}

// TearDown closes termbox, unless that already happened.
//
// This is part of the Driver interface.
func (t *TermboxScreenDriver) TearDown() error {
	if termbox.IsInit {
		termbox.Close()
	}
	return nil
}

// Draw renders a complete frame into the termbox cell-buffer, then
// flushes it to the terminal.
//
// This is part of the Driver interface.
func (t *TermboxScreenDriver) Draw(buffer *[256]uint8) error {

	err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	if err != nil {
		return err
	}

	for y := 0; y < Rows; y++ {
		for x := 0; x < Columns; x++ {
			if !pixelSet(buffer, x, y) {
				continue
			}

			// Two cells per pixel, since terminal cells are
			// roughly twice as tall as they are wide.
			termbox.SetCell(x*2, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
			termbox.SetCell(x*2+1, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
		}
	}

	return termbox.Flush()
}

// init registers our driver, by name.
func init() {
	Register("termbox", func() Driver {
		return &TermboxScreenDriver{}
	})
}
