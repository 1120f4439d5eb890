// drv_termbox.go reads the keypad from the terminal, via the Termbox
// library.
//
// A goroutine is launched which collects keyboard events and records
// the most recent keypress, along with when it happened.  Terminals
// only report presses, never releases, so a key is considered held
// for a short window after its event and released once that window
// has passed.  Holding a key down works naturally because the
// terminal auto-repeat keeps refreshing the window.
//
// The hex keypad is mapped onto the left-hand block of a QWERTY
// keyboard:
//
//	1 2 3 4        1 2 3 C
//	q w e r   ->   4 5 6 D
//	a s d f        7 8 9 E
//	z x c v        A 0 B F
//
// Escape asks the emulator to stop.

package keypad

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/nsf/termbox-go"
	"golang.org/x/term"
)

// holdDuration is how long a keypress is considered held after its
// event arrives.  Shorter than a terminal's auto-repeat delay and
// keys release mid-hold, longer and taps blur together.
const holdDuration = 150 * time.Millisecond

// keyMap translates terminal characters into hex keys.
var keyMap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// TermboxKeypadDriver holds our state.
type TermboxKeypadDriver struct {

	// oldState contains the state of the terminal, before switching
	// to RAW mode.
	oldState *term.State

	// cancel holds a context which can be used to close our polling
	// goroutine.
	cancel context.CancelFunc

	// mu guards the fields below, which the polling goroutine writes
	// and the emulator loop reads.
	mu sync.Mutex

	// key is the most recently pressed hex key.
	key uint8

	// pressedAt is when that key event arrived.
	pressedAt time.Time

	// interrupted records that the user pressed Escape.
	interrupted bool
}

// GetName returns the name of this driver.
//
// This is part of the Driver interface.
func (t *TermboxKeypadDriver) GetName() string {
	return "termbox"
}

// Setup places the terminal into RAW mode, initializes termbox unless
// the screen driver beat us to it, and starts polling for keyboard
// events in the background.
//
// This is part of the Driver interface.
func (t *TermboxKeypadDriver) Setup() error {

	var err error

	// switch STDIN into 'raw' mode - we must do this before
	// we setup termbox.
	t.oldState, err = term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}

	if !termbox.IsInit {
		err = termbox.Init()
		if err != nil {
			return err
		}
	}

	// Allow our polling of keyboard to be canceled
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	// Start polling for keyboard input "in the background".
	go t.pollKeyboard(ctx)

	return nil
}

// pollKeyboard runs in a goroutine and records the most recent
// keypress, for CurrentKey to report.
func (t *TermboxKeypadDriver) pollKeyboard(ctx context.Context) {
	for {
		// Are we done?
		select {
		case <-ctx.Done():
			return
		default:
			// NOP
		}

		// Now look for keyboard input
		switch ev := termbox.PollEvent(); ev.Type {
		case termbox.EventKey:

			if ev.Key == termbox.KeyEsc {
				t.mu.Lock()
				t.interrupted = true
				t.mu.Unlock()
				continue
			}

			key, ok := keyMap[ev.Ch]
			if !ok {
				continue
			}

			t.mu.Lock()
			t.key = key
			t.pressedAt = time.Now()
			t.mu.Unlock()
		}
	}
}

// CurrentKey returns the key currently held down, if any.
//
// This is part of the Driver interface.
func (t *TermboxKeypadDriver) CurrentKey() (uint8, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pressedAt.IsZero() || time.Since(t.pressedAt) > holdDuration {
		return 0, false
	}
	return t.key, true
}

// Interrupted returns true if the user pressed Escape.
//
// This is part of the Interrupter interface.
func (t *TermboxKeypadDriver) Interrupted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.interrupted
}

// TearDown stops the background polling, closes termbox unless that
// already happened, and restores the terminal.
//
// This is part of the Driver interface.
func (t *TermboxKeypadDriver) TearDown() error {

	// Cancel the keyboard reading
	if t.cancel != nil {
		t.cancel()
	}

	if termbox.IsInit {
		termbox.Close()
	}

	// Restore the terminal
	if t.oldState != nil {
		return term.Restore(int(os.Stdin.Fd()), t.oldState)
	}
	return nil
}

// init registers our driver, by name.
func init() {
	Register("termbox", func() Driver {
		return &TermboxKeypadDriver{}
	})
}
