// Package screen is an abstraction over the emulator's display.
//
// The CHIP-8 display is a 64x32 monochrome pixel grid, held in RAM as
// a packed buffer of 8 bytes per row.  We know we want a terminal
// cell-grid renderer and a plain escape-sequence renderer, so we have
// a factory that can instantiate a driver given just a name.
//
// Compare this to the keypad package, which uses the same pattern for
// input.
package screen

import (
	"fmt"
	"sort"
	"strings"
)

// Rows and Columns describe the display geometry every driver
// renders: 32 rows of 64 pixels, packed 8 bytes per row, MSB-first.
const (
	Rows        = 32
	Columns     = 64
	BytesPerRow = Columns / 8
)

// Driver is the interface that must be implemented by anything that
// wishes to be used as a display driver.
//
// Providing this interface is implemented an object may register
// itself, by name, via the Register method.
type Driver interface {

	// Setup performs any one-time initialization the driver needs,
	// such as taking over the terminal.
	Setup() error

	// TearDown undoes the work of Setup.
	TearDown() error

	// Draw presents the given display buffer: 8 bytes per row, 32
	// rows, MSB-first pixel order, 1 is lit.
	Draw(buffer *[256]uint8) error

	// GetName will return the name of the driver.
	GetName() string
}

// Recorder is an interface that allows returning the frames which
// have been previously drawn.
//
// This is used solely for integration tests.
type Recorder interface {

	// GetFrame returns the most recently drawn frame.
	GetFrame() [256]uint8

	// GetFrameCount returns how many frames have been drawn.
	GetFrameCount() int

	// Reset removes any stored state.
	Reset()
}

// This is a map of known-drivers
var handlers = struct {
	m map[string]Constructor
}{m: make(map[string]Constructor)}

// Constructor is the signature of a constructor-function which is
// used to instantiate an instance of a driver.
type Constructor func() Driver

// Register makes a display driver available, by name.
//
// When one needs to be created the constructor can be called to
// create an instance of it.
func Register(name string, obj Constructor) {
	// Downcase for consistency.
	name = strings.ToLower(name)

	handlers.m[name] = obj
}

// Screen holds our state, which is basically just a pointer to the
// object handling our output.
type Screen struct {

	// driver is the thing that actually renders our display.
	driver Driver
}

// New is our constructor, it creates a display which uses the
// specified driver.
func New(name string) (*Screen, error) {
	// Downcase for consistency.
	name = strings.ToLower(name)

	// Do we have a constructor with the given name?
	ctor, ok := handlers.m[name]
	if !ok {
		return nil, fmt.Errorf("failed to lookup screen driver by name '%s'", name)
	}

	// OK we do, return ourselves with that driver.
	return &Screen{
		driver: ctor(),
	}, nil
}

// GetDriver allows getting our driver at runtime.
func (s *Screen) GetDriver() Driver {
	return s.driver
}

// GetName returns the name of our selected driver.
func (s *Screen) GetName() string {
	return s.driver.GetName()
}

// GetDrivers returns all available driver-names.
//
// We hide the test-specific drivers from the returned list.
func GetDrivers() []string {
	var valid []string

	for x := range handlers.m {
		if x != "recorder" {
			valid = append(valid, x)
		}
	}
	sort.Strings(valid)
	return valid
}

// pixelSet reports whether the given pixel of a frame is lit.
// It is shared by our drivers.
func pixelSet(buffer *[256]uint8, x int, y int) bool {
	b := buffer[y*BytesPerRow+x/8]
	return b&(0x80>>uint(x%8)) != 0
}
