// Package keypad is an abstraction over the emulator's input device.
//
// The CHIP-8 keypad is a 4x4 grid of hexadecimal keys, 0-F.  We poll
// it rather than read it: once per emulation step the emulator asks
// which key, if any, is currently held down, and forwards that to the
// CPU as the key status word.
//
// Compare this to the screen package, which uses the same
// driver-registry pattern for output.
package keypad

import (
	"fmt"
	"sort"
	"strings"
)

// Driver is the interface that must be implemented by anything that
// wishes to be used as a keypad driver.
//
// Providing this interface is implemented an object may register
// itself, by name, via the Register method.
type Driver interface {

	// Setup performs any one-time initialization the driver needs,
	// such as placing the terminal into raw mode.
	Setup() error

	// TearDown undoes the work of Setup.
	TearDown() error

	// CurrentKey returns the hex key, 0x0-0xF, which is currently
	// held down.  The second return value is false when no key is
	// held.
	CurrentKey() (uint8, bool)

	// GetName will return the name of the driver.
	GetName() string
}

// Interrupter is an optional interface a keypad driver may implement
// to report that the user asked the emulator to stop, for example by
// pressing Escape.
//
// Terminal-based drivers own the keyboard while the emulator runs, so
// the usual Ctrl-C handling doesn't always reach us.
type Interrupter interface {

	// Interrupted returns true if the user has asked to quit.
	Interrupted() bool
}

// This is a map of known-drivers
var handlers = struct {
	m map[string]Constructor
}{m: make(map[string]Constructor)}

// Constructor is the signature of a constructor-function which is
// used to instantiate an instance of a driver.
type Constructor func() Driver

// Register makes a keypad driver available, by name.
//
// When one needs to be created the constructor can be called to
// create an instance of it.
func Register(name string, obj Constructor) {
	// Downcase for consistency.
	name = strings.ToLower(name)

	handlers.m[name] = obj
}

// Keypad holds our state, which is basically just a pointer to the
// object handling our input.
type Keypad struct {

	// driver is the thing that actually reads our keys.
	driver Driver
}

// New is our constructor, it creates a keypad which uses the
// specified driver.
func New(name string) (*Keypad, error) {
	// Downcase for consistency.
	name = strings.ToLower(name)

	// Do we have a constructor with the given name?
	ctor, ok := handlers.m[name]
	if !ok {
		return nil, fmt.Errorf("failed to lookup keypad driver by name '%s'", name)
	}

	// OK we do, return ourselves with that driver.
	return &Keypad{
		driver: ctor(),
	}, nil
}

// GetDriver allows getting our driver at runtime.
func (k *Keypad) GetDriver() Driver {
	return k.driver
}

// GetName returns the name of our selected driver.
func (k *Keypad) GetName() string {
	return k.driver.GetName()
}

// GetDrivers returns all available driver-names.
//
// We hide the test-specific drivers from the returned list.
func GetDrivers() []string {
	var valid []string

	for x := range handlers.m {
		if x != "stuffed" {
			valid = append(valid, x)
		}
	}
	sort.Strings(valid)
	return valid
}
