// Package tone is an abstraction over the emulator's sound output.
//
// CHIP-8 audio is a single monotone buzzer, driven by the tone timer:
// the buzzer sounds while the timer holds a value of two or more, and
// is silent otherwise.  Each emulation step the emulator reconciles
// the buzzer against the timer by calling Start or Stop.
//
// Compare this to the screen and keypad packages, which use the same
// driver-registry pattern.
package tone

import (
	"fmt"
	"sort"
	"strings"
)

// Driver is the interface that must be implemented by anything that
// wishes to be used as a tone driver.
//
// Providing this interface is implemented an object may register
// itself, by name, via the Register method.
type Driver interface {

	// Setup performs any one-time initialization the driver needs,
	// such as opening an audio device.
	Setup() error

	// TearDown undoes the work of Setup.
	TearDown() error

	// Start begins sounding the tone.  Calling it while the tone is
	// already sounding is harmless.
	Start() error

	// Stop silences the tone.  Calling it while the tone is silent
	// is harmless.
	Stop() error

	// IsSounding returns true if the tone is currently sounding.
	IsSounding() bool

	// GetName will return the name of the driver.
	GetName() string
}

// This is a map of known-drivers
var handlers = struct {
	m map[string]Constructor
}{m: make(map[string]Constructor)}

// Constructor is the signature of a constructor-function which is
// used to instantiate an instance of a driver.
type Constructor func() Driver

// Register makes a tone driver available, by name.
//
// When one needs to be created the constructor can be called to
// create an instance of it.
func Register(name string, obj Constructor) {
	// Downcase for consistency.
	name = strings.ToLower(name)

	handlers.m[name] = obj
}

// Tone holds our state, which is basically just a pointer to the
// object handling our output.
type Tone struct {

	// driver is the thing that actually makes noise.
	driver Driver
}

// New is our constructor, it creates a tone which uses the specified
// driver.
func New(name string) (*Tone, error) {
	// Downcase for consistency.
	name = strings.ToLower(name)

	// Do we have a constructor with the given name?
	ctor, ok := handlers.m[name]
	if !ok {
		return nil, fmt.Errorf("failed to lookup tone driver by name '%s'", name)
	}

	// OK we do, return ourselves with that driver.
	return &Tone{
		driver: ctor(),
	}, nil
}

// GetDriver allows getting our driver at runtime.
func (t *Tone) GetDriver() Driver {
	return t.driver
}

// GetName returns the name of our selected driver.
func (t *Tone) GetName() string {
	return t.driver.GetName()
}

// GetDrivers returns all available driver-names.
//
// We hide the test-specific drivers from the returned list.
func GetDrivers() []string {
	var valid []string

	for x := range handlers.m {
		if x != "logger" {
			valid = append(valid, x)
		}
	}
	sort.Strings(valid)
	return valid
}
