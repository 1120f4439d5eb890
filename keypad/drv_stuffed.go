package keypad

import "sync"

// StuffedKeypadDriver holds our state.
//
// Keypresses are stuffed into it by tests, rather than read from any
// real device, which lets integration tests script input.
type StuffedKeypadDriver struct {

	// mu guards the fields below.
	mu sync.Mutex

	// key is the key which is currently stuffed.
	key uint8

	// held records whether a key is currently held down.
	held bool

	// interrupted records a scripted quit-request.
	interrupted bool
}

// GetName returns the name of this driver.
//
// This is part of the Driver interface.
func (s *StuffedKeypadDriver) GetName() string {
	return "stuffed"
}

// Setup does nothing.
//
// This is part of the Driver interface.
func (s *StuffedKeypadDriver) Setup() error {
	return nil
}

// TearDown does nothing.
//
// This is part of the Driver interface.
func (s *StuffedKeypadDriver) TearDown() error {
	return nil
}

// CurrentKey returns the stuffed key, if one is held.
//
// This is part of the Driver interface.
func (s *StuffedKeypadDriver) CurrentKey() (uint8, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.key, s.held
}

// Interrupted returns true once Interrupt has been called.
//
// This is part of the Interrupter interface.
func (s *StuffedKeypadDriver) Interrupted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.interrupted
}

// Press stuffs a keypress, which stays held until Release is called.
func (s *StuffedKeypadDriver) Press(key uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = key
	s.held = true
}

// Release lets go of the held key.
func (s *StuffedKeypadDriver) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.held = false
}

// Interrupt scripts a quit-request.
func (s *StuffedKeypadDriver) Interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.interrupted = true
}

// init registers our driver, by name.
func init() {
	Register("stuffed", func() Driver {
		return &StuffedKeypadDriver{}
	})
}
