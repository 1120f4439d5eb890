package keypad

// NullKeypadDriver holds our state, of which there is none.
//
// No key is ever pressed, which suits ROMs that run unattended.
type NullKeypadDriver struct {
}

// GetName returns the name of this driver.
//
// This is part of the Driver interface.
func (n *NullKeypadDriver) GetName() string {
	return "null"
}

// Setup does nothing.
//
// This is part of the Driver interface.
func (n *NullKeypadDriver) Setup() error {
	return nil
}

// TearDown does nothing.
//
// This is part of the Driver interface.
func (n *NullKeypadDriver) TearDown() error {
	return nil
}

// CurrentKey reports that no key is held, ever.
//
// This is part of the Driver interface.
func (n *NullKeypadDriver) CurrentKey() (uint8, bool) {
	return 0, false
}

// init registers our driver, by name.
func init() {
	Register("null", func() Driver {
		return &NullKeypadDriver{}
	})
}
