package screen

// NullScreenDriver holds our state, of which there is none.
type NullScreenDriver struct {
}

// GetName returns the name of this driver.
//
// This is part of the Driver interface.
func (n *NullScreenDriver) GetName() string {
	return "null"
}

// Setup does nothing.
//
// This is part of the Driver interface.
func (n *NullScreenDriver) Setup() error {
	return nil
}

// TearDown does nothing.
//
// This is part of the Driver interface.
func (n *NullScreenDriver) TearDown() error {
	return nil
}

// Draw discards the frame, as this is a null-driver.
//
// This is part of the Driver interface.
func (n *NullScreenDriver) Draw(buffer *[256]uint8) error {
	return nil
}

// init registers our driver, by name.
func init() {
	Register("null", func() Driver {
		return &NullScreenDriver{}
	})
}
