package tone

// NullToneDriver holds our state.
type NullToneDriver struct {

	// sounding records whether the tone is playing.
	sounding bool
}

// GetName returns the name of this driver.
//
// This is part of the Driver interface.
func (n *NullToneDriver) GetName() string {
	return "null"
}

// Setup does nothing.
//
// This is part of the Driver interface.
func (n *NullToneDriver) Setup() error {
	return nil
}

// TearDown does nothing.
//
// This is part of the Driver interface.
func (n *NullToneDriver) TearDown() error {
	n.sounding = false
	return nil
}

// Start marks the tone as sounding, silently.
//
// This is part of the Driver interface.
func (n *NullToneDriver) Start() error {
	n.sounding = true
	return nil
}

// Stop marks the tone as silent.
//
// This is part of the Driver interface.
func (n *NullToneDriver) Stop() error {
	n.sounding = false
	return nil
}

// IsSounding returns true if the tone is playing.
//
// This is part of the Driver interface.
func (n *NullToneDriver) IsSounding() bool {
	return n.sounding
}

// init registers our driver, by name.
func init() {
	Register("null", func() Driver {
		return &NullToneDriver{}
	})
}
