package screen

// RecordingScreenDriver holds our state.
//
// Nothing is displayed; instead the most recent frame is saved so
// that integration tests can make assertions against it.
type RecordingScreenDriver struct {

	// frame stores the last frame drawn.
	frame [256]uint8

	// count stores how many frames have been drawn.
	count int
}

// GetName returns the name of this driver.
//
// This is part of the Driver interface.
func (r *RecordingScreenDriver) GetName() string {
	return "recorder"
}

// Setup does nothing.
//
// This is part of the Driver interface.
func (r *RecordingScreenDriver) Setup() error {
	return nil
}

// TearDown does nothing.
//
// This is part of the Driver interface.
func (r *RecordingScreenDriver) TearDown() error {
	return nil
}

// Draw saves the frame into our history.
//
// This is part of the Driver interface.
func (r *RecordingScreenDriver) Draw(buffer *[256]uint8) error {
	r.frame = *buffer
	r.count++
	return nil
}

// GetFrame returns the most recently drawn frame.
//
// This is part of the Recorder interface.
func (r *RecordingScreenDriver) GetFrame() [256]uint8 {
	return r.frame
}

// GetFrameCount returns how many frames have been drawn.
//
// This is part of the Recorder interface.
func (r *RecordingScreenDriver) GetFrameCount() int {
	return r.count
}

// Reset removes any stored state.
//
// This is part of the Recorder interface.
func (r *RecordingScreenDriver) Reset() {
	r.frame = [256]uint8{}
	r.count = 0
}

// init registers our driver, by name.
func init() {
	Register("recorder", func() Driver {
		return &RecordingScreenDriver{}
	})
}
