package tone

// LoggerToneDriver holds our state.
//
// Nothing is sounded; instead start/stop transitions are recorded so
// that integration tests can make assertions against them.
type LoggerToneDriver struct {

	// sounding records whether the tone is playing.
	sounding bool

	// events records each transition, "start" or "stop".
	events []string
}

// GetName returns the name of this driver.
//
// This is part of the Driver interface.
func (l *LoggerToneDriver) GetName() string {
	return "logger"
}

// Setup does nothing.
//
// This is part of the Driver interface.
func (l *LoggerToneDriver) Setup() error {
	return nil
}

// TearDown does nothing.
//
// This is part of the Driver interface.
func (l *LoggerToneDriver) TearDown() error {
	return nil
}

// Start records a start transition.
//
// This is part of the Driver interface.
func (l *LoggerToneDriver) Start() error {
	if l.sounding {
		return nil
	}

	l.sounding = true
	l.events = append(l.events, "start")
	return nil
}

// Stop records a stop transition.
//
// This is part of the Driver interface.
func (l *LoggerToneDriver) Stop() error {
	if !l.sounding {
		return nil
	}

	l.sounding = false
	l.events = append(l.events, "stop")
	return nil
}

// IsSounding returns true if the tone is playing.
//
// This is part of the Driver interface.
func (l *LoggerToneDriver) IsSounding() bool {
	return l.sounding
}

// GetEvents returns the recorded transitions.
func (l *LoggerToneDriver) GetEvents() []string {
	return l.events
}

// Reset removes any stored state.
func (l *LoggerToneDriver) Reset() {
	l.sounding = false
	l.events = nil
}

// init registers our driver, by name.
func init() {
	Register("logger", func() Driver {
		return &LoggerToneDriver{}
	})
}
