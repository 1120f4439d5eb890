// Package emulator ties the pieces together: it owns the RAM and the
// CPU, drives them at a fixed instruction rate, and shuttles state
// between the RAM and the peripheral drivers.
//
// Each iteration of the run-loop performs the same dance:
//
//  1. ask the keypad driver which key is held, and write that into
//     the key status word in RAM,
//  2. step the CPU once,
//  3. hand the display buffer to the screen driver,
//  4. reconcile the tone driver against the tone timer.
//
// Everything the CPU knows lives in the RAM, so this loop is the only
// place where the outside world is consulted.
package emulator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"chipulator/chip8"
	"chipulator/keypad"
	"chipulator/memory"
	"chipulator/screen"
	"chipulator/tone"
)

// defaultInstructionRate is how many instructions we execute per
// second when the user doesn't ask for a different speed.
//
// The original interpreter ran at whatever speed the host CPU gave
// it; a few hundred instructions a second is the pace the classic
// games were written for.
const defaultInstructionRate = 300

// Emulator holds our state.
type Emulator struct {

	// Memory is the 4K of RAM the system runs in.
	Memory *memory.Memory

	// CPU is the interpreter which executes instructions from that
	// RAM.
	CPU *chip8.Interpreter

	// screen is where the display buffer is rendered.
	screen *screen.Screen

	// keypad is where keypresses come from.
	keypad *keypad.Keypad

	// tone is where the buzzer sounds.
	tone *tone.Tone

	// rate is how many instructions we execute per second.
	rate int

	// cpuOptions are handed to the CPU constructor.
	cpuOptions []chip8.Option

	// Logger holds a logger which we use for debugging and
	// diagnostics.
	Logger *slog.Logger
}

// Option is the signature of a configuration-function for our
// constructor.
type Option func(*Emulator) error

// WithScreenDriver configures the display driver, by name.
func WithScreenDriver(name string) Option {
	return func(e *Emulator) error {
		s, err := screen.New(name)
		if err != nil {
			return err
		}
		e.screen = s
		return nil
	}
}

// WithKeypadDriver configures the input driver, by name.
func WithKeypadDriver(name string) Option {
	return func(e *Emulator) error {
		k, err := keypad.New(name)
		if err != nil {
			return err
		}
		e.keypad = k
		return nil
	}
}

// WithToneDriver configures the sound driver, by name.
func WithToneDriver(name string) Option {
	return func(e *Emulator) error {
		t, err := tone.New(name)
		if err != nil {
			return err
		}
		e.tone = t
		return nil
	}
}

// WithInstructionRate configures how many instructions are executed
// per second.
func WithInstructionRate(rate int) Option {
	return func(e *Emulator) error {
		if rate <= 0 {
			return fmt.Errorf("instruction rate must be positive, got %d", rate)
		}
		e.rate = rate
		return nil
	}
}

// WithInterpreterOptions passes options through to the CPU, which is
// how tests pin the clock and the random source.
func WithInterpreterOptions(options ...chip8.Option) Option {
	return func(e *Emulator) error {
		e.cpuOptions = append(e.cpuOptions, options...)
		return nil
	}
}

// WithLogger configures the logger the emulator, and its CPU, will
// use.
func WithLogger(l *slog.Logger) Option {
	return func(e *Emulator) error {
		e.Logger = l
		return nil
	}
}

// New returns a new emulation object, with null drivers unless
// options say otherwise.
func New(options ...Option) (*Emulator, error) {

	e := &Emulator{
		Memory: &memory.Memory{},
		rate:   defaultInstructionRate,
		Logger: slog.Default(),
	}

	// The null drivers always exist, so these lookups cannot fail.
	e.screen, _ = screen.New("null")
	e.keypad, _ = keypad.New("null")
	e.tone, _ = tone.New("null")

	for _, option := range options {
		err := option(e)
		if err != nil {
			return nil, err
		}
	}

	cpuOptions := append([]chip8.Option{chip8.WithLogger(e.Logger)}, e.cpuOptions...)
	e.CPU = chip8.New(cpuOptions...)

	return e, nil
}

// LoadFile loads the given ROM into the program area of RAM.
func (e *Emulator) LoadFile(path string) error {

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read program %s: %s", path, err)
	}

	return e.Memory.LoadProgram(data)
}

// LoadProgram loads the given bytes into the program area of RAM.
func (e *Emulator) LoadProgram(data []uint8) error {
	return e.Memory.LoadProgram(data)
}

// Reset returns the system to its power-on state, with the loaded
// program intact.
func (e *Emulator) Reset() {
	e.CPU.Reset(e.Memory)
}

// GetScreenDriver returns the display driver we're using.
func (e *Emulator) GetScreenDriver() screen.Driver {
	return e.screen.GetDriver()
}

// GetKeypadDriver returns the input driver we're using.
func (e *Emulator) GetKeypadDriver() keypad.Driver {
	return e.keypad.GetDriver()
}

// GetToneDriver returns the sound driver we're using.
func (e *Emulator) GetToneDriver() tone.Driver {
	return e.tone.GetDriver()
}

// step performs one iteration of the run-loop: inject input, execute
// an instruction, and present output.
func (e *Emulator) step() error {

	// 1. Tell the CPU which key is held, if any.
	key, held := e.keypad.GetDriver().CurrentKey()
	e.CPU.SetCurrentKeyPress(e.Memory, key, held)

	// 2. Execute a single instruction.
	err := e.CPU.Step(e.Memory)
	if err != nil {
		return err
	}

	// 3. Present the display.
	err = e.screen.GetDriver().Draw(e.Memory.DisplayBuffer())
	if err != nil {
		return fmt.Errorf("failed to draw: %s", err)
	}

	// 4. Reconcile the buzzer against the tone timer.
	drv := e.tone.GetDriver()
	if e.CPU.IsToneSounding(e.Memory) {
		err = drv.Start()
	} else {
		err = drv.Stop()
	}
	if err != nil {
		return fmt.Errorf("failed to update tone: %s", err)
	}

	return nil
}

// RunSteps executes the given number of instructions, unpaced and
// with no driver setup or teardown.
//
// This exists for tests, which want to script input between batches
// of instructions.  Reset must have been called first.
func (e *Emulator) RunSteps(count int) error {

	for i := 0; i < count; i++ {
		err := e.step()
		if err != nil {
			return err
		}
	}
	return nil
}

// Run resets the system and executes the loaded program until the
// context is canceled, the user asks to quit, or the program dies.
//
// Instructions are paced against the wall-clock so that the program
// runs at the configured rate regardless of how fast the host is.
func (e *Emulator) Run(ctx context.Context) error {

	// Setup the drivers, and ensure we undo that on our way out.
	err := e.screen.GetDriver().Setup()
	if err != nil {
		return fmt.Errorf("failed to setup screen driver %s: %s", e.screen.GetName(), err)
	}
	defer func() {
		err2 := e.screen.GetDriver().TearDown()
		if err2 != nil {
			e.Logger.Error("failed to teardown screen driver",
				slog.String("driver", e.screen.GetName()),
				slog.String("error", err2.Error()))
		}
	}()

	err = e.keypad.GetDriver().Setup()
	if err != nil {
		return fmt.Errorf("failed to setup keypad driver %s: %s", e.keypad.GetName(), err)
	}
	defer func() {
		err2 := e.keypad.GetDriver().TearDown()
		if err2 != nil {
			e.Logger.Error("failed to teardown keypad driver",
				slog.String("driver", e.keypad.GetName()),
				slog.String("error", err2.Error()))
		}
	}()

	err = e.tone.GetDriver().Setup()
	if err != nil {
		return fmt.Errorf("failed to setup tone driver %s: %s", e.tone.GetName(), err)
	}
	defer func() {
		err2 := e.tone.GetDriver().TearDown()
		if err2 != nil {
			e.Logger.Error("failed to teardown tone driver",
				slog.String("driver", e.tone.GetName()),
				slog.String("error", err2.Error()))
		}
	}()

	e.CPU.Reset(e.Memory)

	// The keypad driver might be able to tell us the user wants out.
	interrupter, canInterrupt := e.keypad.GetDriver().(keypad.Interrupter)

	// Pace against absolute deadlines, so that oversleeping one
	// instruction doesn't slow the whole run down.
	interval := time.Second / time.Duration(e.rate)
	start := time.Now()
	executed := 0

	for {
		select {
		case <-ctx.Done():
			e.Logger.Debug("context canceled, stopping")
			return nil
		default:
		}

		if canInterrupt && interrupter.Interrupted() {
			e.Logger.Debug("user interrupt, stopping")
			return nil
		}

		err = e.step()
		if err != nil {
			e.Logger.Error("emulation stopped",
				slog.String("error", err.Error()))
			return err
		}

		executed++
		deadline := start.Add(time.Duration(executed) * interval)
		delay := time.Until(deadline)
		if delay > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
		}
	}
}
