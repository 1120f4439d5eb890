// Package chip8 is the instruction engine of our emulator: it decodes
// and executes CHIP-8 instructions against the COSMAC RAM image
// provided by the memory package.
//
// The interpreter object itself is almost stateless.  Everything a
// CHIP-8 program can observe (program counter, I register, stack
// pointer, timers, key status, V registers, display buffer) lives at
// fixed offsets inside RAM, just as it did on the original machine.
// The only state held here is the random-number source, the clock,
// and the wall-clock expiry instants backing the two countdown timers.
package chip8

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chipulator/memory"
)

// Display geometry.  The display buffer packs eight pixels to the
// byte, most-significant bit leftmost.
const (
	// DisplayWidth is the width of the display, in pixels.
	DisplayWidth = 64

	// DisplayHeight is the height of the display, in pixels.
	DisplayHeight = 32

	// DisplayBytesPerRow is the number of bytes which make up a
	// single row of the display buffer.
	DisplayBytesPerRow = DisplayWidth / 8
)

// keyPressedBit is set in the key status word while a key is down;
// the low nibble then holds the key value.
const keyPressedBit = 0x80

// The wait-for-key machine stores its state in the key-wait flags
// byte of the interpreter work area.
const (
	// keyWaitWaiting is set once an FX0A instruction has been seen,
	// and remains set until the instruction completes.
	keyWaitWaiting = 0x01

	// keyWaitSeenPress is additionally set once a key has gone down;
	// the instruction completes when that key is released.
	keyWaitSeenPress = 0x02
)

var (
	// ErrMachineCall is returned when a program attempts to execute
	// the legacy 0NNN "call machine language subroutine" opcode.
	// There is no CDP1802 beneath us, so this can never work.
	//
	// It should be treated as fatal by callers.
	ErrMachineCall = errors.New("MACHINE-CALL")

	// ErrUnknownOpcode is returned when an instruction fails to
	// decode.  The wrapping error records the raw instruction word.
	//
	// It should be treated as fatal by callers.
	ErrUnknownOpcode = errors.New("UNKNOWN-OPCODE")
)

// Clock is the source of the current time, abstracted so that tests
// can advance it deterministically.
type Clock interface {

	// Now returns the current instant.
	Now() time.Time
}

// wallClock is the Clock used outside of tests.
type wallClock struct{}

// Now returns the current wall-clock time.
func (wallClock) Now() time.Time {
	return time.Now()
}

// Interpreter holds the non-memory-resident state of the engine.
type Interpreter struct {

	// rand is where the CXNN instruction gets its random bytes.
	rand RandomSource

	// clock is where the timer logic gets the current instant.
	clock Clock

	// delayExpiry is the instant at which the delay timer reaches
	// zero.  Only meaningful while delayActive is true.
	delayExpiry time.Time
	delayActive bool

	// toneExpiry is the instant at which the tone timer reaches
	// zero.  Only meaningful while toneActive is true.
	toneExpiry time.Time
	toneActive bool

	// Logger holds a logger which we use for debugging and
	// diagnostics.
	Logger *slog.Logger
}

// Option is the signature of a constructor option.
type Option func(*Interpreter)

// WithRandomSource overrides the source of random bytes, which is
// useful for deterministic tests.
func WithRandomSource(r RandomSource) Option {
	return func(c *Interpreter) {
		c.rand = r
	}
}

// WithClock overrides the source of the current time, which is
// useful for deterministic tests.
func WithClock(clk Clock) Option {
	return func(c *Interpreter) {
		c.clock = clk
	}
}

// WithLogger sets the logger which will be used for per-instruction
// tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Interpreter) {
		c.Logger = l
	}
}

// New returns a new interpreter.
func New(options ...Option) *Interpreter {

	c := &Interpreter{
		rand:   NewRandomSource(),
		clock:  wallClock{},
		Logger: slog.Default(),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Reset reinitializes all interpreter state within RAM: the stack,
// the work area, and the display buffer are zeroed, the glyph data is
// (re)loaded, and the program counter and stack pointer are set to
// their starting values.
//
// A previously loaded program survives a reset.  Reset must be called
// once before the first Step.
func (c *Interpreter) Reset(ram *memory.Memory) {

	// The stack, work area, and display form one contiguous run at
	// the top of RAM, so a single zero-fill covers all three.  The
	// range is constant and in-bounds, the error cannot occur.
	_ = ram.ZeroRange(memory.StackStart, memory.Size-memory.StackStart)

	loadFont(ram)

	ram.SetU16(memory.ProgramCounterAddress, memory.ProgramStart)
	ram.SetU16(memory.StackPointerAddress, memory.StackStart)

	c.delayActive = false
	c.toneActive = false
}

// Step executes exactly one instruction, or one micro-transition of
// the wait-for-key machine, and commits the next program counter.
//
// A decode failure, or an attempt to call native machine code, is
// returned as an error and should be treated as fatal: the interpreter
// state can no longer be trusted.
func (c *Interpreter) Step(ram *memory.Memory) error {

	pc := ram.GetU16(memory.ProgramCounterAddress)
	op := ram.GetU16(pc)

	// Bring the countdown timers up to date before anything can
	// observe them.
	c.updateTimers(ram)

	// A pending FX0A supersedes normal decoding: the program counter
	// is parked on that instruction until a key has been pressed and
	// released again.
	if ram.Get(memory.KeyWaitFlagsAddress) != 0 {
		c.stepKeyWait(ram, pc)
		return nil
	}

	for _, entry := range opcodes {
		if op&entry.Mask != entry.Value {
			continue
		}

		c.Logger.Debug("instruction",
			slog.String("name", entry.Desc),
			slog.String("asm", Disassemble(op)),
			slog.String("pc", fmt.Sprintf("0x%04X", pc)),
			slog.String("op", fmt.Sprintf("0x%04X", op)))

		next, err := entry.Handler(c, ram, op, pc)
		if err != nil {
			return err
		}

		checkProgramCounter(next)
		ram.SetU16(memory.ProgramCounterAddress, next)
		return nil
	}

	// Nothing matched.  A zero high nibble is the historic "call
	// CDP1802 machine code" instruction, which we cannot honour;
	// anything else is garbage.
	if op&0xF000 == 0x0000 {
		c.Logger.Error("machine-language subroutine call",
			slog.String("op", fmt.Sprintf("0x%04X", op)),
			slog.String("pc", fmt.Sprintf("0x%04X", pc)))
		return fmt.Errorf("machine-language subroutine call 0x%04X at 0x%04X: %w", op, pc, ErrMachineCall)
	}

	c.Logger.Error("unknown opcode",
		slog.String("op", fmt.Sprintf("0x%04X", op)),
		slog.String("pc", fmt.Sprintf("0x%04X", pc)))
	return fmt.Errorf("unknown opcode 0x%04X at 0x%04X: %w", op, pc, ErrUnknownOpcode)
}

// stepKeyWait advances the wait-for-key machine by one step.
//
// While a key is down its value is written into the destination
// register on every step, so the register stays live for as long as
// the key is held.  The instruction completes, and the program
// counter finally advances, on the first step after release.
func (c *Interpreter) stepKeyWait(ram *memory.Memory, pc uint16) {

	flags := ram.Get(memory.KeyWaitFlagsAddress)
	status := ram.Get(memory.KeyStatusAddress)
	x := ram.Get(memory.KeyWaitRegisterAddress) & 0x0F

	if status&keyPressedBit != 0 {
		ram.Registers()[x] = status & 0x0F
		ram.Set(memory.KeyWaitFlagsAddress, keyWaitWaiting|keyWaitSeenPress)
		return
	}

	if flags&keyWaitSeenPress != 0 {
		ram.Set(memory.KeyWaitFlagsAddress, 0x00)
		ram.SetU16(memory.ProgramCounterAddress, pc+2)
	}
}

// SetCurrentKeyPress records the state of the hex keypad: pressed is
// true while a key (0-15) is depressed, false once it is released.
//
// This is expected to be called by the peripheral layer between
// steps; the skip-if-key and wait-for-key instructions read the
// status word it maintains.
func (c *Interpreter) SetCurrentKeyPress(ram *memory.Memory, key uint8, pressed bool) {
	if pressed {
		ram.Set(memory.KeyStatusAddress, keyPressedBit|(key&0x0F))
	} else {
		ram.Set(memory.KeyStatusAddress, 0x00)
	}
}

// IsToneSounding returns true if the speaker should currently be
// sounding.  The original hardware's speaker did not respond to tone
// values below two, so neither do we.
func (c *Interpreter) IsToneSounding(ram *memory.Memory) bool {
	return ram.Get(memory.ToneTimerAddress) >= 2
}

// updateTimers re-derives both countdown registers from their expiry
// instants.  Driving the registers from the wall-clock, rather than
// decrementing per step, keeps them correct no matter how often the
// caller steps us.
func (c *Interpreter) updateTimers(ram *memory.Memory) {
	now := c.clock.Now()
	c.delayActive = updateTimer(ram, memory.DelayTimerAddress, now, c.delayExpiry, c.delayActive)
	c.toneActive = updateTimer(ram, memory.ToneTimerAddress, now, c.toneExpiry, c.toneActive)
}

// updateTimer updates a single countdown register, returning whether
// the timer is still running.
func updateTimer(ram *memory.Memory, addr uint16, now time.Time, expiry time.Time, active bool) bool {

	if !active {
		return false
	}

	if !now.Before(expiry) {
		ram.Set(addr, 0x00)
		return false
	}

	remaining := expiry.Sub(now).Milliseconds()
	ram.Set(addr, uint8(remaining*60/1000))
	return true
}

// startTimer writes the given jiffy count into a countdown register
// and computes the matching expiry instant, truncated to millisecond
// granularity.
func (c *Interpreter) startTimer(ram *memory.Memory, addr uint16, jiffies uint8) (time.Time, bool) {

	ram.Set(addr, jiffies)

	if jiffies == 0 {
		return time.Time{}, false
	}

	ms := int64(jiffies) * 1000 / 60
	return c.clock.Now().Add(time.Duration(ms) * time.Millisecond), true
}
