package emulator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chipulator/chip8"
	"chipulator/keypad"
	"chipulator/screen"
	"chipulator/tone"
)

// words packs big-endian instruction words into a ROM image.
func words(ops ...uint16) []uint8 {
	var out []uint8
	for _, op := range ops {
		out = append(out, uint8(op>>8), uint8(op&0xFF))
	}
	return out
}

// testEmulator creates an emulator wired to the test drivers, with
// the given ROM loaded and the system reset.
func testEmulator(t *testing.T, program []uint8) *Emulator {
	t.Helper()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	e, err := New(
		WithScreenDriver("recorder"),
		WithKeypadDriver("stuffed"),
		WithToneDriver("logger"),
		WithLogger(quiet))
	if err != nil {
		t.Fatalf("failed to create emulator: %s", err)
	}

	if err := e.LoadProgram(program); err != nil {
		t.Fatalf("failed to load program: %s", err)
	}
	e.Reset()
	return e
}

// TestDefaults ensures a bare emulator comes up with null drivers.
func TestDefaults(t *testing.T) {

	e, err := New()
	if err != nil {
		t.Fatalf("failed to create emulator: %s", err)
	}

	if e.GetScreenDriver().GetName() != "null" {
		t.Fatalf("default screen driver should be null, got %s", e.GetScreenDriver().GetName())
	}
	if e.GetKeypadDriver().GetName() != "null" {
		t.Fatalf("default keypad driver should be null, got %s", e.GetKeypadDriver().GetName())
	}
	if e.GetToneDriver().GetName() != "null" {
		t.Fatalf("default tone driver should be null, got %s", e.GetToneDriver().GetName())
	}
}

// TestBadOptions ensures each option rejects nonsense.
func TestBadOptions(t *testing.T) {

	_, err := New(WithScreenDriver("bogus"))
	if err == nil {
		t.Fatalf("expected an error for a bogus screen driver")
	}
	_, err = New(WithKeypadDriver("bogus"))
	if err == nil {
		t.Fatalf("expected an error for a bogus keypad driver")
	}
	_, err = New(WithToneDriver("bogus"))
	if err == nil {
		t.Fatalf("expected an error for a bogus tone driver")
	}
	_, err = New(WithInstructionRate(0))
	if err == nil {
		t.Fatalf("expected an error for a zero instruction rate")
	}
	_, err = New(WithInstructionRate(-5))
	if err == nil {
		t.Fatalf("expected an error for a negative instruction rate")
	}
}

// TestLoadFile loads a ROM from disk, and confirms errors for
// missing and oversized files.
func TestLoadFile(t *testing.T) {

	e, err := New()
	if err != nil {
		t.Fatalf("failed to create emulator: %s", err)
	}

	// A missing file fails.
	if err := e.LoadFile("/this/does/not/exist"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}

	// A real file loads into the program area.
	path := filepath.Join(t.TempDir(), "rom.ch8")
	rom := words(0x1200)
	if err := os.WriteFile(path, rom, 0644); err != nil {
		t.Fatalf("failed to write test ROM: %s", err)
	}
	if err := e.LoadFile(path); err != nil {
		t.Fatalf("failed to load test ROM: %s", err)
	}
	if e.Memory.GetU16(0x200) != 0x1200 {
		t.Fatalf("the ROM should be loaded at 0x200")
	}
}

// TestRunStepsDrawsFrames executes a small program which draws the
// zero glyph at the top-left, and confirms the screen driver saw it.
func TestRunStepsDrawsFrames(t *testing.T) {

	// V0=0, V1=0, I=glyph "0", draw 5 rows at (V0,V1), spin.
	e := testEmulator(t, words(0x6000, 0x6100, 0xF029, 0xD015, 0x1208))

	if err := e.RunSteps(5); err != nil {
		t.Fatalf("failed to run: %s", err)
	}

	rec, ok := e.GetScreenDriver().(screen.Recorder)
	if !ok {
		t.Fatalf("the recorder driver should implement Recorder")
	}
	if rec.GetFrameCount() != 5 {
		t.Fatalf("expected 5 frames, got %d", rec.GetFrameCount())
	}

	// The zero glyph is 0xF0 0x90 0x90 0x90 0xF0, drawn into the
	// first byte of each of the top five rows.
	frame := rec.GetFrame()
	expected := []uint8{0xF0, 0x90, 0x90, 0x90, 0xF0}
	for row, b := range expected {
		if frame[row*8] != b {
			t.Fatalf("row %d should be %02X, got %02X", row, b, frame[row*8])
		}
	}
}

// TestToneReconciled sets the tone timer and confirms the tone driver
// was started.
func TestToneReconciled(t *testing.T) {

	// V0=30, tone timer = V0, spin.
	e := testEmulator(t, words(0x601E, 0xF018, 0x1204))

	if err := e.RunSteps(3); err != nil {
		t.Fatalf("failed to run: %s", err)
	}

	drv, ok := e.GetToneDriver().(*tone.LoggerToneDriver)
	if !ok {
		t.Fatalf("wrong tone driver type")
	}
	if !drv.IsSounding() {
		t.Fatalf("the tone should be sounding with 30 jiffies on the timer")
	}

	events := drv.GetEvents()
	if len(events) != 1 || events[0] != "start" {
		t.Fatalf("expected a single start event, got %v", events)
	}
}

// TestScriptedKeyWait drives the wait-for-key instruction with the
// stuffed keypad driver: the program parks until a key is pressed and
// released.
func TestScriptedKeyWait(t *testing.T) {

	// Wait for a key into V0, then spin.
	e := testEmulator(t, words(0xF00A, 0x1202))

	pad, ok := e.GetKeypadDriver().(*keypad.StuffedKeypadDriver)
	if !ok {
		t.Fatalf("wrong keypad driver type")
	}

	// With no key the program stays parked on the wait.
	if err := e.RunSteps(3); err != nil {
		t.Fatalf("failed to run: %s", err)
	}
	if pc := e.CPU.GetState(e.Memory).PC; pc != 0x200 {
		t.Fatalf("the program should be parked at 0x200, got %04X", pc)
	}

	// Holding a key still parks it, recording the key.
	pad.Press(0x7)
	if err := e.RunSteps(2); err != nil {
		t.Fatalf("failed to run: %s", err)
	}
	if pc := e.CPU.GetState(e.Memory).PC; pc != 0x200 {
		t.Fatalf("the program should still be parked while held, got %04X", pc)
	}

	// Releasing completes the wait.
	pad.Release()
	if err := e.RunSteps(2); err != nil {
		t.Fatalf("failed to run: %s", err)
	}

	state := e.CPU.GetState(e.Memory)
	if state.V[0] != 0x7 {
		t.Fatalf("V0 should hold the key, got %X", state.V[0])
	}
	if state.PC != 0x202 {
		t.Fatalf("the program should have moved on to 0x202, got %04X", state.PC)
	}
}

// TestRunStepsStopsOnError confirms a fatal opcode surfaces as an
// error from the run-loop.
func TestRunStepsStopsOnError(t *testing.T) {

	// 0xFFFF matches nothing in the instruction set.
	e := testEmulator(t, words(0xFFFF))
	err := e.RunSteps(1)
	if !errors.Is(err, chip8.ErrUnknownOpcode) {
		t.Fatalf("expected an unknown-opcode error, got %v", err)
	}

	// A machine-call is fatal too.
	e = testEmulator(t, words(0x0123))
	err = e.RunSteps(1)
	if !errors.Is(err, chip8.ErrMachineCall) {
		t.Fatalf("expected a machine-call error, got %v", err)
	}
}

// TestRunHonorsContext confirms the paced run-loop stops when its
// context is canceled.
func TestRunHonorsContext(t *testing.T) {

	e := testEmulator(t, words(0x1200))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := e.Run(ctx)
	if err != nil {
		t.Fatalf("a canceled run should end cleanly, got %s", err)
	}
}

// TestRunHonorsInterrupt confirms the run-loop stops when the keypad
// driver reports a user interrupt.
func TestRunHonorsInterrupt(t *testing.T) {

	e := testEmulator(t, words(0x1200))

	pad, ok := e.GetKeypadDriver().(*keypad.StuffedKeypadDriver)
	if !ok {
		t.Fatalf("wrong keypad driver type")
	}
	pad.Interrupt()

	done := make(chan error, 1)
	go func() {
		done <- e.Run(context.Background())
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("an interrupted run should end cleanly, got %s", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("the run-loop ignored the interrupt")
	}
}
