package chip8

import (
	"testing"

	"chipulator/memory"
)

// TestKeyWait walks the FX0A machine through a full press/release
// cycle.
func TestKeyWait(t *testing.T) {

	cpu, ram, _ := testSystem(t, words(
		0xF30A, // LD V3, K
		0x6499, // LD V4, 0x99
	))

	// The first step only arms the wait: PC must not move.
	step(t, cpu, ram)
	if pcOf(ram) != 0x0200 {
		t.Fatalf("FX0A must not advance PC, got %04X", pcOf(ram))
	}

	// No key pressed: PC stays parked, for as many steps as it
	// takes.
	for i := 0; i < 5; i++ {
		step(t, cpu, ram)
	}
	if pcOf(ram) != 0x0200 {
		t.Fatalf("waiting must not advance PC, got %04X", pcOf(ram))
	}
	if ram.Registers()[0x3] != 0 {
		t.Fatalf("no key seen yet, V3 must be untouched")
	}

	// Key down: the register updates every step, PC still parked.
	cpu.SetCurrentKeyPress(ram, 0xB, true)
	step(t, cpu, ram)
	if ram.Registers()[0x3] != 0xB {
		t.Fatalf("V3=%02X, want 0B", ram.Registers()[0x3])
	}
	if pcOf(ram) != 0x0200 {
		t.Fatalf("held key must not advance PC")
	}

	// Still held, key value changes (rolled finger): register
	// stays live.
	cpu.SetCurrentKeyPress(ram, 0xC, true)
	step(t, cpu, ram)
	if ram.Registers()[0x3] != 0xC {
		t.Fatalf("V3=%02X, want 0C", ram.Registers()[0x3])
	}
	if pcOf(ram) != 0x0200 {
		t.Fatalf("held key must not advance PC")
	}

	// Released: the next step completes the instruction.
	cpu.SetCurrentKeyPress(ram, 0, false)
	step(t, cpu, ram)
	if pcOf(ram) != 0x0202 {
		t.Fatalf("release must advance PC by 2, got %04X", pcOf(ram))
	}

	// And the machine is idle again: the next instruction runs
	// normally.
	step(t, cpu, ram)
	if ram.Registers()[0x4] != 0x99 {
		t.Fatalf("execution did not resume after the wait")
	}
	if ram.Registers()[0x3] != 0xC {
		t.Fatalf("final key value must persist, V3=%02X", ram.Registers()[0x3])
	}
}

// TestKeyWaitPressedAtDecode covers a key which is already down when
// FX0A first executes: the machine still requires a release before
// completing.
func TestKeyWaitPressedAtDecode(t *testing.T) {

	cpu, ram, _ := testSystem(t, words(0xF00A))

	cpu.SetCurrentKeyPress(ram, 0x5, true)

	// Arm.
	step(t, cpu, ram)
	if pcOf(ram) != 0x0200 {
		t.Fatalf("FX0A must not advance PC")
	}

	// Sees the press.
	step(t, cpu, ram)
	if ram.Registers()[0x0] != 0x5 {
		t.Fatalf("V0=%02X, want 05", ram.Registers()[0x0])
	}
	if pcOf(ram) != 0x0200 {
		t.Fatalf("held key must not advance PC")
	}

	// Release completes.
	cpu.SetCurrentKeyPress(ram, 0, false)
	step(t, cpu, ram)
	if pcOf(ram) != 0x0202 {
		t.Fatalf("release must advance PC by 2")
	}
	if ram.Get(memory.KeyWaitFlagsAddress) != 0 {
		t.Fatalf("wait flags must clear on completion")
	}
}
