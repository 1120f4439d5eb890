//go:build !chip8debug

package chip8

import (
	"chipulator/memory"
)

// In a normal build the diagnostic range checks compile away; a
// malformed program which escapes its valid ranges will instead fault
// on a raw RAM access, which is the accepted trade-off.  Build with
// the "chip8debug" tag to enable the checks.

func checkProgramCounter(addr uint16) {}

func checkIndex(addr uint16) {}

func checkStackNotEmpty(ram *memory.Memory) {}

func checkStackNotFull(ram *memory.Memory) {}
