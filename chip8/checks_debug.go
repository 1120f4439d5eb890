//go:build chip8debug

package chip8

import (
	"fmt"

	"chipulator/memory"
)

// Diagnostic-build consistency checks.  Each of these conditions
// means either a malformed program or an interpreter bug, and
// continuing would silently corrupt state, so they panic.

// checkProgramCounter panics if the given address lies outside the
// program region.
func checkProgramCounter(addr uint16) {
	if addr < memory.ProgramStart || addr > memory.ProgramLast {
		panic(fmt.Sprintf("program counter 0x%04X is outside the CHIP-8 program region", addr))
	}
}

// checkIndex panics if the given address is not usable by the I
// register, which must reach the glyph data below the program region
// as well as the program itself.
func checkIndex(addr uint16) {
	if addr > memory.ProgramLast {
		panic(fmt.Sprintf("I register 0x%04X is outside its normal operating range", addr))
	}
}

// checkStackNotEmpty panics on a return with nothing to return to.
func checkStackNotEmpty(ram *memory.Memory) {
	if ram.GetU16(memory.StackPointerAddress) == memory.StackStart {
		panic("return from subroutine with an empty CHIP-8 stack")
	}
}

// checkStackNotFull panics on a call beyond the 12 nesting levels the
// COSMAC VIP allowed.
func checkStackNotFull(ram *memory.Memory) {
	if ram.GetU16(memory.StackPointerAddress) == memory.StackStart+memory.StackSlots*2 {
		panic("CHIP-8 stack overflow: more than 12 nested subroutine calls")
	}
}
