package chip8

import (
	"fmt"
	"strings"

	"chipulator/memory"
)

// State is a diagnostic snapshot of the complete machine state.
// Taking one has no behavioural effect.
type State struct {

	// PC is the program counter.
	PC uint16

	// Instruction is the instruction word at PC.
	Instruction uint16

	// Asm is the disassembly of Instruction.
	Asm string

	// I is the index register.
	I uint16

	// SP is the stack pointer.
	SP uint16

	// DelayTimer and ToneTimer are the countdown registers, in
	// jiffies.
	DelayTimer uint8
	ToneTimer  uint8

	// KeyStatus is the raw hex keypad status word.
	KeyStatus uint8

	// V holds the sixteen general-purpose registers.
	V [16]uint8

	// Display is a copy of the display refresh buffer.
	Display [256]uint8
}

// GetState captures a snapshot of the machine state from RAM.
func (c *Interpreter) GetState(ram *memory.Memory) State {

	s := State{
		PC:         ram.GetU16(memory.ProgramCounterAddress),
		I:          ram.GetU16(memory.IndexAddress),
		SP:         ram.GetU16(memory.StackPointerAddress),
		DelayTimer: ram.Get(memory.DelayTimerAddress),
		ToneTimer:  ram.Get(memory.ToneTimerAddress),
		KeyStatus:  ram.Get(memory.KeyStatusAddress),
		V:          *ram.Registers(),
		Display:    *ram.DisplayBuffer(),
	}

	s.Instruction = ram.GetU16(s.PC)
	s.Asm = Disassemble(s.Instruction)

	return s
}

// String renders the snapshot as a multi-line register dump.
func (s State) String() string {

	var sb strings.Builder

	fmt.Fprintf(&sb, "PC=%04X  [%04X: %s]\n", s.PC, s.Instruction, s.Asm)
	fmt.Fprintf(&sb, "I=%04X SP=%04X DT=%02X ST=%02X KEY=%02X\n",
		s.I, s.SP, s.DelayTimer, s.ToneTimer, s.KeyStatus)

	for i, v := range s.V {
		fmt.Fprintf(&sb, "V%X=%02X", i, v)
		if i%8 == 7 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}

	return sb.String()
}
