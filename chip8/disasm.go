// disasm.go renders instruction words as assembly text, for the state
// snapshot and for Debug-level tracing.  The opcode identification
// itself comes from retrogolib's CHIP-8 tables; only the operand
// formatting lives here.

package chip8

import (
	"fmt"

	chip8lib "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble returns the assembly form of a single instruction word,
// e.g. "jp $0234".  Words which do not decode are rendered as raw
// data.
func Disassemble(op uint16) string {

	firstNibble := (op & 0xF000) >> 12

	var found chip8lib.Opcode
	for _, candidate := range chip8lib.Opcodes[int(firstNibble)] {
		if op&candidate.Info.Mask == candidate.Info.Value {
			found = candidate
			break
		}
	}

	if found.Instruction == nil {
		return fmt.Sprintf(".dw $%04X", op)
	}

	name := found.Instruction.Name
	if params := formatParams(name, op); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams returns the operand text for the given instruction, or
// the empty string when it has none.
func formatParams(name string, op uint16) string {

	x := (op & 0x0F00) >> 8
	y := (op & 0x00F0) >> 4

	switch name {
	case chip8lib.ClsInst.Name, chip8lib.RetInst.Name:
		return ""

	case chip8lib.JpInst.Name:
		// 1NNN is a plain jump, BNNN adds V0.
		if op&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, $%03X", op&0x0FFF)
		}
		return fmt.Sprintf("$%03X", op&0x0FFF)

	case chip8lib.CallInst.Name:
		return fmt.Sprintf("$%03X", op&0x0FFF)

	case chip8lib.SeInst.Name, chip8lib.SneInst.Name:
		// 3XNN/4XNN compare against a constant, 5XY0/9XY0
		// against a register.
		if op&0xF000 == 0x3000 || op&0xF000 == 0x4000 {
			return fmt.Sprintf("V%X, $%02X", x, op&0x00FF)
		}
		return fmt.Sprintf("V%X, V%X", x, y)

	case chip8lib.LdInst.Name:
		return formatLoadParams(op, x, y)

	case chip8lib.AddInst.Name:
		switch op & 0xF000 {
		case 0x7000:
			return fmt.Sprintf("V%X, $%02X", x, op&0x00FF)
		case 0xF000:
			return fmt.Sprintf("I, V%X", x)
		}
		return fmt.Sprintf("V%X, V%X", x, y)

	case chip8lib.OrInst.Name, chip8lib.AndInst.Name, chip8lib.XorInst.Name,
		chip8lib.SubInst.Name, chip8lib.SubnInst.Name:
		return fmt.Sprintf("V%X, V%X", x, y)

	case chip8lib.ShrInst.Name, chip8lib.ShlInst.Name:
		return fmt.Sprintf("V%X, V%X", x, y)

	case chip8lib.RndInst.Name:
		return fmt.Sprintf("V%X, $%02X", x, op&0x00FF)

	case chip8lib.DrwInst.Name:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, op&0x000F)

	case chip8lib.SkpInst.Name, chip8lib.SknpInst.Name:
		return fmt.Sprintf("V%X", x)
	}

	return ""
}

// formatLoadParams handles the many addressing forms which share the
// "ld" mnemonic.
func formatLoadParams(op uint16, x uint16, y uint16) string {

	switch op & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, op&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", op&0x0FFF)
	}

	switch op & 0xF0FF {
	case 0xF007:
		return fmt.Sprintf("V%X, DT", x)
	case 0xF00A:
		return fmt.Sprintf("V%X, K", x)
	case 0xF015:
		return fmt.Sprintf("DT, V%X", x)
	case 0xF018:
		return fmt.Sprintf("ST, V%X", x)
	case 0xF029:
		return fmt.Sprintf("F, V%X", x)
	case 0xF033:
		return fmt.Sprintf("B, V%X", x)
	case 0xF055:
		return fmt.Sprintf("[I], V%X", x)
	case 0xF065:
		return fmt.Sprintf("V%X, [I]", x)
	}

	return ""
}
