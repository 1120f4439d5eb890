// opcodes.go holds the decode table and the implementation of every
// CHIP-8 instruction.
//
// Decoding works by matching the 16-bit instruction word against an
// ordered list of (mask, value) pairs.  The patterns are mutually
// exclusive by construction - no word matches two entries - so the
// ordering is cosmetic; only the fall-through to the fatal "unknown"
// path in Step is ordering-sensitive.

package chip8

import (
	"chipulator/memory"
)

// opcodeHandler contains the signature of a single instruction's
// implementation.  Handlers receive the instruction word and the
// address it was fetched from, and return the next program counter.
type opcodeHandler func(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error)

// opcodeEntry contains details of a specific instruction we
// implement.
//
// While we mostly need "pattern to handler", having a name is useful
// for the logs we produce.
type opcodeEntry struct {

	// Mask selects the bits of the instruction word which identify
	// the instruction.
	Mask uint16

	// Value is the required value of those bits.
	Value uint16

	// Desc contains the human-readable mnemonic of the instruction.
	Desc string

	// Handler contains the function implementing the instruction.
	Handler opcodeHandler
}

// opcodes is our decode table.
var opcodes = []opcodeEntry{
	{0xFFFF, 0x00E0, "CLS", opClearScreen},
	{0xFFFF, 0x00EE, "RET", opReturn},
	{0xF000, 0x1000, "JP nnn", opJump},
	{0xF000, 0x2000, "CALL nnn", opCall},
	{0xF000, 0x3000, "SE Vx, nn", opSkipEqualConst},
	{0xF000, 0x4000, "SNE Vx, nn", opSkipNotEqualConst},
	{0xF00F, 0x5000, "SE Vx, Vy", opSkipEqualReg},
	{0xF000, 0x6000, "LD Vx, nn", opLoadConst},
	{0xF000, 0x7000, "ADD Vx, nn", opAddConst},
	{0xF00F, 0x8000, "LD Vx, Vy", opLoadReg},
	{0xF00F, 0x8001, "OR Vx, Vy", opOr},
	{0xF00F, 0x8002, "AND Vx, Vy", opAnd},
	{0xF00F, 0x8003, "XOR Vx, Vy", opXor},
	{0xF00F, 0x8004, "ADD Vx, Vy", opAddReg},
	{0xF00F, 0x8005, "SUB Vx, Vy", opSub},
	{0xF00F, 0x8006, "SHR Vx, Vy", opShiftRight},
	{0xF00F, 0x8007, "SUBN Vx, Vy", opSubNegated},
	{0xF00F, 0x800E, "SHL Vx, Vy", opShiftLeft},
	{0xF00F, 0x9000, "SNE Vx, Vy", opSkipNotEqualReg},
	{0xF000, 0xA000, "LD I, nnn", opLoadIndex},
	{0xF000, 0xB000, "JP V0, nnn", opJumpOffset},
	{0xF000, 0xC000, "RND Vx, nn", opRandom},
	{0xF000, 0xD000, "DRW Vx, Vy, n", opDraw},
	{0xF0FF, 0xE09E, "SKP Vx", opSkipKeyPressed},
	{0xF0FF, 0xE0A1, "SKNP Vx", opSkipKeyNotPressed},
	{0xF0FF, 0xF007, "LD Vx, DT", opReadDelayTimer},
	{0xF0FF, 0xF00A, "LD Vx, K", opWaitKey},
	{0xF0FF, 0xF015, "LD DT, Vx", opSetDelayTimer},
	{0xF0FF, 0xF018, "LD ST, Vx", opSetToneTimer},
	{0xF0FF, 0xF01E, "ADD I, Vx", opAddIndex},
	{0xF0FF, 0xF029, "LD F, Vx", opLoadGlyphAddress},
	{0xF0FF, 0xF033, "LD B, Vx", opStoreBCD},
	{0xF0FF, 0xF055, "LD [I], Vx", opStoreRegisters},
	{0xF0FF, 0xF065, "LD Vx, [I]", opLoadRegisters},
}

// Field accessors for the instruction word.
func regX(op uint16) uint8 {
	return uint8((op >> 8) & 0x0F)
}

func regY(op uint16) uint8 {
	return uint8((op >> 4) & 0x0F)
}

func lowByte(op uint16) uint8 {
	return uint8(op & 0xFF)
}

func address(op uint16) uint16 {
	return op & 0x0FFF
}

// skip encodes the skip-if family's choice of next program counter.
func skip(pc uint16, cond bool) uint16 {
	if cond {
		return pc + 4
	}
	return pc + 2
}

// setFlag stores a 0/1 truth value into VF.
func setFlag(regs *[16]uint8, cond bool) {
	if cond {
		regs[0xF] = 1
	} else {
		regs[0xF] = 0
	}
}

// 00E0 - clear the display buffer.
func opClearScreen(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	// Constant, in-bounds range, the error cannot occur.
	_ = ram.ZeroRange(memory.DisplayStart, memory.Size-memory.DisplayStart)
	return pc + 2, nil
}

// 00EE - return from a subroutine.
//
// The stack holds the address of the CALL instruction itself, so
// execution resumes two bytes past it.
func opReturn(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	checkStackNotEmpty(ram)

	sp := ram.GetU16(memory.StackPointerAddress) - 2
	ret := ram.GetU16(sp)
	ram.SetU16(memory.StackPointerAddress, sp)

	return ret + 2, nil
}

// 1NNN - unconditional jump.
func opJump(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	return address(op), nil
}

// BNNN - jump to NNN plus V0.
func opJumpOffset(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	v0 := ram.Registers()[0x0]
	return address(op) + uint16(v0), nil
}

// 2NNN - call a subroutine, pushing the address of this instruction.
func opCall(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	checkStackNotFull(ram)

	sp := ram.GetU16(memory.StackPointerAddress)
	ram.SetU16(sp, pc)
	ram.SetU16(memory.StackPointerAddress, sp+2)

	return address(op), nil
}

// 3XNN - skip if VX == NN.
func opSkipEqualConst(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	vx := ram.Registers()[regX(op)]
	return skip(pc, vx == lowByte(op)), nil
}

// 4XNN - skip if VX != NN.
func opSkipNotEqualConst(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	vx := ram.Registers()[regX(op)]
	return skip(pc, vx != lowByte(op)), nil
}

// 5XY0 - skip if VX == VY.
func opSkipEqualReg(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	return skip(pc, regs[regX(op)] == regs[regY(op)]), nil
}

// 9XY0 - skip if VX != VY.
func opSkipNotEqualReg(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	return skip(pc, regs[regX(op)] != regs[regY(op)]), nil
}

// EX9E - skip if the depressed key equals the low nibble of VX.
func opSkipKeyPressed(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	status := ram.Get(memory.KeyStatusAddress)
	vx := ram.Registers()[regX(op)]

	pressed := status&keyPressedBit != 0 && status&0x0F == vx&0x0F
	return skip(pc, pressed), nil
}

// EXA1 - skip unless the depressed key equals the low nibble of VX.
func opSkipKeyNotPressed(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	status := ram.Get(memory.KeyStatusAddress)
	vx := ram.Registers()[regX(op)]

	pressed := status&keyPressedBit != 0 && status&0x0F == vx&0x0F
	return skip(pc, !pressed), nil
}

// 6XNN - VX = NN.
func opLoadConst(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	ram.Registers()[regX(op)] = lowByte(op)
	return pc + 2, nil
}

// 7XNN - VX += NN, wrapping, flags untouched.
func opAddConst(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	regs[regX(op)] += lowByte(op)
	return pc + 2, nil
}

// CXNN - VX = random byte masked by NN.
func opRandom(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	ram.Registers()[regX(op)] = c.rand.NextByte() & lowByte(op)
	return pc + 2, nil
}

// 8XY0 - VX = VY.
func opLoadReg(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	regs[regX(op)] = regs[regY(op)]
	return pc + 2, nil
}

// 8XY1 - VX |= VY.
func opOr(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	regs[regX(op)] |= regs[regY(op)]
	return pc + 2, nil
}

// 8XY2 - VX &= VY.
func opAnd(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	regs[regX(op)] &= regs[regY(op)]
	return pc + 2, nil
}

// 8XY3 - VX ^= VY.
//
// Not in the original manual, but used by plenty of real programs.
func opXor(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	regs[regX(op)] ^= regs[regY(op)]
	return pc + 2, nil
}

// 8XY4 - VX += VY, VF = 1 on carry.
func opAddReg(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	vx, vy := regs[regX(op)], regs[regY(op)]

	sum := vx + vy
	regs[regX(op)] = sum
	setFlag(regs, sum < vx)

	return pc + 2, nil
}

// 8XY5 - VX -= VY.
//
// Note the flag polarity: VF = 1 means NO borrow occurred.  That is
// backwards from most machines but it is what CHIP-8 programs expect.
func opSub(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	vx, vy := regs[regX(op)], regs[regY(op)]

	regs[regX(op)] = vx - vy
	setFlag(regs, vx >= vy)

	return pc + 2, nil
}

// 8XY7 - VX = VY - VX, VF = 1 when no borrow.
func opSubNegated(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	vx, vy := regs[regX(op)], regs[regY(op)]

	regs[regX(op)] = vy - vx
	setFlag(regs, vy >= vx)

	return pc + 2, nil
}

// 8XY6 - VX = VY >> 1, VF = the bit shifted out.
//
// The source register is VY, as on the COSMAC VIP; many later
// interpreters shifted VX in place, but programs written for the
// original rely on this behaviour.
func opShiftRight(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	vy := regs[regY(op)]

	regs[regX(op)] = vy >> 1
	setFlag(regs, vy&0x01 != 0)

	return pc + 2, nil
}

// 8XYE - VX = VY << 1, VF = the bit shifted out.
func opShiftLeft(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	vy := regs[regY(op)]

	regs[regX(op)] = vy << 1
	setFlag(regs, vy&0x80 != 0)

	return pc + 2, nil
}

// FX07 - VX = delay timer.
func opReadDelayTimer(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	ram.Registers()[regX(op)] = ram.Get(memory.DelayTimerAddress)
	return pc + 2, nil
}

// FX15 - delay timer = VX jiffies.
func opSetDelayTimer(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	vx := ram.Registers()[regX(op)]
	c.delayExpiry, c.delayActive = c.startTimer(ram, memory.DelayTimerAddress, vx)
	return pc + 2, nil
}

// FX18 - tone timer = VX jiffies.
func opSetToneTimer(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	vx := ram.Registers()[regX(op)]
	c.toneExpiry, c.toneActive = c.startTimer(ram, memory.ToneTimerAddress, vx)
	return pc + 2, nil
}

// FX0A - wait for a key press, store the key into VX.
//
// This only arms the wait machine: the program counter stays on this
// instruction, and every subsequent Step runs one transition of the
// machine (see stepKeyWait) until a key has been pressed and released.
func opWaitKey(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	ram.Set(memory.KeyWaitFlagsAddress, keyWaitWaiting)
	ram.Set(memory.KeyWaitRegisterAddress, regX(op))
	return pc, nil
}

// ANNN - I = NNN.
func opLoadIndex(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	checkIndex(address(op))
	ram.SetU16(memory.IndexAddress, address(op))
	return pc + 2, nil
}

// FX1E - I += VX, wrapping.
func opAddIndex(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	vx := ram.Registers()[regX(op)]

	i := ram.GetU16(memory.IndexAddress) + uint16(vx)
	checkIndex(i)
	ram.SetU16(memory.IndexAddress, i)

	return pc + 2, nil
}

// FX29 - I = address of the glyph for the low nibble of VX.
func opLoadGlyphAddress(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	digit := ram.Registers()[regX(op)] & 0x0F
	glyph := ram.GetU16(memory.GlyphTableStart + uint16(digit)*2)
	ram.SetU16(memory.IndexAddress, glyph)
	return pc + 2, nil
}

// FX33 - write the three decimal digits of VX to I, I+1, I+2.
// I itself is unchanged.
func opStoreBCD(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	vx := ram.Registers()[regX(op)]
	i := ram.GetU16(memory.IndexAddress)

	ram.Set(i, vx/100)
	ram.Set(i+1, (vx/10)%10)
	ram.Set(i+2, vx%10)

	return pc + 2, nil
}

// FX55 - store V0..VX to memory at I; I advances past the block.
func opStoreRegisters(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	x := regX(op)
	i := ram.GetU16(memory.IndexAddress)

	for r := uint8(0); r <= x; r++ {
		ram.Set(i+uint16(r), regs[r])
	}
	ram.SetU16(memory.IndexAddress, i+uint16(x)+1)

	return pc + 2, nil
}

// FX65 - load V0..VX from memory at I; I advances past the block.
func opLoadRegisters(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	x := regX(op)
	i := ram.GetU16(memory.IndexAddress)

	for r := uint8(0); r <= x; r++ {
		regs[r] = ram.Get(i + uint16(r))
	}
	ram.SetU16(memory.IndexAddress, i+uint16(x)+1)

	return pc + 2, nil
}

// DXYN - draw an N-row sprite from memory at I, at the pixel
// coordinates held in (VX, VY), XOR-composited onto the display.
//
// VF reports collision: 1 if any sprite bit would flip an already-set
// pixel, accumulated across every byte touched.  Sprites never wrap:
// rows and columns which fall off the edge are clipped, and a sprite
// whose origin is entirely off-screen draws nothing at all.
func opDraw(c *Interpreter, ram *memory.Memory, op uint16, pc uint16) (uint16, error) {
	regs := ram.Registers()
	col := regs[regX(op)]
	row := regs[regY(op)]
	rows := int(op & 0x000F)
	i := ram.GetU16(memory.IndexAddress)

	regs[0xF] = 0

	if int(col) >= DisplayWidth || int(row) >= DisplayHeight {
		return pc + 2, nil
	}

	disp := ram.DisplayBuffer()

	// A sprite which is not byte-aligned straddles two adjacent
	// bytes per row; shift selects how far into the first byte the
	// sprite starts.
	byteCol := int(col) / 8
	shift := int(col) % 8

	var collision uint8

	for r := 0; r < rows; r++ {
		y := int(row) + r
		if y >= DisplayHeight {
			break
		}

		sprite := ram.Get(i + uint16(r))
		rowBase := y * DisplayBytesPerRow

		first := sprite >> uint(shift)
		collision |= disp[rowBase+byteCol] & first
		disp[rowBase+byteCol] ^= first

		if shift > 0 && byteCol < DisplayBytesPerRow-1 {
			second := sprite << uint(8-shift)
			collision |= disp[rowBase+byteCol+1] & second
			disp[rowBase+byteCol+1] ^= second
		}
	}

	setFlag(regs, collision != 0)
	return pc + 2, nil
}
