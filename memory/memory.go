// Package memory provides the 4K of RAM within which the emulator
// executes its programs.
//
// The layout of the RAM matches that of a 4K COSMAC VIP, which means
// that alongside the user-program we also hold the CHIP-8 call stack,
// the interpreter work area, and the display refresh buffer - all
// state visible to a running program lives somewhere in this single
// byte array, so a raw dump of it is a complete machine snapshot.
//
// Memory map:
//
//	+-----------------------------------------+ 0x0000
//	| CHIP-8 interpreter area (512 bytes)     |
//	|  - hex digit glyphs, 16 * 5 bytes       |
//	|  - glyph address table, 16 * 2 bytes    |
//	+-----------------------------------------+ 0x0200
//	| User program (3232 bytes)               |
//	+-----------------------------------------+ 0x0EA0
//	| CHIP-8 stack (48 bytes, 12 slots used)  |
//	+-----------------------------------------+ 0x0ED0
//	| Interpreter work area (48 bytes)        |
//	| 0x0EF0 - 0x0EFF hold V0-VF              |
//	+-----------------------------------------+ 0x0F00
//	| Display refresh (256 bytes)             |
//	+-----------------------------------------+ 0x1000
//
// All 16-bit values are stored big-endian, as on the original machine.
package memory

import (
	"errors"
	"fmt"
)

// Size is the number of bytes of RAM we provide, i.e. the "beefy"
// 4K COSMAC VIP rather than the 2K base model.
const Size = 0x1000

// The fixed regions of the memory map.
const (
	// FontStart is the address of the hex-digit glyph data, 5 bytes
	// per digit for each of 0-F.
	FontStart = 0x0000

	// GlyphTableStart is the address of the table mapping a hex digit
	// to the address of its glyph.  Each entry is a big-endian word.
	GlyphTableStart = 0x0050

	// ProgramStart is the address at which user programs are loaded,
	// and at which execution begins.
	ProgramStart = 0x0200

	// StackStart is the base of the CHIP-8 call stack, which grows
	// upward in 2-byte return-address slots.
	StackStart = 0x0EA0

	// StackSlots is the number of nested subroutine calls the
	// original interpreter allowed.
	StackSlots = 12

	// WorkAreaStart is the base of the interpreter work area, which
	// holds the memory-resident interpreter registers below.
	WorkAreaStart = 0x0ED0

	// DisplayStart is the address of the 64x32 display refresh
	// buffer, packed one bit per pixel, 8 bytes per row.
	DisplayStart = 0x0F00

	// ProgramLast is the last address a user program may occupy.
	ProgramLast = StackStart - 1
)

// The interpreter work area, byte by byte.  These are "registers" in
// the programmer-visible sense, but they live in RAM just as they did
// on the COSMAC VIP.
const (
	// ProgramCounterAddress holds the 16-bit program counter.
	ProgramCounterAddress = WorkAreaStart

	// IndexAddress holds the 16-bit I register.
	IndexAddress = WorkAreaStart + 2

	// StackPointerAddress holds the 16-bit stack pointer, which
	// always points at the next free stack slot.
	StackPointerAddress = WorkAreaStart + 4

	// DelayTimerAddress holds the 8-bit delay timer value.
	DelayTimerAddress = WorkAreaStart + 6

	// ToneTimerAddress holds the 8-bit tone timer value.
	ToneTimerAddress = WorkAreaStart + 7

	// KeyStatusAddress holds the hex keypad status word: 0x80|key
	// while a key is depressed, 0x00 otherwise.
	KeyStatusAddress = WorkAreaStart + 8

	// KeyWaitFlagsAddress holds the state of the wait-for-key
	// machine, see the chip8 package.
	KeyWaitFlagsAddress = WorkAreaStart + 9

	// KeyWaitRegisterAddress holds the destination register number
	// of a pending wait-for-key instruction.
	KeyWaitRegisterAddress = WorkAreaStart + 10

	// RegistersStart is the address of the sixteen V registers,
	// V0-VF, which fill the last 16 bytes of the work area.
	RegistersStart = WorkAreaStart + 0x20
)

// MaxProgramSize is the largest program we can load.
const MaxProgramSize = ProgramLast - ProgramStart + 1

var (
	// ErrMemoryOverflow is returned when a bulk write would reach
	// beyond the end of RAM.  No partial write occurs.
	ErrMemoryOverflow = errors.New("operation would write beyond the end of RAM")

	// ErrEmptyProgram is returned by LoadProgram when given no bytes.
	ErrEmptyProgram = errors.New("CHIP-8 program is empty")
)

// ProgramTooLargeError is returned by LoadProgram when the supplied
// program would not fit within the program region.
type ProgramTooLargeError struct {
	// Size is the size of the rejected program, in bytes.
	Size int
}

// Error implements the error interface.
func (e ProgramTooLargeError) Error() string {
	return fmt.Sprintf("CHIP-8 program with size %d bytes is too large (max %d)", e.Size, MaxProgramSize)
}

// Memory provides the 4K byte array of RAM.
type Memory struct {
	buf [Size]uint8
}

// Set sets a byte at addr of memory.
func (m *Memory) Set(addr uint16, value uint8) {
	m.buf[addr] = value
}

// Get returns a byte at addr of memory.
func (m *Memory) Get(addr uint16) uint8 {
	return m.buf[addr]
}

// GetU16 returns the big-endian word at the given address.
//
// This is a raw primitive: reading at Size-1 panics, callers must
// pre-validate their addresses.
func (m *Memory) GetU16(addr uint16) uint16 {
	h := m.buf[addr]
	l := m.buf[addr+1]
	return (uint16(h) << 8) | uint16(l)
}

// SetU16 stores a word at the given address, in big-endian order.
//
// As with GetU16 this is a raw primitive and panics when addr+1 is
// beyond the end of RAM.
func (m *Memory) SetU16(addr uint16, value uint16) {
	m.buf[addr] = uint8(value >> 8)
	m.buf[addr+1] = uint8(value & 0xFF)
}

// SetRange copies bytes from the given data to the specified starting
// address in RAM.
//
// If the write would reach beyond the end of RAM then nothing is
// copied at all, and ErrMemoryOverflow is returned.
func (m *Memory) SetRange(addr uint16, data ...uint8) error {
	if int(addr)+len(data) > Size {
		return ErrMemoryOverflow
	}
	copy(m.buf[int(addr):int(addr)+len(data)], data)
	return nil
}

// ZeroRange zero-fills size bytes starting at the given address, with
// the same all-or-nothing failure mode as SetRange.
func (m *Memory) ZeroRange(addr uint16, size int) error {
	if int(addr)+size > Size {
		return ErrMemoryOverflow
	}
	for i := 0; i < size; i++ {
		m.buf[int(addr)+i] = 0x00
	}
	return nil
}

// GetRange returns a copy of the contents of a given range.
func (m *Memory) GetRange(addr uint16, size int) []uint8 {
	var ret []uint8
	for size > 0 {
		ret = append(ret, m.buf[addr])
		addr++
		size--
	}
	return ret
}

// LoadProgram copies a CHIP-8 program into the program region,
// starting at ProgramStart.
//
// An empty program returns ErrEmptyProgram, and one too large for the
// program region returns a ProgramTooLargeError recording the size.
func (m *Memory) LoadProgram(data []uint8) error {
	if len(data) == 0 {
		return ErrEmptyProgram
	}
	if len(data) > MaxProgramSize {
		return ProgramTooLargeError{Size: len(data)}
	}
	return m.SetRange(ProgramStart, data...)
}

// Registers returns the sixteen V registers as a view into RAM, so
// that the interpreter may mutate them in place.
func (m *Memory) Registers() *[16]uint8 {
	return (*[16]uint8)(m.buf[RegistersStart : RegistersStart+16])
}

// DisplayBuffer returns the display refresh buffer as a view into
// RAM: 8 bytes per row, 32 rows, MSB-first pixel order, 1 is lit.
func (m *Memory) DisplayBuffer() *[256]uint8 {
	return (*[256]uint8)(m.buf[DisplayStart : DisplayStart+256])
}
