package chip8

import (
	"chipulator/memory"
)

// glyphHeight is the height of a hex-digit glyph, in bytes/rows.
const glyphHeight = 5

// fontData holds the bitmap glyphs for the hex digits 0-F, five
// bytes per digit, only the high nibble of each byte is used.
var fontData = []uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// loadFont writes the glyph bitmaps into the interpreter area of RAM,
// along with the table mapping each digit to the address of its
// glyph.  The FX29 instruction resolves glyph addresses through that
// table.
func loadFont(ram *memory.Memory) {

	// Both writes land inside the interpreter area, the errors
	// cannot occur.
	_ = ram.SetRange(memory.FontStart, fontData...)

	for digit := uint16(0); digit < 16; digit++ {
		ram.SetU16(memory.GlyphTableStart+digit*2, memory.FontStart+digit*glyphHeight)
	}
}
