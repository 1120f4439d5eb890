package screen

import (
	"strings"
	"testing"
)

// TestFactory ensures each registered driver can be constructed, and
// returns the name it was registered under.
func TestFactory(t *testing.T) {

	for _, name := range []string{"null", "ansi", "termbox", "recorder"} {
		s, err := New(name)
		if err != nil {
			t.Fatalf("failed to create screen driver %s: %s", name, err)
		}
		if s.GetName() != name {
			t.Fatalf("driver %s reported the wrong name %s", name, s.GetName())
		}
		if s.GetDriver() == nil {
			t.Fatalf("driver %s has a nil handle", name)
		}
	}

	// Mixed-case lookups should succeed too.
	s, err := New("NuLL")
	if err != nil {
		t.Fatalf("failed to create driver with mixed-case name: %s", err)
	}
	if s.GetName() != "null" {
		t.Fatalf("mixed-case lookup returned the wrong driver %s", s.GetName())
	}

	// A bogus driver should fail.
	_, err = New("does-not-exist")
	if err == nil {
		t.Fatalf("expected an error looking up a bogus driver, got none")
	}
}

// TestGetDrivers ensures the test-only driver is hidden from the list
// we show to users.
func TestGetDrivers(t *testing.T) {

	found := GetDrivers()

	seen := make(map[string]bool)
	for _, name := range found {
		seen[name] = true
	}

	for _, expected := range []string{"null", "ansi", "termbox"} {
		if !seen[expected] {
			t.Fatalf("driver %s missing from GetDrivers", expected)
		}
	}
	if seen["recorder"] {
		t.Fatalf("test-only driver should be hidden from GetDrivers")
	}
}

// TestPixelSet confirms the MSB-first addressing of the display
// buffer.
func TestPixelSet(t *testing.T) {

	var buffer [256]uint8

	// 0x80 in the first byte of row zero is pixel (0,0).
	buffer[0] = 0x80
	if !pixelSet(&buffer, 0, 0) {
		t.Fatalf("pixel (0,0) should be lit")
	}
	if pixelSet(&buffer, 1, 0) {
		t.Fatalf("pixel (1,0) should be dark")
	}

	// 0x01 in the last byte of the last row is pixel (63,31).
	buffer[255] = 0x01
	if !pixelSet(&buffer, 63, 31) {
		t.Fatalf("pixel (63,31) should be lit")
	}
	if pixelSet(&buffer, 62, 31) {
		t.Fatalf("pixel (62,31) should be dark")
	}
}

// TestRecorder ensures the recording driver stores the frames it is
// given.
func TestRecorder(t *testing.T) {

	s, err := New("recorder")
	if err != nil {
		t.Fatalf("failed to create recorder driver: %s", err)
	}

	rec, ok := s.GetDriver().(Recorder)
	if !ok {
		t.Fatalf("recorder driver does not implement Recorder")
	}

	if rec.GetFrameCount() != 0 {
		t.Fatalf("a fresh recorder should have zero frames")
	}

	var frame [256]uint8
	frame[10] = 0xAA

	if err := s.GetDriver().Draw(&frame); err != nil {
		t.Fatalf("failed to draw: %s", err)
	}
	frame[10] = 0x55
	if err := s.GetDriver().Draw(&frame); err != nil {
		t.Fatalf("failed to draw: %s", err)
	}

	if rec.GetFrameCount() != 2 {
		t.Fatalf("expected 2 frames, got %d", rec.GetFrameCount())
	}
	got := rec.GetFrame()
	if got[10] != 0x55 {
		t.Fatalf("the saved frame should be the most recent one, got %02X", got[10])
	}

	rec.Reset()
	if rec.GetFrameCount() != 0 {
		t.Fatalf("reset should discard the frame history")
	}
	got = rec.GetFrame()
	if got[10] != 0x00 {
		t.Fatalf("reset should discard the frame contents")
	}
}

// TestAnsiDraw renders a single pixel and confirms the escape
// sequence output looks sane.
func TestAnsiDraw(t *testing.T) {

	s, err := New("ansi")
	if err != nil {
		t.Fatalf("failed to create ansi driver: %s", err)
	}

	drv, ok := s.GetDriver().(*AnsiScreenDriver)
	if !ok {
		t.Fatalf("wrong driver type")
	}

	var out strings.Builder
	drv.SetWriter(&out)

	if err := drv.Setup(); err != nil {
		t.Fatalf("setup failed: %s", err)
	}
	if !strings.Contains(out.String(), "\x1b[2J") {
		t.Fatalf("setup should clear the terminal")
	}
	out.Reset()

	// A frame with the top-left pixel lit.
	var frame [256]uint8
	frame[0] = 0x80

	if err := drv.Draw(&frame); err != nil {
		t.Fatalf("draw failed: %s", err)
	}

	text := out.String()
	if !strings.HasPrefix(text, "\x1b[H") {
		t.Fatalf("draw should home the cursor before rendering")
	}
	if !strings.Contains(text, "██") {
		t.Fatalf("the lit pixel should render as a block")
	}
	if strings.Count(text, "\r\n") != Rows {
		t.Fatalf("expected %d rendered rows, got %d", Rows, strings.Count(text, "\r\n"))
	}

	// Every row is 64 pixels at two cells each.
	first := strings.Split(text, "\r\n")[0]
	first = strings.TrimPrefix(first, "\x1b[H")
	if len([]rune(first)) != Columns*2 {
		t.Fatalf("expected %d cells in the first row, got %d", Columns*2, len([]rune(first)))
	}

	out.Reset()
	if err := drv.TearDown(); err != nil {
		t.Fatalf("teardown failed: %s", err)
	}
	if !strings.Contains(out.String(), "\x1b[?25h") {
		t.Fatalf("teardown should restore the cursor")
	}
}
