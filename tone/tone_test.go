package tone

import (
	"strings"
	"testing"
	"time"
)

// TestFactory ensures each registered driver can be constructed, and
// returns the name it was registered under.
//
// The beep driver is deliberately absent here, since constructing is
// fine but we can't exercise Setup without an audio device.
func TestFactory(t *testing.T) {

	for _, name := range []string{"null", "bell", "beep", "logger"} {
		tn, err := New(name)
		if err != nil {
			t.Fatalf("failed to create tone driver %s: %s", name, err)
		}
		if tn.GetName() != name {
			t.Fatalf("driver %s reported the wrong name %s", name, tn.GetName())
		}
		if tn.GetDriver() == nil {
			t.Fatalf("driver %s has a nil handle", name)
		}
	}

	// Mixed-case lookups should succeed too.
	tn, err := New("Bell")
	if err != nil {
		t.Fatalf("failed to create driver with mixed-case name: %s", err)
	}
	if tn.GetName() != "bell" {
		t.Fatalf("mixed-case lookup returned the wrong driver %s", tn.GetName())
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

	for _, expected := range []string{"null", "bell", "beep"} {
		if !seen[expected] {
			t.Fatalf("driver %s missing from GetDrivers", expected)
		}
	}
	if seen["logger"] {
		t.Fatalf("test-only driver should be hidden from GetDrivers")
	}
}

// TestNullDriver confirms the null driver tracks sounding state.
func TestNullDriver(t *testing.T) {

	tn, err := New("null")
	if err != nil {
		t.Fatalf("failed to create null driver: %s", err)
	}
	drv := tn.GetDriver()

	if err := drv.Setup(); err != nil {
		t.Fatalf("setup failed: %s", err)
	}
	if drv.IsSounding() {
		t.Fatalf("a fresh driver should be silent")
	}
	if err := drv.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}
	if !drv.IsSounding() {
		t.Fatalf("the tone should sound after Start")
	}
	if err := drv.Stop(); err != nil {
		t.Fatalf("stop failed: %s", err)
	}
	if drv.IsSounding() {
		t.Fatalf("the tone should be silent after Stop")
	}
	if err := drv.TearDown(); err != nil {
		t.Fatalf("teardown failed: %s", err)
	}
}

// TestLoggerDriver confirms transitions are recorded once each, no
// matter how often the emulator reconciles the state.
func TestLoggerDriver(t *testing.T) {

	tn, err := New("logger")
	if err != nil {
		t.Fatalf("failed to create logger driver: %s", err)
	}

	drv, ok := tn.GetDriver().(*LoggerToneDriver)
	if !ok {
		t.Fatalf("wrong driver type")
	}

	// Repeated calls collapse into single transitions.
	drv.Start()
	drv.Start()
	drv.Stop()
	drv.Stop()
	drv.Start()

	events := drv.GetEvents()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %v", len(events), events)
	}
	expected := []string{"start", "stop", "start"}
	for i, ev := range expected {
		if events[i] != ev {
			t.Fatalf("event %d should be %s, got %s", i, ev, events[i])
		}
	}

	drv.Reset()
	if len(drv.GetEvents()) != 0 {
		t.Fatalf("reset should discard the event history")
	}
	if drv.IsSounding() {
		t.Fatalf("reset should silence the tone")
	}
}

// TestBellDriver confirms the bell driver writes a bell character,
// and rate-limits repeats.
func TestBellDriver(t *testing.T) {

	tn, err := New("bell")
	if err != nil {
		t.Fatalf("failed to create bell driver: %s", err)
	}

	drv, ok := tn.GetDriver().(*BellToneDriver)
	if !ok {
		t.Fatalf("wrong driver type")
	}

	var out strings.Builder
	drv.SetWriter(&out)

	if err := drv.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}
	if out.String() != "\a" {
		t.Fatalf("expected a bell character, got %q", out.String())
	}
	if !drv.IsSounding() {
		t.Fatalf("the tone should sound after Start")
	}

	// A second Start within the rate-limit window rings nothing.
	if err := drv.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}
	if out.String() != "\a" {
		t.Fatalf("the bell should be rate-limited, got %q", out.String())
	}

	// Once the window has passed it rings again.
	drv.lastBell = time.Now().Add(-2 * time.Second)
	if err := drv.Start(); err != nil {
		t.Fatalf("start failed: %s", err)
	}
	if out.String() != "\a\a" {
		t.Fatalf("the bell should ring again, got %q", out.String())
	}

	if err := drv.Stop(); err != nil {
		t.Fatalf("stop failed: %s", err)
	}
	if drv.IsSounding() {
		t.Fatalf("the tone should be silent after Stop")
	}
}

// TestSquareWave confirms the synthesized wave is a plausible square
// wave: both polarities present, within the configured volume.
func TestSquareWave(t *testing.T) {

	var s squareWave

	samples := make([][2]float64, 512)
	n, ok := s.Stream(samples)
	if !ok || n != len(samples) {
		t.Fatalf("the stream should fill the whole buffer")
	}

	high := 0
	low := 0
	for _, sample := range samples {
		if sample[0] != sample[1] {
			t.Fatalf("the wave should be identical in both channels")
		}
		switch sample[0] {
		case toneVolume:
			high++
		case -toneVolume:
			low++
		default:
			t.Fatalf("unexpected sample value %f", sample[0])
		}
	}
	if high == 0 || low == 0 {
		t.Fatalf("both polarities should appear, got %d high %d low", high, low)
	}

	if s.Err() != nil {
		t.Fatalf("the stream can't fail, but reported %s", s.Err())
	}
}
