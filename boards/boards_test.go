package boards

import (
	"errors"
	"testing"
	"time"

	"picoblink/core"
)

func TestBuiltinTableLoads(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("built-in board table is empty")
	}
	for _, b := range all {
		if err := b.Validate(); err != nil {
			t.Errorf("board %s invalid: %v", b.Name, err)
		}
	}
	t.Logf("boards: %v", all.Names())
}

func TestPicoProfile(t *testing.T) {
	b, err := All().Find("PICO")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if b.LED.Pin != 25 || b.LED.Kind != "gpio" {
		t.Errorf("unexpected LED %+v", b.LED)
	}

	cfg, err := b.TimerConfig()
	if err != nil {
		t.Fatalf("TimerConfig failed: %v", err)
	}
	if cfg.Source != core.ClockReference || cfg.Reload != 500000 {
		t.Errorf("Expected reference/500000, got %v/%d", cfg.Source, cfg.Reload)
	}
	if b.LED.GPIOName != "GPIO25" {
		t.Errorf("Expected default GPIO name GPIO25, got %q", b.LED.GPIOName)
	}
}

func TestActiveLowProfile(t *testing.T) {
	b, err := All().Find("rpi-activelow")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	cc := b.ControllerConfig()
	if !cc.ActiveLow || cc.Pin != 27 {
		t.Errorf("unexpected controller config %+v", cc)
	}
	if b.Timer.Period != 250*time.Millisecond {
		t.Errorf("Expected 250ms period, got %v", b.Timer.Period)
	}
}

func TestFindUnknown(t *testing.T) {
	_, err := All().Find("nope")
	if !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("Expected ErrBoardNotFound, got %v", err)
	}
}

func TestParseDefaults(t *testing.T) {
	bs, err := Parse([]byte(`
boards:
  - name: minimal
    led: {pin: 4}
    timer: {clockHz: 1000}
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	b := bs[0]
	if b.LED.Kind != "gpio" || b.Timer.Source != "reference" || b.Trace.Format != "text" {
		t.Errorf("defaults not applied: %+v", b)
	}
	if b.Timer.Period != 500*time.Millisecond {
		t.Errorf("Expected default 500ms period, got %v", b.Timer.Period)
	}
	if b.Trace.Baud != 115200 {
		t.Errorf("Expected default baud 115200, got %d", b.Trace.Baud)
	}
}

func TestParseRejectsBadProfiles(t *testing.T) {
	testCases := map[string]string{
		"kind":   "boards:\n  - {name: a, led: {pin: 1, kind: lamp}, timer: {clockHz: 1}}\n",
		"source": "boards:\n  - {name: a, led: {pin: 1}, timer: {source: rtc, clockHz: 1}}\n",
		"clock":  "boards:\n  - {name: a, led: {pin: 1}}\n",
		"format": "boards:\n  - {name: a, led: {pin: 1}, timer: {clockHz: 1}, trace: {format: json}}\n",
		"name":   "boards:\n  - {led: {pin: 1}, timer: {clockHz: 1}}\n",
	}
	for name, doc := range testCases {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalidBoard) {
			t.Errorf("%s: expected ErrInvalidBoard, got %v", name, err)
		}
	}

	if _, err := Parse([]byte("boards: [")); err == nil {
		t.Error("Expected a YAML syntax error")
	}
}
