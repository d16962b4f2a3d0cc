package core

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const ledPin = GPIOPin(25)

func newTestController(activeLow bool) (*Controller, *MockGPIODriver, *lineRecorder) {
	gpio := NewMockGPIODriver()
	_ = gpio.ConfigureOutput(ledPin)
	rec := &lineRecorder{}
	c := NewController(NewDesiredLevel(High), gpio, NewTrace(rec.write), ControllerConfig{
		Pin:       ledPin,
		ActiveLow: activeLow,
	})
	return c, gpio, rec
}

func TestDriveAssertsInitialLevel(t *testing.T) {
	c, gpio, _ := newTestController(false)
	c.Drive()
	if !gpio.level(ledPin) {
		t.Error("Expected pin asserted at start")
	}
}

func TestDriveIsIdempotent(t *testing.T) {
	c, gpio, _ := newTestController(false)
	for i := 0; i < 100; i++ {
		c.Drive()
	}
	writes, transitions := gpio.counts()
	if writes != 100 {
		t.Errorf("Expected a write every iteration (100), got %d", writes)
	}
	if transitions != 1 {
		t.Errorf("Expected a single transition, got %d", transitions)
	}
}

func TestNoTickKeepsPinAsserted(t *testing.T) {
	c, gpio, rec := newTestController(false)
	for i := 0; i < 1000; i++ {
		c.Drive()
		c.trace.Flush()
	}
	if !gpio.level(ledPin) {
		t.Error("pin left asserted state without a tick")
	}
	if len(rec.snapshot()) != 0 {
		t.Errorf("unexpected trace output %v", rec.snapshot())
	}
}

// 500ms period, starting HIGH: asserted at t=0, deasserted after tick 1,
// asserted again after tick 2.
func TestHalfSecondScenario(t *testing.T) {
	c, gpio, rec := newTestController(false)

	steps := []struct {
		at   time.Duration
		tick bool
		want bool
	}{
		{0, false, true},
		{500 * time.Millisecond, true, false},
		{1000 * time.Millisecond, true, true},
		{1500 * time.Millisecond, true, false},
	}

	for _, s := range steps {
		if s.tick {
			c.OnTick()
		}
		c.Drive()
		c.trace.Flush()
		if got := gpio.level(ledPin); got != s.want {
			t.Errorf("t=%v: expected pin %v, got %v", s.at, s.want, got)
		}
	}

	if got := len(rec.snapshot()); got != 3 {
		t.Errorf("Expected 3 Tick! lines, got %d", got)
	}
}

func TestOnTickDoesNotTouchPin(t *testing.T) {
	c, gpio, _ := newTestController(false)
	c.OnTick()
	c.OnTick()
	c.OnTick()
	if writes, _ := gpio.counts(); writes != 0 {
		t.Errorf("tick handler wrote the pin %d times", writes)
	}
	if c.Level().Load() != Low {
		t.Errorf("Expected LOW after 3 ticks, got %v", c.Level().Load())
	}
}

func TestActiveLowInvertsPin(t *testing.T) {
	c, gpio, _ := newTestController(true)
	c.Drive()
	if gpio.level(ledPin) {
		t.Error("active-low LED should be driven low when asserted")
	}
	c.OnTick()
	c.Drive()
	if !gpio.level(ledPin) {
		t.Error("active-low LED should be driven high when deasserted")
	}
}

func TestDriveIgnoresWriteErrors(t *testing.T) {
	c, gpio, _ := newTestController(false)
	gpio.failWrites = true
	c.Drive()
	c.Drive()
	if writes, _ := gpio.counts(); writes != 2 {
		t.Errorf("Expected writes to keep being issued, got %d", writes)
	}
}

func TestLoopDrivenStep(t *testing.T) {
	c, gpio, rec := newTestController(false)
	waits := 0
	wait := func() { waits++ }

	c.StepLoopDriven(wait)
	if !gpio.level(ledPin) {
		t.Error("first step should drive the initial HIGH")
	}
	if c.Level().Load() != Low {
		t.Error("loop should flip the level after waiting")
	}

	c.StepLoopDriven(wait)
	if gpio.level(ledPin) {
		t.Error("second step should drive LOW")
	}
	if waits != 2 {
		t.Errorf("Expected 2 waits, got %d", waits)
	}
	if got := len(rec.snapshot()); got != 2 {
		t.Errorf("Expected 2 Tick! lines, got %d", got)
	}
}

// The soft timer's goroutine acts as the interrupt context while the test
// goroutine runs the polling loop.
func TestInterruptDrivenBlink(t *testing.T) {
	c, gpio, rec := newTestController(false)

	st := NewSoftTimer(1000000, 0)
	if err := Arm(st, TimerConfig{Source: ClockReference, Reload: 1000}, c.OnTick); err != nil {
		t.Fatalf("Arm failed: %v", err)
	}

	var stop atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for !stop.Load() {
			c.Drive()
			c.trace.Flush()
		}
	}()

	waitFor(t, func() bool {
		_, transitions := gpio.counts()
		return transitions >= 4
	})
	st.Stop()
	stop.Store(true)
	wg.Wait()

	// After the timer stops, one more drive must agree with the parity of
	// delivered ticks.
	c.Drive()
	c.trace.Flush()
	ticks := 0
	for _, l := range rec.snapshot() {
		if l == "Tick!" {
			ticks++
		}
	}
	ticks += int(c.trace.Dropped())
	want := ticks%2 == 0
	if got := gpio.level(ledPin); got != want {
		t.Errorf("after %d ticks expected pin %v, got %v", ticks, want, got)
	}
}
