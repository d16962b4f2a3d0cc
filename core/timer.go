package core

import (
	"math/bits"
	"time"
)

// ClockSource selects the clock feed a Timer Source counts.
type ClockSource uint8

const (
	// ClockProcessor counts the core clock.
	ClockProcessor ClockSource = iota
	// ClockReference counts the external reference feed. On RP2040 this is
	// the watchdog tick, 1 MHz once the runtime has started it.
	ClockReference
	// ClockPIO counts PIO state machine cycles (sysclk through a divider).
	ClockPIO
)

func (c ClockSource) String() string {
	switch c {
	case ClockProcessor:
		return "processor"
	case ClockReference:
		return "reference"
	case ClockPIO:
		return "pio"
	default:
		return "unknown"
	}
}

// TimerConfig is the configuration-time choice of feed and period.
type TimerConfig struct {
	Source ClockSource
	Reload uint32 // clock ticks per period
}

// TimerDriver is the periodic countdown peripheral behind a Timer Source.
// Platform code provides the implementation; core only sequences it.
type TimerDriver interface {
	// Supports reports whether the driver can count the given feed
	Supports(source ClockSource) bool

	// MaxReload is the largest reload value the counter can hold
	MaxReload() uint32

	// SetHandler registers the function run on every expiry
	SetHandler(handler func())

	// Configure selects the feed and programs the reload value
	Configure(source ClockSource, reload uint32) error

	// ClearCount resets the running count
	ClearCount()

	// EnableCounting starts the free-running counter
	EnableCounting()

	// EnableInterrupt enables the expiry interrupt
	EnableInterrupt()
}

// Validate checks cfg against what driver can do.
func (cfg TimerConfig) Validate(driver TimerDriver) error {
	if !driver.Supports(cfg.Source) {
		return ErrUnsupportedClock
	}
	if cfg.Reload == 0 {
		return ErrZeroReload
	}
	if cfg.Reload > driver.MaxReload() {
		return ErrReloadTooLarge
	}
	return nil
}

// armed tracks drivers that already went through Arm.
var armed = make(map[TimerDriver]bool)

// Arm programs driver for free-running periodic interrupts and registers
// handler. Call it exactly once at startup, after the selected clock feed is
// running. From then on handler runs in interrupt context on every expiry.
func Arm(driver TimerDriver, cfg TimerConfig, handler func()) error {
	if err := cfg.Validate(driver); err != nil {
		return err
	}

	state := disableInterrupts()
	defer restoreInterrupts(state)

	if armed[driver] {
		return ErrTimerArmed
	}

	driver.SetHandler(handler)
	if err := driver.Configure(cfg.Source, cfg.Reload); err != nil {
		return err
	}
	driver.ClearCount()
	driver.EnableCounting()
	driver.EnableInterrupt()

	armed[driver] = true
	return nil
}

// ReloadFromTenMs converts a SysTick calibration value (ticks per 10ms) into
// the reload for period. A 500ms period gives tenms*50.
// Results that do not fit in 32 bits saturate, so Validate rejects them with
// ErrReloadTooLarge.
func ReloadFromTenMs(tenms uint32, period time.Duration) uint32 {
	if period <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(tenms), uint64(period/(10*time.Millisecond)))
	return saturate(hi, lo)
}

// ReloadFromCalibration is ReloadFromTenMs for a calibration register that
// may read zero ("not known"). In that case the reload is computed from the
// nominal reference rate refHz instead.
func ReloadFromCalibration(tenms uint32, period time.Duration, refHz uint32) uint32 {
	if tenms == 0 {
		return ReloadFor(period, refHz)
	}
	return ReloadFromTenMs(tenms, period)
}

// ReloadFor converts a period into ticks of a clock running at clockHz,
// saturating like ReloadFromTenMs.
func ReloadFor(period time.Duration, clockHz uint32) uint32 {
	if period <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(period), uint64(clockHz))
	if hi >= uint64(time.Second) {
		return ^uint32(0)
	}
	q, _ := bits.Div64(hi, lo, uint64(time.Second))
	return saturate(0, q)
}

func saturate(hi, lo uint64) uint32 {
	if hi != 0 || lo > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(lo)
}
