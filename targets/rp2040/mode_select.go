//go:build rp2040

package main

import (
	"time"

	"picoblink/core"
)

// Compile-time board settings. Alternate builds are picked with tags:
//
//	ws2812led    drive an addressable status LED instead of a plain GPIO
//	uarttrace    send trace lines to UART1 instead of USB CDC
//	framedtrace  wrap trace lines in sequenced, CRC-checked blocks
//	piotimer     tick from a PIO state machine instead of SysTick
//
// The defaults match the "pico" profile in the host monitor's board table
// (boards/boards.yaml): the on-board LED on GP25. For the GP22 bring-up
// wiring set ledPin to 22 and monitor with -board pico-gp22 (add the
// framedtrace tag, which that profile expects).
const (
	ledPin       = core.GPIOPin(25)
	ledActiveLow = false
	blinkPeriod  = 500 * time.Millisecond

	traceBaud = 115200
)

// Set loopDriven to blink from the main loop with a plain delay and no timer
// interrupt at all.
const loopDriven = false

func controllerConfig() core.ControllerConfig {
	return core.ControllerConfig{Pin: ledPin, ActiveLow: ledActiveLow}
}
