//go:build rp2040 && !piotimer

package main

import (
	"machine"

	"picoblink/core"
)

// referenceHz is the watchdog tick rate the runtime programs for the RP2040
// reference feed.
const referenceHz = 1000000

func newTickSource() (core.TimerDriver, core.TimerConfig) {
	tenms, noref := sysTickCalibration()
	if noref {
		trace.Println("systick: no reference clock, counting sysclk")
		return sysTickDriver{}, core.TimerConfig{
			Source: core.ClockProcessor,
			Reload: core.ReloadFor(blinkPeriod, machine.CPUFrequency()),
		}
	}
	trace.Println(core.Utoa(tenms) + " ticks per 10ms (times 50 modifier applied)")

	return sysTickDriver{}, core.TimerConfig{
		Source: core.ClockReference,
		Reload: core.ReloadFromCalibration(tenms, blinkPeriod, referenceHz),
	}
}
