//go:build rp2040 && piotimer

package main

import (
	"machine"

	"picoblink/core"
	"picoblink/targets/pio"
)

func newTickSource() (core.TimerDriver, core.TimerConfig) {
	hz := machine.CPUFrequency()
	trace.Println("pio timer at " + core.Utoa(hz) + " Hz")

	return pio.NewTimer(), core.TimerConfig{
		Source: core.ClockPIO,
		Reload: core.ReloadFor(blinkPeriod, hz),
	}
}
