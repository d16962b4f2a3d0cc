//go:build rp2040

package main

import (
	"time"

	"picoblink/core"
)

var (
	trace      *core.Trace
	controller *core.Controller
)

func main() {
	out := openTraceSink()
	trace = core.NewTrace(newDebugWriter(out))
	trace.Println(core.TraceHello.String())

	gpio, err := newLEDDriver()
	if err == nil {
		err = gpio.ConfigureOutput(ledPin)
	}
	if err != nil {
		halt("led: " + err.Error())
	}

	controller = core.NewController(core.NewDesiredLevel(core.High), gpio, trace, controllerConfig())

	if loopDriven {
		controller.RunLoopDriven(func() { time.Sleep(blinkPeriod) })
	}

	driver, cfg := newTickSource()
	if err := core.Arm(driver, cfg, controller.OnTick); err != nil {
		halt("arm: " + err.Error())
	}

	controller.Run()
}

// halt reports a fatal startup error and parks the core. The LED is left as
// it is.
func halt(reason string) {
	if trace != nil {
		trace.Println("halt: " + reason)
	}
	for {
		time.Sleep(time.Second)
	}
}
