//go:build rp2040

package main

import (
	"machine"

	"picoblink/core"
)

// rpGPIODriver drives plain RP2040 GPIOs through machine.Pin.
type rpGPIODriver struct {
	configured map[core.GPIOPin]machine.Pin
}

func newRPGPIODriver() *rpGPIODriver {
	return &rpGPIODriver{configured: make(map[core.GPIOPin]machine.Pin)}
}

// ConfigureOutput makes pin a push-pull output. Configuring twice is fine.
func (d *rpGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if _, ok := d.configured[pin]; ok {
		return nil
	}
	// RP2040 has GPIO0-GPIO29
	if pin > 29 {
		return core.ErrPinUnavailable
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.configured[pin] = p
	return nil
}

func (d *rpGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	p, ok := d.configured[pin]
	if !ok {
		return core.ErrPinUnavailable
	}
	p.Set(value)
	return nil
}

func (d *rpGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	p, ok := d.configured[pin]
	if !ok {
		return false, core.ErrPinUnavailable
	}
	return p.Get(), nil
}
