//go:build linux && !tinygo

package main

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"picoblink/boards"
	"picoblink/core"
)

// periphDriver drives header pins through periph.io. Pins are looked up by
// the names the board profile gives them.
type periphDriver struct {
	names map[core.GPIOPin]string
	pins  map[core.GPIOPin]gpio.PinIO
}

func newHardwareDriver(board boards.Board) (core.GPIODriver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	return &periphDriver{
		names: map[core.GPIOPin]string{core.GPIOPin(board.LED.Pin): board.LED.GPIOName},
		pins:  make(map[core.GPIOPin]gpio.PinIO),
	}, nil
}

func (d *periphDriver) ConfigureOutput(pin core.GPIOPin) error {
	if _, ok := d.pins[pin]; ok {
		return nil
	}
	name, ok := d.names[pin]
	if !ok {
		name = fmt.Sprintf("GPIO%d", pin)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return fmt.Errorf("%w: %s", core.ErrPinUnavailable, name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	d.pins[pin] = p
	return nil
}

func (d *periphDriver) SetPin(pin core.GPIOPin, value bool) error {
	p, ok := d.pins[pin]
	if !ok {
		return core.ErrPinUnavailable
	}
	return p.Out(gpio.Level(value))
}

func (d *periphDriver) GetPin(pin core.GPIOPin) (bool, error) {
	p, ok := d.pins[pin]
	if !ok {
		return false, core.ErrPinUnavailable
	}
	return p.Read() == gpio.High, nil
}
