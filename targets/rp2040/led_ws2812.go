//go:build rp2040 && ws2812led

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"

	"picoblink/core"
)

// ledColor is what "asserted" looks like on the status LED.
var ledColor = color.RGBA{R: 0, G: 32, B: 0}

// ws2812Driver presents a single addressable LED as an output pin: assert
// shows ledColor, deassert turns it off.
type ws2812Driver struct {
	pin    core.GPIOPin
	dev    ws2812.Device
	ready  bool
	lit    bool
	colors [1]color.RGBA
}

func newLEDDriver() (core.GPIODriver, error) {
	return &ws2812Driver{}, nil
}

func (d *ws2812Driver) ConfigureOutput(pin core.GPIOPin) error {
	if d.ready {
		if pin != d.pin {
			return core.ErrPinUnavailable
		}
		return nil
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.dev = ws2812.New(p)
	d.pin = pin
	d.ready = true
	return nil
}

// SetPin rewrites the LED on every call, like a GPIO write. The bitbanged
// transfer runs with interrupts masked for ~30us per LED.
func (d *ws2812Driver) SetPin(pin core.GPIOPin, value bool) error {
	if !d.ready || pin != d.pin {
		return core.ErrPinUnavailable
	}
	d.colors[0] = color.RGBA{}
	if value {
		d.colors[0] = ledColor
	}
	d.lit = value
	return d.dev.WriteColors(d.colors[:])
}

func (d *ws2812Driver) GetPin(pin core.GPIOPin) (bool, error) {
	if !d.ready || pin != d.pin {
		return false, core.ErrPinUnavailable
	}
	return d.lit, nil
}
