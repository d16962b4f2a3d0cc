//go:build !tinygo

package main

import (
	"fmt"
	"io"
	"sync"

	"picoblink/core"
)

// consoleDriver stands in for GPIO on machines without it. It prints a line
// whenever a configured pin changes level.
type consoleDriver struct {
	mu     sync.Mutex
	w      io.Writer
	levels map[core.GPIOPin]bool
	known  map[core.GPIOPin]bool
}

func newConsoleDriver(w io.Writer) *consoleDriver {
	return &consoleDriver{
		w:      w,
		levels: make(map[core.GPIOPin]bool),
		known:  make(map[core.GPIOPin]bool),
	}
}

func (d *consoleDriver) ConfigureOutput(pin core.GPIOPin) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.levels[pin]; !ok {
		d.levels[pin] = false
	}
	return nil
}

func (d *consoleDriver) SetPin(pin core.GPIOPin, value bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev, ok := d.levels[pin]
	if !ok {
		return core.ErrPinUnavailable
	}
	d.levels[pin] = value
	if prev != value || !d.known[pin] {
		d.known[pin] = true
		fmt.Fprintf(d.w, "GPIO%d -> %s\n", pin, core.Level(value))
	}
	return nil
}

func (d *consoleDriver) GetPin(pin core.GPIOPin) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.levels[pin]
	if !ok {
		return false, core.ErrPinUnavailable
	}
	return v, nil
}
