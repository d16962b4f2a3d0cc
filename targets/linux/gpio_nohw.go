//go:build !linux && !tinygo

package main

import (
	"errors"

	"picoblink/boards"
	"picoblink/core"
)

var errNoGPIO = errors.New("no GPIO support on this platform, use -dry-run")

func newHardwareDriver(boards.Board) (core.GPIODriver, error) {
	return nil, errNoGPIO
}
