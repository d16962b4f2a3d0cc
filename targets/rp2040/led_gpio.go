//go:build rp2040 && !ws2812led

package main

import "picoblink/core"

func newLEDDriver() (core.GPIODriver, error) {
	return newRPGPIODriver(), nil
}
