//go:build rp2040 && !uarttrace

package main

import "machine"

// openTraceSink returns a writer for the USB CDC serial port TinyGo sets up
// on the Pico. Writes while no host is attached are dropped.
func openTraceSink() func([]byte) {
	_ = machine.Serial.Configure(machine.UARTConfig{})
	return func(b []byte) {
		_, _ = machine.Serial.Write(b)
	}
}
