// Package serial opens the port a board streams its trace lines on.
package serial

import (
	"io"
	"time"
)

// Port is the byte stream a board writes trace output to. The monitor only
// reads, but the port stays writable so callers can poke a reset line.
type Port interface {
	io.ReadWriteCloser

	// Flush discards anything buffered on the host side
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud only matters for UART sinks; USB CDC ignores it
	Baud int

	// ReadTimeout bounds a single Read; 0 blocks
	ReadTimeout time.Duration
}

// DefaultConfig returns the settings the firmware's UART sink uses.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100 * time.Millisecond,
	}
}
