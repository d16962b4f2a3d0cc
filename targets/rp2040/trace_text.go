//go:build rp2040 && !framedtrace

package main

import "picoblink/core"

func newDebugWriter(write func([]byte)) core.DebugWriter {
	return func(line string) {
		write([]byte(line))
		write([]byte("\r\n"))
	}
}
