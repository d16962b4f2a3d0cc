//go:build rp2040 && framedtrace

package main

import (
	"picoblink/core"
	"picoblink/protocol"
)

func newDebugWriter(write func([]byte)) core.DebugWriter {
	return protocol.NewTraceEncoder(write).WriteLine
}
