//go:build rp2040 && uarttrace

package main

import (
	"github.com/jangala-dev/tinygo-uartx/uartx"
)

var traceUART = uartx.UART1

// openTraceSink sends trace output to UART1 on its default pins.
func openTraceSink() func([]byte) {
	if err := traceUART.Configure(uartx.UARTConfig{
		BaudRate: traceBaud,
		TX:       uartx.UART1_TX_PIN,
		RX:       uartx.UART1_RX_PIN,
	}); err != nil {
		return func([]byte) {}
	}
	return func(b []byte) {
		_, _ = traceUART.Write(b)
	}
}
