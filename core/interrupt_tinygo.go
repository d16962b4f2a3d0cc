//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts while a timer is being programmed, so a
// half-configured peripheral can never fire into a missing handler.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the mask saved by disableInterrupts
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
