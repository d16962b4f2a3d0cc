//go:build rp2040

package pio

import (
	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// The timer's interrupt is wired to PIO0's IRQ line 0, so only PIO0's four
// state machines are candidates.
const stateMachines = 4

var (
	allocations = [stateMachines]bool{}
	nextSM      = uint8(0)
)

// allocateStateMachine claims a free PIO0 state machine, round-robin.
// Returns (smNum, ok).
func allocateStateMachine() (uint8, bool) {
	for i := 0; i < stateMachines; i++ {
		smNum := nextSM
		nextSM = (nextSM + 1) % stateMachines

		if allocations[smNum] {
			continue
		}
		// Another user (a driver outside this package) may hold it already
		if !rp2pio.PIO0.StateMachine(smNum).TryClaim() {
			continue
		}
		allocations[smNum] = true
		return smNum, true
	}
	return 0, false
}
