//go:build rp2040

// Package pio provides a PIO state machine as a periodic tick source. The
// state machine counts PIO clock cycles and raises PIO0 IRQ 0 once per
// period, independent of the CPU.
package pio

import (
	"device/rp"
	"errors"
	"runtime/interrupt"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"picoblink/core"
)

var ErrNoStateMachine = errors.New("no_free_state_machine")

// Cycles per period spent outside the countdown loop: pull, out, irq, and
// the final jmp that falls through.
const loopOverhead = 4

// buildTimerProgram creates the countdown program. X holds the period and
// is refilled into Y on every pass: a non-blocking pull on an empty FIFO
// copies X into the OSR.
func buildTimerProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		asm.Pull(false, true).Encode(),        // 0: pull block
		asm.Out(rp2pio.OutDestX, 32).Encode(), // 1: out x, 32 (period)
		// .wrap_target
		asm.Pull(false, false).Encode(),       // 2: pull noblock (OSR = X)
		asm.Out(rp2pio.OutDestY, 32).Encode(), // 3: out y, 32
		// count:
		asm.Jmp(4, rp2pio.JmpYNZeroDec).Encode(), // 4: jmp y--, 4
		asm.IRQSet(false, 0).Encode(),            // 5: irq nowait 0
		// .wrap
	}
}

const (
	timerPIOOrigin = -1
	timerWrapStart = 2
	irqFlag        = 0
)

var (
	// Only one PIO timer exists per image; the IRQ handler reaches it here.
	active   *Timer
	pioIRQ   interrupt.Interrupt
	irqWired bool
	irqMask  = uint32(1) << irqFlag
)

// Timer is a core.TimerDriver backed by a PIO0 state machine clocked from
// the system clock.
type Timer struct {
	sm      rp2pio.StateMachine
	smNum   uint8
	offset  uint8
	handler func()
	claimed bool
}

// NewTimer returns an unconfigured PIO timer. The state machine is claimed
// in Configure.
func NewTimer() *Timer {
	return &Timer{}
}

func (t *Timer) Supports(source core.ClockSource) bool {
	return source == core.ClockPIO
}

func (t *Timer) MaxReload() uint32 { return ^uint32(0) }

func (t *Timer) SetHandler(handler func()) { t.handler = handler }

func (t *Timer) Configure(source core.ClockSource, reload uint32) error {
	if source != core.ClockPIO {
		return core.ErrUnsupportedClock
	}
	if reload <= loopOverhead {
		// Too short to express with this program
		return core.ErrZeroReload
	}

	if !t.claimed {
		smNum, ok := allocateStateMachine()
		if !ok {
			return ErrNoStateMachine
		}
		t.smNum = smNum
		t.sm = rp2pio.PIO0.StateMachine(smNum)
		t.claimed = true
	}

	program := buildTimerProgram()
	offset, err := rp2pio.PIO0.AddProgram(program, timerPIOOrigin)
	if err != nil {
		return err
	}
	t.offset = offset

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetWrap(offset+uint8(len(program))-1, offset+timerWrapStart)
	cfg.SetOutShift(true, false, 32)
	// One PIO cycle per system clock cycle
	cfg.SetClkDivIntFrac(1, 0)

	t.sm.Init(offset, cfg)
	t.sm.TxPut(reload - loopOverhead)
	return nil
}

// ClearCount restarts the state machine's internal state. The program then
// begins again from its blocking pull, so the count starts from a full
// period.
func (t *Timer) ClearCount() {
	t.sm.Restart()
}

func (t *Timer) EnableCounting() {
	t.sm.SetEnabled(true)
}

// EnableInterrupt routes IRQ flag 0 to the PIO0_IRQ_0 line.
func (t *Timer) EnableInterrupt() {
	active = t
	rp.PIO0.IRQ.Set(irqMask)
	rp.PIO0.IRQ0_INTE.SetBits(irqMask << 8)
	if !irqWired {
		pioIRQ = interrupt.New(rp.IRQ_PIO0_IRQ_0, handlePIOIRQ)
		irqWired = true
	}
	pioIRQ.Enable()
}

func handlePIOIRQ(interrupt.Interrupt) {
	if rp.PIO0.IRQ.Get()&irqMask == 0 {
		return
	}
	// Write one to clear
	rp.PIO0.IRQ.Set(irqMask)
	if active != nil && active.handler != nil {
		active.handler()
	}
}
