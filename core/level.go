package core

import "sync/atomic"

// Level is the logic level an output pin should present.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Not returns the opposite level.
func (l Level) Not() Level { return !l }

func (l Level) String() string {
	if l {
		return "HIGH"
	}
	return "LOW"
}

// DesiredLevel is the single flag shared between the tick handler and the
// foreground loop. The handler is its only writer.
type DesiredLevel struct {
	v atomic.Bool
}

// NewDesiredLevel creates the shared flag with its initial value.
func NewDesiredLevel(initial Level) *DesiredLevel {
	d := &DesiredLevel{}
	d.v.Store(bool(initial))
	return d
}

// Load returns the current level. Safe from any context.
func (d *DesiredLevel) Load() Level {
	return Level(d.v.Load())
}

// Toggle inverts the level and returns the new value.
//
// This is a plain load followed by a store, not a swap: thumbv6m has no
// exclusive load/store, and a CAS loop would need interrupts masked. It is
// only correct while a single, non-nesting context writes the flag. A second
// writer needs a real read-modify-write primitive.
func (d *DesiredLevel) Toggle() Level {
	next := !d.v.Load()
	d.v.Store(next)
	return Level(next)
}
