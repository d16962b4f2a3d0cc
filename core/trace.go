package core

import "sync/atomic"

// TraceEvent is a fixed trace line that can be queued from interrupt context.
type TraceEvent uint8

const (
	TraceNone TraceEvent = iota
	TraceHello
	TraceTick
)

func (e TraceEvent) String() string {
	switch e {
	case TraceHello:
		return "Hello, world!"
	case TraceTick:
		return "Tick!"
	default:
		return ""
	}
}

// TraceQueueSize is the number of events the queue holds. Power of two.
const TraceQueueSize = 16

// Trace sits in front of a DebugWriter. Interrupt handlers Post fixed events
// into a single-producer/single-consumer ring; the foreground loop Flushes
// them to the writer. Posting never blocks: a full ring drops the event.
type Trace struct {
	w DebugWriter

	ring    [TraceQueueSize]TraceEvent
	head    atomic.Uint32 // next slot the producer writes
	tail    atomic.Uint32 // next slot the consumer reads
	dropped atomic.Uint32

	reported uint32 // drops already reported by Flush (consumer only)
}

// NewTrace creates a trace queue writing to w. A nil w discards lines.
func NewTrace(w DebugWriter) *Trace {
	if w == nil {
		w = Discard
	}
	return &Trace{w: w}
}

// Post queues ev. Producer side; safe from interrupt context.
func (t *Trace) Post(ev TraceEvent) bool {
	h := t.head.Load()
	if h-t.tail.Load() >= TraceQueueSize {
		t.dropped.Add(1)
		return false
	}
	t.ring[h&(TraceQueueSize-1)] = ev
	t.head.Store(h + 1)
	return true
}

// Pending returns the number of queued events.
func (t *Trace) Pending() int {
	return int(t.head.Load() - t.tail.Load())
}

// Dropped returns how many events were lost to a full queue.
func (t *Trace) Dropped() uint32 { return t.dropped.Load() }

// Flush writes every queued event, in order, and returns how many lines it
// wrote. Consumer side; foreground only.
func (t *Trace) Flush() int {
	n := 0
	for {
		tl := t.tail.Load()
		if tl == t.head.Load() {
			break
		}
		ev := t.ring[tl&(TraceQueueSize-1)]
		t.tail.Store(tl + 1)
		t.w(ev.String())
		n++
	}
	if d := t.dropped.Load(); d != t.reported {
		t.w("trace: " + Utoa(d-t.reported) + " dropped")
		t.reported = d
		n++
	}
	return n
}

// Println writes s directly, after anything already queued. Foreground only.
func (t *Trace) Println(s string) {
	t.Flush()
	t.w(s)
}
