// Package monitor turns a board's trace stream back into lines. Plain text
// sinks are split on newlines; framed sinks go through the block decoder.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"picoblink/protocol"
)

const (
	FormatText   = "text"
	FormatFramed = "framed"
)

var ErrUnknownFormat = errors.New("unknown trace format")

// Line is one trace line as seen by the host.
type Line struct {
	Text string
	// Seq and Lost are only meaningful for framed streams.
	Seq  uint8
	Lost uint8
}

// Stats counts what a monitor has seen so far.
type Stats struct {
	Lines   uint32
	Ticks   uint32
	Lost    uint32
	Resyncs uint32
}

// Monitor reads trace output from r and calls handler for each line.
type Monitor struct {
	r       io.Reader
	format  string
	handler func(Line)
	stats   Stats
}

// New creates a monitor for the given trace format.
func New(r io.Reader, format string, handler func(Line)) (*Monitor, error) {
	switch format {
	case FormatText, FormatFramed:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &Monitor{r: r, format: format, handler: handler}, nil
}

// Stats returns a snapshot of the counters.
func (m *Monitor) Stats() Stats { return m.stats }

// Run reads until r returns EOF or an error. EOF is not reported.
func (m *Monitor) Run() error {
	if m.format == FormatFramed {
		return m.runFramed()
	}
	return m.runText()
}

func (m *Monitor) runText() error {
	sc := bufio.NewScanner(m.r)
	for sc.Scan() {
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			continue
		}
		m.emit(Line{Text: text})
	}
	return sc.Err()
}

func (m *Monitor) runFramed() error {
	dec := protocol.NewTraceDecoder(func(l protocol.TraceLine) {
		m.stats.Lost += uint32(l.Lost)
		m.emit(Line{Text: l.Text, Seq: l.Seq, Lost: l.Lost})
	})
	fifo := protocol.NewFifoBuffer(4 * protocol.MessageLengthMax)
	buf := make([]byte, protocol.MessageLengthMax)

	for {
		n, err := m.r.Read(buf)
		for data := buf[:n]; len(data) > 0; {
			w := fifo.Write(data)
			data = data[w:]
			dec.Receive(fifo)
			if w == 0 && fifo.Free() == 0 {
				// Decoder could not make progress on a full buffer.
				fifo.Reset()
			}
		}
		m.stats.Resyncs = dec.Resyncs
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Monitor) emit(l Line) {
	m.stats.Lines++
	if l.Text == "Tick!" {
		m.stats.Ticks++
	}
	if m.handler != nil {
		m.handler(l)
	}
}
