package protocol

// TraceEncoder frames trace lines into blocks and hands each finished block
// to write. It is used from the foreground only and never allocates.
type TraceEncoder struct {
	out     ScratchOutput
	seq     uint8
	started bool
	write   func([]byte)
}

// NewTraceEncoder creates an encoder that sends finished blocks to write.
func NewTraceEncoder(write func([]byte)) *TraceEncoder {
	return &TraceEncoder{write: write}
}

// WriteLine frames one line. Lines longer than MaxTraceLine are truncated.
// Its signature matches core.DebugWriter.
func (e *TraceEncoder) WriteLine(line string) {
	if len(line) > MaxTraceLine {
		line = line[:MaxTraceLine]
	}

	if !e.started {
		// A leading sync lets a decoder that starts unsynchronized accept
		// the very first block. It goes out on its own so a full-size block
		// still fits the scratch buffer.
		e.write([]byte{MessageValueSync})
		e.started = true
	}
	e.out.Reset()
	e.EncodeBlock(&e.out, line)
	e.write(e.out.Result())
}

// EncodeBlock appends one block carrying line to output and advances the
// sequence number.
func (e *TraceEncoder) EncodeBlock(output OutputBuffer, line string) {
	cursor := output.CurPosition()

	// Length placeholder and sequence
	output.Output([]byte{0, MessageDest | (e.seq & MessageSeqMask)})
	EncodeVLQString(output, line)

	changed := len(output.DataSince(cursor))
	output.Update(cursor, uint8(changed+MessageTrailerSize))

	crc := CRC16(output.DataSince(cursor))
	output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})

	e.seq = (e.seq + 1) & MessageSeqMask
}

// TraceLine is one decoded trace line.
type TraceLine struct {
	Seq  uint8
	Text string
	// Lost is the number of blocks skipped between the previous line and
	// this one, judged from the sequence numbers.
	Lost uint8
}

// TraceDecoder reassembles trace blocks from a byte stream. It starts
// unsynchronized and discards input until it sees a sync byte, so it can
// attach to a device that is already running.
type TraceDecoder struct {
	synchronized bool
	haveSeq      bool
	nextSeq      uint8
	handler      func(TraceLine)

	// Stats
	Lines   uint32
	Lost    uint32
	Resyncs uint32
}

// NewTraceDecoder creates a decoder delivering each line to handler.
func NewTraceDecoder(handler func(TraceLine)) *TraceDecoder {
	return &TraceDecoder{handler: handler}
}

// Receive consumes complete blocks from input. Bytes of a trailing partial
// block are left in input for the next call.
func (d *TraceDecoder) Receive(input InputBuffer) {
	data := input.Data()
	start := len(data)

	for len(data) > 0 {
		if !d.synchronized {
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synchronized = true
			continue
		}

		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}

		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		payload := data[MessageHeaderSize : msgLen-MessageTrailerSize]
		data = data[msgLen:]

		text, err := DecodeVLQString(&payload)
		if err != nil {
			d.desync()
			continue
		}
		d.deliver(seq&MessageSeqMask, text)
	}

	input.Pop(start - len(data))
}

func (d *TraceDecoder) deliver(seq uint8, text string) {
	var lost uint8
	if d.haveSeq {
		lost = (seq - d.nextSeq) & MessageSeqMask
	}
	d.haveSeq = true
	d.nextSeq = (seq + 1) & MessageSeqMask
	d.Lines++
	d.Lost += uint32(lost)
	if d.handler != nil {
		d.handler(TraceLine{Seq: seq, Text: text, Lost: lost})
	}
}

func (d *TraceDecoder) desync() {
	d.synchronized = false
	d.Resyncs++
}
