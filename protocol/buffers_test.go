package protocol

import "testing"

func TestScratchOutput(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output([]byte{1, 2, 3})
	scratch.Output([]byte{4, 5})

	if scratch.CurPosition() != 5 {
		t.Errorf("Expected position 5, got %d", scratch.CurPosition())
	}

	scratch.Update(0, 99)
	if scratch.Result()[0] != 99 {
		t.Errorf("Expected first byte to be 99, got %d", scratch.Result()[0])
	}

	since := scratch.DataSince(2)
	if len(since) != 3 || since[0] != 3 {
		t.Errorf("DataSince(2): expected [3 4 5], got %v", since)
	}

	scratch.Reset()
	if scratch.CurPosition() != 0 {
		t.Errorf("After reset, expected position 0, got %d", scratch.CurPosition())
	}
}

func TestScratchOutputTruncatesAtBlockLimit(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output(make([]byte, MessageLengthMax+10))
	if scratch.CurPosition() != MessageLengthMax {
		t.Errorf("Expected output capped at %d, got %d", MessageLengthMax, scratch.CurPosition())
	}
}

func TestFifoBuffer(t *testing.T) {
	fifo := NewFifoBuffer(10)
	if fifo.Available() != 0 {
		t.Errorf("Empty FIFO should have 0 available, got %d", fifo.Available())
	}

	if n := fifo.Write([]byte{1, 2, 3, 4, 5}); n != 5 {
		t.Errorf("Expected to write 5 bytes, wrote %d", n)
	}
	fifo.Pop(3)
	if fifo.Available() != 2 {
		t.Errorf("After popping 3, expected 2 available, got %d", fifo.Available())
	}
	if fifo.Free() != 7 {
		t.Errorf("Expected 7 free, got %d", fifo.Free())
	}

	fifo.Reset()
	if n := fifo.Write(make([]byte, 12)); n != 9 {
		t.Errorf("Expected to write 9 bytes to size-10 FIFO, wrote %d", n)
	}
}

func TestFifoBufferWrapAround(t *testing.T) {
	fifo := NewFifoBuffer(5)
	fifo.Write([]byte{1, 2, 3, 4})
	fifo.Pop(2)

	if n := fifo.Write([]byte{5, 6}); n != 2 {
		t.Errorf("Expected to write 2 bytes, wrote %d", n)
	}

	data := fifo.Data()
	want := []byte{3, 4, 5, 6}
	if len(data) != len(want) {
		t.Fatalf("Expected %v, got %v", want, data)
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("Wrap-around data mismatch: got %v", data)
			break
		}
	}

	fifo.Pop(100)
	if fifo.Available() != 0 {
		t.Errorf("Pop past the end should empty the FIFO, %d left", fifo.Available())
	}
}
