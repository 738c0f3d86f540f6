package protocol

import (
	"bytes"
	"testing"
)

func TestSliceInputBuffer(t *testing.T) {
	buf := NewSliceInputBuffer([]byte{1, 2, 3, 4, 5})

	if buf.Available() != 5 {
		t.Errorf("Expected 5 bytes available, got %d", buf.Available())
	}

	buf.Pop(2)
	if buf.Available() != 3 || buf.Data()[0] != 3 {
		t.Errorf("After popping 2, expected [3 4 5], got %v", buf.Data())
	}

	buf.Pop(10)
	if buf.Available() != 0 {
		t.Errorf("Expected an empty buffer after over-pop, got %d", buf.Available())
	}
}

func TestScratchOutput(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output([]byte{1, 2, 3})
	scratch.Output([]byte{4, 5})

	if scratch.CurPosition() != 5 {
		t.Errorf("Expected position 5, got %d", scratch.CurPosition())
	}

	scratch.Update(0, 99)
	scratch.Update(40, 1) // past the written data, ignored
	if !bytes.Equal(scratch.Result(), []byte{99, 2, 3, 4, 5}) {
		t.Errorf("Unexpected result %v", scratch.Result())
	}

	if since := scratch.DataSince(2); !bytes.Equal(since, []byte{3, 4, 5}) {
		t.Errorf("DataSince(2): expected [3 4 5], got %v", since)
	}
	if since := scratch.DataSince(9); since != nil {
		t.Errorf("DataSince past end: expected nil, got %v", since)
	}

	scratch.Reset()
	if scratch.CurPosition() != 0 {
		t.Errorf("After reset, expected position 0, got %d", scratch.CurPosition())
	}
}

func TestScratchOutputTruncates(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output(make([]byte, MessageLengthMax+10))
	if scratch.CurPosition() != MessageLengthMax {
		t.Errorf("Expected truncation at %d, got %d", MessageLengthMax, scratch.CurPosition())
	}
}

func TestStreamBuffer(t *testing.T) {
	stream := NewStreamBuffer(8)

	if n := stream.Write([]byte{1, 2, 3, 4, 5}); n != 5 {
		t.Errorf("Expected to write 5 bytes, wrote %d", n)
	}
	stream.Pop(3)
	if !bytes.Equal(stream.Data(), []byte{4, 5}) {
		t.Errorf("Expected [4 5], got %v", stream.Data())
	}

	// Compaction makes room for the popped bytes
	if n := stream.Write([]byte{6, 7, 8, 9, 10, 11, 12}); n != 6 {
		t.Errorf("Expected to write 6 bytes, wrote %d", n)
	}
	if !bytes.Equal(stream.Data(), []byte{4, 5, 6, 7, 8, 9, 10, 11}) {
		t.Errorf("Unexpected contents %v", stream.Data())
	}
	if stream.Free() != 0 {
		t.Errorf("Expected a full buffer, %d free", stream.Free())
	}

	stream.Pop(stream.Available())
	if stream.Available() != 0 || stream.Free() != 8 {
		t.Errorf("Expected an empty buffer, got %d available", stream.Available())
	}

	stream.Write([]byte{1})
	stream.Reset()
	if stream.Available() != 0 {
		t.Errorf("Expected Reset to discard data, got %d", stream.Available())
	}
}
