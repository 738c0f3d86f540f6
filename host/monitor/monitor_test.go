package monitor

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"freqcounter/protocol"
)

var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestMonitor(t *testing.T, format Format, ppr uint32) *Monitor {
	t.Helper()
	m, err := New(Options{Format: format, PulsesPerRev: ppr, Now: func() time.Time { return fixedNow }})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return m
}

func frames(counts, freqs []uint32) []byte {
	var out bytes.Buffer
	scratch := protocol.NewScratchOutput()
	enc := protocol.NewEncoder(scratch)
	for i := range counts {
		scratch.Reset()
		enc.EncodeSample(counts[i], freqs[i])
		out.Write(scratch.Result())
	}
	return out.Bytes()
}

func TestParseLine(t *testing.T) {
	testCases := []struct {
		line string
		want uint32
		ok   bool
	}{
		{"1000 Hz", 1000, true},
		{"0 Hz\r", 0, true},
		{"  70000 Hz  ", 70000, true},
		{"70000Hz", 70000, true},
		{"4294967295 Hz", 4294967295, true},
		{"4294967296 Hz", 0, false},
		{"1000", 0, false},
		{"Hz", 0, false},
		{"-5 Hz", 0, false},
		{"12a Hz", 0, false},
	}

	for _, tc := range testCases {
		got, err := ParseLine([]byte(tc.line))
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("%q: expected %d, got %d (%v)", tc.line, tc.want, got, err)
		}
		if !tc.ok && err != ErrBadLine {
			t.Errorf("%q: expected ErrBadLine, got %v", tc.line, err)
		}
	}
}

func TestRPM(t *testing.T) {
	if got := RPM(50, 1); got != 3000 {
		t.Errorf("Expected 3000 rpm, got %v", got)
	}
	if got := RPM(50, 2); got != 1500 {
		t.Errorf("Expected 1500 rpm with 2 pulses per rev, got %v", got)
	}
	if got := RPM(50, 0); got != 3000 {
		t.Errorf("Expected 0 pulses per rev to mean 1, got %v", got)
	}
}

func TestFeedTextSplitAcrossReads(t *testing.T) {
	m := newTestMonitor(t, FormatText, 1)

	if got := m.Feed([]byte("100 Hz\r\n2")); len(got) != 1 || got[0].Hz != 100 {
		t.Fatalf("Expected one reading of 100, got %+v", got)
	}
	got := m.Feed([]byte("00 Hz\r\ngarbage\r\n"))
	if len(got) != 1 || got[0].Hz != 200 || got[0].RPM != 12000 {
		t.Fatalf("Expected one reading of 200 Hz / 12000 rpm, got %+v", got)
	}
	if !got[0].At.Equal(fixedNow) {
		t.Errorf("Expected the injected clock, got %v", got[0].At)
	}

	stats := m.Stats()
	if stats.Readings != 2 || stats.BadLines != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestFeedTextOverlongLine(t *testing.T) {
	m := newTestMonitor(t, FormatText, 1)
	long := bytes.Repeat([]byte("9"), 100)
	if got := m.Feed(append(long, []byte(" Hz\n")...)); len(got) != 0 {
		t.Errorf("Expected an overlong line to be rejected, got %+v", got)
	}
	if m.Stats().BadLines != 1 {
		t.Errorf("Expected 1 bad line, got %d", m.Stats().BadLines)
	}
}

func TestFeedFrameDetectsMissed(t *testing.T) {
	m := newTestMonitor(t, FormatFrame, 4)

	got := m.Feed(frames([]uint32{1, 2, 5}, []uint32{400, 400, 800}))
	if len(got) != 3 {
		t.Fatalf("Expected 3 readings, got %d", len(got))
	}
	if got[1].Missed != 0 || got[2].Missed != 2 {
		t.Errorf("Expected 2 missed before count 5, got %+v", got)
	}
	if got[2].RPM != 12000 {
		t.Errorf("Expected 800 Hz / 4 ppr = 12000 rpm, got %v", got[2].RPM)
	}

	// Firmware restart: count goes back to 1
	got = m.Feed(frames([]uint32{1}, []uint32{10}))
	if len(got) != 1 || got[0].Missed != 0 {
		t.Errorf("Expected a restart not to count as missed, got %+v", got)
	}
	if m.Stats().Missed != 2 {
		t.Errorf("Expected 2 missed in total, got %d", m.Stats().Missed)
	}
}

func TestFeedFrameByteAtATime(t *testing.T) {
	m := newTestMonitor(t, FormatFrame, 1)
	stream := frames([]uint32{1, 2, 3}, []uint32{7, 8, 9})

	var hz []uint32
	for _, b := range stream {
		for _, r := range m.Feed([]byte{b}) {
			hz = append(hz, r.Hz)
		}
	}
	if len(hz) != 3 || hz[0] != 7 || hz[2] != 9 {
		t.Errorf("Expected 7 8 9, got %v", hz)
	}
}

func TestNewRejectsFormat(t *testing.T) {
	if _, err := New(Options{Format: 7}); err != ErrUnknownFormat {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestRunUntilEOF(t *testing.T) {
	m := newTestMonitor(t, FormatText, 1)
	out := make(chan Reading, 8)

	err := m.Run(context.Background(), bytes.NewReader([]byte("1 Hz\n2 Hz\n3 Hz\n")), out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	close(out)

	var hz []uint32
	for r := range out {
		hz = append(hz, r.Hz)
	}
	if len(hz) != 3 || hz[0] != 1 || hz[2] != 3 {
		t.Errorf("Expected 1 2 3, got %v", hz)
	}
}

// slowReader returns no data and no error, like a port in a quiet period
type slowReader struct{}

func (slowReader) Read(p []byte) (int, error) {
	time.Sleep(time.Millisecond)
	return 0, io.EOF
}

func TestRunFollowStopsOnCancel(t *testing.T) {
	m, err := New(Options{Format: FormatText, Follow: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = m.Run(ctx, slowReader{}, make(chan Reading))
	if err != context.DeadlineExceeded {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
}
