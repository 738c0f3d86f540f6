// Package monitor turns the counter's serial output back into readings
package monitor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"freqcounter/protocol"
)

// Format is the wire format the firmware was booted with
type Format uint8

const (
	FormatText  Format = iota // "<hz> Hz" lines
	FormatFrame               // CRC framed MsgSample blocks
)

var (
	ErrBadLine       = errors.New("monitor: malformed reading line")
	ErrUnknownFormat = errors.New("monitor: unknown format")
)

// maxLine bounds a text line; longer input is noise
const maxLine = 32

// Reading is one frequency received from the counter
type Reading struct {
	Hz     uint32
	RPM    float64
	Count  uint32 // Firmware sample count, frame format only
	Missed uint32 // Samples lost since the previous reading, frame format only
	At     time.Time
}

// Stats counts what the monitor has seen
type Stats struct {
	Readings uint32
	Missed   uint32
	BadLines uint32
	Decoder  protocol.DecoderStats
}

// Options configures a Monitor
type Options struct {
	Format       Format
	PulsesPerRev uint32 // 0 is treated as 1
	Follow       bool   // Keep reading after io.EOF (serial read timeouts surface as EOF)
	Now          func() time.Time
}

// Monitor parses a byte stream into readings. It is not safe for
// concurrent use.
type Monitor struct {
	opts Options

	line    []byte
	stream  *protocol.StreamBuffer
	dec     *protocol.Decoder
	pending []Reading

	lastCount uint32
	haveCount bool
	stats     Stats
}

// New creates a monitor
func New(opts Options) (*Monitor, error) {
	if opts.Format > FormatFrame {
		return nil, ErrUnknownFormat
	}
	if opts.PulsesPerRev == 0 {
		opts.PulsesPerRev = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := &Monitor{
		opts:   opts,
		line:   make([]byte, 0, maxLine),
		stream: protocol.NewStreamBuffer(4 * protocol.MessageLengthMax),
	}
	m.dec = protocol.NewDecoder(m.handleBlock)
	return m, nil
}

// Feed parses data and returns the readings it completed. The returned
// slice is reused by the next call.
func (m *Monitor) Feed(data []byte) []Reading {
	m.pending = m.pending[:0]
	switch m.opts.Format {
	case FormatFrame:
		for len(data) > 0 {
			n := m.stream.Write(data)
			data = data[n:]
			m.dec.Receive(m.stream)
			if n == 0 {
				// Full of bytes the decoder cannot use yet
				m.stream.Reset()
			}
		}
		m.stats.Decoder = m.dec.Stats()
	default:
		m.feedText(data)
	}
	return m.pending
}

func (m *Monitor) feedText(data []byte) {
	for _, b := range data {
		if b != '\n' {
			if len(m.line) < maxLine {
				m.line = append(m.line, b)
			}
			continue
		}
		hz, err := ParseLine(m.line)
		m.line = m.line[:0]
		if err != nil {
			m.stats.BadLines++
			continue
		}
		m.emit(Reading{Hz: hz})
	}
}

func (m *Monitor) handleBlock(b protocol.Block) {
	msg, err := protocol.ParseSample(b)
	if err != nil {
		return
	}

	r := Reading{Hz: msg.Frequency, Count: msg.Count}
	// A count that does not advance means the firmware restarted
	if m.haveCount && msg.Count > m.lastCount+1 {
		r.Missed = msg.Count - m.lastCount - 1
	}
	m.lastCount = msg.Count
	m.haveCount = true
	m.emit(r)
}

func (m *Monitor) emit(r Reading) {
	r.RPM = RPM(r.Hz, m.opts.PulsesPerRev)
	r.At = m.opts.Now()
	m.stats.Readings++
	m.stats.Missed += r.Missed
	m.pending = append(m.pending, r)
}

// Stats returns the monitor counters
func (m *Monitor) Stats() Stats {
	return m.stats
}

// Run reads from r until ctx is done or r fails, sending every reading on
// out. io.EOF ends the run without error unless Follow is set. Read
// timeouts on r let Run notice cancellation.
func (m *Monitor) Run(ctx context.Context, r io.Reader, out chan<- Reading) error {
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := r.Read(buf)
		for _, reading := range m.Feed(buf[:n]) {
			select {
			case out <- reading:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err == io.EOF {
			if m.opts.Follow {
				continue
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// ParseLine parses one text reading such as "1234 Hz\r"
func ParseLine(line []byte) (uint32, error) {
	line = bytes.TrimSpace(line)
	value, ok := bytes.CutSuffix(line, []byte("Hz"))
	if !ok {
		return 0, ErrBadLine
	}
	hz, err := strconv.ParseUint(string(bytes.TrimSpace(value)), 10, 32)
	if err != nil {
		return 0, ErrBadLine
	}
	return uint32(hz), nil
}

// RPM converts a pulse frequency to revolutions per minute
func RPM(hz, pulsesPerRev uint32) float64 {
	if pulsesPerRev == 0 {
		pulsesPerRev = 1
	}
	return float64(hz) * 60 / float64(pulsesPerRev)
}
