package core

import (
	"errors"
	"math"
	"time"
)

// ReadOrder selects how the sampler reads the overflow accumulator and the
// raw counter when composing a sample.
type ReadOrder uint8

const (
	// ReadConsistent reads overflow, counter, overflow and retries while the
	// two overflow reads differ, so a wrap serviced mid-read cannot pair a
	// pre-wrap accumulator with a post-wrap counter.
	ReadConsistent ReadOrder = iota

	// ReadOverflowFirst reads the accumulator, then the counter. A wrap
	// between the two reads loses one modulus.
	ReadOverflowFirst

	// ReadCounterFirst reads the counter, then the accumulator. A wrap
	// between the two reads counts up to one modulus twice.
	ReadCounterFirst
)

// Config is the firmware configuration decided once at boot
type Config struct {
	Counter CounterConfig

	TickPeriod time.Duration // Sample timer period
	Decimation uint32        // Act on every Nth tick
	Per        time.Duration // Frequency unit, 0 publishes raw window counts
	ReadOrder  ReadOrder

	Policy        ChannelPolicy
	QueueCapacity int

	Mode         DisplayMode
	DisplayEvery uint32 // Forward every Nth drained sample to the renderer
}

// DefaultConfig returns a 1 s window built from a 250 ms tick, reported in Hz
func DefaultConfig() Config {
	return Config{
		Counter:       DefaultCounterConfig(),
		TickPeriod:    250 * time.Millisecond,
		Decimation:    4,
		Per:           time.Second,
		ReadOrder:     ReadConsistent,
		Policy:        PolicyLatest,
		QueueCapacity: DefaultQueueCapacity,
		Mode:          ModeText,
		DisplayEvery:  1,
	}
}

var (
	ErrInvalidTickPeriod = errors.New("config: tick period must be positive")
	ErrInvalidDecimation = errors.New("config: decimation must be at least 1")
	ErrInvalidPer        = errors.New("config: frequency unit must not be negative")
	ErrInvalidReadOrder  = errors.New("config: unknown read order")
	ErrInvalidMode       = errors.New("config: unknown display mode")
	ErrWindowTooLong     = errors.New("config: tick period times decimation overflows")
)

// Window returns the length of one sampling window
func (c Config) Window() time.Duration {
	return c.TickPeriod * time.Duration(c.Decimation)
}

// Validate checks the configuration
func (c Config) Validate() error {
	if err := c.Counter.Validate(); err != nil {
		return err
	}
	if c.TickPeriod <= 0 {
		return ErrInvalidTickPeriod
	}
	if c.Decimation == 0 {
		return ErrInvalidDecimation
	}
	if c.TickPeriod > math.MaxInt64/time.Duration(c.Decimation) {
		return ErrWindowTooLong
	}
	if c.Per < 0 {
		return ErrInvalidPer
	}
	if c.ReadOrder > ReadCounterFirst {
		return ErrInvalidReadOrder
	}
	if c.Policy == PolicyQueue {
		if _, err := NewSampleRing(c.QueueCapacity); err != nil {
			return err
		}
	} else if c.Policy != PolicyLatest {
		return errors.New("config: unknown channel policy")
	}
	if c.Mode > ModeFrame {
		return ErrInvalidMode
	}
	return nil
}
