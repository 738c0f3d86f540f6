package core

import "errors"

// CounterEdge selects which transition of the external signal advances the counter
type CounterEdge uint8

const (
	EdgeRising CounterEdge = iota
	EdgeFalling
)

// CounterConfig describes how the Pulse Counter is clocked by the external pin.
// The counter runs in external clock mode: every qualifying edge adds one.
type CounterConfig struct {
	Edge     CounterEdge // Counting edge (rising only, see ConfigurePulseCounter)
	Filter   uint8       // Input filter length, 0 = no filtering
	Prescale uint8       // Edge prescaler, 1 = count every edge
	Top      uint32      // Highest value before the counter wraps to 0
}

// DefaultCounterConfig returns the boot configuration: rising edge, no filter,
// no prescale and a 16-bit wrap.
func DefaultCounterConfig() CounterConfig {
	return CounterConfig{
		Edge:     EdgeRising,
		Filter:   0,
		Prescale: 1,
		Top:      0xFFFF,
	}
}

// Modulus returns the number of counts in one full counter cycle
func (c CounterConfig) Modulus() uint32 {
	return c.Top + 1
}

// CounterDriver is the abstract edge-counter interface that core code uses.
// Platform-specific implementations handle the actual timer peripheral.
type CounterDriver interface {
	// Configure selects the external pin as the counting clock.
	// Must be called before Start.
	Configure(cfg CounterConfig) error

	// Start enables counting
	Start()

	// Count reads the current raw counter value
	Count() uint32

	// SetCount writes the raw counter value
	SetCount(v uint32)

	// OverflowPending reports whether the hardware wrap flag is set
	OverflowPending() bool

	// ClearOverflow acknowledges the wrap flag. The wrap interrupt refires
	// immediately if this is not done before the handler returns.
	ClearOverflow()

	// Modulus returns Top+1 of the configured counter
	Modulus() uint32
}

var (
	ErrUnsupportedEdge     = errors.New("counter: only rising edge counting is supported")
	ErrUnsupportedFilter   = errors.New("counter: input filtering is not supported")
	ErrUnsupportedPrescale = errors.New("counter: prescaling is not supported")
	ErrInvalidTop          = errors.New("counter: top must be non-zero")
)

// Validate checks the configuration against what the sampling pipeline
// can reconstruct. Prescale and filter adjustments are not part of this design.
func (c CounterConfig) Validate() error {
	if c.Edge != EdgeRising {
		return ErrUnsupportedEdge
	}
	if c.Filter != 0 {
		return ErrUnsupportedFilter
	}
	if c.Prescale != 1 {
		return ErrUnsupportedPrescale
	}
	if c.Top == 0 || c.Top == 0xFFFFFFFF {
		return ErrInvalidTop
	}
	return nil
}

// ConfigurePulseCounter validates cfg, programs the driver and starts counting.
// This is a one-time boot operation.
func ConfigurePulseCounter(drv CounterDriver, cfg CounterConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := drv.Configure(cfg); err != nil {
		return err
	}
	resetCounter(drv)
	drv.ClearOverflow()
	drv.Start()
	return nil
}

// resetCounter zeroes the hardware counter with the two-phase write the
// target peripheral requires: a single write of 0 may not land while the
// counter shadow register is being updated, so a nonzero value goes first.
// Any port to new hardware must re-check whether a single write is safe.
func resetCounter(drv CounterDriver) {
	drv.SetCount(1)
	drv.SetCount(0)
}
