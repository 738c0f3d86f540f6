package core

import "sync/atomic"

// OverflowAccumulator holds the pulses lost to counter wraps since the last
// sample. It is written by the wrap interrupt and read and cleared by the
// sample interrupt; no other context may touch it.
type OverflowAccumulator struct {
	pulses atomic.Uint32 // Accumulated wraps × modulus
	wraps  atomic.Uint32 // Total wraps since boot, diagnostic only
}

// Add records one wrap worth modulus pulses. It always adds exactly one wrap,
// so several wraps behind a single hardware flag are under-counted.
func (a *OverflowAccumulator) Add(modulus uint32) {
	a.pulses.Add(modulus)
	a.wraps.Add(1)
}

// Load returns the accumulated pulses without clearing them
func (a *OverflowAccumulator) Load() uint32 {
	return a.pulses.Load()
}

// Reset clears the accumulated pulses
func (a *OverflowAccumulator) Reset() {
	a.pulses.Store(0)
}

// Wraps returns the number of wraps seen since boot
func (a *OverflowAccumulator) Wraps() uint32 {
	return a.wraps.Load()
}
