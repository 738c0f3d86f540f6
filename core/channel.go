package core

import (
	"errors"
	"sync/atomic"
)

// Sample is one completed sampling window
type Sample struct {
	Tick      uint32 // Sample Tick at publish time, never 0 for a real sample
	Frequency uint32 // Pulses per configured time unit
}

// Channel moves samples from the sample interrupt to the foreground loop.
// Exactly one producer calls Publish and exactly one consumer calls Poll.
// Publish must never block.
type Channel interface {
	// Publish hands a sample to the consumer. It returns false if the
	// sample was dropped.
	Publish(s Sample) bool

	// Poll returns the next sample not yet seen by the consumer
	Poll() (Sample, bool)
}

// ChannelPolicy selects the Channel implementation
type ChannelPolicy uint8

const (
	PolicyLatest ChannelPolicy = iota // Overwrite-latest single slot
	PolicyQueue                       // Bounded ring, drop newest when full
)

var ErrInvalidCapacity = errors.New("channel: queue capacity must be a power of two")

// NewChannel builds the channel for the given policy. capacity is only used
// by PolicyQueue.
func NewChannel(policy ChannelPolicy, capacity int) (Channel, error) {
	switch policy {
	case PolicyLatest:
		return NewLatestSlot(), nil
	case PolicyQueue:
		return NewSampleRing(capacity)
	default:
		return nil, errors.New("channel: unknown policy")
	}
}

// LatestSlot is the overwrite-latest channel. The tick and the frequency are
// packed into one 64-bit word so a reader can never pair the tick of one
// sample with the frequency of another.
type LatestSlot struct {
	slot atomic.Uint64

	// consumer-owned
	lastTick uint32
}

// NewLatestSlot returns an empty slot
func NewLatestSlot() *LatestSlot {
	return &LatestSlot{}
}

// Publish stores s unconditionally, replacing any unread sample
func (l *LatestSlot) Publish(s Sample) bool {
	l.slot.Store(uint64(s.Tick)<<32 | uint64(s.Frequency))
	return true
}

// Poll returns the stored sample if its tick differs from the last one
// returned. Repeated polls without a new publish return nothing.
func (l *LatestSlot) Poll() (Sample, bool) {
	s := l.Peek()
	if s.Tick == 0 || s.Tick == l.lastTick {
		return Sample{}, false
	}
	l.lastTick = s.Tick
	return s, true
}

// Peek returns the stored sample without marking it seen.
// A zero Tick means nothing has been published yet.
func (l *LatestSlot) Peek() Sample {
	v := l.slot.Load()
	return Sample{
		Tick:      uint32(v >> 32),
		Frequency: uint32(v),
	}
}
