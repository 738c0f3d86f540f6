package core

import "sync/atomic"

// DefaultQueueCapacity is the ring size used by DefaultConfig
const DefaultQueueCapacity = 4

// SampleRing is a fixed-capacity single-producer/single-consumer queue.
//
// When the ring is full Publish drops the new sample and keeps the queued
// ones (drop-newest). Dropping the oldest would need the producer to move
// the consumer index, which breaks the one-writer-per-cell rule.
//
// head is written only by the consumer, tail only by the producer. Slot
// contents are written before tail is advanced and read before head is
// advanced, so the atomic index stores order the slot accesses.
type SampleRing struct {
	buf  []Sample
	mask uint32

	head    atomic.Uint32 // Next slot to read, consumer-owned
	tail    atomic.Uint32 // Next slot to write, producer-owned
	dropped atomic.Uint32 // Samples refused because the ring was full
}

// NewSampleRing returns an empty ring. capacity must be a power of two.
func NewSampleRing(capacity int) (*SampleRing, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 || capacity > 1<<16 {
		return nil, ErrInvalidCapacity
	}
	return &SampleRing{
		buf:  make([]Sample, capacity),
		mask: uint32(capacity - 1),
	}, nil
}

// Publish enqueues s, or counts a drop if the ring is full. Wait-free.
func (r *SampleRing) Publish(s Sample) bool {
	tail := r.tail.Load()
	if tail-r.head.Load() > r.mask {
		r.dropped.Add(1)
		return false
	}
	r.buf[tail&r.mask] = s
	r.tail.Store(tail + 1)
	return true
}

// Poll dequeues the oldest sample
func (r *SampleRing) Poll() (Sample, bool) {
	head := r.head.Load()
	if head == r.tail.Load() {
		return Sample{}, false
	}
	s := r.buf[head&r.mask]
	r.head.Store(head + 1)
	return s, true
}

// Len returns the number of queued samples. Only exact from the consumer side.
func (r *SampleRing) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Cap returns the ring capacity
func (r *SampleRing) Cap() int {
	return len(r.buf)
}

// Dropped returns the number of samples refused since boot
func (r *SampleRing) Dropped() uint32 {
	return r.dropped.Load()
}
