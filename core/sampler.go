package core

import (
	"math"
	"math/bits"
	"sync/atomic"
	"time"
)

// consistentReadRetries bounds the re-reads of ReadConsistent. The sampler
// runs in interrupt context and must not spin.
const consistentReadRetries = 3

// Sampler is the sampling context shared by the timer interrupt, the wrap
// interrupt and, through its channel, the foreground loop.
//
// Ownership: tick, stats and the counter reset belong to HandleTick; the
// accumulator is incremented by HandleOverflow and read/cleared by
// HandleTick. Adding a second producer to any of these needs real locking.
type Sampler struct {
	drv      CounterDriver
	ch       Channel
	overflow OverflowAccumulator

	modulus    uint32
	decimation uint32
	readOrder  ReadOrder
	scaleNum   uint64 // Per in ns, or 0 for raw counts
	scaleDen   uint64 // Window in ns

	tick        atomic.Uint32
	activations atomic.Uint32
	published   atomic.Uint32
	dropped     atomic.Uint32
}

// SamplerStats is a snapshot of sampler counters
type SamplerStats struct {
	Ticks       uint32
	Activations uint32
	Published   uint32
	Dropped     uint32
	Wraps       uint32
}

// NewSampler builds the sampling context for an already configured driver
func NewSampler(drv CounterDriver, ch Channel, cfg Config) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Sampler{
		drv:        drv,
		ch:         ch,
		modulus:    drv.Modulus(),
		decimation: cfg.Decimation,
		readOrder:  cfg.ReadOrder,
		scaleDen:   uint64(cfg.Window()),
	}
	if cfg.Per > 0 {
		s.scaleNum = uint64(cfg.Per)
	}
	return s, nil
}

// HandleOverflow is the body of the counter wrap interrupt
func (s *Sampler) HandleOverflow() {
	if !s.drv.OverflowPending() {
		return
	}
	s.drv.ClearOverflow()
	s.overflow.Add(s.modulus)
	RecordEvent(EvtOverflow, s.overflow.Wraps(), 0)
}

// HandleTick is the body of the fixed-rate timer interrupt
func (s *Sampler) HandleTick() {
	tick := s.tick.Add(1)
	if tick%s.decimation != 0 {
		return
	}
	s.activations.Add(1)

	pulses := s.read()
	freq := s.scale(pulses)

	resetCounter(s.drv)
	s.overflow.Reset()

	sample := Sample{Tick: tick, Frequency: freq}
	if s.ch.Publish(sample) {
		s.published.Add(1)
		RecordEvent(EvtSample, tick, freq)
	} else {
		s.dropped.Add(1)
		RecordEvent(EvtDrop, tick, freq)
	}
}

// read composes overflow and raw counter into the window's pulse count
func (s *Sampler) read() uint32 {
	switch s.readOrder {
	case ReadOverflowFirst:
		ov := s.overflow.Load()
		return ov + s.drv.Count()
	case ReadCounterFirst:
		cnt := s.drv.Count()
		return s.overflow.Load() + cnt
	default:
		ov := s.overflow.Load()
		cnt := s.drv.Count()
		for i := 0; i < consistentReadRetries; i++ {
			again := s.overflow.Load()
			if again == ov {
				break
			}
			ov = again
			cnt = s.drv.Count()
		}
		return ov + cnt
	}
}

// scale converts a window count into pulses per configured unit
func (s *Sampler) scale(pulses uint32) uint32 {
	if s.scaleNum == 0 || s.scaleNum == s.scaleDen {
		return pulses
	}
	hi, lo := bits.Mul64(uint64(pulses), s.scaleNum)
	if hi >= s.scaleDen {
		return math.MaxUint32
	}
	q, _ := bits.Div64(hi, lo, s.scaleDen)
	if q > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(q)
}

// Stats returns a snapshot of the sampler counters
func (s *Sampler) Stats() SamplerStats {
	return SamplerStats{
		Ticks:       s.tick.Load(),
		Activations: s.activations.Load(),
		Published:   s.published.Load(),
		Dropped:     s.dropped.Load(),
		Wraps:       s.overflow.Wraps(),
	}
}

// Window returns the duration covered by one sample
func (s *Sampler) Window() time.Duration {
	return time.Duration(s.scaleDen)
}
