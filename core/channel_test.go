package core

import (
	"sync"
	"testing"
)

func TestLatestSlotEmpty(t *testing.T) {
	slot := NewLatestSlot()
	if _, ok := slot.Poll(); ok {
		t.Error("Expected no sample from an empty slot")
	}
	if got := slot.Peek(); got.Tick != 0 {
		t.Errorf("Expected zero tick from an empty slot, got %d", got.Tick)
	}
}

func TestLatestSlotPollIsIdempotent(t *testing.T) {
	slot := NewLatestSlot()
	slot.Publish(Sample{Tick: 4, Frequency: 1000})

	got, ok := slot.Poll()
	if !ok || got.Frequency != 1000 || got.Tick != 4 {
		t.Fatalf("Expected {4 1000}, got %+v ok=%v", got, ok)
	}

	for i := 0; i < 3; i++ {
		if _, ok := slot.Poll(); ok {
			t.Errorf("Poll %d: expected nothing without a new publish", i)
		}
	}
}

func TestLatestSlotOverwrites(t *testing.T) {
	slot := NewLatestSlot()
	slot.Publish(Sample{Tick: 1, Frequency: 10})
	slot.Publish(Sample{Tick: 2, Frequency: 20})
	slot.Publish(Sample{Tick: 3, Frequency: 30})

	got := mustPoll(t, slot)
	if got.Tick != 3 || got.Frequency != 30 {
		t.Errorf("Expected the latest sample {3 30}, got %+v", got)
	}
	if _, ok := slot.Poll(); ok {
		t.Error("Expected overwritten samples to be gone")
	}
}

func TestLatestSlotSameFrequencyNewTick(t *testing.T) {
	slot := NewLatestSlot()
	slot.Publish(Sample{Tick: 1, Frequency: 50})
	mustPoll(t, slot)

	// Unchanged frequency is still a new sample
	slot.Publish(Sample{Tick: 2, Frequency: 50})
	got := mustPoll(t, slot)
	if got.Tick != 2 {
		t.Errorf("Expected tick 2, got %d", got.Tick)
	}
}

func TestLatestSlotConcurrentPairing(t *testing.T) {
	const n = 20000
	slot := NewLatestSlot()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for tick := uint32(1); tick <= n; tick++ {
			slot.Publish(Sample{Tick: tick, Frequency: tick * 3})
		}
	}()

	var last uint32
	for last < n {
		s, ok := slot.Poll()
		if !ok {
			continue
		}
		if s.Frequency != s.Tick*3 {
			t.Fatalf("Torn sample: tick %d with frequency %d", s.Tick, s.Frequency)
		}
		if s.Tick <= last {
			t.Fatalf("Tick went backwards: %d after %d", s.Tick, last)
		}
		last = s.Tick
	}
	wg.Wait()
}

func TestNewChannel(t *testing.T) {
	ch, err := NewChannel(PolicyLatest, 0)
	if err != nil {
		t.Fatalf("PolicyLatest: unexpected error %v", err)
	}
	if _, ok := ch.(*LatestSlot); !ok {
		t.Errorf("PolicyLatest: expected *LatestSlot, got %T", ch)
	}

	ch, err = NewChannel(PolicyQueue, 8)
	if err != nil {
		t.Fatalf("PolicyQueue: unexpected error %v", err)
	}
	if ring, ok := ch.(*SampleRing); !ok || ring.Cap() != 8 {
		t.Errorf("PolicyQueue: expected 8-slot *SampleRing, got %T", ch)
	}

	if _, err := NewChannel(PolicyQueue, 3); err != ErrInvalidCapacity {
		t.Errorf("Expected ErrInvalidCapacity, got %v", err)
	}
	if _, err := NewChannel(ChannelPolicy(9), 4); err == nil {
		t.Error("Expected an error for an unknown policy")
	}
}
