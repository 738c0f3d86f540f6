package core

import (
	"sync"
	"testing"
)

func TestSampleRingCapacity(t *testing.T) {
	testCases := []struct {
		capacity int
		valid    bool
	}{
		{0, false},
		{-4, false},
		{1, true},
		{3, false},
		{4, true},
		{6, false},
		{1 << 16, true},
		{1 << 17, false},
	}

	for _, tc := range testCases {
		_, err := NewSampleRing(tc.capacity)
		if tc.valid && err != nil {
			t.Errorf("Capacity %d: unexpected error %v", tc.capacity, err)
		}
		if !tc.valid && err != ErrInvalidCapacity {
			t.Errorf("Capacity %d: expected ErrInvalidCapacity, got %v", tc.capacity, err)
		}
	}
}

func TestSampleRingDropsNewest(t *testing.T) {
	ring, err := NewSampleRing(4)
	if err != nil {
		t.Fatalf("NewSampleRing failed: %v", err)
	}

	// K = 7 publishes into C = 4 without a poll
	for tick := uint32(1); tick <= 7; tick++ {
		ok := ring.Publish(Sample{Tick: tick, Frequency: tick * 10})
		if want := tick <= 4; ok != want {
			t.Errorf("Publish tick %d: expected %v, got %v", tick, want, ok)
		}
	}

	if ring.Dropped() != 3 {
		t.Errorf("Expected 3 drops, got %d", ring.Dropped())
	}
	if ring.Len() != 4 {
		t.Errorf("Expected 4 queued, got %d", ring.Len())
	}

	for tick := uint32(1); tick <= 4; tick++ {
		got := mustPoll(t, ring)
		if got.Tick != tick || got.Frequency != tick*10 {
			t.Errorf("Expected {%d %d}, got %+v", tick, tick*10, got)
		}
	}
	if _, ok := ring.Poll(); ok {
		t.Error("Expected the ring to be empty")
	}
}

func TestSampleRingWrapsIndices(t *testing.T) {
	ring, err := NewSampleRing(2)
	if err != nil {
		t.Fatalf("NewSampleRing failed: %v", err)
	}

	for tick := uint32(1); tick <= 100; tick++ {
		if !ring.Publish(Sample{Tick: tick}) {
			t.Fatalf("Publish %d failed on a drained ring", tick)
		}
		got := mustPoll(t, ring)
		if got.Tick != tick {
			t.Fatalf("Expected tick %d, got %d", tick, got.Tick)
		}
	}
	if ring.Dropped() != 0 {
		t.Errorf("Expected no drops, got %d", ring.Dropped())
	}
}

func TestSampleRingConcurrentFIFO(t *testing.T) {
	const n = 50000
	ring, err := NewSampleRing(8)
	if err != nil {
		t.Fatalf("NewSampleRing failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var published uint32
	go func() {
		defer wg.Done()
		for tick := uint32(1); tick <= n; tick++ {
			if ring.Publish(Sample{Tick: tick, Frequency: tick ^ 0x5A5A}) {
				published++
			}
		}
		// end marker, retried until accepted
		for !ring.Publish(Sample{Tick: n + 1}) {
		}
	}()

	var last, received uint32
	for {
		s, ok := ring.Poll()
		if !ok {
			continue
		}
		if s.Tick == n+1 {
			break
		}
		if s.Frequency != s.Tick^0x5A5A {
			t.Fatalf("Corrupt sample %+v", s)
		}
		if s.Tick <= last {
			t.Fatalf("Out of order: %d after %d", s.Tick, last)
		}
		last = s.Tick
		received++
	}
	wg.Wait()

	if received != published {
		t.Errorf("Published %d, received %d", published, received)
	}
	if received+ring.Dropped() < n {
		t.Errorf("Lost samples: received %d + dropped %d < %d", received, ring.Dropped(), n)
	}
}
