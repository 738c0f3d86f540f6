//go:build rp2040

package main

import (
	"machine"
	"strconv"
	"time"

	pio "github.com/tinygo-org/pio/rp2-pio"
	"github.com/tinygo-org/pio/rp2-pio/piolib"

	"freqcounter/core"
)

// Self-test: a PIO state machine emits a known square wave on selfTestPin.
// Jumper it to the counting pin and the readings should match
// selfTestFrequency.
const (
	selfTestPin       = machine.GPIO6
	selfTestFrequency = 10000 // Hz

	// Pulsar counts are 32-bit; this keeps it running for days
	selfTestPulses = 0xFFFFFFFF
)

var selfTestPassed bool

func startSelfTest() error {
	sm, err := pio.PIO0.ClaimStateMachine()
	if err != nil {
		return err
	}
	p, err := piolib.NewPulsar(sm, selfTestPin)
	if err != nil {
		return err
	}
	if err := p.SetPeriod(time.Second / selfTestFrequency); err != nil {
		return err
	}
	return p.TryQueue(selfTestPulses)
}

// selfTestCheck compares a reading against the PIO source and reports the
// first match or mismatch
type selfTestCheck struct {
	next     core.Renderer
	reported bool
}

func (s *selfTestCheck) Render(frequency uint32, mode core.DisplayMode) error {
	if !s.reported && frequency != 0 {
		s.reported = true
		diff := int64(frequency) - selfTestFrequency
		selfTestPassed = diff >= -1 && diff <= 1
		if selfTestPassed {
			core.DebugPrintln("[selftest] pass")
		} else {
			core.DebugPrintln("[selftest] FAIL: expected 10000 Hz, got " + strconv.FormatUint(uint64(frequency), 10))
		}
	}
	return s.next.Render(frequency, mode)
}
