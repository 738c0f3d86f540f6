//go:build tinygo

package core

import (
	"device/arm"
	"runtime/interrupt"
)

// disableInterrupts disables interrupts and returns the previous state
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// waitForInterrupt parks the core until any interrupt is taken
func waitForInterrupt() {
	arm.Asm("wfi")
}

// halt never returns. Interrupts are already off, so the core sleeps for good.
func halt(reason string) {
	for {
		arm.Asm("wfi")
	}
}
