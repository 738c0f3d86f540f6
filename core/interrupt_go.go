//go:build !tinygo

package core

import "runtime"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// disableInterrupts is a no-op on regular Go (for testing)
func disableInterrupts() State {
	return 0
}

// waitForInterrupt yields to the goroutines standing in for interrupts
func waitForInterrupt() {
	runtime.Gosched()
}

// halt stops the program. On regular Go this panics so tests can observe it.
func halt(reason string) {
	panic("halt: " + reason)
}
