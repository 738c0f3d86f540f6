//go:build rp2040

package main

import (
	"machine"

	"freqcounter/core"
)

// InitUSB configures machine.Serial, which is USB CDC on the RP2040.
// The descriptors come from the TinyGo runtime.
func InitUSB() {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
}

// InitDebug routes core debug output to the USB serial
func InitDebug(enabled bool) {
	core.SetDebugWriter(func(s string) {
		machine.Serial.Write([]byte(s))
		machine.Serial.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(enabled)
}
