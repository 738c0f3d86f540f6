//go:build rp2040

package main

import (
	"machine"

	"freqcounter/core"
)

// Boot strap pins, read once with pull-ups. Tie a pin to ground to select
// the option.
const (
	strapGraphic   = machine.GPIO14 // Render on the SSD1306
	strapFrame     = machine.GPIO15 // CRC framed output for freqmon
	strapQueue     = machine.GPIO13 // Bounded queue instead of latest-only
	strapSelfTest  = machine.GPIO12 // PIO pulse source on selfTestPin
	strapReference = machine.GPIO11 // Si5351 reference on CLK0
	strapDebug     = machine.GPIO10 // Debug lines on the USB serial
)

// ModeConfig is the boot-time selection
type ModeConfig struct {
	Display   core.DisplayMode
	Policy    core.ChannelPolicy
	SelfTest  bool
	Reference bool
	Debug     bool
}

// GetMode samples the strap pins. Graphic wins if both display straps are
// set.
func GetMode() ModeConfig {
	mode := ModeConfig{
		Display: core.ModeText,
		Policy:  core.PolicyLatest,
	}
	if strapped(strapFrame) {
		mode.Display = core.ModeFrame
	}
	if strapped(strapGraphic) {
		mode.Display = core.ModeGraphic
	}
	if strapped(strapQueue) {
		mode.Policy = core.PolicyQueue
	}
	mode.SelfTest = strapped(strapSelfTest)
	mode.Reference = strapped(strapReference)
	mode.Debug = strapped(strapDebug)
	return mode
}

func strapped(pin machine.Pin) bool {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return !pin.Get()
}
