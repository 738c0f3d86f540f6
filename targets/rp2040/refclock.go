//go:build rp2040

package main

import (
	"machine"

	"github.com/chiefMarlin/tinygo-drivers/si5351"
)

// Si5351 reference source on CLK0 for bench checks. PLL A at 24 × 25 MHz =
// 600 MHz, divided by 600 for 1 MHz.
const (
	refPLLMul = 24
	refDiv    = 600
)

func startReference() error {
	if err := initI2C(); err != nil {
		return err
	}

	clockgen := si5351.New(machine.I2C0)

	connected, err := clockgen.Connected()
	if err != nil {
		return err
	}
	if !connected {
		return errNoReference
	}

	if err := clockgen.Configure(); err != nil {
		return err
	}
	if err := clockgen.ConfigurePLL(si5351.PLL_A, refPLLMul, 0, 1); err != nil {
		return err
	}
	if err := clockgen.ConfigureMultisynth(0, si5351.PLL_A, refDiv, 0, 1); err != nil {
		return err
	}
	return clockgen.EnableOutputs()
}
