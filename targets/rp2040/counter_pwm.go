//go:build rp2040

package main

import (
	"device/rp"
	"errors"
	"machine"
	"runtime/volatile"
	"unsafe"

	"freqcounter/core"
)

var (
	errCounterPin = errors.New("counter: pin is not a PWM channel B input")
	errCounterTop = errors.New("counter: top exceeds the 16-bit PWM counter")
)

// pwmSliceRegs overlays the five registers of one PWM slice. Slices are
// laid out back to back from CH0_CSR, 0x14 bytes apart.
type pwmSliceRegs struct {
	CSR volatile.Register32
	DIV volatile.Register32
	CTR volatile.Register32
	CC  volatile.Register32
	TOP volatile.Register32
}

const pwmSliceStride = 0x14

func pwmSlice(n uint8) *pwmSliceRegs {
	return (*pwmSliceRegs)(unsafe.Add(unsafe.Pointer(&rp.PWM.CH0_CSR), uintptr(n)*pwmSliceStride))
}

// PWMCounter implements core.CounterDriver with a PWM slice in DIVMODE_RISE:
// the counter advances once per rising edge on the slice's B pin and raises
// the wrap flag when it passes TOP.
type PWMCounter struct {
	pin   machine.Pin
	slice uint8
	regs  *pwmSliceRegs
	mask  uint32 // Slice bit in EN/INTR/INTE
	top   uint32
}

// NewPWMCounter returns a counter on pin, which must be odd (channel B)
func NewPWMCounter(pin machine.Pin) *PWMCounter {
	slice := uint8(pin>>1) & 0x7
	return &PWMCounter{
		pin:   pin,
		slice: slice,
		regs:  pwmSlice(slice),
		mask:  1 << slice,
	}
}

func (c *PWMCounter) Configure(cfg core.CounterConfig) error {
	if c.pin&1 == 0 {
		return errCounterPin
	}
	if cfg.Top > 0xFFFF {
		return errCounterTop
	}

	c.regs.CSR.Set(0)
	c.pin.Configure(machine.PinConfig{Mode: machine.PinPWM})

	// Integer divider 1: every edge counts
	c.regs.DIV.Set(1 << rp.PWM_CH0_DIV_INT_Pos)
	c.regs.TOP.Set(cfg.Top)
	c.regs.CC.Set(0)
	c.regs.CSR.Set(rp.PWM_CH0_CSR_DIVMODE_RISE << rp.PWM_CH0_CSR_DIVMODE_Pos)

	c.top = cfg.Top
	return nil
}

func (c *PWMCounter) Start() {
	rp.PWM.INTE.SetBits(c.mask)
	c.regs.CSR.SetBits(rp.PWM_CH0_CSR_EN)
}

func (c *PWMCounter) Count() uint32 {
	return c.regs.CTR.Get() & 0xFFFF
}

func (c *PWMCounter) SetCount(v uint32) {
	c.regs.CTR.Set(v)
}

func (c *PWMCounter) OverflowPending() bool {
	return rp.PWM.INTR.Get()&c.mask != 0
}

// ClearOverflow acknowledges the wrap; INTR is write-1-to-clear
func (c *PWMCounter) ClearOverflow() {
	rp.PWM.INTR.Set(c.mask)
}

func (c *PWMCounter) Modulus() uint32 {
	return c.top + 1
}

// Level returns the current input level of the counting pin
func (c *PWMCounter) Level() bool {
	return c.pin.Get()
}
