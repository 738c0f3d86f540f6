//go:build rp2040

package main

import (
	"device/rp"
	"runtime/interrupt"
	"runtime/volatile"
	"time"
	"unsafe"

	"freqcounter/core"
)

// RP2040 timer peripheral. The runtime owns ALARM0, the sample tick uses
// ALARM3.
const (
	timerBase     = 0x40054000
	timerALARM3   = timerBase + 0x1C
	timerTIMERAWH = timerBase + 0x24
	timerTIMERAWL = timerBase + 0x28
	timerINTR     = timerBase + 0x34
	timerINTE     = timerBase + 0x38

	tickAlarm = 3
)

var (
	timerRAWH   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
	timerAlarm3 = (*volatile.Register32)(unsafe.Pointer(uintptr(timerALARM3)))
	timerIntr   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTR)))
	timerInte   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTE)))

	alarmPeriod uint32
	alarmNext   uint32
)

// InitClock checks that the runtime left the timer ticking. The clock tree
// itself is configured by the TinyGo runtime before main: a 1 MHz timer
// tick from the 12 MHz crystal.
func InitClock() {
	t0 := GetHardwareTime()
	for i := 0; i < 1000 && GetHardwareTime() == t0; i++ {
	}
	if GetHardwareTime() == t0 {
		core.Fatal("clock: timer is not running")
	}
}

// GetHardwareTime returns the low 32 bits of the microsecond timer
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// GetHardwareUptime reads the 64-bit timer. High, low, high: if the high
// word moved the low word wrapped in between and the read is retried.
func GetHardwareUptime() uint64 {
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()
		if high1 == high2 {
			return uint64(high1)<<32 | uint64(low)
		}
	}
}

// startTickAlarm arms ALARM3 to fire every period
func startTickAlarm(period time.Duration) error {
	ticks, err := core.TimerFromDuration(period)
	if err != nil {
		return err
	}
	alarmPeriod = ticks

	irq := interrupt.New(rp.IRQ_TIMER_IRQ_3, tickIRQ)
	irq.SetPriority(tickIRQPriority)

	timerIntr.Set(1 << tickAlarm)
	timerInte.SetBits(1 << tickAlarm)
	alarmNext = GetHardwareTime() + alarmPeriod
	timerAlarm3.Set(alarmNext)
	irq.Enable()
	return nil
}

// tickIRQ rearms the alarm and runs the sample tick. A late handler that
// has already missed its next target rearms from now; skipped ticks are
// not made up.
func tickIRQ(interrupt.Interrupt) {
	timerIntr.Set(1 << tickAlarm)

	alarmNext += alarmPeriod
	now := GetHardwareTime()
	if int32(alarmNext-now) <= 0 {
		alarmNext = now + alarmPeriod
	}
	timerAlarm3.Set(alarmNext)

	sampler.HandleTick()
}
