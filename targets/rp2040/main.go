//go:build rp2040

package main

import (
	"device/rp"
	"errors"
	"machine"
	"runtime/interrupt"
	"strconv"

	"freqcounter/core"
)

// Counting input: GP3 is PWM slice 1 channel B
const countPin = machine.GPIO3

// Interrupt priorities, lower is more urgent. The wrap must be able to
// preempt the sample tick so the consistent read sees it.
const (
	wrapIRQPriority = 0x40
	tickIRQPriority = 0x80
)

var errNoReference = errors.New("refclock: Si5351 not responding")

var (
	counter *PWMCounter
	sampler *core.Sampler
)

func main() {
	InitUSB()
	mode := GetMode()
	InitDebug(mode.Debug)
	InitClock()

	cfg := core.DefaultConfig()
	cfg.Mode = mode.Display
	cfg.Policy = mode.Policy
	if err := cfg.Validate(); err != nil {
		core.Fatal("config: " + err.Error())
	}

	ch, err := core.NewChannel(cfg.Policy, cfg.QueueCapacity)
	if err != nil {
		core.Fatal("channel: " + err.Error())
	}

	counter = NewPWMCounter(countPin)
	if err := core.ConfigurePulseCounter(counter, cfg.Counter); err != nil {
		core.Fatal("counter: " + err.Error())
	}

	sampler, err = core.NewSampler(counter, ch, cfg)
	if err != nil {
		core.Fatal("sampler: " + err.Error())
	}

	var r core.Renderer = pinTrace{next: buildRenderer(cfg.Mode), counter: counter}

	if mode.SelfTest {
		if err := startSelfTest(); err != nil {
			core.Fatal("selftest: " + err.Error())
		}
		r = &selfTestCheck{next: r}
	}
	if mode.Reference {
		if err := startReference(); err != nil {
			core.Fatal("refclock: " + err.Error())
		}
	}

	wrap := interrupt.New(rp.IRQ_PWM_IRQ_WRAP, wrapIRQ)
	wrap.SetPriority(wrapIRQPriority)
	wrap.Enable()

	if err := startTickAlarm(cfg.TickPeriod); err != nil {
		core.Fatal("tick: " + err.Error())
	}

	core.DebugPrintln("[boot] mode=" + cfg.Mode.String() +
		" window_ms=" + strconv.FormatInt(sampler.Window().Milliseconds(), 10) +
		" uptime_us=" + strconv.FormatUint(GetHardwareUptime(), 10))

	core.NewConsumer(ch, r, cfg.Mode).Every(cfg.DisplayEvery).Run()
}

// wrapIRQ services the shared PWM wrap interrupt. Only the counting slice
// has its wrap interrupt enabled.
func wrapIRQ(interrupt.Interrupt) {
	sampler.HandleOverflow()
}
