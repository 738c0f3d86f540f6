//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/ssd1306"

	"freqcounter/core"
	"freqcounter/render"
)

// I2C0 on GP4/GP5 is shared by the display and the Si5351
const (
	displayWidth  = 128
	displayHeight = 64

	// Frequency that fills the bar graph
	graphicFullScale = 100000
)

var i2cReady bool

func initI2C() error {
	if i2cReady {
		return nil
	}
	err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GPIO4,
		SCL:       machine.GPIO5,
	})
	if err != nil {
		return err
	}
	i2cReady = true
	return nil
}

// InitDisplay brings up the SSD1306 and returns it blank
func InitDisplay() (*ssd1306.Device, error) {
	if err := initI2C(); err != nil {
		return nil, err
	}
	d := ssd1306.NewI2C(machine.I2C0)
	d.Configure(ssd1306.Config{
		Width:    displayWidth,
		Height:   displayHeight,
		Address:  0x3C, // Most 128x64 modules strap SA0 low
		VccState: ssd1306.SWITCHCAPVCC,
	})
	d.ClearDisplay()
	return d, nil
}

// buildRenderer wires the renderer for the boot display mode. Text is
// always available so debug and fallbacks have somewhere to go.
func buildRenderer(mode core.DisplayMode) core.Renderer {
	sw := &render.Switch{Text: render.NewText(machine.Serial)}
	switch mode {
	case core.ModeGraphic:
		d, err := InitDisplay()
		if err != nil {
			core.Fatal("display: " + err.Error())
		}
		sw.Graphic = render.NewGraphic(d, graphicFullScale)
	case core.ModeFrame:
		sw.Frame = render.NewFrame(machine.Serial)
	}
	return sw
}

// pinTrace records the counting pin level with every forwarded sample
type pinTrace struct {
	next    core.Renderer
	counter *PWMCounter
}

func (p pinTrace) Render(frequency uint32, mode core.DisplayMode) error {
	var level uint32
	if p.counter.Level() {
		level = 1
	}
	core.RecordEvent(core.EvtPinLevel, level, frequency)
	return p.next.Render(frequency, mode)
}
