package render

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"

	"freqcounter/core"
)

// Layout of the graphic view, in pixels
const (
	graphicValueY   = 20 // Baseline of the value
	graphicBarH     = 10
	graphicBarInset = 2
)

var (
	colorOn  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorOff = color.RGBA{A: 255}
)

// Graphic draws the value and a proportional bar on a pixel display.
// The bar is full at FullScale and clamps above it.
type Graphic struct {
	d         drivers.Displayer
	font      *tinyfont.Font
	FullScale uint32
	buf       []byte
}

// NewGraphic creates a graphic renderer. fullScale 0 is treated as 1.
func NewGraphic(d drivers.Displayer, fullScale uint32) *Graphic {
	if fullScale == 0 {
		fullScale = 1
	}
	return &Graphic{
		d:         d,
		font:      &freemono.Regular9pt7b,
		FullScale: fullScale,
		buf:       make([]byte, 0, 16),
	}
}

func (g *Graphic) Render(frequency uint32, _ core.DisplayMode) error {
	w, h := g.d.Size()
	g.clear(w, h)

	g.buf = AppendValue(g.buf[:0], frequency)
	tinyfont.WriteLine(g.d, g.font, 0, graphicValueY, string(g.buf), colorOn)

	// Bar along the bottom edge
	barW := BarWidth(frequency, g.FullScale, w)
	y0 := h - graphicBarH
	for y := y0 + graphicBarInset; y < h; y++ {
		for x := int16(0); x < barW; x++ {
			g.d.SetPixel(x, y, colorOn)
		}
	}

	return g.d.Display()
}

// clear blanks the frame buffer, using the driver's own clear when it has one
func (g *Graphic) clear(w, h int16) {
	if c, ok := g.d.(interface{ ClearBuffer() }); ok {
		c.ClearBuffer()
		return
	}
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			g.d.SetPixel(x, y, colorOff)
		}
	}
}

// BarWidth scales frequency to a bar of at most width pixels
func BarWidth(frequency, fullScale uint32, width int16) int16 {
	if width <= 0 || fullScale == 0 {
		return 0
	}
	if frequency >= fullScale {
		return width
	}
	return int16(uint64(frequency) * uint64(width) / uint64(fullScale))
}
