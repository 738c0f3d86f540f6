// Package render holds the renderers the foreground consumer forwards
// frequencies to.
package render

import (
	"errors"
	"strconv"

	"freqcounter/core"
)

var ErrNoRenderer = errors.New("render: no renderer for display mode")

// Unit is appended to every rendered value
const Unit = "Hz"

// AppendValue appends "<frequency> Hz" to dst
func AppendValue(dst []byte, frequency uint32) []byte {
	dst = strconv.AppendUint(dst, uint64(frequency), 10)
	dst = append(dst, ' ')
	return append(dst, Unit...)
}

// Switch routes each render to the renderer registered for its mode
type Switch struct {
	Text    core.Renderer
	Graphic core.Renderer
	Frame   core.Renderer
}

func (s *Switch) Render(frequency uint32, mode core.DisplayMode) error {
	var r core.Renderer
	switch mode {
	case core.ModeText:
		r = s.Text
	case core.ModeGraphic:
		r = s.Graphic
	case core.ModeFrame:
		r = s.Frame
	}
	if r == nil {
		return ErrNoRenderer
	}
	return r.Render(frequency, mode)
}
