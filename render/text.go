package render

import (
	"io"

	"freqcounter/core"
)

// Text writes one "<frequency> Hz\r\n" line per sample. A reader can split
// on the 'z' of the unit as well as on the line break.
type Text struct {
	w   io.Writer
	buf []byte
}

// NewText creates a text renderer writing to w
func NewText(w io.Writer) *Text {
	return &Text{w: w, buf: make([]byte, 0, 24)}
}

// Render writes the line regardless of mode
func (t *Text) Render(frequency uint32, _ core.DisplayMode) error {
	t.buf = AppendValue(t.buf[:0], frequency)
	t.buf = append(t.buf, '\r', '\n')
	_, err := t.w.Write(t.buf)
	return err
}
