package render

import (
	"io"

	"freqcounter/core"
	"freqcounter/protocol"
)

// Frame writes each sample as a CRC protected MsgSample block. The block
// count lets the host detect samples lost on the link.
type Frame struct {
	w     io.Writer
	out   *protocol.ScratchOutput
	enc   *protocol.Encoder
	count uint32
}

// NewFrame creates a frame renderer writing to w
func NewFrame(w io.Writer) *Frame {
	out := protocol.NewScratchOutput()
	return &Frame{
		w:   w,
		out: out,
		enc: protocol.NewEncoder(out),
	}
}

func (f *Frame) Render(frequency uint32, _ core.DisplayMode) error {
	f.count++
	f.out.Reset()
	f.enc.EncodeSample(f.count, frequency)
	_, err := f.w.Write(f.out.Result())
	return err
}

// Count returns the number of blocks written
func (f *Frame) Count() uint32 {
	return f.count
}
