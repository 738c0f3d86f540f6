package protocol

// InputBuffer is a window over received bytes that a decoder consumes from
// the front
type InputBuffer interface {
	// Data returns the unconsumed bytes
	Data() []byte

	// Available returns len(Data())
	Available() int

	// Pop drops n bytes from the front
	Pop(n int)
}

// OutputBuffer is the sink a block is encoded into. Update lets the encoder
// patch the length byte once the payload is known.
type OutputBuffer interface {
	Output(data []byte)
	CurPosition() int
	Update(pos int, val byte)
	DataSince(pos int) []byte
}

// SliceInputBuffer serves a fixed byte slice
type SliceInputBuffer struct {
	data []byte
}

// NewSliceInputBuffer creates a new SliceInputBuffer
func NewSliceInputBuffer(data []byte) *SliceInputBuffer {
	return &SliceInputBuffer{data: data}
}

func (s *SliceInputBuffer) Data() []byte {
	return s.data
}

func (s *SliceInputBuffer) Available() int {
	return len(s.data)
}

func (s *SliceInputBuffer) Pop(n int) {
	if n > len(s.data) {
		n = len(s.data)
	}
	s.data = s.data[n:]
}

// ScratchOutput is a fixed-size OutputBuffer large enough for one block.
// Writes past the end are truncated.
type ScratchOutput struct {
	buf [MessageLengthMax]byte
	pos int
}

// NewScratchOutput creates a new ScratchOutput
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	s.pos += copy(s.buf[s.pos:], data)
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < s.pos {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result returns the bytes written since the last Reset
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset empties the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// StreamBuffer accumulates bytes read from a port until the decoder can use
// them. Consumed bytes are compacted away on the next Write so Data never
// allocates.
type StreamBuffer struct {
	buf   []byte
	start int
	end   int
}

// NewStreamBuffer creates a StreamBuffer holding up to capacity bytes
func NewStreamBuffer(capacity int) *StreamBuffer {
	return &StreamBuffer{buf: make([]byte, capacity)}
}

// Write appends as much of data as fits and returns the number of bytes
// taken
func (b *StreamBuffer) Write(data []byte) int {
	if b.start > 0 {
		copy(b.buf, b.buf[b.start:b.end])
		b.end -= b.start
		b.start = 0
	}
	n := copy(b.buf[b.end:], data)
	b.end += n
	return n
}

func (b *StreamBuffer) Data() []byte {
	return b.buf[b.start:b.end]
}

func (b *StreamBuffer) Available() int {
	return b.end - b.start
}

func (b *StreamBuffer) Pop(n int) {
	if n > b.Available() {
		n = b.Available()
	}
	b.start += n
	if b.start == b.end {
		b.start, b.end = 0, 0
	}
}

// Free returns the space left for Write
func (b *StreamBuffer) Free() int {
	return len(b.buf) - b.Available()
}

// Reset discards all buffered bytes
func (b *StreamBuffer) Reset() {
	b.start, b.end = 0, 0
}
