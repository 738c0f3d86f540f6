package protocol

// Encoder writes message blocks to an OutputBuffer. Each block carries the
// next sequence number so the receiver can notice lost blocks.
type Encoder struct {
	output OutputBuffer
	seq    uint8
}

// NewEncoder creates an encoder starting at sequence MessageDest
func NewEncoder(output OutputBuffer) *Encoder {
	return &Encoder{output: output, seq: MessageDest}
}

// EncodeFrame writes one block whose payload is produced by frameData
func (e *Encoder) EncodeFrame(frameData func(output OutputBuffer)) {
	cursor := e.output.CurPosition()

	// Length is patched once the payload size is known
	e.output.Output([]byte{0, e.seq})
	frameData(e.output)

	n := len(e.output.DataSince(cursor))
	e.output.Update(cursor, uint8(n+MessageTrailerSize))

	crc := CRC16(e.output.DataSince(cursor))
	e.output.Output([]byte{
		uint8(crc >> 8),
		uint8(crc),
		MessageValueSync,
	})

	e.seq = ((e.seq + 1) & MessageSeqMask) | MessageDest
}

// SendMessage writes a block holding one message
func (e *Encoder) SendMessage(msgID uint32, args func(output OutputBuffer)) {
	e.EncodeFrame(func(output OutputBuffer) {
		EncodeVLQUint(output, msgID)
		if args != nil {
			args(output)
		}
	})
}

// EncodeSample writes a MsgSample block
func (e *Encoder) EncodeSample(count, frequency uint32) {
	e.SendMessage(MsgSample, func(output OutputBuffer) {
		EncodeVLQUint(output, count)
		EncodeVLQUint(output, frequency)
	})
}

// Sequence returns the sequence byte of the next block
func (e *Encoder) Sequence() uint8 {
	return e.seq
}
