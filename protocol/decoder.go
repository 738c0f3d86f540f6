package protocol

import "errors"

var (
	ErrFrameLength    = errors.New("protocol: block length out of range")
	ErrFrameDest      = errors.New("protocol: bad sequence byte")
	ErrFrameSync      = errors.New("protocol: missing trailing sync byte")
	ErrFrameCRC       = errors.New("protocol: CRC mismatch")
	ErrFrameShort     = errors.New("protocol: incomplete block")
	ErrUnknownMessage = errors.New("protocol: unknown message ID")
)

// DecodeBlock validates the block at the front of data and returns it with
// its total length. ErrFrameShort means more bytes are needed; any other
// error means data does not start with a block.
func DecodeBlock(data []byte) (Block, int, error) {
	if len(data) < MessageLengthMin {
		return Block{}, 0, ErrFrameShort
	}

	msgLen := int(data[MessagePositionLen])
	if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
		return Block{}, 0, ErrFrameLength
	}

	seq := data[MessagePositionSeq]
	if seq&^MessageSeqMask != MessageDest {
		return Block{}, 0, ErrFrameDest
	}

	if len(data) < msgLen {
		return Block{}, 0, ErrFrameShort
	}

	if data[msgLen-MessageTrailerSync] != MessageValueSync {
		return Block{}, 0, ErrFrameSync
	}

	frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
		uint16(data[msgLen-MessageTrailerCRC+1])
	if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
		return Block{}, 0, ErrFrameCRC
	}

	return Block{
		Length:   uint8(msgLen),
		Sequence: seq,
		Payload:  data[MessageHeaderSize : msgLen-MessageTrailerSize],
		CRC:      frameCRC,
	}, msgLen, nil
}

// DecoderStats counts what the decoder has seen
type DecoderStats struct {
	Blocks    uint32 // Valid blocks delivered
	Rejected  uint32 // Candidate blocks that failed validation
	Discarded uint32 // Bytes skipped while hunting for a sync byte
}

// Decoder splits a byte stream into validated blocks. After a bad block it
// skips to the next sync byte and carries on.
type Decoder struct {
	synced  bool
	handler func(Block)
	stats   DecoderStats
}

// NewDecoder creates a decoder calling handler for every valid block. The
// block payload is only valid for the duration of the call.
func NewDecoder(handler func(Block)) *Decoder {
	return &Decoder{synced: true, handler: handler}
}

// Receive consumes as many complete blocks from input as possible
func (d *Decoder) Receive(input InputBuffer) {
	data := input.Data()

	for len(data) > 0 {
		if !d.synced {
			i := 0
			for i < len(data) && data[i] != MessageValueSync {
				i++
			}
			d.stats.Discarded += uint32(i)
			if i == len(data) {
				data = nil
				break
			}
			data = data[i+1:]
			d.synced = true
			continue
		}

		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		block, n, err := DecodeBlock(data)
		if err == ErrFrameShort {
			break
		}
		if err != nil {
			d.stats.Rejected++
			d.synced = false
			continue
		}

		data = data[n:]
		d.stats.Blocks++
		if d.handler != nil {
			d.handler(block)
		}
	}

	if consumed := input.Available() - len(data); consumed > 0 {
		input.Pop(consumed)
	}
}

// Stats returns the decoder counters
func (d *Decoder) Stats() DecoderStats {
	return d.stats
}

// Reset drops sync state and counters
func (d *Decoder) Reset() {
	d.synced = true
	d.stats = DecoderStats{}
}

// ParseSample decodes a MsgSample block
func ParseSample(b Block) (SampleMessage, error) {
	payload := b.Payload
	msgID, err := DecodeVLQUint(&payload)
	if err != nil {
		return SampleMessage{}, err
	}
	if msgID != MsgSample {
		return SampleMessage{}, ErrUnknownMessage
	}
	count, err := DecodeVLQUint(&payload)
	if err != nil {
		return SampleMessage{}, err
	}
	freq, err := DecodeVLQUint(&payload)
	if err != nil {
		return SampleMessage{}, err
	}
	return SampleMessage{
		Sequence:  b.Sequence & MessageSeqMask,
		Count:     count,
		Frequency: freq,
	}, nil
}
