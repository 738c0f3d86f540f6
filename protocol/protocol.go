// Package protocol implements the framed message format used to report
// frequency samples from the counter to the host monitor.
//
// A block is [len][seq][payload...][crc hi][crc lo][0x7E], where len covers
// the whole block and the CRC covers len, seq and the payload. The payload is
// a VLQ message ID followed by VLQ encoded arguments.
package protocol

// Version is the protocol version reported by the host tool
const Version = "0.1.0"

// Block layout
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10
	MessageSeqMask     = 0x0F
)

// Message IDs
const (
	MsgSample = 1 // count, frequency
)

// Block is one validated message block
type Block struct {
	Length   uint8
	Sequence uint8
	Payload  []byte // Bytes between header and trailer
	CRC      uint16
}

// SampleMessage is the decoded payload of MsgSample
type SampleMessage struct {
	Sequence  uint8  // Low nibble of the block sequence
	Count     uint32 // Samples rendered by the counter since boot
	Frequency uint32
}
