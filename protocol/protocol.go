// Package protocol frames trace lines for transmission to a host.
//
// A trace block uses the same envelope as Klipper message blocks:
//
//	<len> <seq> <payload ...> <crc16 hi> <crc16 lo> 0x7E
//
// len counts the whole block, seq carries a 4-bit rolling sequence in its low
// nibble with MessageDest in the high nibble, and the payload is one
// VLQ-encoded string.
package protocol

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

	MessageSeqMask = 0x0F

	// MaxTraceLine is the longest line a single block can carry: the block
	// limit minus the envelope and a one-byte VLQ length.
	MaxTraceLine = MessageLengthMax - MessageLengthMin - 1
)
