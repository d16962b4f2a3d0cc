package protocol

import "errors"

var (
	ErrInvalidVLQ     = errors.New("invalid VLQ encoding")
	ErrBufferTooSmall = errors.New("buffer too small for VLQ")
)

// EncodeVLQInt writes v as a Klipper-style VLQ: 7 bits per byte, most
// significant group first, continuation bit 0x80. Values in [-32, 96) fit
// in one byte.
func EncodeVLQInt(output OutputBuffer, v int32) {
	var buf [5]byte
	n := 0
	for shift := uint(28); shift >= 7; shift -= 7 {
		bound := int32(1) << (shift - 2)
		if v < -bound || v >= 3*bound {
			buf[n] = byte(v>>shift)&0x7F | 0x80
			n++
		}
	}
	buf[n] = byte(v) & 0x7F
	output.Output(buf[:n+1])
}

func EncodeVLQUint(output OutputBuffer, v uint32) {
	EncodeVLQInt(output, int32(v))
}

// DecodeVLQInt decodes one VLQ value and advances data past it.
func DecodeVLQInt(data *[]byte) (int32, error) {
	buf := *data
	if len(buf) == 0 {
		return 0, ErrBufferTooSmall
	}

	c := uint32(buf[0])
	v := c & 0x7F
	if c&0x60 == 0x60 {
		// Negative: extend the sign of the first group
		v |= ^uint32(0x1F)
	}
	i := 1
	for ; c&0x80 != 0; i++ {
		if i >= len(buf) {
			return 0, ErrBufferTooSmall
		}
		c = uint32(buf[i])
		v = v<<7 | c&0x7F
	}

	*data = buf[i:]
	return int32(v), nil
}

// EncodeVLQString writes a length-prefixed string.
func EncodeVLQString(output OutputBuffer, s string) {
	EncodeVLQUint(output, uint32(len(s)))
	output.Output([]byte(s))
}

// DecodeVLQString reads a length-prefixed string and advances data past it.
func DecodeVLQString(data *[]byte) (string, error) {
	n, err := DecodeVLQInt(data)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", ErrInvalidVLQ
	}
	if len(*data) < int(n) {
		return "", ErrBufferTooSmall
	}
	s := string((*data)[:n])
	*data = (*data)[n:]
	return s, nil
}
