package protocol

const crc16Init = 0xFFFF

// CRC16 returns the block checksum carried in the trailer. It is the
// byte-wise CCITT variant Klipper uses, starting from 0xFFFF.
func CRC16(data []byte) uint16 {
	crc := uint16(crc16Init)
	for _, b := range data {
		crc = crc16Step(crc, b)
	}
	return crc
}

func crc16Step(crc uint16, b byte) uint16 {
	b ^= byte(crc)
	b ^= b << 4
	w := uint16(b)
	return (w<<8 | crc>>8) ^ w>>4 ^ w<<3
}
