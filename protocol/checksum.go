package protocol

// Checksum computes the DDC/CI frame checksum: the XOR of seed and every byte
// in data.
//
// For host-to-display frames the seed is DisplayAddress and data covers the
// sub-address, length byte and payload. For replies the seed is HostAddress and
// data covers the source address, length byte and payload.
func Checksum(seed byte, data []byte) byte {
	sum := seed
	for _, b := range data {
		sum ^= b
	}
	return sum
}
