package edid

import (
	"fmt"

	"github.com/moffa90/go-ddcci/protocol"
)

// EDID layout constants.
const (
	// BlockSize is the size of one EDID block in bytes
	BlockSize = 128

	// MaxBlocks is the number of addressable blocks (base block plus 254 extensions)
	MaxBlocks = 255

	// BlocksPerSegment is the number of blocks behind one E-DDC segment pointer value
	BlocksPerSegment = 2

	// ExtensionCountOffset is the base block byte holding the extension count
	ExtensionCountOffset = 126

	// ChecksumOffset is the byte that makes the block sum to zero
	ChecksumOffset = 127
)

// Block is one 128-byte EDID block. Block 0 is the base block; blocks 1..254
// are extensions.
type Block [BlockSize]byte

// Sum returns the byte sum of the block modulo 256. Valid blocks sum to zero.
func (b *Block) Sum() byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}

// Valid reports whether the block checksum is correct.
func (b *Block) Valid() bool {
	return b.Sum() == 0
}

// Validate returns an ErrEDIDChecksum protocol error if the block at index
// does not sum to zero.
func (b *Block) Validate(index int) error {
	if sum := b.Sum(); sum != 0 {
		return &protocol.ProtocolError{
			Operation: fmt.Sprintf("edid block %d", index),
			Code:      protocol.ErrEDIDChecksum,
			Detail:    fmt.Sprintf("bytes sum to 0x%02X", sum),
		}
	}
	return nil
}

// UpdateChecksum rewrites the last byte so the block sums to zero.
func (b *Block) UpdateChecksum() {
	b[ChecksumOffset] = 0
	b[ChecksumOffset] = -b.Sum()
}

// ExtensionCount returns the number of extension blocks declared by a base block.
func (b *Block) ExtensionCount() int {
	return int(b[ExtensionCountOffset])
}

// Tag returns the extension tag of an extension block.
func (b *Block) Tag() byte {
	return b[0]
}

// SegmentOf returns the E-DDC segment pointer and the byte offset within that
// segment for a block index. Block 3, for example, is segment 1, offset 128.
func SegmentOf(index int) (segment, offset byte) {
	return byte(index / BlocksPerSegment), byte(index%BlocksPerSegment) * BlockSize
}

// NeedsSegment reports whether reading block index requires writing the
// segment pointer. Blocks 0 and 1 are reachable with classic DDC.
func NeedsSegment(index int) bool {
	return index >= BlocksPerSegment
}
