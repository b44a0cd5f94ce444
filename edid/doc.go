// Package edid provides EDID block validation, E-DDC segment addressing and
// parsing of EDID dumps.
//
// # EDID Layout
//
// An EDID is a sequence of 128-byte blocks. Block 0 (the base block) starts
// with the fixed header pattern and carries the number of extension blocks
// in byte 126. Every block's bytes sum to zero modulo 256.
//
// # E-DDC Addressing
//
// Classic DDC reaches blocks 0 and 1 at I2C address 0x50. Further blocks
// are selected by writing a segment number to address 0x30; each segment
// spans two blocks:
//
//	segment, offset := edid.SegmentOf(3) // segment 1, offset 128
//
// # Usage
//
// Parse a dump from disk:
//
//	e, err := edid.Parse("/sys/class/drm/card0-DP-1/edid")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s, %d blocks\n", e.Info, len(e.Blocks))
//
// Validate a block read from the bus:
//
//	var b edid.Block
//	copy(b[:], buf)
//	if err := b.Validate(0); err != nil {
//	    // errors.Is(err, protocol.ErrEDIDChecksum)
//	}
package edid
