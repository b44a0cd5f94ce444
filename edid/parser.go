package edid

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// EDID is a complete, validated EDID: the base block and its extensions.
type EDID struct {
	// Info is decoded from the base block
	Info *Info

	// Blocks holds the base block followed by every extension block
	Blocks []Block
}

// Bytes returns the concatenated blocks.
func (e *EDID) Bytes() []byte {
	out := make([]byte, 0, len(e.Blocks)*BlockSize)
	for i := range e.Blocks {
		out = append(out, e.Blocks[i][:]...)
	}
	return out
}

// Parse parses an EDID dump from the given file path, such as
// /sys/class/drm/card0-DP-1/edid.
//
// Example:
//
//	e, err := edid.Parse("/sys/class/drm/card0-DP-1/edid")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(e.Info)
func Parse(path string) (*EDID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses an EDID dump from any io.Reader. Both raw binary dumps
// and hex text (as printed by xrandr --verbose or edid-decode) are accepted.
func ParseReader(r io.Reader) (*EDID, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read EDID: %w", err)
	}

	if isHexText(data) {
		data, err = decodeHexText(data)
		if err != nil {
			return nil, err
		}
	}

	return ParseBytes(data)
}

// ParseBytes parses a raw binary EDID. Every block must pass its checksum and
// the base block's extension count must match the number of blocks present.
func ParseBytes(data []byte) (*EDID, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty EDID")
	}
	if len(data)%BlockSize != 0 {
		return nil, fmt.Errorf("EDID length %d is not a multiple of %d", len(data), BlockSize)
	}

	count := len(data) / BlockSize
	if count > MaxBlocks {
		return nil, fmt.Errorf("EDID has %d blocks, maximum is %d", count, MaxBlocks)
	}

	blocks := make([]Block, count)
	for i := range blocks {
		copy(blocks[i][:], data[i*BlockSize:])
		if err := blocks[i].Validate(i); err != nil {
			return nil, err
		}
	}

	info, err := ParseHeader(&blocks[0])
	if err != nil {
		return nil, fmt.Errorf("failed to parse base block: %w", err)
	}

	if info.Extensions != count-1 {
		return nil, fmt.Errorf("base block declares %d extensions, found %d", info.Extensions, count-1)
	}

	return &EDID{Info: info, Blocks: blocks}, nil
}

// isHexText reports whether data looks like a hex dump of a base block.
func isHexText(data []byte) bool {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	return len(trimmed) >= 16 && strings.EqualFold(string(trimmed[:16]), "00ffffffffffff00")
}

// decodeHexText strips whitespace from a hex dump and decodes it.
func decodeHexText(data []byte) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(data))

	out, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return out, nil
}
