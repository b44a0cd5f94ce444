package edid

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// BaseHeader is the fixed 8-byte pattern that opens every base block.
var BaseHeader = []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// Extension block tags.
const (
	TagCEA       = 0x02
	TagVTB       = 0x10
	TagDI        = 0x40
	TagLS        = 0x50
	TagDPVL      = 0x60
	TagDisplayID = 0x70
	TagBlockMap  = 0xF0
	TagVendor    = 0xFF
)

// Info is the identification data decoded from a base block.
type Info struct {
	// ManufacturerID is the three letter PNP vendor ID (e.g. "DEL")
	ManufacturerID string

	// ProductCode is the vendor assigned product code
	ProductCode uint16

	// SerialNumber is the numeric serial (zero when unused)
	SerialNumber uint32

	// Week of manufacture, 0 when unspecified, 0xFF when Year is a model year
	Week byte

	// Year of manufacture
	Year int

	// Version and Revision of the EDID structure (1.3, 1.4, ...)
	Version  byte
	Revision byte

	// Extensions is the number of extension blocks that follow
	Extensions int
}

// String returns a short identification such as "DEL 0xA0C5 (EDID 1.4, 1 extension)".
func (i *Info) String() string {
	suffix := "s"
	if i.Extensions == 1 {
		suffix = ""
	}
	return fmt.Sprintf("%s 0x%04X (EDID %d.%d, %d extension%s)",
		i.ManufacturerID, i.ProductCode, i.Version, i.Revision, i.Extensions, suffix)
}

// ParseHeader decodes the identification fields of a base block. The block
// checksum and header pattern are validated first.
//
// Base block layout (bytes 0-19):
//
//	[HEADER(8)][MFG(2, BE)][PRODUCT(2, LE)][SERIAL(4, LE)][WEEK][YEAR-1990][VERSION][REVISION]
func ParseHeader(b *Block) (*Info, error) {
	if err := b.Validate(0); err != nil {
		return nil, err
	}

	if !bytes.Equal(b[:len(BaseHeader)], BaseHeader) {
		return nil, fmt.Errorf("invalid base block header: % X", b[:len(BaseHeader)])
	}

	mfg := binary.BigEndian.Uint16(b[8:10])
	id := []byte{
		byte(mfg>>10&0x1F) + 'A' - 1,
		byte(mfg>>5&0x1F) + 'A' - 1,
		byte(mfg&0x1F) + 'A' - 1,
	}
	for _, c := range id {
		if c < 'A' || c > 'Z' {
			return nil, fmt.Errorf("invalid manufacturer ID 0x%04X", mfg)
		}
	}

	return &Info{
		ManufacturerID: string(id),
		ProductCode:    binary.LittleEndian.Uint16(b[10:12]),
		SerialNumber:   binary.LittleEndian.Uint32(b[12:16]),
		Week:           b[16],
		Year:           1990 + int(b[17]),
		Version:        b[18],
		Revision:       b[19],
		Extensions:     b.ExtensionCount(),
	}, nil
}

// TagName returns a human readable name for an extension tag.
func TagName(tag byte) string {
	switch tag {
	case TagCEA:
		return "CEA-861"
	case TagVTB:
		return "VTB"
	case TagDI:
		return "DI"
	case TagLS:
		return "LS"
	case TagDPVL:
		return "DPVL"
	case TagDisplayID:
		return "DisplayID"
	case TagBlockMap:
		return "block map"
	case TagVendor:
		return "vendor"
	default:
		return fmt.Sprintf("unknown tag 0x%02X", tag)
	}
}
