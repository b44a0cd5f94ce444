package sim

import (
	"github.com/moffa90/go-ddcci/edid"
	"github.com/moffa90/go-ddcci/protocol"
)

// DefaultCapabilities is the capability string of a display created by New.
const DefaultCapabilities = "(prot(monitor)type(lcd)model(SIM)cmds(01 02 03 07 0C E3 F3)vcp(10 12 60(0F 11))mccs_ver(" + protocol.MCCSVersion + "))"

// Option configures a Display.
type Option func(*Display)

// WithFeature adds or replaces a VCP feature.
//
// Example:
//
//	d := sim.New(sim.WithFeature(0x60, protocol.NonContinuous, 3, 0x0F))
func WithFeature(code protocol.FeatureCode, typ protocol.ValueType, maximum, current uint16) Option {
	return func(d *Display) {
		d.features[code] = &Feature{Type: typ, Maximum: maximum, Current: current}
	}
}

// WithoutFeature removes a VCP feature so the display reports it unsupported.
func WithoutFeature(code protocol.FeatureCode) Option {
	return func(d *Display) {
		delete(d.features, code)
	}
}

// WithTable sets the initial contents of a table feature.
func WithTable(code protocol.FeatureCode, data []byte) Option {
	return func(d *Display) {
		d.tables[code] = append([]byte(nil), data...)
	}
}

// WithCapabilities replaces the capability string.
func WithCapabilities(caps string) Option {
	return func(d *Display) {
		d.capabilities = []byte(caps)
	}
}

// WithEDID replaces the EDID image. Its length should be a multiple of 128.
func WithEDID(data []byte) Option {
	return func(d *Display) {
		d.edid = append([]byte(nil), data...)
	}
}

// WithTiming replaces the timing report.
func WithTiming(report protocol.TimingReport) Option {
	return func(d *Display) {
		d.timing = report
	}
}

// DefaultEDID builds a valid EDID for a "SIM" display with the given number
// of CEA extension blocks. Byte 1 of each extension holds its block index.
func DefaultEDID(extensions int) []byte {
	var base edid.Block
	copy(base[:], edid.BaseHeader)

	// "SIM": S=19, I=9, M=13 packed as three 5-bit letters
	mfg := uint16(19)<<10 | uint16(9)<<5 | uint16(13)
	base[8], base[9] = byte(mfg>>8), byte(mfg)
	base[10], base[11] = 0x01, 0x00
	base[12], base[13], base[14], base[15] = 0x2A, 0x00, 0x00, 0x00
	base[16], base[17] = 1, 34
	base[18], base[19] = 1, 4
	base[edid.ExtensionCountOffset] = byte(extensions)
	base.UpdateChecksum()

	out := append([]byte(nil), base[:]...)
	for i := 1; i <= extensions; i++ {
		var ext edid.Block
		ext[0] = edid.TagCEA
		ext[1] = byte(i)
		ext.UpdateChecksum()
		out = append(out, ext[:]...)
	}
	return out
}
