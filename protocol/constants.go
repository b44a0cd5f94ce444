package protocol

import "time"

// MCCSVersion is the Monitor Control Command Set revision whose opcodes this package implements.
const MCCSVersion = "2.2"

// I2C addresses (7-bit) per VESA DDC/CI and E-DDC.
const (
	// AddressDDCCI is the DDC/CI command and control address
	AddressDDCCI = 0x37

	// AddressEDID is the EDID EEPROM address
	AddressEDID = 0x50

	// AddressEDIDSegment is the E-DDC segment pointer register
	AddressEDIDSegment = 0x30
)

// Frame addressing bytes.
const (
	// SubAddress is the first byte of every host-to-display frame
	SubAddress = 0x51

	// DisplayAddress is the 8-bit write address of the display (AddressDDCCI << 1).
	// It seeds the checksum of host-to-display frames and leads every reply.
	DisplayAddress = AddressDDCCI << 1

	// HostAddress is the virtual host address that seeds reply checksums
	HostAddress = 0x50
)

// Frame structure constants.
const (
	// LengthFlag is set on every length byte
	LengthFlag = 0x80

	// LengthMask extracts the payload length from a length byte
	LengthMask = 0x7F

	// MaxPayloadSize is the largest payload a 7-bit length field can describe
	MaxPayloadSize = LengthMask

	// FrameOverhead is first byte + length byte + checksum byte
	FrameOverhead = 3
)

// Command opcodes.
const (
	// OpGetVCPFeature requests a VCP feature value
	OpGetVCPFeature = 0x01

	// OpGetVCPFeatureReply answers OpGetVCPFeature
	OpGetVCPFeatureReply = 0x02

	// OpSetVCPFeature sets a VCP feature value
	OpSetVCPFeature = 0x03

	// OpGetTimingReport requests the current display timing
	OpGetTimingReport = 0x07

	// OpSaveCurrentSettings stores the current settings in non-volatile memory
	OpSaveCurrentSettings = 0x0C

	// OpTimingReply answers OpGetTimingReport
	OpTimingReply = 0x4E

	// OpTableRead requests a fragment of a table feature
	OpTableRead = 0xE2

	// OpCapabilitiesReply answers OpCapabilitiesRequest
	OpCapabilitiesReply = 0xE3

	// OpTableReadReply answers OpTableRead
	OpTableReadReply = 0xE4

	// OpTableWrite writes a fragment of a table feature
	OpTableWrite = 0xE7

	// OpCapabilitiesRequest requests a fragment of the capabilities string
	OpCapabilitiesRequest = 0xF3
)

// VCP reply result codes.
const (
	// ResultNoError indicates the feature is supported
	ResultNoError = 0x00

	// ResultUnsupported indicates the feature code is not supported
	ResultUnsupported = 0x01
)

// Payload and reply sizes.
const (
	// MaxFragmentSize is the largest data fragment in a table or capabilities transfer
	MaxFragmentSize = 32

	// MaxTableSize is the largest table addressable with 16-bit offsets
	MaxTableSize = 0x10000

	// VCPReplySize is the payload size of a Get VCP Feature reply
	VCPReplySize = 8

	// TimingReplySize is the payload size of a timing report reply
	TimingReplySize = 6

	// FragmentReplyHeaderSize is opcode + offset(2) in table and capabilities replies
	FragmentReplyHeaderSize = 3

	// MaxFragmentReplySize is the largest table or capabilities reply payload
	MaxFragmentReplySize = FragmentReplyHeaderSize + MaxFragmentSize

	// TableWriteHeaderSize is opcode + code + offset(2)
	TableWriteHeaderSize = 4
)

// Protocol delays. Response delays separate a request from reading its reply;
// command delays separate the end of one command from the start of the next.
const (
	DefaultResponseDelay   = 40 * time.Millisecond
	DefaultGetDelay        = 50 * time.Millisecond
	DefaultSetDelay        = 50 * time.Millisecond
	DefaultTableChunkDelay = 50 * time.Millisecond
	DefaultSaveDelay       = 200 * time.Millisecond
	DefaultFailedDelay     = 100 * time.Millisecond
)
