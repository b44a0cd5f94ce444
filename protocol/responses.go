package protocol

import (
	"encoding/binary"
)

// ParseVCPFeatureReply parses a Get VCP Feature reply payload for the
// feature that was requested.
//
// Payload structure (VCPReplySize bytes):
//
//	[0x02][RESULT][CODE][TYPE][MAX_H][MAX_L][CUR_H][CUR_L]
//
// A nonzero result yields ErrUnsupportedOperation. An echoed code other than
// requested, or a continuous value above its maximum, yields ErrCommandFailed.
func ParseVCPFeatureReply(requested FeatureCode, data []byte) (VCPValue, error) {
	const op = "get vcp feature"

	if len(data) != VCPReplySize {
		return VCPValue{}, newError(op, ErrInvalidLength,
			"got %d bytes, expected %d", len(data), VCPReplySize)
	}

	if data[0] != OpGetVCPFeatureReply {
		return VCPValue{}, newError(op, ErrCommandFailed,
			"unexpected reply opcode 0x%02X", data[0])
	}

	if data[1] != ResultNoError {
		return VCPValue{}, newError(op, ErrUnsupportedOperation,
			"feature 0x%02X, result code 0x%02X", requested, data[1])
	}

	if data[2] != requested {
		return VCPValue{}, newError(op, ErrCommandFailed,
			"requested feature 0x%02X, reply is for 0x%02X", requested, data[2])
	}

	value := VCPValue{
		Code:    data[2],
		Type:    valueType(data[3]),
		Maximum: binary.BigEndian.Uint16(data[4:6]),
		Current: binary.BigEndian.Uint16(data[6:8]),
	}

	if value.Type == Continuous && value.Current > value.Maximum {
		return VCPValue{}, newError(op, ErrCommandFailed,
			"feature 0x%02X current value %d exceeds maximum %d", value.Code, value.Current, value.Maximum)
	}

	return value, nil
}

// valueType maps the reply's type byte onto the two MCCS value types. Any
// nonzero byte is non-continuous.
func valueType(b byte) ValueType {
	if b == byte(Continuous) {
		return Continuous
	}
	return NonContinuous
}

// ParseTableReadReply parses a Table Read reply payload.
//
// Payload structure (3 to MaxFragmentReplySize bytes):
//
//	[0xE4][OFFSET_H][OFFSET_L][DATA...]
func ParseTableReadReply(data []byte) (TableChunk, error) {
	return parseFragment("table read", OpTableReadReply, data)
}

// ParseCapabilitiesReply parses a Capabilities Reply payload.
//
// Payload structure (3 to MaxFragmentReplySize bytes):
//
//	[0xE3][OFFSET_H][OFFSET_L][DATA...]
func ParseCapabilitiesReply(data []byte) (TableChunk, error) {
	return parseFragment("capabilities request", OpCapabilitiesReply, data)
}

func parseFragment(op string, opcode byte, data []byte) (TableChunk, error) {
	if len(data) < FragmentReplyHeaderSize || len(data) > MaxFragmentReplySize {
		return TableChunk{}, newError(op, ErrInvalidLength,
			"got %d bytes, expected %d to %d", len(data), FragmentReplyHeaderSize, MaxFragmentReplySize)
	}

	if data[0] != opcode {
		return TableChunk{}, newError(op, ErrCommandFailed,
			"unexpected reply opcode 0x%02X, expected 0x%02X", data[0], opcode)
	}

	chunk := TableChunk{
		Offset: binary.BigEndian.Uint16(data[1:3]),
		Data:   make([]byte, len(data)-FragmentReplyHeaderSize),
	}
	copy(chunk.Data, data[FragmentReplyHeaderSize:])

	return chunk, nil
}

// ParseTimingReply parses a Get Timing Report reply payload.
//
// Payload structure (TimingReplySize bytes):
//
//	[0x4E][STATUS][HFREQ_H][HFREQ_L][VFREQ_H][VFREQ_L]
func ParseTimingReply(data []byte) (TimingReport, error) {
	const op = "get timing report"

	if len(data) != TimingReplySize {
		return TimingReport{}, newError(op, ErrInvalidLength,
			"got %d bytes, expected %d", len(data), TimingReplySize)
	}

	if data[0] != OpTimingReply {
		return TimingReport{}, newError(op, ErrCommandFailed,
			"unexpected reply opcode 0x%02X", data[0])
	}

	return TimingReport{
		Status:              data[1],
		HorizontalFrequency: binary.BigEndian.Uint16(data[2:4]),
		VerticalFrequency:   binary.BigEndian.Uint16(data[4:6]),
	}, nil
}
