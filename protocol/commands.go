package protocol

import "encoding/binary"

// BuildGetVCPFeatureCmd constructs a Get VCP Feature request.
//
// Payload structure:
//
//	[0x01][CODE]
func BuildGetVCPFeatureCmd(code FeatureCode) Command {
	return Command{
		Name:     "get_vcp_feature",
		Payload:  []byte{OpGetVCPFeature, code},
		ReplyLen: VCPReplySize,
		Delay:    DelayAfterGet,
	}
}

// BuildSetVCPFeatureCmd constructs a Set VCP Feature request. The display
// sends no reply.
//
// Payload structure:
//
//	[0x03][CODE][VALUE_H][VALUE_L]
func BuildSetVCPFeatureCmd(code FeatureCode, value uint16) Command {
	payload := make([]byte, 4)
	payload[0] = OpSetVCPFeature
	payload[1] = code
	binary.BigEndian.PutUint16(payload[2:4], value)

	return Command{
		Name:    "set_vcp_feature",
		Payload: payload,
		Delay:   DelayAfterSet,
	}
}

// BuildSaveCurrentSettingsCmd constructs a Save Current Settings request.
//
// Payload structure:
//
//	[0x0C]
func BuildSaveCurrentSettingsCmd() Command {
	return Command{
		Name:    "save_current_settings",
		Payload: []byte{OpSaveCurrentSettings},
		Delay:   DelayAfterSave,
	}
}

// BuildGetTimingReportCmd constructs a Get Timing Report request.
//
// Payload structure:
//
//	[0x07]
func BuildGetTimingReportCmd() Command {
	return Command{
		Name:     "get_timing_report",
		Payload:  []byte{OpGetTimingReport},
		ReplyLen: TimingReplySize,
		Delay:    DelayAfterGet,
	}
}

// BuildTableReadCmd constructs a Table Read request for the fragment at offset.
//
// Payload structure:
//
//	[0xE2][CODE][OFFSET_H][OFFSET_L]
func BuildTableReadCmd(code FeatureCode, offset uint16) Command {
	payload := make([]byte, 4)
	payload[0] = OpTableRead
	payload[1] = code
	binary.BigEndian.PutUint16(payload[2:4], offset)

	return Command{
		Name:     "table_read",
		Payload:  payload,
		ReplyLen: MaxFragmentReplySize,
		Delay:    DelayAfterTableChunk,
	}
}

// BuildTableWriteCmd constructs a Table Write request carrying one fragment.
// The fragment must not exceed MaxFragmentSize bytes.
//
// Payload structure:
//
//	[0xE7][CODE][OFFSET_H][OFFSET_L][DATA...]
func BuildTableWriteCmd(code FeatureCode, offset uint16, data []byte) (Command, error) {
	if len(data) > MaxFragmentSize {
		return Command{}, newError("table write", ErrInvalidLength,
			"fragment of %d bytes exceeds maximum %d", len(data), MaxFragmentSize)
	}

	payload := make([]byte, TableWriteHeaderSize, TableWriteHeaderSize+len(data))
	payload[0] = OpTableWrite
	payload[1] = code
	binary.BigEndian.PutUint16(payload[2:4], offset)
	payload = append(payload, data...)

	return Command{
		Name:    "table_write",
		Payload: payload,
		Delay:   DelayAfterTableChunk,
	}, nil
}

// BuildCapabilitiesRequestCmd constructs a Capabilities Request for the
// fragment at offset.
//
// Payload structure:
//
//	[0xF3][OFFSET_H][OFFSET_L]
func BuildCapabilitiesRequestCmd(offset uint16) Command {
	payload := make([]byte, 3)
	payload[0] = OpCapabilitiesRequest
	binary.BigEndian.PutUint16(payload[1:3], offset)

	return Command{
		Name:     "capabilities_request",
		Payload:  payload,
		ReplyLen: MaxFragmentReplySize,
		Delay:    DelayAfterTableChunk,
	}
}
