// Package protocol implements the DDC/CI framing and MCCS command set.
//
// This package builds request payloads, frames them with the DDC/CI length
// byte and XOR checksum, and validates and decodes reply frames. It performs
// no I/O.
//
// # Protocol Overview
//
// DDC/CI runs over I2C at address 0x37. Every message is framed as:
//
//	Request: [0x51][0x80|LEN][OPCODE][ARGS...][CHECKSUM]
//	Reply:   [0x6E][0x80|LEN][OPCODE][ARGS...][CHECKSUM]
//
// Where:
//   - 0x51 is the host sub-address, 0x6E the display's 8-bit address
//   - LEN is the 7-bit payload length
//   - CHECKSUM is the XOR of all preceding bytes, seeded with 0x6E for
//     requests and 0x50 for replies
//
// # Command Builders
//
// Use the Build* functions to create commands:
//
//	cmd := protocol.BuildGetVCPFeatureCmd(0x10)
//	cmd, err := protocol.BuildTableWriteCmd(0xE0, 0, data)
//
// A Command carries its payload together with the reply size and the delay
// class the host must observe afterwards.
//
// # Frames
//
//	frame, err := protocol.EncodeCommand(cmd.Payload)
//	payload, err := protocol.DecodeReply(buf)
//
// Then use the Parse* functions for command-specific data:
//
//	value, err := protocol.ParseVCPFeatureReply(0x10, payload)
//	chunk, err := protocol.ParseTableReadReply(payload)
//
// # Error Handling
//
// Every failure carries an ErrorCode. ProtocolError adds the operation and
// the offending values:
//
//	if errors.Is(err, protocol.ErrUnsupportedOperation) {
//	    // feature not implemented by this display
//	}
//	code := protocol.CodeOf(err)
//
// # Reference
//
// VESA DDC/CI Standard v1.1 and VESA Monitor Control Command Set (MCCS) v2.2a.
package protocol
