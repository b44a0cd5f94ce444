package protocol

// Frame is a decoded DDC/CI frame.
type Frame struct {
	// Source is the first frame byte (SubAddress for requests, DisplayAddress for replies)
	Source byte

	// Payload is the opcode and its arguments
	Payload []byte
}

// EncodeFrame builds a frame from first to the device whose address seeds
// the checksum.
//
// Frame structure:
//
//	[FIRST][0x80|LEN][PAYLOAD...][CHECKSUM]
//
// The checksum is dest XOR every preceding frame byte. Payloads longer than
// MaxPayloadSize fail with ErrInvalidLength.
func EncodeFrame(dest, first byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, newError("encode frame", ErrInvalidLength,
			"payload of %d bytes exceeds maximum %d", len(payload), MaxPayloadSize)
	}

	frame := make([]byte, 0, FrameOverhead+len(payload))
	frame = append(frame, first)
	frame = append(frame, LengthFlag|byte(len(payload)))
	frame = append(frame, payload...)
	frame = append(frame, Checksum(dest, frame))

	return frame, nil
}

// DecodeFrame validates a frame addressed to dest and extracts its payload.
// Bytes after the checksum are ignored so fixed-size bus reads can be passed
// in directly.
//
// The returned payload aliases frame.
func DecodeFrame(dest byte, frame []byte) (Frame, error) {
	if len(frame) < FrameOverhead {
		return Frame{}, newError("decode frame", ErrInvalidLength,
			"frame too short: got %d bytes, minimum is %d", len(frame), FrameOverhead)
	}

	if frame[1]&LengthFlag == 0 {
		return Frame{}, newError("decode frame", ErrInvalidLength,
			"length byte 0x%02X missing 0x%02X flag", frame[1], LengthFlag)
	}

	n := int(frame[1] & LengthMask)
	if len(frame) < FrameOverhead+n {
		return Frame{}, newError("decode frame", ErrInvalidLength,
			"declared %d payload bytes, only %d available", n, len(frame)-FrameOverhead)
	}

	want := Checksum(dest, frame[:2+n])
	if got := frame[2+n]; got != want {
		return Frame{}, newError("decode frame", ErrInvalidChecksum,
			"got 0x%02X, expected 0x%02X", got, want)
	}

	return Frame{Source: frame[0], Payload: frame[2 : 2+n]}, nil
}

// EncodeCommand builds a host-to-display frame for payload.
func EncodeCommand(payload []byte) ([]byte, error) {
	return EncodeFrame(DisplayAddress, SubAddress, payload)
}

// EncodeReply builds a display-to-host frame for payload. Displays and
// simulators use it; hosts only decode replies.
func EncodeReply(payload []byte) ([]byte, error) {
	return EncodeFrame(HostAddress, DisplayAddress, payload)
}

// DecodeCommand validates a host-to-display frame and returns its payload.
func DecodeCommand(frame []byte) ([]byte, error) {
	f, err := DecodeFrame(DisplayAddress, frame)
	if err != nil {
		return nil, err
	}
	if f.Source != SubAddress {
		return nil, newError("decode command", ErrCommandFailed,
			"unexpected sub-address 0x%02X", f.Source)
	}
	return f.Payload, nil
}

// DecodeReply validates a display-to-host frame and returns its payload.
func DecodeReply(frame []byte) ([]byte, error) {
	f, err := DecodeFrame(HostAddress, frame)
	if err != nil {
		return nil, err
	}
	return f.Payload, nil
}
