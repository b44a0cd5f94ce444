package protocol

import (
	"errors"
	"fmt"
)

// ErrorCode classifies DDC/CI protocol failures. Each code is itself an error,
// so callers can test with errors.Is(err, protocol.ErrInvalidChecksum).
type ErrorCode uint8

const (
	// ErrOther covers failures outside the protocol taxonomy (transport errors included)
	ErrOther ErrorCode = iota

	// ErrInvalidChecksum indicates a frame checksum did not match
	ErrInvalidChecksum

	// ErrInvalidLength indicates a frame or payload length was out of range
	ErrInvalidLength

	// ErrUnsupportedOperation indicates the display rejected the feature code
	ErrUnsupportedOperation

	// ErrCommandFailed indicates a well-formed reply that does not answer the request
	ErrCommandFailed

	// ErrOffsetMismatch indicates a fragment reply carried an unexpected offset
	ErrOffsetMismatch

	// ErrEDIDChecksum indicates an EDID block whose bytes do not sum to zero
	ErrEDIDChecksum
)

func (c ErrorCode) Error() string {
	switch c {
	case ErrInvalidChecksum:
		return "DDC/CI checksum mismatch"
	case ErrInvalidLength:
		return "invalid DDC/CI length"
	case ErrUnsupportedOperation:
		return "unsupported VCP feature"
	case ErrCommandFailed:
		return "DDC/CI command failed"
	case ErrOffsetMismatch:
		return "unexpected fragment offset"
	case ErrEDIDChecksum:
		return "EDID checksum mismatch"
	default:
		return "DDC/CI error"
	}
}

// String returns the code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidChecksum:
		return "invalid_checksum"
	case ErrInvalidLength:
		return "invalid_length"
	case ErrUnsupportedOperation:
		return "unsupported_operation"
	case ErrCommandFailed:
		return "command_failed"
	case ErrOffsetMismatch:
		return "offset_mismatch"
	case ErrEDIDChecksum:
		return "edid_checksum_mismatch"
	default:
		return "other"
	}
}

// ProtocolError carries an ErrorCode together with the operation that
// produced it and a human readable detail.
type ProtocolError struct {
	// Operation is the command or decode step that failed
	Operation string

	// Code classifies the failure
	Code ErrorCode

	// Detail describes the offending values (optional)
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Operation, e.Code.Error())
	}
	return fmt.Sprintf("%s: %s: %s", e.Operation, e.Code.Error(), e.Detail)
}

// Unwrap exposes the ErrorCode to errors.Is.
func (e *ProtocolError) Unwrap() error {
	return e.Code
}

// newError builds a ProtocolError with a formatted detail.
func newError(op string, code ErrorCode, format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{
		Operation: op,
		Code:      code,
		Detail:    fmt.Sprintf(format, args...),
	}
}

// IsProtocolError returns true if err is or wraps a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// CodeOf returns the ErrorCode carried by err, or ErrOther when err does not
// originate from the protocol layer.
func CodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return ErrOther
}
