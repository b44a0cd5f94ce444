package ddc

import (
	"fmt"
)

// TransportError wraps a failure reported by the Bus. The underlying error
// is passed through unchanged; protocol.CodeOf reports it as ErrOther.
type TransportError struct {
	// Op is "write", "read" or "transfer"
	Op string

	// Addr is the 7-bit device address
	Addr uint16

	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("i2c %s at 0x%02X: %v", e.Op, e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
