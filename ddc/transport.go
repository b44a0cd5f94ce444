package ddc

import (
	"context"
	"time"

	"github.com/moffa90/go-ddcci/protocol"
)

// Bus is an addressable byte transport, typically an I2C adapter. Addresses
// are 7-bit. Implementations need not be safe for concurrent use.
type Bus interface {
	// Write sends p to the device at addr in a single transaction
	Write(ctx context.Context, addr uint16, p []byte) error

	// Read fills p from the device at addr and returns the number of bytes read
	Read(ctx context.Context, addr uint16, p []byte) (int, error)
}

// Message is one segment of a combined I2C transaction.
type Message struct {
	// Addr is the 7-bit device address
	Addr uint16

	// Read selects a read into Data instead of a write from Data
	Read bool

	// Data is the write payload or the read buffer
	Data []byte
}

// Transferer is implemented by buses that can issue several messages joined
// by repeated starts. E-DDC segment reads use it when available, since the
// segment pointer resets on a stop condition. Implementations shorten the
// Data of a read message when fewer bytes arrive.
type Transferer interface {
	Transfer(ctx context.Context, msgs []Message) error
}

// Clock is the time source used for protocol delays.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is done
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Commander executes a single DDC/CI command and returns the validated reply
// payload (nil when the command has no reply). Host is the standard
// implementation; every higher-level operation in this package is written
// against Commander.
type Commander interface {
	Execute(ctx context.Context, cmd protocol.Command) ([]byte, error)
}

// hooks is implemented by Host. Free functions use it, when present, to
// report replies rejected after decoding and to publish progress.
type hooks interface {
	rejectReply(cmd protocol.Command, err error)
	reportProgress(p Progress)
}

// reject records err against cmd on c and returns err.
func reject(c Commander, cmd protocol.Command, err error) error {
	if h, ok := c.(hooks); ok {
		h.rejectReply(cmd, err)
	}
	return err
}

func report(c Commander, p Progress) {
	if h, ok := c.(hooks); ok {
		h.reportProgress(p)
	}
}
