//go:build !linux

package i2cdev

import (
	"context"
	"errors"

	"github.com/moffa90/go-ddcci/ddc"
)

// ErrUnsupported is returned by Open on platforms without i2c-dev.
var ErrUnsupported = errors.New("i2cdev: only supported on linux")

// Open reports ErrUnsupported outside Linux.
func Open(path string, opts ...Option) (*Bus, error) {
	return nil, ErrUnsupported
}

// Write reports ErrUnsupported outside Linux.
func (b *Bus) Write(ctx context.Context, addr uint16, p []byte) error {
	return ErrUnsupported
}

// Read reports ErrUnsupported outside Linux.
func (b *Bus) Read(ctx context.Context, addr uint16, p []byte) (int, error) {
	return 0, ErrUnsupported
}

// Transfer reports ErrUnsupported outside Linux.
func (b *Bus) Transfer(ctx context.Context, msgs []ddc.Message) error {
	return ErrUnsupported
}

// Close reports ErrUnsupported outside Linux.
func (b *Bus) Close() error {
	return ErrUnsupported
}
