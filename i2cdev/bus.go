package i2cdev

import (
	"errors"
	"fmt"
	"sync"
)

// ErrClosed is returned by operations on a closed Bus.
var ErrClosed = errors.New("i2cdev: bus closed")

// Linux i2c-dev ioctl requests and message flags (linux/i2c-dev.h, linux/i2c.h).
const (
	ioctlSlave      = 0x0703
	ioctlSlaveForce = 0x0706
	ioctlRdwr       = 0x0707

	flagRead = 0x0001

	// maxMessages is I2C_RDWR_IOCTL_MAX_MSGS
	maxMessages = 42
)

// Path returns the device node of adapter n, e.g. /dev/i2c-4.
func Path(n int) string {
	return fmt.Sprintf("/dev/i2c-%d", n)
}

// Option configures a Bus.
type Option func(*Bus)

// WithForce selects the slave address with I2C_SLAVE_FORCE, which succeeds
// even when a kernel driver has claimed the address (typically the EDID
// EEPROM at 0x50).
func WithForce(force bool) Option {
	return func(b *Bus) {
		b.force = force
	}
}

// Bus is an I2C adapter opened through the Linux i2c-dev interface. It
// implements ddc.Bus and ddc.Transferer.
//
// Bus serializes its own operations but a DDC/CI exchange spans several of
// them; share one ddc.Host rather than one Bus between goroutines.
type Bus struct {
	mu    sync.Mutex
	path  string
	fd    int
	addr  int
	force bool
}

// Path returns the device node the bus was opened from.
func (b *Bus) Path() string {
	return b.path
}

func (b *Bus) String() string {
	return "i2cdev " + b.path
}
