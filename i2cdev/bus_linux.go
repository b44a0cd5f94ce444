//go:build linux

package i2cdev

import (
	"context"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/moffa90/go-ddcci/ddc"
)

// i2cMsg mirrors struct i2c_msg.
type i2cMsg struct {
	addr  uint16
	flags uint16
	len   uint16
	buf   *byte
}

// i2cRdwrData mirrors struct i2c_rdwr_ioctl_data.
type i2cRdwrData struct {
	msgs  *i2cMsg
	nmsgs uint32
}

// Open opens the i2c-dev node at path.
//
// Example:
//
//	bus, err := i2cdev.Open(i2cdev.Path(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bus.Close()
func Open(path string, opts ...Option) (*Bus, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	b := &Bus{path: path, fd: fd, addr: -1}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// setAddress selects the slave address for plain reads and writes. The
// caller holds b.mu.
func (b *Bus) setAddress(addr uint16) error {
	if b.fd < 0 {
		return ErrClosed
	}
	if b.addr == int(addr) {
		return nil
	}

	req := uint(ioctlSlave)
	if b.force {
		req = ioctlSlaveForce
	}
	if err := unix.IoctlSetInt(b.fd, req, int(addr)); err != nil {
		return fmt.Errorf("select address 0x%02X: %w", addr, err)
	}

	b.addr = int(addr)
	return nil
}

// Write implements ddc.Bus.
func (b *Bus) Write(ctx context.Context, addr uint16, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.setAddress(addr); err != nil {
		return err
	}

	n, err := unix.Write(b.fd, p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(p))
	}
	return nil
}

// Read implements ddc.Bus.
func (b *Bus) Read(ctx context.Context, addr uint16, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.setAddress(addr); err != nil {
		return 0, err
	}

	return unix.Read(b.fd, p)
}

// Transfer implements ddc.Transferer with the I2C_RDWR ioctl.
func (b *Bus) Transfer(ctx context.Context, msgs []ddc.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}
	if len(msgs) > maxMessages {
		return fmt.Errorf("transfer of %d messages exceeds maximum %d", len(msgs), maxMessages)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fd < 0 {
		return ErrClosed
	}

	raw := make([]i2cMsg, len(msgs))
	for i, m := range msgs {
		if len(m.Data) == 0 || len(m.Data) > 0xFFFF {
			return fmt.Errorf("message %d: invalid length %d", i, len(m.Data))
		}
		raw[i] = i2cMsg{addr: m.Addr, len: uint16(len(m.Data)), buf: &m.Data[0]}
		if m.Read {
			raw[i].flags = flagRead
		}
	}

	data := i2cRdwrData{msgs: &raw[0], nmsgs: uint32(len(raw))}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(b.fd), ioctlRdwr, uintptr(unsafe.Pointer(&data)))
	runtime.KeepAlive(msgs)
	runtime.KeepAlive(raw)
	if errno != 0 {
		return fmt.Errorf("i2c transfer: %w", errno)
	}
	return nil
}

// Close releases the device node.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fd < 0 {
		return ErrClosed
	}
	err := unix.Close(b.fd)
	b.fd = -1
	return err
}
