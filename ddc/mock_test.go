package ddc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moffa90/go-ddcci/protocol"
)

// busOp records one call made on a mock bus
type busOp struct {
	write bool
	addr  uint16
	data  []byte
}

// MockBus replays queued reply frames and records every write
type MockBus struct {
	ops      []busOp
	replies  [][]byte
	writeErr error
	readErr  error

	// failWriteAt makes the n-th write (1-based) fail with writeErr
	failWriteAt int
	writes      int
}

func (m *MockBus) Write(ctx context.Context, addr uint16, p []byte) error {
	m.writes++
	m.ops = append(m.ops, busOp{write: true, addr: addr, data: append([]byte(nil), p...)})
	if m.writeErr != nil && (m.failWriteAt == 0 || m.failWriteAt == m.writes) {
		return m.writeErr
	}
	return nil
}

func (m *MockBus) Read(ctx context.Context, addr uint16, p []byte) (int, error) {
	m.ops = append(m.ops, busOp{addr: addr})
	if m.readErr != nil {
		return 0, m.readErr
	}
	if len(m.replies) == 0 {
		return 0, errors.New("no reply queued")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return copy(p, reply), nil
}

// AddReply queues a correctly framed reply carrying payload
func (m *MockBus) AddReply(t *testing.T, payload []byte) {
	t.Helper()
	frame, err := protocol.EncodeReply(payload)
	if err != nil {
		t.Fatalf("encode reply: %v", err)
	}
	m.replies = append(m.replies, frame)
}

// AddRawReply queues bytes as returned by the bus
func (m *MockBus) AddRawReply(frame []byte) {
	m.replies = append(m.replies, frame)
}

// commands decodes every frame written to the DDC/CI address
func (m *MockBus) commands(t *testing.T) [][]byte {
	t.Helper()
	var out [][]byte
	for _, op := range m.ops {
		if !op.write || op.addr != protocol.AddressDDCCI {
			continue
		}
		payload, err := protocol.DecodeCommand(op.data)
		if err != nil {
			t.Fatalf("host wrote invalid frame % X: %v", op.data, err)
		}
		out = append(out, payload)
	}
	return out
}

// fakeClock advances on Sleep instead of blocking
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d > 0 {
		c.sleeps = append(c.sleeps, d)
		c.now = c.now.Add(d)
	}
	return nil
}

// MockLogger records messages for testing
type MockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	errorMsgs []string
}

func (l *MockLogger) Debug(msg string, kv ...interface{}) {
	l.debugMsgs = append(l.debugMsgs, msg)
}

func (l *MockLogger) Info(msg string, kv ...interface{}) {
	l.infoMsgs = append(l.infoMsgs, msg)
}

func (l *MockLogger) Error(msg string, kv ...interface{}) {
	l.errorMsgs = append(l.errorMsgs, msg)
}

// recordingObserver captures observer callbacks
type recordingObserver struct {
	done     []string
	errs     []error
	rejected []string
	waited   []time.Duration
	blocks   []int
}

func (o *recordingObserver) CommandDone(command string, elapsed time.Duration, err error) {
	o.done = append(o.done, command)
	o.errs = append(o.errs, err)
}

func (o *recordingObserver) ReplyRejected(command string, err error) {
	o.rejected = append(o.rejected, command)
}

func (o *recordingObserver) DelayWaited(d time.Duration) {
	o.waited = append(o.waited, d)
}

func (o *recordingObserver) EDIDBlockRead(index int, err error) {
	o.blocks = append(o.blocks, index)
}

func newTestHost(bus Bus, opts ...Option) (*Host, *fakeClock) {
	clock := newFakeClock()
	return New(bus, append([]Option{WithClock(clock)}, opts...)...), clock
}

func equalDurations(a, b []time.Duration) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
