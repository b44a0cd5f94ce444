package ddc

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/moffa90/go-ddcci/protocol"
)

var brightnessReply = []byte{0x02, 0x00, 0x10, 0x00, 0x00, 0x64, 0x00, 0x32}

func TestNew(t *testing.T) {
	bus := &MockBus{}

	tests := []struct {
		name    string
		options []Option
	}{
		{name: "with no options"},
		{
			name: "with all options",
			options: []Option{
				WithProgressCallback(func(p Progress) {}),
				WithLogger(&MockLogger{}),
				WithObserver(&recordingObserver{}),
				WithClock(newFakeClock()),
				WithDelays(DefaultDelays()),
				WithResponseDelay(60 * time.Millisecond),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := New(bus, tt.options...)
			if host == nil {
				t.Fatal("New() returned nil")
			}
			if host.Bus() != bus {
				t.Error("bus not set correctly")
			}
			if state, _ := host.Policy().State(); state != StateIdle {
				t.Errorf("initial state = %v, want idle", state)
			}
		})
	}
}

func TestNewNilBus(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil) did not panic")
		}
	}()
	New(nil)
}

func TestGetVCPFeature(t *testing.T) {
	bus := &MockBus{}
	bus.AddReply(t, brightnessReply)
	host, clock := newTestHost(bus)

	v, err := host.GetVCPFeature(context.Background(), 0x10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Current != 50 || v.Maximum != 100 || v.Type != protocol.Continuous {
		t.Errorf("value = %+v, want 50/100 continuous", v)
	}

	want := []byte{0x51, 0x82, 0x01, 0x10, 0xAC}
	if len(bus.ops) != 2 || !bytes.Equal(bus.ops[0].data, want) {
		t.Fatalf("ops = %+v, want write % X then read", bus.ops, want)
	}
	if bus.ops[1].write || bus.ops[1].addr != protocol.AddressDDCCI {
		t.Errorf("second op = %+v, want read at 0x37", bus.ops[1])
	}
	if !equalDurations(clock.sleeps, []time.Duration{protocol.DefaultResponseDelay}) {
		t.Errorf("sleeps = %v, want [response delay]", clock.sleeps)
	}

	state, class := host.Policy().State()
	if state != StateAfterCommand || class != protocol.DelayAfterGet {
		t.Errorf("state = %v/%v, want after_command/after_get", state, class)
	}
}

func TestGetVCPFeatureUnsupported(t *testing.T) {
	bus := &MockBus{}
	bus.AddReply(t, []byte{0x02, 0x01, 0x99, 0x00, 0x00, 0x00, 0x00, 0x00})
	obs := &recordingObserver{}
	logger := &MockLogger{}
	host, _ := newTestHost(bus, WithObserver(obs), WithLogger(logger))

	_, err := host.GetVCPFeature(context.Background(), 0x99)
	if !errors.Is(err, protocol.ErrUnsupportedOperation) {
		t.Fatalf("error = %v, want ErrUnsupportedOperation", err)
	}

	if state, _ := host.Policy().State(); state != StateFailed {
		t.Errorf("state = %v, want failed", state)
	}
	if len(obs.rejected) != 1 || obs.rejected[0] != "get_vcp_feature" {
		t.Errorf("rejected = %v", obs.rejected)
	}
	if len(logger.errorMsgs) == 0 {
		t.Error("expected an error log")
	}
}

func TestSetThenGetHonoursDelays(t *testing.T) {
	bus := &MockBus{}
	bus.AddReply(t, brightnessReply)
	obs := &recordingObserver{}
	host, clock := newTestHost(bus, WithObserver(obs))
	ctx := context.Background()

	if err := host.SetVCPFeature(ctx, 0x10, 50); err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(clock.sleeps) != 0 {
		t.Fatalf("set slept %v, want nothing", clock.sleeps)
	}

	if _, err := host.GetVCPFeature(ctx, 0x10); err != nil {
		t.Fatalf("get: %v", err)
	}

	want := []time.Duration{protocol.DefaultSetDelay, protocol.DefaultResponseDelay}
	if !equalDurations(clock.sleeps, want) {
		t.Errorf("sleeps = %v, want %v", clock.sleeps, want)
	}
	if !equalDurations(obs.waited, []time.Duration{protocol.DefaultSetDelay}) {
		t.Errorf("waited = %v", obs.waited)
	}

	cmds := bus.commands(t)
	if len(cmds) != 2 || !bytes.Equal(cmds[0], []byte{0x03, 0x10, 0x00, 0x32}) {
		t.Errorf("commands = % X", cmds)
	}
}

func TestSaveCurrentSettingsDelay(t *testing.T) {
	bus := &MockBus{}
	bus.AddReply(t, brightnessReply)
	host, clock := newTestHost(bus)
	ctx := context.Background()

	if err := host.SaveCurrentSettings(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := host.GetVCPFeature(ctx, 0x10); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(clock.sleeps) == 0 || clock.sleeps[0] != protocol.DefaultSaveDelay {
		t.Errorf("sleeps = %v, want save delay first", clock.sleeps)
	}
}

func TestGetTimingReport(t *testing.T) {
	bus := &MockBus{}
	bus.AddReply(t, []byte{0x4E, 0x00, 0x1A, 0x5E, 0x17, 0x70})
	host, _ := newTestHost(bus)

	report, err := host.GetTimingReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.VerticalFrequency != 6000 {
		t.Errorf("vertical frequency = %d, want 6000", report.VerticalFrequency)
	}
}

func TestExecuteErrors(t *testing.T) {
	busErr := errors.New("i2c nack")

	corrupt, _ := protocol.EncodeReply(brightnessReply)
	corrupt[len(corrupt)-1] ^= 0xFF

	tests := []struct {
		name     string
		setup    func(*MockBus)
		wantErr  error
		wantCode protocol.ErrorCode
	}{
		{
			name:     "write fails",
			setup:    func(m *MockBus) { m.writeErr = busErr },
			wantErr:  busErr,
			wantCode: protocol.ErrOther,
		},
		{
			name:     "read fails",
			setup:    func(m *MockBus) { m.readErr = busErr },
			wantErr:  busErr,
			wantCode: protocol.ErrOther,
		},
		{
			name:     "bad checksum",
			setup:    func(m *MockBus) { m.AddRawReply(corrupt) },
			wantErr:  protocol.ErrInvalidChecksum,
			wantCode: protocol.ErrInvalidChecksum,
		},
		{
			name:     "short read",
			setup:    func(m *MockBus) { m.AddRawReply([]byte{0x6E, 0x88}) },
			wantErr:  protocol.ErrInvalidLength,
			wantCode: protocol.ErrInvalidLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &MockBus{}
			tt.setup(bus)
			obs := &recordingObserver{}
			host, clock := newTestHost(bus, WithObserver(obs))

			_, err := host.GetVCPFeature(context.Background(), 0x10)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if code := protocol.CodeOf(err); code != tt.wantCode {
				t.Errorf("CodeOf() = %v, want %v", code, tt.wantCode)
			}
			if len(obs.errs) != 1 || obs.errs[0] == nil {
				t.Errorf("observer errors = %v", obs.errs)
			}

			if state, _ := host.Policy().State(); state != StateFailed {
				t.Fatalf("state = %v, want failed", state)
			}

			// The next command waits out the failed delay first.
			clock.sleeps = nil
			bus.writeErr, bus.readErr = nil, nil
			if err := host.SetVCPFeature(context.Background(), 0x10, 1); err != nil {
				t.Fatalf("set after failure: %v", err)
			}
			if !equalDurations(clock.sleeps, []time.Duration{protocol.DefaultFailedDelay}) {
				t.Errorf("sleeps = %v, want [failed delay]", clock.sleeps)
			}
		})
	}
}

func TestTransportErrorMessage(t *testing.T) {
	bus := &MockBus{writeErr: errors.New("remote I/O error")}
	host, _ := newTestHost(bus)

	err := host.SetVCPFeature(context.Background(), 0x10, 1)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if te.Op != "write" || te.Addr != protocol.AddressDDCCI {
		t.Errorf("TransportError = %+v", te)
	}
	if !strings.Contains(err.Error(), "0x37") {
		t.Errorf("error %q should name the address", err)
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	bus := &MockBus{}
	host, _ := newTestHost(bus)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := host.SetVCPFeature(ctx, 0x10, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if len(bus.ops) != 0 {
		t.Errorf("bus ops = %d, want none", len(bus.ops))
	}
	if state, _ := host.Policy().State(); state != StateIdle {
		t.Errorf("state = %v, cancellation must not count as a failure", state)
	}
}

func TestExecuteNoFrameForOversizedPayload(t *testing.T) {
	bus := &MockBus{}
	host, _ := newTestHost(bus)

	_, err := host.Execute(context.Background(), protocol.Command{
		Name:    "oversized",
		Payload: make([]byte, protocol.MaxPayloadSize+1),
	})
	if !errors.Is(err, protocol.ErrInvalidLength) {
		t.Fatalf("error = %v, want ErrInvalidLength", err)
	}
	if len(bus.ops) != 0 {
		t.Error("nothing must be written")
	}
}

func TestHostLogging(t *testing.T) {
	bus := &MockBus{}
	bus.AddReply(t, brightnessReply)
	logger := &MockLogger{}
	host, _ := newTestHost(bus, WithLogger(logger))

	ctx := context.Background()
	if _, err := host.GetVCPFeature(ctx, 0x10); err != nil {
		t.Fatal(err)
	}
	if err := host.SetVCPFeature(ctx, 0x10, 20); err != nil {
		t.Fatal(err)
	}

	if len(logger.debugMsgs) == 0 {
		t.Error("expected debug logs")
	}
	if len(logger.infoMsgs) != 1 || logger.infoMsgs[0] != "feature set" {
		t.Errorf("info logs = %v", logger.infoMsgs)
	}
}

func TestSystemClockSleep(t *testing.T) {
	clock := SystemClock()

	start := clock.Now()
	if err := clock.Sleep(context.Background(), 5*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clock.Now().Sub(start) < 5*time.Millisecond {
		t.Error("Sleep returned early")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := clock.Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
