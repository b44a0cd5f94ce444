package ddc

import (
	"context"
	"fmt"

	"github.com/moffa90/go-ddcci/edid"
	"github.com/moffa90/go-ddcci/protocol"
)

// Host drives one display over a Bus. It frames commands, enforces the
// inter-command delays and validates replies.
//
// Host is NOT safe for concurrent use. DDC/CI allows a single outstanding
// command per display; serialize access externally if several goroutines
// share a Host.
type Host struct {
	bus    Bus
	config Config
	policy *DelayPolicy
}

// New creates a new Host on bus with the given options.
//
// Example:
//
//	bus, err := i2cdev.Open("/dev/i2c-4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	host := ddc.New(bus, ddc.WithLogger(logger))
func New(bus Bus, opts ...Option) *Host {
	if bus == nil {
		panic("bus cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Host{
		bus:    bus,
		config: cfg,
		policy: NewDelayPolicy(cfg.Delays),
	}
}

// Bus returns the transport the host was created with.
func (h *Host) Bus() Bus {
	return h.bus
}

// Policy exposes the host's delay bookkeeping.
func (h *Host) Policy() *DelayPolicy {
	return h.policy
}

// Wait sleeps until the pending inter-command delay has elapsed. It returns
// early with the context error if ctx is done first.
func (h *Host) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d := h.policy.Remaining(h.config.Clock.Now())
	if d > 0 {
		state, class := h.policy.State()
		h.logDebug("waiting for delay", "state", state.String(), "class", class.String(), "delay", d.String())

		if err := h.config.Clock.Sleep(ctx, d); err != nil {
			return err
		}
		if h.config.Observer != nil {
			h.config.Observer.DelayWaited(d)
		}
	}

	h.policy.Settle(h.config.Clock.Now())
	return nil
}

// Execute sends cmd to the display and returns the validated reply payload.
// Commands without a reply return a nil payload.
//
// The sequence is:
//  1. Wait out the pending delay (cancellable)
//  2. Frame the payload and write it to the DDC/CI address
//  3. Sleep the response delay and read ReadSize bytes
//  4. Validate the reply frame and record the outcome in the delay policy
//
// Once the frame is written the command runs to completion regardless of ctx.
func (h *Host) Execute(ctx context.Context, cmd protocol.Command) ([]byte, error) {
	if err := h.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name, err)
	}

	frame, err := protocol.EncodeCommand(cmd.Payload)
	if err != nil {
		return nil, err
	}

	start := h.config.Clock.Now()
	payload, err := h.transact(context.WithoutCancel(ctx), cmd, frame)
	end := h.config.Clock.Now()

	if err != nil {
		h.policy.CommandFailed(end)
		h.logError("command failed", "command", cmd.Name, "error", err)
	} else {
		h.policy.CommandSucceeded(cmd.Delay, end)
		h.logDebug("command complete", "command", cmd.Name, "reply", fmt.Sprintf("% X", payload))
	}

	if h.config.Observer != nil {
		h.config.Observer.CommandDone(cmd.Name, end.Sub(start), err)
	}

	return payload, err
}

// transact performs the bus half of Execute.
func (h *Host) transact(ctx context.Context, cmd protocol.Command, frame []byte) ([]byte, error) {
	h.logDebug("sending command", "command", cmd.Name, "frame", fmt.Sprintf("% X", frame))

	if err := h.bus.Write(ctx, protocol.AddressDDCCI, frame); err != nil {
		return nil, &TransportError{Op: "write", Addr: protocol.AddressDDCCI, Err: err}
	}

	size := cmd.ReadSize()
	if size == 0 {
		return nil, nil
	}

	if err := h.config.Clock.Sleep(ctx, h.config.Delays.Response); err != nil {
		return nil, err
	}

	// Displays may pad fixed-size reads; DecodeReply ignores trailing bytes.
	buf := make([]byte, size)
	n, err := h.bus.Read(ctx, protocol.AddressDDCCI, buf)
	if err != nil {
		return nil, &TransportError{Op: "read", Addr: protocol.AddressDDCCI, Err: err}
	}

	payload, err := protocol.DecodeReply(buf[:n])
	if err != nil {
		return nil, fmt.Errorf("%s reply: %w", cmd.Name, err)
	}

	return payload, nil
}

// rejectReply records a reply that was well framed but failed validation.
func (h *Host) rejectReply(cmd protocol.Command, err error) {
	h.policy.CommandFailed(h.config.Clock.Now())
	h.logError("reply rejected", "command", cmd.Name, "code", protocol.CodeOf(err).String(), "error", err)

	if h.config.Observer != nil {
		h.config.Observer.ReplyRejected(cmd.Name, err)
	}
}

// reportProgress calls the progress callback if configured.
func (h *Host) reportProgress(progress Progress) {
	if h.config.ProgressCallback != nil {
		h.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (h *Host) logDebug(msg string, keysAndValues ...interface{}) {
	if h.config.Logger != nil {
		h.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (h *Host) logInfo(msg string, keysAndValues ...interface{}) {
	if h.config.Logger != nil {
		h.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (h *Host) logError(msg string, keysAndValues ...interface{}) {
	if h.config.Logger != nil {
		h.config.Logger.Error(msg, keysAndValues...)
	}
}

// GetVCPFeature reads a VCP feature. See the package-level GetVCPFeature.
func (h *Host) GetVCPFeature(ctx context.Context, code protocol.FeatureCode) (protocol.VCPValue, error) {
	return GetVCPFeature(ctx, h, code)
}

// SetVCPFeature writes a VCP feature. See the package-level SetVCPFeature.
func (h *Host) SetVCPFeature(ctx context.Context, code protocol.FeatureCode, value uint16) error {
	if err := SetVCPFeature(ctx, h, code, value); err != nil {
		return err
	}
	h.logInfo("feature set", "code", fmt.Sprintf("0x%02X", code), "value", value)
	return nil
}

// SaveCurrentSettings asks the display to persist its settings.
func (h *Host) SaveCurrentSettings(ctx context.Context) error {
	return SaveCurrentSettings(ctx, h)
}

// GetTimingReport reads the display's current timing.
func (h *Host) GetTimingReport(ctx context.Context) (protocol.TimingReport, error) {
	return GetTimingReport(ctx, h)
}

// TableWrite writes a table feature. See the package-level TableWrite.
func (h *Host) TableWrite(ctx context.Context, code protocol.FeatureCode, data []byte) error {
	return TableWrite(ctx, h, code, data)
}

// TableRead returns a lazy reader over a table feature.
func (h *Host) TableRead(ctx context.Context, code protocol.FeatureCode) *TableReader {
	return TableRead(ctx, h, code)
}

// ReadTable reads a whole table feature.
func (h *Host) ReadTable(ctx context.Context, code protocol.FeatureCode) ([]byte, error) {
	return ReadTable(ctx, h, code)
}

// Capabilities retrieves the raw capability string.
func (h *Host) Capabilities(ctx context.Context) (string, error) {
	return Capabilities(ctx, h)
}

// ReadEDIDBlock reads one EDID block from the host's bus.
func (h *Host) ReadEDIDBlock(ctx context.Context, index int) (edid.Block, error) {
	block, err := ReadEDIDBlock(ctx, h.bus, index)
	h.edidBlockRead(index, err)
	return block, err
}

// ReadEDID returns a lazy reader over the base block and its extensions.
func (h *Host) ReadEDID(ctx context.Context) *EDIDReader {
	r := ReadEDID(ctx, h.bus)
	r.onBlock = h.edidBlockRead
	r.onProgress = h.reportProgress
	return r
}

// LoadEDID reads every EDID block and parses the result.
func (h *Host) LoadEDID(ctx context.Context) (*edid.EDID, error) {
	return loadEDID(h.ReadEDID(ctx))
}

func (h *Host) edidBlockRead(index int, err error) {
	if err != nil {
		h.logError("edid block read failed", "block", index, "error", err)
	} else {
		h.logDebug("edid block read", "block", index)
	}
	if h.config.Observer != nil {
		h.config.Observer.EDIDBlockRead(index, err)
	}
}
