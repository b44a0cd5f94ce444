package sim

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/moffa90/go-ddcci/ddc"
	"github.com/moffa90/go-ddcci/edid"
	"github.com/moffa90/go-ddcci/protocol"
)

// ErrBusFault is returned by bus operations while FaultBusError is armed.
var ErrBusFault = errors.New("sim: injected bus fault")

// Fault is a one-shot failure injected into the next matching exchange.
type Fault uint8

const (
	// FaultNone clears any armed fault
	FaultNone Fault = iota

	// FaultBusError fails the next Write or Read with ErrBusFault
	FaultBusError

	// FaultBadChecksum corrupts the checksum of the next reply
	FaultBadChecksum

	// FaultOffsetShift adds one to the offset of the next fragment reply
	FaultOffsetShift

	// FaultNoReply drops the next reply; the display answers with a null message
	FaultNoReply
)

// Feature is the state of one simulated VCP feature.
type Feature struct {
	Type    protocol.ValueType
	Maximum uint16
	Current uint16
}

// Transaction is one bus operation seen by the display.
type Transaction struct {
	Addr  uint16
	Write bool
	Data  []byte
}

// Display simulates a DDC/CI monitor on an I2C bus. It implements ddc.Bus
// and ddc.Transferer and is safe for concurrent use.
type Display struct {
	mu sync.Mutex

	features     map[protocol.FeatureCode]*Feature
	tables       map[protocol.FeatureCode][]byte
	capabilities []byte
	edid         []byte
	timing       protocol.TimingReport

	reply   []byte
	segment int
	offset  int
	saves   int
	fault   Fault
	log     []Transaction
}

// New creates a display with the given options. Without options it has
// brightness (0x10) and contrast (0x12) at 50 of 100, a 60 Hz timing
// report, a single-block EDID and a minimal capability string.
func New(opts ...Option) *Display {
	d := &Display{
		features: map[protocol.FeatureCode]*Feature{
			0x10: {Type: protocol.Continuous, Maximum: 100, Current: 50},
			0x12: {Type: protocol.Continuous, Maximum: 100, Current: 50},
		},
		tables:       make(map[protocol.FeatureCode][]byte),
		capabilities: []byte(DefaultCapabilities),
		edid:         DefaultEDID(0),
		timing:       protocol.TimingReport{HorizontalFrequency: 6750, VerticalFrequency: 6000},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Write implements ddc.Bus.
func (d *Display) Write(ctx context.Context, addr uint16, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.write(addr, p)
}

// Read implements ddc.Bus.
func (d *Display) Read(ctx context.Context, addr uint16, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.read(addr, p)
}

// Transfer implements ddc.Transferer. The EDID segment pointer is reset at
// the end of the transaction.
func (d *Display) Transfer(ctx context.Context, msgs []ddc.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range msgs {
		if msgs[i].Read {
			n, err := d.read(msgs[i].Addr, msgs[i].Data)
			if err != nil {
				return err
			}
			msgs[i].Data = msgs[i].Data[:n]
			continue
		}
		if err := d.write(msgs[i].Addr, msgs[i].Data); err != nil {
			return err
		}
	}
	d.segment = 0
	return nil
}

func (d *Display) write(addr uint16, p []byte) error {
	d.log = append(d.log, Transaction{Addr: addr, Write: true, Data: append([]byte(nil), p...)})

	if d.takeFault(FaultBusError) {
		return ErrBusFault
	}

	switch addr {
	case protocol.AddressEDIDSegment:
		if len(p) != 1 {
			return fmt.Errorf("sim: segment write of %d bytes", len(p))
		}
		d.segment = int(p[0])
		return nil

	case protocol.AddressEDID:
		if len(p) != 1 {
			return fmt.Errorf("sim: edid offset write of %d bytes", len(p))
		}
		d.offset = int(p[0])
		return nil

	case protocol.AddressDDCCI:
		payload, err := protocol.DecodeCommand(p)
		if err != nil {
			return fmt.Errorf("sim: rejected frame: %w", err)
		}
		d.reply = d.handle(payload)
		return nil

	default:
		return fmt.Errorf("sim: no device at 0x%02X", addr)
	}
}

func (d *Display) read(addr uint16, p []byte) (int, error) {
	d.log = append(d.log, Transaction{Addr: addr})

	if d.takeFault(FaultBusError) {
		return 0, ErrBusFault
	}

	switch addr {
	case protocol.AddressEDID:
		start := d.segment*edid.BlocksPerSegment*edid.BlockSize + d.offset
		d.segment = 0
		if start >= len(d.edid) {
			return 0, fmt.Errorf("sim: edid offset %d beyond %d bytes", start, len(d.edid))
		}
		return copy(p, d.edid[start:]), nil

	case protocol.AddressDDCCI:
		reply := d.reply
		d.reply = nil

		if reply == nil || d.takeFault(FaultNoReply) {
			reply, _ = protocol.EncodeReply(nil)
		}
		if d.takeFault(FaultBadChecksum) {
			reply[len(reply)-1] ^= 0xFF
		}

		// Unused bytes of the read read back as 0xFF padding.
		n := copy(p, reply)
		for i := n; i < len(p); i++ {
			p[i] = 0xFF
		}
		return len(p), nil

	default:
		return 0, fmt.Errorf("sim: no device at 0x%02X", addr)
	}
}

// handle executes a command payload and returns the reply frame, or nil
// for commands without a reply.
func (d *Display) handle(payload []byte) []byte {
	if len(payload) == 0 {
		return nil
	}

	var reply []byte
	switch payload[0] {
	case protocol.OpGetVCPFeature:
		if len(payload) != 2 {
			return nil
		}
		reply = d.getFeature(payload[1])

	case protocol.OpSetVCPFeature:
		if len(payload) != 4 {
			return nil
		}
		d.setFeature(payload[1], binary.BigEndian.Uint16(payload[2:4]))

	case protocol.OpSaveCurrentSettings:
		d.saves++

	case protocol.OpGetTimingReport:
		reply = []byte{protocol.OpTimingReply, d.timing.Status, 0, 0, 0, 0}
		binary.BigEndian.PutUint16(reply[2:4], d.timing.HorizontalFrequency)
		binary.BigEndian.PutUint16(reply[4:6], d.timing.VerticalFrequency)

	case protocol.OpTableRead:
		if len(payload) != 4 {
			return nil
		}
		offset := binary.BigEndian.Uint16(payload[2:4])
		reply = d.fragment(protocol.OpTableReadReply, offset, d.tables[payload[1]])

	case protocol.OpTableWrite:
		if len(payload) < protocol.TableWriteHeaderSize {
			return nil
		}
		d.tableWrite(payload[1], int(binary.BigEndian.Uint16(payload[2:4])), payload[protocol.TableWriteHeaderSize:])

	case protocol.OpCapabilitiesRequest:
		if len(payload) != 3 {
			return nil
		}
		offset := binary.BigEndian.Uint16(payload[1:3])
		reply = d.fragment(protocol.OpCapabilitiesReply, offset, d.capabilities)

	default:
		return nil
	}

	if reply == nil {
		return nil
	}
	frame, _ := protocol.EncodeReply(reply)
	return frame
}

func (d *Display) getFeature(code protocol.FeatureCode) []byte {
	f, ok := d.features[code]
	if !ok {
		return []byte{protocol.OpGetVCPFeatureReply, protocol.ResultUnsupported, code, 0, 0, 0, 0, 0}
	}

	reply := []byte{protocol.OpGetVCPFeatureReply, protocol.ResultNoError, code, byte(f.Type), 0, 0, 0, 0}
	binary.BigEndian.PutUint16(reply[4:6], f.Maximum)
	binary.BigEndian.PutUint16(reply[6:8], f.Current)
	return reply
}

func (d *Display) setFeature(code protocol.FeatureCode, value uint16) {
	f, ok := d.features[code]
	if !ok {
		return
	}
	if f.Type == protocol.Continuous && value > f.Maximum {
		value = f.Maximum
	}
	f.Current = value
}

func (d *Display) fragment(opcode byte, offset uint16, data []byte) []byte {
	start := int(offset)
	if start > len(data) {
		start = len(data)
	}
	end := start + protocol.MaxFragmentSize
	if end > len(data) {
		end = len(data)
	}

	if d.takeFault(FaultOffsetShift) {
		offset++
	}

	reply := []byte{opcode, byte(offset >> 8), byte(offset)}
	return append(reply, data[start:end]...)
}

func (d *Display) tableWrite(code protocol.FeatureCode, offset int, data []byte) {
	table := d.tables[code]
	if need := offset + len(data); need > len(table) {
		grown := make([]byte, need)
		copy(grown, table)
		table = grown
	}
	copy(table[offset:], data)
	d.tables[code] = table
}

func (d *Display) takeFault(f Fault) bool {
	if d.fault == f && f != FaultNone {
		d.fault = FaultNone
		return true
	}
	return false
}

// InjectFault arms f for the next exchange it applies to.
func (d *Display) InjectFault(f Fault) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fault = f
}

// Feature returns the current state of a VCP feature.
func (d *Display) Feature(code protocol.FeatureCode) (Feature, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, ok := d.features[code]
	if !ok {
		return Feature{}, false
	}
	return *f, true
}

// Table returns a copy of a table feature's contents.
func (d *Display) Table(code protocol.FeatureCode) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]byte(nil), d.tables[code]...)
}

// Saves returns how many Save Current Settings commands were received.
func (d *Display) Saves() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saves
}

// Log returns every bus operation seen so far.
func (d *Display) Log() []Transaction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Transaction(nil), d.log...)
}

// ResetLog clears the transaction log.
func (d *Display) ResetLog() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.log = nil
}
