package ddc

import (
	"context"
	"fmt"

	"github.com/moffa90/go-ddcci/edid"
	"github.com/moffa90/go-ddcci/protocol"
)

// ReadEDIDBlock reads one 128-byte EDID block and validates its checksum.
//
// Blocks 0 and 1 are read by writing the byte offset to 0x50 and reading
// 128 bytes. Higher blocks first write the segment number to 0x30. When bus
// implements Transferer the writes and the read form one combined
// transaction.
//
// EDID reads bypass the DDC/CI delay policy.
func ReadEDIDBlock(ctx context.Context, bus Bus, index int) (edid.Block, error) {
	var block edid.Block

	if index < 0 || index >= edid.MaxBlocks {
		return block, fmt.Errorf("edid block index %d out of range 0-%d", index, edid.MaxBlocks-1)
	}
	if err := ctx.Err(); err != nil {
		return block, err
	}

	segment, offset := edid.SegmentOf(index)

	var n int
	if t, ok := bus.(Transferer); ok {
		msgs := make([]Message, 0, 3)
		if edid.NeedsSegment(index) {
			msgs = append(msgs, Message{Addr: protocol.AddressEDIDSegment, Data: []byte{segment}})
		}
		msgs = append(msgs,
			Message{Addr: protocol.AddressEDID, Data: []byte{offset}},
			Message{Addr: protocol.AddressEDID, Read: true, Data: block[:]},
		)
		if err := t.Transfer(ctx, msgs); err != nil {
			return block, &TransportError{Op: "transfer", Addr: protocol.AddressEDID, Err: err}
		}
		n = len(msgs[len(msgs)-1].Data)
	} else {
		if edid.NeedsSegment(index) {
			if err := bus.Write(ctx, protocol.AddressEDIDSegment, []byte{segment}); err != nil {
				return block, &TransportError{Op: "write", Addr: protocol.AddressEDIDSegment, Err: err}
			}
		}
		if err := bus.Write(ctx, protocol.AddressEDID, []byte{offset}); err != nil {
			return block, &TransportError{Op: "write", Addr: protocol.AddressEDID, Err: err}
		}

		var err error
		n, err = bus.Read(ctx, protocol.AddressEDID, block[:])
		if err != nil {
			return block, &TransportError{Op: "read", Addr: protocol.AddressEDID, Err: err}
		}
	}

	if n < edid.BlockSize {
		return block, &protocol.ProtocolError{
			Operation: fmt.Sprintf("edid block %d", index),
			Code:      protocol.ErrInvalidLength,
			Detail:    fmt.Sprintf("read %d bytes, expected %d", n, edid.BlockSize),
		}
	}

	if err := block.Validate(index); err != nil {
		return block, err
	}

	return block, nil
}

// EDIDReader is a lazy sequence over the base block and the extension
// blocks it declares. It stops at the first failure and cannot be
// restarted.
//
// Example:
//
//	r := ddc.ReadEDID(ctx, bus)
//	for r.Next() {
//	    b := r.Block()
//	    fmt.Printf("block %d tag 0x%02X\n", r.Index(), b.Tag())
//	}
//	if err := r.Err(); err != nil {
//	    log.Fatal(err)
//	}
type EDIDReader struct {
	ctx context.Context
	bus Bus

	next  int
	total int
	block edid.Block
	err   error
	done  bool

	onBlock    func(index int, err error)
	onProgress func(Progress)
}

// ReadEDID returns a reader over the EDID at bus. No bus traffic happens
// until the first call to Next.
func ReadEDID(ctx context.Context, bus Bus) *EDIDReader {
	return &EDIDReader{ctx: ctx, bus: bus, total: 1}
}

// Next reads the next block. It returns false after the last declared
// extension or on error; check Err to tell them apart.
func (r *EDIDReader) Next() bool {
	if r.done || r.next >= r.total {
		r.done = true
		return false
	}

	block, err := ReadEDIDBlock(r.ctx, r.bus, r.next)
	if r.onBlock != nil {
		r.onBlock(r.next, err)
	}
	if err != nil {
		r.err = err
		r.done = true
		return false
	}

	if r.next == 0 {
		r.total = 1 + block.ExtensionCount()
	}

	r.block = block
	r.next++

	if r.onProgress != nil {
		r.onProgress(newProgress("edid", r.next, r.total))
	}

	return true
}

// Block returns the block read by the last successful call to Next.
func (r *EDIDReader) Block() edid.Block {
	return r.block
}

// Index returns the index of the block returned by Block.
func (r *EDIDReader) Index() int {
	return r.next - 1
}

// Total returns the number of blocks in the EDID, known after the base block
// has been read.
func (r *EDIDReader) Total() int {
	return r.total
}

// Err returns the error that ended the sequence, or nil.
func (r *EDIDReader) Err() error {
	return r.err
}

// LoadEDID reads every block from bus and parses the result.
func LoadEDID(ctx context.Context, bus Bus) (*edid.EDID, error) {
	return loadEDID(ReadEDID(ctx, bus))
}

func loadEDID(r *EDIDReader) (*edid.EDID, error) {
	var data []byte
	for r.Next() {
		b := r.Block()
		data = append(data, b[:]...)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return edid.ParseBytes(data)
}
