package ddc

import (
	"bytes"
	"context"
	"fmt"

	"github.com/moffa90/go-ddcci/protocol"
)

// TableWrite writes data to a table feature in MaxFragmentSize chunks at
// offsets 0, 32, 64, ... in order. The first failure aborts the transfer;
// chunks already sent stay applied. Empty data sends nothing.
//
// Example:
//
//	lut := make([]byte, 40)
//	err := ddc.TableWrite(ctx, host, 0x73, lut) // offsets 0 (32 bytes) and 32 (8 bytes)
func TableWrite(ctx context.Context, c Commander, code protocol.FeatureCode, data []byte) error {
	if len(data) > protocol.MaxTableSize {
		return &protocol.ProtocolError{
			Operation: "table write",
			Code:      protocol.ErrInvalidLength,
			Detail:    fmt.Sprintf("%d bytes exceeds maximum %d", len(data), protocol.MaxTableSize),
		}
	}

	for offset := 0; offset < len(data); offset += protocol.MaxFragmentSize {
		end := offset + protocol.MaxFragmentSize
		if end > len(data) {
			end = len(data)
		}

		cmd, err := protocol.BuildTableWriteCmd(code, uint16(offset), data[offset:end])
		if err != nil {
			return err
		}

		if _, err := c.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("table write at offset %d: %w", offset, err)
		}

		report(c, newProgress("table write", end, len(data)))
	}

	return nil
}

// TableReader is a lazy, finite sequence of table fragments. Each call to
// Next issues one read command at the offset following the previous
// fragment. The sequence ends at the first empty fragment or the first
// error, and cannot be restarted.
//
// Example:
//
//	r := ddc.TableRead(ctx, host, 0x73)
//	for r.Next() {
//	    chunk := r.Chunk()
//	    fmt.Printf("%d: % X\n", chunk.Offset, chunk.Data)
//	}
//	if err := r.Err(); err != nil {
//	    log.Fatal(err)
//	}
type TableReader struct {
	ctx       context.Context
	c         Commander
	operation string
	build     func(offset uint16) protocol.Command
	parse     func(data []byte) (protocol.TableChunk, error)

	offset int
	chunk  protocol.TableChunk
	err    error
	done   bool
}

// TableRead returns a reader over the table feature code. No command is sent
// until the first call to Next.
func TableRead(ctx context.Context, c Commander, code protocol.FeatureCode) *TableReader {
	return &TableReader{
		ctx:       ctx,
		c:         c,
		operation: "table read",
		build: func(offset uint16) protocol.Command {
			return protocol.BuildTableReadCmd(code, offset)
		},
		parse: protocol.ParseTableReadReply,
	}
}

// capabilitiesReader reads the capability string with the same offset
// discipline as a table.
func capabilitiesReader(ctx context.Context, c Commander) *TableReader {
	return &TableReader{
		ctx:       ctx,
		c:         c,
		operation: "capabilities",
		build:     protocol.BuildCapabilitiesRequestCmd,
		parse:     protocol.ParseCapabilitiesReply,
	}
}

// Next reads the next fragment. It returns false when the table is complete
// or an error occurred; check Err to tell them apart.
func (r *TableReader) Next() bool {
	if r.done {
		return false
	}

	if r.offset >= protocol.MaxTableSize {
		return r.fail(&protocol.ProtocolError{
			Operation: r.operation,
			Code:      protocol.ErrInvalidLength,
			Detail:    fmt.Sprintf("no terminating fragment within %d bytes", protocol.MaxTableSize),
		})
	}

	cmd := r.build(uint16(r.offset))

	reply, err := r.c.Execute(r.ctx, cmd)
	if err != nil {
		return r.fail(fmt.Errorf("%s at offset %d: %w", r.operation, r.offset, err))
	}

	chunk, err := r.parse(reply)
	if err != nil {
		return r.fail(reject(r.c, cmd, err))
	}

	if int(chunk.Offset) != r.offset {
		return r.fail(reject(r.c, cmd, &protocol.ProtocolError{
			Operation: r.operation,
			Code:      protocol.ErrOffsetMismatch,
			Detail:    fmt.Sprintf("expected %d, got %d", r.offset, chunk.Offset),
		}))
	}

	if len(chunk.Data) == 0 {
		r.done = true
		return false
	}

	r.chunk = chunk
	r.offset += len(chunk.Data)
	report(r.c, newProgress(r.operation, r.offset, 0))

	return true
}

func (r *TableReader) fail(err error) bool {
	r.err = err
	r.done = true
	return false
}

// Chunk returns the fragment read by the last successful call to Next.
func (r *TableReader) Chunk() protocol.TableChunk {
	return r.chunk
}

// Offset returns the number of bytes read so far.
func (r *TableReader) Offset() int {
	return r.offset
}

// Err returns the error that ended the sequence, or nil if it completed.
func (r *TableReader) Err() error {
	return r.err
}

// drain concatenates every remaining fragment.
func (r *TableReader) drain() ([]byte, error) {
	var buf bytes.Buffer
	for r.Next() {
		buf.Write(r.chunk.Data)
	}
	if r.err != nil {
		return nil, r.err
	}
	return buf.Bytes(), nil
}

// ReadTable reads a whole table feature into memory.
func ReadTable(ctx context.Context, c Commander, code protocol.FeatureCode) ([]byte, error) {
	return TableRead(ctx, c, code).drain()
}

// Capabilities retrieves the display's raw MCCS capability string, such as
// "(prot(monitor)type(lcd)vcp(02 04 10 12 ...)mccs_ver(2.2))". Parsing the
// string is left to the caller.
func Capabilities(ctx context.Context, c Commander) (string, error) {
	data, err := capabilitiesReader(ctx, c).drain()
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(data, "\x00")), nil
}
