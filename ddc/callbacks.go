package ddc

import "time"

// Progress describes the state of a multi-command transfer.
// Passed to ProgressCallback after every chunk or block.
type Progress struct {
	// Operation names the transfer:
	//   "table write"  - TableWrite chunks
	//   "table read"   - TableRead chunks
	//   "capabilities" - capability string fragments
	//   "edid"         - EDID blocks
	Operation string

	// Done is the number of bytes (blocks for "edid") transferred so far
	Done int

	// Total is the expected number of bytes or blocks, zero when unknown
	Total int

	// Percentage is the completion percentage (0.0 to 100.0), zero when Total is unknown
	Percentage float64
}

func newProgress(op string, done, total int) Progress {
	p := Progress{Operation: op, Done: done, Total: total}
	if total > 0 {
		p.Percentage = float64(done) / float64(total) * 100
	}
	return p
}

// ProgressCallback is called after each chunk of a transfer.
// Implementations should return quickly; the bus is idle while it runs.
//
// Example:
//
//	host := ddc.New(bus,
//	    ddc.WithProgressCallback(func(p ddc.Progress) {
//	        fmt.Printf("[%s] %d/%d\n", p.Operation, p.Done, p.Total)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the host.
// This allows integration with any logging framework; see package logging
// for a zerolog adapter.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	host := ddc.New(bus, ddc.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// Observer receives measurements from the host. Package metrics provides a
// Prometheus implementation.
type Observer interface {
	// CommandDone is called once per executed command with the bus-level
	// outcome (transport and framing errors)
	CommandDone(command string, elapsed time.Duration, err error)

	// ReplyRejected is called when a well-framed reply fails validation
	ReplyRejected(command string, err error)

	// DelayWaited is called after the host slept out an inter-command delay
	DelayWaited(d time.Duration)

	// EDIDBlockRead is called once per EDID block read attempt
	EDIDBlockRead(index int, err error)
}
