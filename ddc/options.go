package ddc

import (
	"time"

	"github.com/moffa90/go-ddcci/protocol"
)

// Delays holds the protocol timing. Zero values disable the delay.
type Delays struct {
	// Response is the wait between writing a request and reading its reply
	Response time.Duration

	// Get, Set, TableChunk and Save follow a successful command of that kind
	Get        time.Duration
	Set        time.Duration
	TableChunk time.Duration
	Save       time.Duration

	// Failed follows any command that failed on the bus or was rejected
	Failed time.Duration
}

// DefaultDelays returns the DDC/CI standard delays.
func DefaultDelays() Delays {
	return Delays{
		Response:   protocol.DefaultResponseDelay,
		Get:        protocol.DefaultGetDelay,
		Set:        protocol.DefaultSetDelay,
		TableChunk: protocol.DefaultTableChunkDelay,
		Save:       protocol.DefaultSaveDelay,
		Failed:     protocol.DefaultFailedDelay,
	}
}

// For returns the delay that follows a command of the given class.
func (d Delays) For(class protocol.DelayClass) time.Duration {
	switch class {
	case protocol.DelayAfterGet:
		return d.Get
	case protocol.DelayAfterSet:
		return d.Set
	case protocol.DelayAfterTableChunk:
		return d.TableChunk
	case protocol.DelayAfterSave:
		return d.Save
	case protocol.DelayAfterFailedCommand:
		return d.Failed
	default:
		return 0
	}
}

// Config holds the host configuration.
type Config struct {
	// ProgressCallback is called during multi-chunk transfers (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// Observer receives command and delay measurements (optional)
	Observer Observer

	// Clock supplies time and sleeping; defaults to SystemClock
	Clock Clock

	// Delays is the protocol timing
	Delays Delays
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Clock:  SystemClock(),
		Delays: DefaultDelays(),
	}
}

// Option is a functional option for configuring the Host.
type Option func(*Config)

// WithProgressCallback sets a callback function to track transfer progress.
//
// Example:
//
//	host := ddc.New(bus,
//	    ddc.WithProgressCallback(func(p ddc.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the host operations.
//
// Example:
//
//	host := ddc.New(bus, ddc.WithLogger(logging.NewAdapter(log)))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithObserver sets an observer for command measurements.
//
// Example:
//
//	host := ddc.New(bus, ddc.WithObserver(metrics.New(prometheus.DefaultRegisterer)))
func WithObserver(observer Observer) Option {
	return func(c *Config) {
		c.Observer = observer
	}
}

// WithClock replaces the system clock. Tests use it to observe delays
// without sleeping.
func WithClock(clock Clock) Option {
	return func(c *Config) {
		if clock != nil {
			c.Clock = clock
		}
	}
}

// WithDelays replaces the whole delay table.
//
// Example:
//
//	d := ddc.DefaultDelays()
//	d.Save = 500 * time.Millisecond
//	host := ddc.New(bus, ddc.WithDelays(d))
func WithDelays(delays Delays) Option {
	return func(c *Config) {
		c.Delays = delays
	}
}

// WithResponseDelay sets the wait between a request and its reply.
//
// Example:
//
//	host := ddc.New(bus, ddc.WithResponseDelay(60*time.Millisecond))
func WithResponseDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.Delays.Response = d
		}
	}
}
