package logging

import (
	"github.com/rs/zerolog"
)

// Adapter exposes a zerolog.Logger through the ddc.Logger interface.
//
//	log, _ := logging.New(logging.Config{App: "ddcci", Level: "debug"})
//	host := ddc.New(bus, ddc.WithLogger(logging.NewAdapter(log)))
type Adapter struct {
	logger zerolog.Logger
}

// NewAdapter wraps logger.
func NewAdapter(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Debug logs msg at debug level with alternating key-value pairs.
func (a *Adapter) Debug(msg string, keysAndValues ...interface{}) {
	a.logger.Debug().Fields(keysAndValues).Msg(msg)
}

// Info logs msg at info level with alternating key-value pairs.
func (a *Adapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info().Fields(keysAndValues).Msg(msg)
}

// Error logs msg at error level with alternating key-value pairs.
func (a *Adapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error().Fields(keysAndValues).Msg(msg)
}
