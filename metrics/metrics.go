package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/moffa90/go-ddcci/protocol"
)

const namespace = "ddcci"

// Metrics holds the Prometheus collectors for one or more hosts and
// implements ddc.Observer.
type Metrics struct {
	Commands        *prometheus.CounterVec
	CommandErrors   *prometheus.CounterVec
	RejectedReplies *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	DelayWait       prometheus.Histogram
	EDIDBlocks      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
//
// Example:
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	host := ddc.New(bus, ddc.WithObserver(m))
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total DDC/CI bus exchanges, by command and bus-level result. Replies rejected after a successful exchange are counted in ddcci_rejected_replies_total.",
		}, []string{"command", "result"}),
		CommandErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_errors_total",
			Help:      "Total DDC/CI command failures, by error code.",
		}, []string{"code"}),
		RejectedReplies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_replies_total",
			Help:      "Total replies received intact but rejected on validation, by command and error code.",
		}, []string{"command", "code"}),
		CommandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Time from writing a request to validating its reply.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10), // 1ms to ~0.5s
		}, []string{"command"}),
		DelayWait: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "delay_wait_seconds",
			Help:      "Time spent waiting out inter-command delays.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.2, 0.5},
		}),
		EDIDBlocks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edid_blocks_total",
			Help:      "Total EDID block reads, by result.",
		}, []string{"result"}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// CommandDone implements ddc.Observer.
func (m *Metrics) CommandDone(command string, elapsed time.Duration, err error) {
	m.Commands.WithLabelValues(command, result(err)).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
	if err != nil {
		m.CommandErrors.WithLabelValues(protocol.CodeOf(err).String()).Inc()
	}
}

// ReplyRejected implements ddc.Observer.
func (m *Metrics) ReplyRejected(command string, err error) {
	code := protocol.CodeOf(err).String()
	m.RejectedReplies.WithLabelValues(command, code).Inc()
	m.CommandErrors.WithLabelValues(code).Inc()
}

// DelayWaited implements ddc.Observer.
func (m *Metrics) DelayWaited(d time.Duration) {
	m.DelayWait.Observe(d.Seconds())
}

// EDIDBlockRead implements ddc.Observer.
func (m *Metrics) EDIDBlockRead(index int, err error) {
	m.EDIDBlocks.WithLabelValues(result(err)).Inc()
	if err != nil {
		m.CommandErrors.WithLabelValues(protocol.CodeOf(err).String()).Inc()
	}
}
