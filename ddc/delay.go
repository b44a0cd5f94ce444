package ddc

import (
	"time"

	"github.com/moffa90/go-ddcci/protocol"
)

// PolicyState is the state of a DelayPolicy.
type PolicyState uint8

const (
	// StateIdle means the next command may be sent immediately
	StateIdle PolicyState = iota

	// StateAfterCommand means a successful command's delay is pending
	StateAfterCommand

	// StateFailed means the failed-command delay is pending
	StateFailed
)

func (s PolicyState) String() string {
	switch s {
	case StateAfterCommand:
		return "after_command"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// DelayPolicy tracks the minimum spacing between consecutive commands on one
// connection. It only computes; Host does the sleeping.
//
//	Idle --success(class)--> AfterCommand(class) --elapsed--> Idle
//	any  --failure---------> Failed              --elapsed--> Idle
//
// DelayPolicy is not safe for concurrent use.
type DelayPolicy struct {
	delays   Delays
	state    PolicyState
	class    protocol.DelayClass
	deadline time.Time
}

// NewDelayPolicy returns an idle policy using delays.
func NewDelayPolicy(delays Delays) *DelayPolicy {
	return &DelayPolicy{delays: delays}
}

// RequiredDelay returns the delay that follows a command of class.
func (p *DelayPolicy) RequiredDelay(class protocol.DelayClass) time.Duration {
	return p.delays.For(class)
}

// Remaining returns how long the caller must wait at now before the next
// command. It is zero when idle or when the pending delay has elapsed.
func (p *DelayPolicy) Remaining(now time.Time) time.Duration {
	if p.state == StateIdle {
		return 0
	}
	if d := p.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// CommandSucceeded records a completed command of class at now.
func (p *DelayPolicy) CommandSucceeded(class protocol.DelayClass, now time.Time) {
	d := p.delays.For(class)
	if d <= 0 {
		p.state, p.class, p.deadline = StateIdle, protocol.DelayNone, time.Time{}
		return
	}
	p.state, p.class, p.deadline = StateAfterCommand, class, now.Add(d)
}

// CommandFailed records a failed command at now. It replaces any pending
// delay, including one recorded for the same command's successful write.
func (p *DelayPolicy) CommandFailed(now time.Time) {
	p.state, p.class = StateFailed, protocol.DelayAfterFailedCommand
	p.deadline = now.Add(p.delays.Failed)
}

// Settle returns the policy to idle if the pending delay has elapsed at now.
func (p *DelayPolicy) Settle(now time.Time) {
	if p.state != StateIdle && p.Remaining(now) == 0 {
		p.state, p.class, p.deadline = StateIdle, protocol.DelayNone, time.Time{}
	}
}

// State returns the current state and the delay class it was entered with.
func (p *DelayPolicy) State() (PolicyState, protocol.DelayClass) {
	return p.state, p.class
}
