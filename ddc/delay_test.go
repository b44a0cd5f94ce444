package ddc

import (
	"testing"
	"time"

	"github.com/moffa90/go-ddcci/protocol"
)

func TestDelayPolicy(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewDelayPolicy(DefaultDelays())

	if d := p.Remaining(start); d != 0 {
		t.Fatalf("idle Remaining = %v, want 0", d)
	}

	p.CommandSucceeded(protocol.DelayAfterSet, start)
	if state, class := p.State(); state != StateAfterCommand || class != protocol.DelayAfterSet {
		t.Fatalf("state = %v/%v", state, class)
	}
	if d := p.Remaining(start.Add(20 * time.Millisecond)); d != 30*time.Millisecond {
		t.Errorf("Remaining = %v, want 30ms", d)
	}

	// Settle before the deadline keeps the delay pending.
	p.Settle(start.Add(49 * time.Millisecond))
	if state, _ := p.State(); state != StateAfterCommand {
		t.Errorf("state = %v, want after_command", state)
	}

	p.Settle(start.Add(50 * time.Millisecond))
	if state, _ := p.State(); state != StateIdle {
		t.Errorf("state = %v, want idle", state)
	}

	p.CommandFailed(start)
	if state, class := p.State(); state != StateFailed || class != protocol.DelayAfterFailedCommand {
		t.Errorf("state = %v/%v, want failed", state, class)
	}
	if d := p.Remaining(start); d != protocol.DefaultFailedDelay {
		t.Errorf("Remaining = %v, want %v", d, protocol.DefaultFailedDelay)
	}
	if d := p.Remaining(start.Add(time.Second)); d != 0 {
		t.Errorf("Remaining after deadline = %v, want 0", d)
	}
}

func TestDelayPolicyRequiredDelay(t *testing.T) {
	p := NewDelayPolicy(DefaultDelays())

	tests := []struct {
		class protocol.DelayClass
		want  time.Duration
	}{
		{protocol.DelayNone, 0},
		{protocol.DelayAfterGet, 50 * time.Millisecond},
		{protocol.DelayAfterSet, 50 * time.Millisecond},
		{protocol.DelayAfterTableChunk, 50 * time.Millisecond},
		{protocol.DelayAfterSave, 200 * time.Millisecond},
		{protocol.DelayAfterFailedCommand, 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			if got := p.RequiredDelay(tt.class); got != tt.want {
				t.Errorf("RequiredDelay(%v) = %v, want %v", tt.class, got, tt.want)
			}
		})
	}
}

func TestDelayPolicyZeroDelayStaysIdle(t *testing.T) {
	now := time.Now()
	p := NewDelayPolicy(Delays{})

	p.CommandSucceeded(protocol.DelayAfterGet, now)
	if state, _ := p.State(); state != StateIdle {
		t.Errorf("state = %v, want idle", state)
	}
	if d := p.Remaining(now); d != 0 {
		t.Errorf("Remaining = %v, want 0", d)
	}
}

func TestPolicyStateString(t *testing.T) {
	if StateIdle.String() != "idle" || StateAfterCommand.String() != "after_command" || StateFailed.String() != "failed" {
		t.Error("unexpected state names")
	}
}
