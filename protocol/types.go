package protocol

import "time"

// FeatureCode identifies a VCP feature (brightness is 0x10, contrast 0x12, ...).
type FeatureCode = byte

// ValueType distinguishes continuous from non-continuous VCP features.
type ValueType byte

const (
	// Continuous features have a value range 0..Maximum (set parameter type 0x00)
	Continuous ValueType = 0x00

	// NonContinuous features hold discrete values (momentary type 0x01)
	NonContinuous ValueType = 0x01
)

func (t ValueType) String() string {
	if t == Continuous {
		return "continuous"
	}
	return "non-continuous"
}

// VCPValue is the decoded Get VCP Feature reply.
type VCPValue struct {
	// Code is the feature code echoed by the display
	Code FeatureCode

	// Type is the feature value type
	Type ValueType

	// Maximum is the largest value the display accepts
	Maximum uint16

	// Current is the present value
	Current uint16
}

// TableChunk is one fragment of a table or capabilities transfer.
type TableChunk struct {
	// Offset is the position of Data within the whole table
	Offset uint16

	// Data holds at most MaxFragmentSize bytes; empty terminates a read
	Data []byte
}

// TimingReport is the decoded Get Timing Report reply.
type TimingReport struct {
	// Status holds the timing status flags (bit 7: out of range, bit 6: unstable)
	Status byte

	// HorizontalFrequency in units of 10 Hz
	HorizontalFrequency uint16

	// VerticalFrequency in units of 0.01 Hz
	VerticalFrequency uint16
}

// DelayClass names the inter-command delay that must follow a command.
type DelayClass uint8

const (
	DelayNone DelayClass = iota
	DelayAfterGet
	DelayAfterSet
	DelayAfterTableChunk
	DelayAfterSave
	DelayAfterFailedCommand
)

func (c DelayClass) String() string {
	switch c {
	case DelayAfterGet:
		return "after_get"
	case DelayAfterSet:
		return "after_set"
	case DelayAfterTableChunk:
		return "after_table_chunk"
	case DelayAfterSave:
		return "after_save"
	case DelayAfterFailedCommand:
		return "after_failed_command"
	default:
		return "none"
	}
}

// DefaultDelay returns the protocol delay for class.
func DefaultDelay(class DelayClass) time.Duration {
	switch class {
	case DelayAfterGet:
		return DefaultGetDelay
	case DelayAfterSet:
		return DefaultSetDelay
	case DelayAfterTableChunk:
		return DefaultTableChunkDelay
	case DelayAfterSave:
		return DefaultSaveDelay
	case DelayAfterFailedCommand:
		return DefaultFailedDelay
	default:
		return 0
	}
}

// Command is an encoded request payload with the reply and timing
// requirements the host must honour when executing it.
type Command struct {
	// Name identifies the command in logs and metrics
	Name string

	// Payload is the opcode and arguments, without framing
	Payload []byte

	// ReplyLen is the largest reply payload expected; zero means no reply
	ReplyLen int

	// Delay is the inter-command delay that follows a successful execution
	Delay DelayClass
}

// ReadSize returns the number of bytes to read for the reply frame.
func (c Command) ReadSize() int {
	if c.ReplyLen == 0 {
		return 0
	}
	return c.ReplyLen + FrameOverhead
}
