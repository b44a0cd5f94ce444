package ddc

import (
	"context"

	"github.com/moffa90/go-ddcci/protocol"
)

// GetVCPFeature reads the current and maximum value of a VCP feature.
//
// A display that does not implement code answers with a nonzero result and
// yields protocol.ErrUnsupportedOperation.
//
// Example:
//
//	v, err := ddc.GetVCPFeature(ctx, host, 0x10)
//	if errors.Is(err, protocol.ErrUnsupportedOperation) {
//	    // no brightness control
//	}
//	fmt.Printf("brightness %d/%d\n", v.Current, v.Maximum)
func GetVCPFeature(ctx context.Context, c Commander, code protocol.FeatureCode) (protocol.VCPValue, error) {
	cmd := protocol.BuildGetVCPFeatureCmd(code)

	reply, err := c.Execute(ctx, cmd)
	if err != nil {
		return protocol.VCPValue{}, err
	}

	value, err := protocol.ParseVCPFeatureReply(code, reply)
	if err != nil {
		return protocol.VCPValue{}, reject(c, cmd, err)
	}

	return value, nil
}

// SetVCPFeature writes a VCP feature value. The display does not reply; the
// set delay is enforced before the next command on the same Host.
func SetVCPFeature(ctx context.Context, c Commander, code protocol.FeatureCode, value uint16) error {
	_, err := c.Execute(ctx, protocol.BuildSetVCPFeatureCmd(code, value))
	return err
}

// SaveCurrentSettings asks the display to store its current settings in
// non-volatile memory.
func SaveCurrentSettings(ctx context.Context, c Commander) error {
	_, err := c.Execute(ctx, protocol.BuildSaveCurrentSettingsCmd())
	return err
}

// GetTimingReport reads the horizontal and vertical frequency of the
// current video mode.
func GetTimingReport(ctx context.Context, c Commander) (protocol.TimingReport, error) {
	cmd := protocol.BuildGetTimingReportCmd()

	reply, err := c.Execute(ctx, cmd)
	if err != nil {
		return protocol.TimingReport{}, err
	}

	report, err := protocol.ParseTimingReply(reply)
	if err != nil {
		return protocol.TimingReport{}, reject(c, cmd, err)
	}

	return report, nil
}
