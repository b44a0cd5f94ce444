// Package sim provides an in-memory DDC/CI display for tests and examples.
//
// A Display answers Get/Set VCP Feature, Save Current Settings, timing
// report, table and capabilities commands at address 0x37, and serves an
// EDID image with E-DDC segment addressing at 0x50 and 0x30:
//
//	display := sim.New(sim.WithEDID(sim.DefaultEDID(1)))
//	host := ddc.New(display)
//
//	v, err := host.GetVCPFeature(ctx, 0x10)
//
// Faults can be injected to exercise error paths:
//
//	display.InjectFault(sim.FaultBadChecksum)
//	_, err := host.GetVCPFeature(ctx, 0x10) // errors.Is(err, protocol.ErrInvalidChecksum)
package sim
