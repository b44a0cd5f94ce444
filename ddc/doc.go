// Package ddc provides the host side of DDC/CI: VCP feature access, table
// transfers, capability retrieval and EDID reads over any addressable bus.
//
// # Overview
//
// Host executes one command at a time:
//   - Waiting out the delay required by the previous command
//   - Framing the request and writing it to I2C address 0x37
//   - Waiting the response delay and reading the reply
//   - Validating the reply frame and recording the next required delay
//
// The higher-level operations (GetVCPFeature, TableWrite, TableRead,
// Capabilities, ...) are functions over the Commander interface, so they
// work with any executor. Host exposes each of them as a method too.
//
// # Basic Usage
//
//	bus, err := i2cdev.Open("/dev/i2c-4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bus.Close()
//
//	host := ddc.New(bus)
//
//	v, err := host.GetVCPFeature(ctx, 0x10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("brightness %d/%d\n", v.Current, v.Maximum)
//
//	err = host.SetVCPFeature(ctx, 0x10, 80)
//
// # Tables and EDID
//
// Table reads and EDID reads are lazy sequences in the style of bufio.Scanner:
//
//	r := host.ReadEDID(ctx)
//	for r.Next() {
//	    block := r.Block()
//	    // ...
//	}
//	if err := r.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration Options
//
//	host := ddc.New(bus,
//	    ddc.WithLogger(logging.NewAdapter(log)),
//	    ddc.WithObserver(metrics.New(prometheus.DefaultRegisterer)),
//	    ddc.WithProgressCallback(progressFunc),
//	    ddc.WithDelays(delays),
//	)
//
// # Context Support
//
// The context is checked before each frame is sent and while sleeping
// between commands. Once a frame is on the bus the command completes, so a
// cancelled table transfer stops on a chunk boundary.
//
// # Error Handling
//
//   - protocol.ProtocolError: framing, length, checksum and reply validation failures
//   - TransportError: the Bus failed; the cause is available via errors.Unwrap
//
// Use protocol.CodeOf to classify any error returned by this package.
//
// # Concurrency
//
// Host is not safe for concurrent use. DDC/CI is strictly sequential per
// display.
package ddc
