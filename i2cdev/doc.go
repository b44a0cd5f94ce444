// Package i2cdev provides a ddc.Bus backed by the Linux i2c-dev interface
// (/dev/i2c-N). Load the i2c-dev kernel module and grant access to the
// device node before use.
//
//	bus, err := i2cdev.Open("/dev/i2c-4", i2cdev.WithForce(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bus.Close()
//
//	host := ddc.New(bus)
package i2cdev
