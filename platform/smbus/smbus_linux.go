//go:build linux

// Package smbus reaches targets through a kernel i2c-dev adapter. Only
// byte-data transfers are supported, which is all a register-per-byte
// regulator needs.
package smbus

import (
	"github.com/platinasystems/i2c"
	"tinygo.org/x/drivers"

	"bringup-go/errcode"
)

// Adapter is /dev/i2c-<Bus> seen as a drivers.I2C.
type Adapter struct {
	Bus int
}

var _ drivers.I2C = Adapter{}

// Tx supports two shapes: w = {reg}, len(r) = 1 (read byte data) and
// w = {reg, value}, r empty (write byte data).
func (a Adapter) Tx(addr uint16, w, r []byte) error {
	var (
		rw   i2c.RW
		data i2c.SMBusData
	)
	switch {
	case len(w) == 1 && len(r) == 1:
		rw = i2c.Read
	case len(w) == 2 && len(r) == 0:
		rw = i2c.Write
		data[0] = w[1]
	default:
		return errcode.Wrap(errcode.Unsupported, "smbus.Tx", "only byte-data transfers")
	}

	err := i2c.Do(a.Bus, int(addr), func(bus *i2c.Bus) error {
		return bus.Do(rw, w[0], i2c.ByteData, &data)
	})
	if err != nil {
		return err
	}
	if rw == i2c.Read {
		r[0] = data[0]
	}
	return nil
}
