package swi2c

import (
	"tinygo.org/x/drivers"

	"bringup-go/errcode"
)

// Ensure the emulated bus can stand in for a hardware controller.
var _ drivers.I2C = (*Bus)(nil)

// Tx performs one combined transaction in the tinygo drivers shape: w is
// written after the address, then, if r is non-empty, a repeated START reads
// len(r) bytes. A single attempt is made; any unacknowledged byte ends the
// transaction with errcode.NoAck. The bus is always left idle.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7F {
		return errcode.Wrap(errcode.Unsupported, "swi2c.Tx", "10-bit address")
	}
	a := byte(addr) << 1

	if len(w) > 0 || len(r) == 0 {
		b.Start()
		if !b.SendByte(a) {
			b.Stop()
			return errcode.NoAck
		}
		for _, c := range w {
			if !b.SendByte(c) {
				b.Stop()
				return errcode.NoAck
			}
		}
	}
	if len(r) > 0 {
		b.Start()
		if !b.SendByte(a | 1) {
			b.Stop()
			return errcode.NoAck
		}
		for i := range r {
			r[i] = b.ReceiveByte(i < len(r)-1)
		}
	}
	b.Stop()
	return nil
}
