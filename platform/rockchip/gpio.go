package rockchip

import (
	"fmt"

	"bringup-go/errcode"
	"bringup-go/hal"
)

// GPIO controller register offsets.
const (
	swportDRL  = 0x00
	swportDRH  = 0x04
	swportDDRL = 0x08
	swportDDRH = 0x0C
	extPort    = 0x70
)

// Bank 0 pins A0..B3 are muxed in PMU1_IOC, B4..D7 in PMU2_IOC.
const pmu2FirstPin = 12

// GPIO implements hal.GPIO for the on-die GPIO banks.
type GPIO struct {
	regs hal.Registers
}

var _ hal.GPIO = (*GPIO)(nil)

func NewGPIO(regs hal.Registers) *GPIO { return &GPIO{regs: regs} }

func bank(p hal.Pin) hal.Block {
	if int(p.Bank) >= len(GPIOBank) || p.Index > 31 {
		panic(&errcode.E{C: errcode.UnknownPin, Op: "rockchip", Msg: fmt.Sprintf("gpio%d_%d", p.Bank, p.Index)})
	}
	return GPIOBank[p.Bank]
}

// half selects the L/H register of a pair and the bit within it.
func half(p hal.Pin, lo, hi uint32) (off uint32, bit uint16) {
	if p.Index < 16 {
		return lo, 1 << p.Index
	}
	return hi, 1 << (p.Index - 16)
}

func (g *GPIO) SetDirection(p hal.Pin, d hal.Direction) {
	b := bank(p)
	off, bit := half(p, swportDDRL, swportDDRH)
	var v uint16
	if d == hal.Output {
		v = bit
	}
	g.regs.Write32(b, off, HiWord(bit, v))
}

func (g *GPIO) Write(p hal.Pin, high bool) {
	b := bank(p)
	off, bit := half(p, swportDRL, swportDRH)
	var v uint16
	if high {
		v = bit
	}
	g.regs.Write32(b, off, HiWord(bit, v))
}

func (g *GPIO) Read(p hal.Pin) bool {
	return g.regs.Read32(bank(p), extPort)&(1<<p.Index) != 0
}

func (g *GPIO) SetFunction(p hal.Pin, fn hal.Function) {
	blk, off := IOMux(p)
	shift := uint(p.Index%4) * 4
	g.regs.Write32(blk, off, HiWord(0xF<<shift, uint16(fn&0xF)<<shift))
}

// IOMux returns the block and offset of the IOMUX_SEL register holding p's
// 4-bit function field.
func IOMux(p hal.Pin) (hal.Block, uint32) {
	bank(p)
	reg := uint32(p.Index / 4)
	switch {
	case p.Bank == 0 && p.Index < pmu2FirstPin:
		return PMU1IOC, reg * 4
	case p.Bank == 0:
		return PMU2IOC, (reg - pmu2FirstPin/4) * 4
	default:
		return BUSIOC, uint32(p.Bank)*0x20 + reg*4
	}
}
