// Package rockchip drives RK3588-family GPIO banks, pin multiplexers and the
// clock/reset unit through a hal.Registers provider.
//
// Almost every control register on these parts is write-masked: the upper
// half-word of a store selects which bits of the lower half-word take
// effect, so single bits change without read-modify-write.
package rockchip

import "bringup-go/hal"

// Control blocks (physical bases, RK3588/RK3588S).
var (
	CRU     = hal.Block{Name: "cru", Base: 0xFD7C0000}
	PMU1IOC = hal.Block{Name: "pmu1_ioc", Base: 0xFD5F0000}
	PMU2IOC = hal.Block{Name: "pmu2_ioc", Base: 0xFD5F4000}
	BUSIOC  = hal.Block{Name: "bus_ioc", Base: 0xFD5F8000}

	GPIOBank = [5]hal.Block{
		{Name: "gpio0", Base: 0xFD8A0000},
		{Name: "gpio1", Base: 0xFEC20000},
		{Name: "gpio2", Base: 0xFEC30000},
		{Name: "gpio3", Base: 0xFEC40000},
		{Name: "gpio4", Base: 0xFEC50000},
	}
)

// Blocks lists every block this package touches, for providers that must
// map them up front.
func Blocks() []hal.Block {
	out := []hal.Block{CRU, PMU1IOC, PMU2IOC, BUSIOC}
	return append(out, GPIOBank[:]...)
}

// BlockSize is the span mapped per block.
const BlockSize = 0x1000

// CRU register offsets.
const (
	cruGateCon0    = 0x0800
	cruSoftRstCon0 = 0x0A00
)

// GateCon returns the offset of CRU_GATE_CON<n>.
func GateCon(n uint32) uint32 { return cruGateCon0 + 4*n }

// SoftRstCon returns the offset of CRU_SOFTRST_CON<n>.
func SoftRstCon(n uint32) uint32 { return cruSoftRstCon0 + 4*n }

// HiWord builds a write-masked store changing only the bits in mask.
func HiWord(mask, val uint16) uint32 {
	return uint32(mask)<<16 | uint32(val&mask)
}
